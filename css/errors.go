package css

import "fmt"

// ParseError reports that the source text could not be turned into a parse
// tree, either by the native tokenizer or by an external parser process.
// The diagnostic from the underlying parser is preserved verbatim.
type ParseError struct {
	Msg string
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil && e.Msg != "" {
		return fmt.Sprintf("parse failed: %s: %v", e.Msg, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("parse failed: %v", e.Err)
	}
	return "parse failed: " + e.Msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// RenderError reports a parse adapter contract violation: a node outside
// the closed kind set or a node missing a required field. It is not a
// recoverable condition, the whole invocation fails.
type RenderError struct {
	Kind Kind
	Msg  string
}

func (e *RenderError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("internal error: %s (node kind %q)", e.Msg, e.Kind)
	}
	return fmt.Sprintf("internal error: unsupported node kind %q", e.Kind)
}
