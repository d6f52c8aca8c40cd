package css

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"go.uber.org/zap"
)

// ExecParser is the external parse adapter. It spawns a parser command,
// feeds the CSS source to its stdin and decodes the JSON interchange tree
// from its stdout. A non-zero exit is surfaced as a ParseError carrying the
// process output verbatim.
type ExecParser struct {
	log     *zap.Logger
	command []string
}

// NewExecParser creates an adapter around the given command line.
func NewExecParser(log *zap.Logger, command []string) (*ExecParser, error) {
	if len(command) == 0 {
		return nil, errors.New("external parser command is not configured")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ExecParser{log: log.Named("css-exec-parser"), command: command}, nil
}

// Parse runs the parser process to completion and decodes its output.
func (p *ExecParser) Parse(ctx context.Context, src []byte) (*Node, error) {
	cmd := exec.CommandContext(ctx, p.command[0], p.command[1:]...)

	var stdout, stderr bytes.Buffer
	cmd.Stdin = bytes.NewReader(src)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	p.log.Debug("Running external parser", zap.Strings("command", p.command), zap.Int("bytes", len(src)))

	if err := cmd.Run(); err != nil {
		var xerr *exec.ExitError
		if errors.As(err, &xerr) {
			return nil, &ParseError{
				Msg: fmt.Sprintf("unexpected return code (%d)\nstdout:\n%s\nstderr:\n%s",
					xerr.ExitCode(), stdout.String(), stderr.String()),
			}
		}
		return nil, &ParseError{Msg: "unable to run external parser", Err: err}
	}

	root, err := DecodeTree(stdout.Bytes())
	if err != nil {
		return nil, err
	}
	p.log.Debug("Decoded parse tree", zap.Int("top_level_nodes", len(root.Children)))
	return root, nil
}
