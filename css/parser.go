package css

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	cssparse "github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser is the native parse adapter. It tokenizes CSS in-process and
// builds the generic node tree.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new native CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// statement-form at-rules have no block and terminate with a semicolon.
var statementAtRules = map[string]bool{
	"import":    true,
	"charset":   true,
	"namespace": true,
}

// Parse parses CSS text into a stylesheet node.
func (p *Parser) Parse(ctx context.Context, src []byte) (*Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.log.Debug("Parsing CSS", zap.Int("bytes", len(src)))

	input := parse.NewInput(bytes.NewReader(src))
	parser := cssparse.NewParser(input, false)

	root := Stylesheet()

	// stack of open blocks, innermost last
	open := []*Node{root}
	var pendingSelectors []string

	for {
		current := open[len(open)-1]

		gt, _, data := parser.Next()
		switch gt {
		case cssparse.ErrorGrammar:
			err := parser.Err()
			if err == nil || errors.Is(err, io.EOF) {
				p.log.Debug("Parsed stylesheet", zap.Int("top_level_nodes", len(root.Children)))
				return root, nil
			}
			p.log.Debug("CSS parse error", zap.Error(err))
			return nil, &ParseError{Err: err}

		case cssparse.CommentGrammar:
			current.Children = append(current.Children, Comment(commentText(string(data))))

		case cssparse.BeginAtRuleGrammar:
			keyword := strings.TrimPrefix(string(data), "@")
			prelude := joinTokens(parser.Values())
			if strings.HasSuffix(keyword, "media") || keyword == "supports" {
				prelude = normalizeConditionPrelude(prelude)
			}
			node := AtRule(keyword, prelude)
			current.Children = append(current.Children, node)
			open = append(open, node)

		case cssparse.EndAtRuleGrammar:
			if len(open) > 1 {
				open = open[:len(open)-1]
			}

		case cssparse.AtRuleGrammar:
			keyword := strings.TrimPrefix(string(data), "@")
			prelude := joinTokens(parser.Values())
			if !statementAtRules[keyword] {
				p.log.Debug("Unrecognized statement at-rule", zap.String("keyword", keyword))
			}
			current.Children = append(current.Children, AtStatement(keyword, prelude))

		case cssparse.QualifiedRuleGrammar:
			// selector group terminated by a comma, ruleset continues
			pendingSelectors = append(pendingSelectors, splitSelectors(data, parser.Values())...)

		case cssparse.BeginRulesetGrammar:
			selectors := append(pendingSelectors, splitSelectors(data, parser.Values())...)
			pendingSelectors = nil
			node := Rule(selectors)
			current.Children = append(current.Children, node)
			open = append(open, node)

		case cssparse.EndRulesetGrammar:
			if len(open) > 1 {
				open = open[:len(open)-1]
			}

		case cssparse.DeclarationGrammar, cssparse.CustomPropertyGrammar:
			property := string(data)
			value := normalizeValue(property, joinTokens(parser.Values()))
			current.Children = append(current.Children, Declaration(property, value))
		}
	}
}

// commentText strips the comment delimiters, keeping the body verbatim.
func commentText(s string) string {
	s = strings.TrimPrefix(s, "/*")
	s = strings.TrimSuffix(s, "*/")
	return s
}

// joinTokens reconstructs a token run as text, collapsing whitespace runs
// to a single space.
func joinTokens(tokens []cssparse.Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		if t.TokenType == cssparse.WhitespaceToken {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			continue
		}
		sb.Write(t.Data)
	}
	return strings.TrimSpace(sb.String())
}

// splitSelectors breaks a selector list on commas and normalizes each part.
func splitSelectors(data []byte, values []cssparse.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, t := range values {
		sb.Write(t.Data)
	}

	var selectors []string
	for _, s := range strings.Split(sb.String(), ",") {
		if s = normalizeSelector(s); s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}
