package css

import (
	"io"
	"strings"
)

// indentUnit is the fixed indentation step, four spaces per depth level.
const indentUnit = "    "

// RenderOptions suppress node classes wholesale. Suppressed nodes produce
// no output and no separators.
type RenderOptions struct {
	IgnoreCharset    bool
	IgnoreComments   bool
	IgnoreEmptyRules bool
}

// Renderer pretty-prints a parse tree under the fixed style convention:
// four space indent, one selector per line, semicolon-terminated
// declarations, blank line between top-level items. It never mutates or
// reorders the tree.
type Renderer struct {
	opts RenderOptions
}

// NewRenderer creates a renderer with the given options.
func NewRenderer(opts RenderOptions) *Renderer {
	return &Renderer{opts: opts}
}

// Render formats the tree rooted at root. It fails with *RenderError only
// when the tree contains a node outside the closed kind set, which means a
// parse adapter violated its contract.
func (r *Renderer) Render(root *Node) (string, error) {
	var sb strings.Builder
	if err := r.renderNode(&sb, root, 0); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// WriteTo writes the formatted tree to w, implementing the same contract
// as Render.
func (r *Renderer) WriteTo(w io.Writer, root *Node) error {
	text, err := r.Render(root)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, text)
	return err
}

// skip reports whether options suppress this node entirely.
func (r *Renderer) skip(n *Node) bool {
	switch {
	case n.Kind == KindComment:
		return r.opts.IgnoreComments
	case n.Kind == KindRule:
		return r.opts.IgnoreEmptyRules && n.empty()
	case n.Kind == KindAtRule && n.Keyword == "charset":
		return r.opts.IgnoreCharset
	default:
		return false
	}
}

func (r *Renderer) renderNode(sb *strings.Builder, n *Node, depth int) error {
	if n == nil {
		return &RenderError{Kind: kindOf(n), Msg: "nil node"}
	}

	indent := strings.Repeat(indentUnit, depth)

	switch n.Kind {
	case KindStylesheet:
		first := true
		for _, child := range n.Children {
			if r.skip(child) {
				continue
			}
			if !first {
				sb.WriteByte('\n')
			}
			first = false
			if err := r.renderNode(sb, child, depth); err != nil {
				return err
			}
		}
		return nil

	case KindRule:
		if len(n.Selectors) == 0 {
			return &RenderError{Kind: n.Kind, Msg: "rule without selectors"}
		}
		sb.WriteString(indent)
		sb.WriteString(n.header(indent))
		sb.WriteString(" {\n")
		if err := r.renderBody(sb, n.Children, depth+1); err != nil {
			return err
		}
		sb.WriteString(indent)
		sb.WriteString("}\n")
		return nil

	case KindDeclaration:
		if n.Property == "" {
			return &RenderError{Kind: n.Kind, Msg: "declaration without property"}
		}
		sb.WriteString(indent)
		sb.WriteString(n.Property)
		sb.WriteString(": ")
		sb.WriteString(n.Value)
		sb.WriteString(";\n")
		return nil

	case KindComment:
		sb.WriteString(indent)
		sb.WriteString("/*")
		sb.WriteString(n.Text)
		sb.WriteString("*/\n")
		return nil

	case KindAtRule:
		if n.Keyword == "" {
			return &RenderError{Kind: n.Kind, Msg: "at-rule without keyword"}
		}
		sb.WriteString(indent)
		sb.WriteByte('@')
		sb.WriteString(n.Keyword)
		if n.Prelude != "" {
			sb.WriteByte(' ')
			sb.WriteString(n.Prelude)
		}
		if !n.Block {
			sb.WriteString(";\n")
			return nil
		}
		sb.WriteString(" {\n")
		if err := r.renderBody(sb, n.Children, depth+1); err != nil {
			return err
		}
		sb.WriteString(indent)
		sb.WriteString("}\n")
		return nil

	default:
		return &RenderError{Kind: n.Kind}
	}
}

func (r *Renderer) renderBody(sb *strings.Builder, children []*Node, depth int) error {
	for _, child := range children {
		if r.skip(child) {
			continue
		}
		if err := r.renderNode(sb, child, depth); err != nil {
			return err
		}
	}
	return nil
}
