// Package css defines the generic CSS parse tree, the parse adapters that
// produce it and the renderer that pretty-prints it back to text.
package css

import (
	"context"
	"strings"
)

// Kind tags a Node with its variant. The set is closed: parse adapters may
// only produce these kinds and the renderer rejects anything else.
type Kind int

const (
	KindStylesheet Kind = iota
	KindRule
	KindDeclaration
	KindComment
	KindAtRule
)

func (k Kind) String() string {
	switch k {
	case KindStylesheet:
		return "stylesheet"
	case KindRule:
		return "rule"
	case KindDeclaration:
		return "declaration"
	case KindComment:
		return "comment"
	case KindAtRule:
		return "at-rule"
	default:
		return "unknown"
	}
}

// Node is a single parse tree node. Which fields are meaningful depends on
// Kind:
//
//	KindStylesheet  Children
//	KindRule        Selectors, Children (declarations and comments)
//	KindDeclaration Property, Value
//	KindComment     Text
//	KindAtRule      Keyword, Prelude and, for block-form rules, Children
//
// The tree is built once by a parse adapter and never mutated afterwards.
type Node struct {
	Kind      Kind
	Children  []*Node
	Selectors []string
	Property  string
	Value     string
	Text      string
	Keyword   string
	Prelude   string
	Block     bool
}

// ParseAdapter converts raw CSS source into a parse tree. Implementations
// return *ParseError when the source cannot be parsed.
type ParseAdapter interface {
	Parse(ctx context.Context, src []byte) (*Node, error)
}

// Stylesheet creates an empty stylesheet node.
func Stylesheet(children ...*Node) *Node {
	return &Node{Kind: KindStylesheet, Children: children}
}

// Rule creates a style rule node.
func Rule(selectors []string, children ...*Node) *Node {
	return &Node{Kind: KindRule, Selectors: selectors, Children: children}
}

// Declaration creates a property declaration node.
func Declaration(property, value string) *Node {
	return &Node{Kind: KindDeclaration, Property: property, Value: value}
}

// Comment creates a comment node. Text is the raw comment body without the
// surrounding /* and */ delimiters.
func Comment(text string) *Node {
	return &Node{Kind: KindComment, Text: text}
}

// AtRule creates a block-form at-rule node (@media, @keyframes, ...).
func AtRule(keyword, prelude string, children ...*Node) *Node {
	return &Node{Kind: KindAtRule, Keyword: keyword, Prelude: prelude, Block: true, Children: children}
}

// AtStatement creates a statement-form at-rule node (@import, @charset, ...).
func AtStatement(keyword, prelude string) *Node {
	return &Node{Kind: KindAtRule, Keyword: keyword, Prelude: prelude}
}

// header returns the rule header with grouped selectors each on its own
// line, in source order.
func (n *Node) header(indent string) string {
	return strings.Join(n.Selectors, ",\n"+indent)
}

// empty reports whether a rule or block at-rule has nothing to render
// inside its braces.
func (n *Node) empty() bool {
	return len(n.Children) == 0
}
