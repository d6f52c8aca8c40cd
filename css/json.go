package css

import (
	"encoding/json"
	"fmt"
	"strings"
)

// External parser processes exchange the tree as JSON in the vocabulary of
// the node "css" package: a {"stylesheet": {"rules": [...]}} wrapper where
// every node carries a "type" discriminator. DecodeTree turns that document
// into the generic node tree, EncodeTree produces it back (debug reports
// store the tree in this form).

type jsonNode struct {
	Type         string      `json:"type,omitempty"`
	Selectors    []string    `json:"selectors,omitempty"`
	Declarations []*jsonNode `json:"declarations,omitempty"`
	Rules        []*jsonNode `json:"rules,omitempty"`
	Keyframes    []*jsonNode `json:"keyframes,omitempty"`
	Values       []string    `json:"values,omitempty"`
	Property     string      `json:"property,omitempty"`
	Value        string      `json:"value,omitempty"`
	Comment      *string     `json:"comment,omitempty"`
	Media        string      `json:"media,omitempty"`
	Supports     string      `json:"supports,omitempty"`
	Import       string      `json:"import,omitempty"`
	Charset      string      `json:"charset,omitempty"`
	Namespace    string      `json:"namespace,omitempty"`
	Document     string      `json:"document,omitempty"`
	Name         string      `json:"name,omitempty"`
	Vendor       string      `json:"vendor,omitempty"`
}

type jsonDocument struct {
	Stylesheet *jsonNode `json:"stylesheet"`
}

// DecodeTree decodes the JSON interchange document into a stylesheet node,
// applying the same value and selector normalization as the native parser.
func DecodeTree(data []byte) (*Node, error) {
	var doc jsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Msg: "malformed parse tree document", Err: err}
	}
	if doc.Stylesheet == nil {
		return nil, &ParseError{Msg: "parse tree document has no stylesheet"}
	}

	root := Stylesheet()
	for _, jn := range doc.Stylesheet.Rules {
		n, err := decodeNode(jn)
		if err != nil {
			return nil, err
		}
		root.Children = append(root.Children, n)
	}
	return root, nil
}

func decodeNode(jn *jsonNode) (*Node, error) {
	switch jn.Type {
	case "rule":
		return decodeRule(jn.Selectors, jn.Declarations)

	case "declaration":
		return Declaration(jn.Property, normalizeValue(jn.Property, jn.Value)), nil

	case "comment":
		if jn.Comment == nil {
			return nil, &ParseError{Msg: "comment node without comment text"}
		}
		return Comment(*jn.Comment), nil

	case "charset":
		return AtStatement("charset", jn.Charset), nil

	case "import":
		return AtStatement("import", jn.Import), nil

	case "namespace":
		return AtStatement("namespace", jn.Namespace), nil

	case "media":
		node := AtRule("media", normalizeConditionPrelude(jn.Media))
		return node, decodeInto(node, jn.Rules)

	case "supports":
		node := AtRule("supports", normalizeConditionPrelude(jn.Supports))
		return node, decodeInto(node, jn.Rules)

	case "document":
		node := AtRule(jn.Vendor+"document", jn.Document)
		return node, decodeInto(node, jn.Rules)

	case "keyframes":
		node := AtRule(jn.Vendor+"keyframes", jn.Name)
		for _, frame := range jn.Keyframes {
			n, err := decodeRule(frame.Values, frame.Declarations)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, n)
		}
		return node, nil

	case "font-face":
		node := AtRule("font-face", "")
		return node, decodeInto(node, jn.Declarations)

	case "page":
		node := AtRule("page", strings.Join(jn.Selectors, ", "))
		return node, decodeInto(node, jn.Declarations)

	default:
		return nil, &ParseError{Msg: fmt.Sprintf("unsupported node type %q", jn.Type)}
	}
}

func decodeRule(selectors []string, declarations []*jsonNode) (*Node, error) {
	normalized := make([]string, 0, len(selectors))
	for _, s := range selectors {
		if s = normalizeSelector(s); s != "" {
			normalized = append(normalized, s)
		}
	}
	node := Rule(normalized)
	return node, decodeInto(node, declarations)
}

func decodeInto(parent *Node, children []*jsonNode) error {
	for _, jn := range children {
		n, err := decodeNode(jn)
		if err != nil {
			return err
		}
		parent.Children = append(parent.Children, n)
	}
	return nil
}

// EncodeTree encodes a stylesheet node into the JSON interchange document.
func EncodeTree(root *Node) ([]byte, error) {
	if root == nil || root.Kind != KindStylesheet {
		return nil, &RenderError{Kind: kindOf(root), Msg: "expected a stylesheet root"}
	}
	sheet := &jsonNode{Type: "stylesheet"}
	for _, child := range root.Children {
		jn, err := encodeNode(child)
		if err != nil {
			return nil, err
		}
		sheet.Rules = append(sheet.Rules, jn)
	}
	return json.MarshalIndent(&jsonDocument{Stylesheet: sheet}, "", "  ")
}

func encodeNode(n *Node) (*jsonNode, error) {
	switch n.Kind {
	case KindRule:
		jn := &jsonNode{Type: "rule", Selectors: n.Selectors}
		for _, child := range n.Children {
			c, err := encodeNode(child)
			if err != nil {
				return nil, err
			}
			jn.Declarations = append(jn.Declarations, c)
		}
		return jn, nil

	case KindDeclaration:
		return &jsonNode{Type: "declaration", Property: n.Property, Value: n.Value}, nil

	case KindComment:
		text := n.Text
		return &jsonNode{Type: "comment", Comment: &text}, nil

	case KindAtRule:
		return encodeAtRule(n)

	default:
		return nil, &RenderError{Kind: n.Kind}
	}
}

func encodeAtRule(n *Node) (*jsonNode, error) {
	switch {
	case n.Keyword == "charset":
		return &jsonNode{Type: "charset", Charset: n.Prelude}, nil
	case n.Keyword == "import":
		return &jsonNode{Type: "import", Import: n.Prelude}, nil
	case n.Keyword == "namespace":
		return &jsonNode{Type: "namespace", Namespace: n.Prelude}, nil
	case n.Keyword == "media":
		jn := &jsonNode{Type: "media", Media: n.Prelude}
		return jn, encodeInto(&jn.Rules, n.Children)
	case n.Keyword == "supports":
		jn := &jsonNode{Type: "supports", Supports: n.Prelude}
		return jn, encodeInto(&jn.Rules, n.Children)
	case n.Keyword == "font-face":
		jn := &jsonNode{Type: "font-face"}
		return jn, encodeInto(&jn.Declarations, n.Children)
	case n.Keyword == "page":
		jn := &jsonNode{Type: "page"}
		if n.Prelude != "" {
			jn.Selectors = strings.Split(n.Prelude, ", ")
		}
		return jn, encodeInto(&jn.Declarations, n.Children)
	case strings.HasSuffix(n.Keyword, "document"):
		jn := &jsonNode{Type: "document", Document: n.Prelude, Vendor: strings.TrimSuffix(n.Keyword, "document")}
		return jn, encodeInto(&jn.Rules, n.Children)
	case strings.HasSuffix(n.Keyword, "keyframes"):
		jn := &jsonNode{Type: "keyframes", Name: n.Prelude, Vendor: strings.TrimSuffix(n.Keyword, "keyframes")}
		for _, frame := range n.Children {
			if frame.Kind != KindRule {
				return nil, &RenderError{Kind: frame.Kind, Msg: "keyframes body may only contain frames"}
			}
			fn := &jsonNode{Type: "keyframe", Values: frame.Selectors}
			if err := encodeInto(&fn.Declarations, frame.Children); err != nil {
				return nil, err
			}
			jn.Keyframes = append(jn.Keyframes, fn)
		}
		return jn, nil
	default:
		// generic at-rule, statement or block
		jn := &jsonNode{Type: n.Keyword, Value: n.Prelude}
		if n.Block {
			return jn, encodeInto(&jn.Rules, n.Children)
		}
		return jn, nil
	}
}

func encodeInto(dst *[]*jsonNode, children []*Node) error {
	for _, child := range children {
		jn, err := encodeNode(child)
		if err != nil {
			return err
		}
		*dst = append(*dst, jn)
	}
	return nil
}

func kindOf(n *Node) Kind {
	if n == nil {
		return Kind(-1)
	}
	return n.Kind
}
