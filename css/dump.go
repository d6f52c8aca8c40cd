package css

import (
	"strings"

	"github.com/asottile-archive/css-explore/utils/debug"
)

// DumpTree renders the parse tree in the indented label form used by the
// tree subcommand and by debug reports. Unlike Render it never fails:
// foreign nodes are labeled as such so a broken adapter can be inspected.
func DumpTree(root *Node) string {
	tw := debug.NewTreeWriter()
	dumpNode(tw, root, 0)
	return tw.String()
}

func dumpNode(tw *debug.TreeWriter, n *Node, depth int) {
	if n == nil {
		tw.Line(depth, "<nil>")
		return
	}

	switch n.Kind {
	case KindStylesheet:
		tw.Line(depth, "stylesheet (%d)", len(n.Children))
		dumpChildren(tw, n.Children, depth+1)

	case KindRule:
		tw.Line(depth, "rule %s", strings.Join(n.Selectors, ", "))
		dumpChildren(tw, n.Children, depth+1)

	case KindDeclaration:
		tw.TextBlock(depth, n.Property, n.Value)

	case KindComment:
		tw.TextBlock(depth, "comment", n.Text)

	case KindAtRule:
		form := "statement"
		if n.Block {
			form = "block"
		}
		tw.Line(depth, "@%s %s (%s)", n.Keyword, n.Prelude, form)
		dumpChildren(tw, n.Children, depth+1)

	default:
		tw.Line(depth, "unknown node kind %d", int(n.Kind))
	}
}

func dumpChildren(tw *debug.TreeWriter, children []*Node, depth int) {
	for _, child := range children {
		dumpNode(tw, child, depth)
	}
}
