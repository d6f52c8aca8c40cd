// Package debug provides helpers for producing human readable dumps of
// tree shaped data.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

// TreeWriter accumulates an indented textual outline of a tree, two spaces
// per depth level.
type TreeWriter struct {
	sb     strings.Builder
	indent string
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{indent: "  "}
}

func (tw *TreeWriter) String() string {
	return tw.sb.String()
}

// Line writes a single formatted outline line at the given depth.
func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.sb.WriteString(strings.Repeat(tw.indent, depth))
	fmt.Fprintf(&tw.sb, format, args...)
	tw.sb.WriteByte('\n')
}

// TextBlock writes a labeled value, quoted so that embedded newlines and
// escapes stay visible in the dump. An empty value is left bare.
func (tw *TreeWriter) TextBlock(depth int, label, value string) {
	tw.sb.WriteString(strings.Repeat(tw.indent, depth))
	tw.sb.WriteString(label)
	tw.sb.WriteString(": ")
	if value != "" {
		tw.sb.WriteString(strconv.Quote(value))
	}
	tw.sb.WriteByte('\n')
}
