package css_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"go.uber.org/zap"

	"github.com/asottile-archive/css-explore/css"
)

// formatCSS runs source through the native parse adapter and the renderer
// with default options.
func formatCSS(t *testing.T, src string) string {
	t.Helper()

	p := css.NewParser(zap.NewNop())
	root, err := p.Parse(context.Background(), []byte(src))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return render(t, root)
}

func TestParser_Format(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "minified rule",
			src:  "body{color:red}",
			want: "body {\n    color: red;\n}\n",
		},
		{
			name: "grouped selectors",
			src:  "a, b { color: red; }",
			want: "a,\nb {\n    color: red;\n}\n",
		},
		{
			name: "empty rule",
			src:  "div{}",
			want: "div {\n}\n",
		},
		{
			name: "comment only",
			src:  "/* hi */",
			want: "/* hi */\n",
		},
		{
			name: "empty input",
			src:  "",
			want: "",
		},
		{
			name: "media query",
			src:  "@media print { body { color: red; } }",
			want: "@media print {\n    body {\n        color: red;\n    }\n}\n",
		},
		{
			name: "keyframes",
			src:  "@keyframes my-animation { 0% { opacity: 0; } 100% { opacity: 1; } }",
			want: "@keyframes my-animation {\n    0% {\n        opacity: 0;\n    }\n    100% {\n        opacity: 1;\n    }\n}\n",
		},
		{
			name: "grouped keyframe values",
			src:  "@keyframes blink { 0%,100% { opacity: 0; } }",
			want: "@keyframes blink {\n    0%,\n    100% {\n        opacity: 0;\n    }\n}\n",
		},
		{
			name: "charset",
			src:  `@charset "utf-8";`,
			want: "@charset \"utf-8\";\n",
		},
		{
			name: "nested at-rules",
			src:  "@media screen { @supports (display: grid) { div { display: grid; } } }",
			want: "@media screen {\n    @supports (display: grid) {\n        div {\n            display: grid;\n        }\n    }\n}\n",
		},
		{
			name: "font-face",
			src:  `@font-face { font-family: "X"; src: url(x.woff); }`,
			want: "@font-face {\n    font-family: \"X\";\n    src: url(x.woff);\n}\n",
		},
		{
			name: "url passthrough",
			src:  "a { background: url(//a/b/c); }",
			want: "a {\n    background: url(//a/b/c);\n}\n",
		},
		{
			name: "two top level rules",
			src:  "a{color:red}b{color:blue}",
			want: "a {\n    color: red;\n}\n\nb {\n    color: blue;\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatCSS(t, tt.src); got != tt.want {
				t.Errorf("formatted %q = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestParser_Normalization(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "rgba spacing",
			src:  "a{color: rgba(255,255,255,0.7);}",
			want: "a {\n    color: rgba(255, 255, 255, 0.7);\n}\n",
		},
		{
			name: "comma spacing",
			src:  "a{box-shadow: 0 1px 1px #fff,inset 0 4px 4px #000;}",
			want: "a {\n    box-shadow: 0 1px 1px #fff, inset 0 4px 4px #000;\n}\n",
		},
		{
			name: "child combinator",
			src:  "a>b{color: red;}",
			want: "a > b {\n    color: red;\n}\n",
		},
		{
			name: "child combinator with spaces",
			src:  "a > b { color: red; }",
			want: "a > b {\n    color: red;\n}\n",
		},
		{
			name: "media query comma",
			src:  "@media (min-device-pixel-ratio: 2),(min-resolution: 192dpi) { a { color: red; } }",
			want: "@media (min-device-pixel-ratio: 2), (min-resolution: 192dpi) {\n    a {\n        color: red;\n    }\n}\n",
		},
		{
			name: "media feature colon",
			src:  "@media (min-width:600px) { a { color: red; } }",
			want: "@media (min-width: 600px) {\n    a {\n        color: red;\n    }\n}\n",
		},
		{
			name: "supports condition colon",
			src:  "@supports (display:grid) { div { display: grid; } }",
			want: "@supports (display: grid) {\n    div {\n        display: grid;\n    }\n}\n",
		},
		{
			name: "font shorthand slash",
			src:  "a {font: 12px/1.2 Arial}",
			want: "a {\n    font: 12px / 1.2 Arial;\n}\n",
		},
		{
			name: "leading zero",
			src:  "a {opacity: .35}",
			want: "a {\n    opacity: 0.35;\n}\n",
		},
		{
			name: "long hex color",
			src:  "a { color: #223344; }",
			want: "a {\n    color: #234;\n}\n",
		},
		{
			name: "non collapsible hex color",
			src:  "a { color: #1e77d3; }",
			want: "a {\n    color: #1e77d3;\n}\n",
		},
		{
			name: "pixel point zero",
			src:  "a { width: 3.0px; }",
			want: "a {\n    width: 3px;\n}\n",
		},
		{
			name: "multiple spaces",
			src:  "a { background-position: 0    0; }",
			want: "a {\n    background-position: 0 0;\n}\n",
		},
		{
			name: "unicode escape",
			src:  `a{content: '\25AA'}`,
			want: "a {\n    content: '▪';\n}\n",
		},
		{
			name: "unicode escapes with separator",
			src:  `a{content: '\2014 \00A0';}`,
			want: "a {\n    content: '— ';\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatCSS(t, tt.src); got != tt.want {
				t.Errorf("formatted %q = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestParser_InvalidCSS(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	_, err := p.Parse(context.Background(), []byte("body { color: red; }}"))
	var perr *css.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestParser_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := css.NewParser(zap.NewNop())
	if _, err := p.Parse(ctx, []byte("a{}")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

// structural idempotence: formatting already formatted output changes
// nothing
func TestParser_FormatIsIdempotent(t *testing.T) {
	src := `@charset "utf-8";
/* header */
a, b>c { color: #223344; opacity: .5 }
@media print { p { margin: 0 } }
`
	first := formatCSS(t, src)
	second := formatCSS(t, first)
	if first != second {
		t.Errorf("second pass changed output:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}

func TestParser_FormatSnapshot(t *testing.T) {
	src := `@charset "utf-8";
@import url("base.css");
/* layout */
html, body { margin: 0; padding: 0 }
nav>ul, nav  ol { list-style: none; color: #aabbcc }
@media screen and (min-width: 600px) {
    /* wide */
    main { max-width: 40.0px; opacity: .8 }
    @supports (display: grid) { main { display: grid } }
}
@keyframes fade { from { opacity: 0 } to { opacity: 1 } }
@font-face { font-family: "Mono"; src: url(mono.woff2) }
div.empty {}
`
	snaps.MatchSnapshot(t, formatCSS(t, src))
}
