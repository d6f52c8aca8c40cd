package css_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/asottile-archive/css-explore/css"
)

const sampleTree = `{
  "type": "stylesheet",
  "stylesheet": {
    "rules": [
      {"type": "charset", "charset": "\"utf-8\""},
      {"type": "import", "import": "url(\"base.css\")"},
      {"type": "comment", "comment": " header "},
      {
        "type": "rule",
        "selectors": ["a", "b>c"],
        "declarations": [
          {"type": "declaration", "property": "color", "value": "#223344"},
          {"type": "comment", "comment": "note"}
        ]
      },
      {
        "type": "media",
        "media": "print,screen",
        "rules": [
          {
            "type": "rule",
            "selectors": ["p"],
            "declarations": [
              {"type": "declaration", "property": "margin", "value": "0"}
            ]
          }
        ]
      },
      {
        "type": "keyframes",
        "name": "fade",
        "vendor": "-webkit-",
        "keyframes": [
          {
            "type": "keyframe",
            "values": ["0%", "100%"],
            "declarations": [
              {"type": "declaration", "property": "opacity", "value": "1"}
            ]
          }
        ]
      }
    ]
  }
}`

func TestDecodeTree(t *testing.T) {
	root, err := css.DecodeTree([]byte(sampleTree))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if root.Kind != css.KindStylesheet {
		t.Fatalf("root kind = %v, want stylesheet", root.Kind)
	}
	if len(root.Children) != 6 {
		t.Fatalf("expected 6 top level nodes, got %d", len(root.Children))
	}

	want := `@charset "utf-8";

@import url("base.css");

/* header */

a,
b > c {
    color: #234;
    /*note*/
}

@media print, screen {
    p {
        margin: 0;
    }
}

@-webkit-keyframes fade {
    0%,
    100% {
        opacity: 1;
    }
}
`
	if got := render(t, root); got != want {
		t.Errorf("rendered decoded tree = %q, want %q", got, want)
	}
}

func TestDecodeTree_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "not json", doc: "nope"},
		{name: "no stylesheet", doc: `{"rules": []}`},
		{name: "unknown node type", doc: `{"stylesheet": {"rules": [{"type": "wat"}]}}`},
		{name: "comment without text", doc: `{"stylesheet": {"rules": [{"type": "comment"}]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := css.DecodeTree([]byte(tt.doc))
			var perr *css.ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected ParseError, got %v", err)
			}
		})
	}
}

func TestEncodeTree_RoundTrip(t *testing.T) {
	root, err := css.DecodeTree([]byte(sampleTree))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	encoded, err := css.EncodeTree(root)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	for _, marker := range []string{`"charset"`, `"import"`, `"media"`, `"keyframes"`, `"b \u003e c"`} {
		if !strings.Contains(string(encoded), marker) && !strings.Contains(string(encoded), strings.ReplaceAll(marker, `\u003e`, ">")) {
			t.Errorf("encoded tree is missing %s:\n%s", marker, encoded)
		}
	}

	again, err := css.DecodeTree(encoded)
	if err != nil {
		t.Fatalf("re-decode failed: %v", err)
	}
	if render(t, again) != render(t, root) {
		t.Error("round-tripped tree renders differently")
	}
}
