package svgwriter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/beevik/etree"

	"github.com/gosvg/inklayer/svgdom"
)

func TestLayerID(t *testing.T) {
	for _, tt := range []struct{ name, want string }{
		{"Layer 1", "layer_1"},
		{"Background", "background"},
		{"My Fancy Layer", "my_fancy_layer"},
	} {
		if got := LayerID(tt.name); got != tt.want {
			t.Errorf("LayerID(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestWriterDocument(t *testing.T) {
	w := New(svgdom.ViewBox{X: 0, Y: 0, W: 100, H: 50}, "", "")
	w.AddPath("M0 0 L10 10", "fill:#ff0000", "Layer 1", "p1")
	w.AddRect(1, 2, 3, 4, "", "Layer 1", "")

	var buf bytes.Buffer
	if err := w.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "<?xml") {
		t.Error("missing XML declaration")
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(out); err != nil {
		t.Fatal(err)
	}
	root := doc.Root()
	if root.Tag != "svg" {
		t.Fatalf("root tag = %q", root.Tag)
	}
	if got := root.SelectAttrValue("viewBox", ""); got != "0 0 100 50" {
		t.Errorf("viewBox = %q", got)
	}
	// dimensions default to the viewbox in px
	if got := root.SelectAttrValue("width", ""); got != "100px" {
		t.Errorf("width = %q, want 100px", got)
	}
	if got := root.SelectAttrValue("version", ""); got != "1.1" {
		t.Errorf("version = %q, want 1.1", got)
	}

	groups := root.SelectElements("g")
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	g := groups[0]
	if g.SelectAttrValue("inkscape:groupmode", "") != "layer" {
		t.Error("group should be an Inkscape layer")
	}
	if g.SelectAttrValue("inkscape:label", "") != "Layer 1" {
		t.Errorf("label = %q", g.SelectAttrValue("inkscape:label", ""))
	}
	if g.SelectAttrValue("id", "") != "layer_1" {
		t.Errorf("id = %q, want layer_1", g.SelectAttrValue("id", ""))
	}
	if len(g.SelectElements("path")) != 1 || len(g.SelectElements("rect")) != 1 {
		t.Error("layer should hold the added path and rect")
	}
}

func TestCreateLayerReuse(t *testing.T) {
	w := New(svgdom.ViewBox{W: 10, H: 10}, "", "")
	a := w.CreateLayer("Main", "")
	b := w.CreateLayer("Main", "other_id")
	if a != b {
		t.Error("creating the same layer name twice should reuse the group")
	}
}

func TestAddPathToRoot(t *testing.T) {
	w := New(svgdom.ViewBox{W: 10, H: 10}, "5in", "5in")
	w.AddPath("M0 0", "", "", "")
	if got := w.Root().SelectAttrValue("width", ""); got != "5in" {
		t.Errorf("width = %q, want 5in", got)
	}
	if len(w.Root().SelectElements("path")) != 1 {
		t.Error("path should land on the root when no layer is named")
	}
	if len(w.Root().SelectElements("g")) != 0 {
		t.Error("no layer group should be created")
	}
}

func TestBuildStyleString(t *testing.T) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(
		`<path style="fill:#ff0000;custom-prop:keep" stroke="#0000ff" fill="#00ff00"/>`); err != nil {
		t.Fatal(err)
	}
	got := BuildStyleString(doc.Root())
	// inline declarations first in source order, fill not duplicated
	want := "fill:#ff0000;custom-prop:keep;stroke:#0000ff"
	if got != want {
		t.Errorf("BuildStyleString = %q, want %q", got, want)
	}
}

func TestBuildStyleStringAttributesOnly(t *testing.T) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(`<rect fill="red" opacity="0.5"/>`); err != nil {
		t.Fatal(err)
	}
	if got := BuildStyleString(doc.Root()); got != "fill:red;opacity:0.5" {
		t.Errorf("BuildStyleString = %q", got)
	}
}
