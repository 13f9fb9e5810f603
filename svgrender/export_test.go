package svgrender

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/gosvg/inklayer/svgdom"
)

const exportSource = `<svg xmlns="http://www.w3.org/2000/svg"
   xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape"
   width="210mm" height="297mm" viewBox="0 0 210 297">
  <g id="layer1" inkscape:groupmode="layer" inkscape:label="First Layer">
    <path id="p1" d="M10 10 L20 20 Z" fill="#ff0000" style="stroke:#0000ff"/>
  </g>
  <g id="layer2" inkscape:groupmode="layer" inkscape:label="Second">
    <rect x="1" y="2" width="3" height="4" style="fill:#00ff00"/>
  </g>
</svg>`

func TestWriteExport(t *testing.T) {
	doc := docFromString(t, exportSource)

	var buf bytes.Buffer
	if err := WriteExport(doc, []string{"First Layer", "Second"}, &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "<?xml") {
		t.Error("output should start with an XML declaration")
	}

	// result must load back as a layered document
	exported, err := svgdom.LoadReader(strings.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	if exported.Width() != "210mm" {
		t.Errorf("width = %q, want 210mm", exported.Width())
	}
	vb, err := exported.ViewBox()
	if err != nil {
		t.Fatal(err)
	}
	if vb != (svgdom.ViewBox{X: 0, Y: 0, W: 210, H: 297}) {
		t.Errorf("unexpected viewbox %+v", vb)
	}

	names := exported.LayerNames()
	if len(names) != 2 || names[0] != "First Layer" || names[1] != "Second" {
		t.Fatalf("layer names = %v", names)
	}

	first, err := exported.Layer("First Layer")
	if err != nil {
		t.Fatal(err)
	}
	if first.ID() != "first_layer" {
		t.Errorf("generated id = %q, want first_layer", first.ID())
	}
	elements := first.Elements()
	if len(elements) != 1 {
		t.Fatalf("got %d elements, want 1", len(elements))
	}
	p := elements[0]
	if p.SelectAttrValue("d", "") != "M10 10 L20 20 Z" {
		t.Errorf("path data = %q", p.SelectAttrValue("d", ""))
	}
	// presentation attribute folded into the style string
	style := p.SelectAttrValue("style", "")
	if !strings.Contains(style, "stroke:#0000ff") || !strings.Contains(style, "fill:#ff0000") {
		t.Errorf("style = %q, want folded fill and stroke", style)
	}
	if p.SelectAttr("fill") != nil {
		t.Error("fill attribute should not be copied separately")
	}
	if p.SelectAttrValue("id", "") != "p1" {
		t.Errorf("element id = %q, want p1", p.SelectAttrValue("id", ""))
	}
}

func TestWriteExportSingleLayer(t *testing.T) {
	doc := docFromString(t, exportSource)

	var buf bytes.Buffer
	if err := WriteExport(doc, []string{"Second"}, &buf); err != nil {
		t.Fatal(err)
	}
	exported, err := svgdom.LoadReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	names := exported.LayerNames()
	if len(names) != 1 || names[0] != "Second" {
		t.Fatalf("layer names = %v", names)
	}
	layer, _ := exported.Layer("Second")
	elements := layer.Elements()
	if len(elements) != 1 || elements[0].Tag != "rect" {
		t.Fatalf("unexpected elements %v", elements)
	}
	if got := elements[0].SelectAttrValue("width", ""); got != "3" {
		t.Errorf("rect width = %q, want 3", got)
	}
}

func TestExportEmptySelection(t *testing.T) {
	doc := docFromString(t, `<svg xmlns="http://www.w3.org/2000/svg"
   xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape" viewBox="0 0 10 10">
  <g id="a" inkscape:groupmode="layer" inkscape:label="Empty"/>
</svg>`)

	var buf bytes.Buffer
	err := WriteExport(doc, []string{"Empty"}, &buf)
	if !errors.Is(err, ErrNoDrawableElements) {
		t.Fatalf("expected ErrNoDrawableElements, got %v", err)
	}
	if buf.Len() != 0 {
		t.Error("nothing should be written for an empty selection")
	}
}

func TestExportUnknownLayer(t *testing.T) {
	doc := docFromString(t, exportSource)
	var notFound svgdom.LayerNotFoundError
	if _, err := BuildExport(doc, []string{"Nope"}); !errors.As(err, &notFound) {
		t.Fatalf("expected LayerNotFoundError, got %v", err)
	}
}
