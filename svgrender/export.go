package svgrender

import (
	"io"

	"github.com/gosvg/inklayer/svgdom"
	"github.com/gosvg/inklayer/svgwriter"
)

// BuildExport assembles a standalone SVG document holding the named
// layers, one labeled group per non-empty layer in selection order.
// The result keeps the source viewbox and declared dimensions. When no
// selected layer holds a drawable element the error is
// ErrNoDrawableElements and the returned writer is nil.
func BuildExport(doc *svgdom.Document, names []string) (*svgwriter.Writer, error) {
	vb, err := doc.ViewBox()
	if err != nil {
		return nil, err
	}
	layers := make([]svgdom.Layer, len(names))
	for i, name := range names {
		layer, err := doc.Layer(name)
		if err != nil {
			return nil, err
		}
		layers[i] = layer
	}

	out := svgwriter.New(vb, doc.Width(), doc.Height())
	copied := 0
	for _, layer := range layers {
		elements := layer.Elements()
		if len(elements) == 0 {
			continue
		}
		label := layer.Label()
		out.CreateLayer(label, "")
		for _, el := range elements {
			if err := out.AddElement(el, label); err != nil {
				return nil, elementError(el, err)
			}
			copied++
		}
	}
	if copied == 0 {
		return nil, ErrNoDrawableElements
	}
	return out, nil
}

// ExportLayers writes the named layers as a standalone SVG file.
// Nothing is written when the selection has no drawable elements.
func ExportLayers(doc *svgdom.Document, names []string, path string) error {
	out, err := BuildExport(doc, names)
	if err != nil {
		return err
	}
	return out.Save(path)
}

// WriteExport serializes the named layers as a standalone SVG to w.
func WriteExport(doc *svgdom.Document, names []string, w io.Writer) error {
	out, err := BuildExport(doc, names)
	if err != nil {
		return err
	}
	return out.WriteTo(w)
}
