// Package svgwriter builds standalone Inkscape-flavored SVG documents
// and serializes them with an XML declaration and indentation.
package svgwriter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"

	"github.com/gosvg/inklayer/svgdom"
	"github.com/gosvg/inklayer/svgstyle"
)

// Writer assembles an SVG document with Inkscape layer groups.
type Writer struct {
	doc    *etree.Document
	root   *etree.Element
	layers map[string]*etree.Element
}

// New creates a writer for the given viewbox. Empty width or height
// default to the viewbox dimensions in px.
func New(vb svgdom.ViewBox, width, height string) *Writer {
	if width == "" {
		width = fmt.Sprintf("%gpx", vb.W)
	}
	if height == "" {
		height = fmt.Sprintf("%gpx", vb.H)
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("svg")
	root.CreateAttr("xmlns", svgdom.SVGNamespace)
	root.CreateAttr("xmlns:svg", svgdom.SVGNamespace)
	root.CreateAttr("xmlns:inkscape", svgdom.InkscapeNamespace)
	root.CreateAttr("xmlns:sodipodi", svgdom.SodipodiNamespace)
	root.CreateAttr("width", width)
	root.CreateAttr("height", height)
	root.CreateAttr("viewBox", fmt.Sprintf("%g %g %g %g", vb.X, vb.Y, vb.W, vb.H))
	root.CreateAttr("version", "1.1")

	return &Writer{doc: doc, root: root, layers: make(map[string]*etree.Element)}
}

// Root exposes the svg root element.
func (w *Writer) Root() *etree.Element { return w.root }

// LayerID derives a layer id from its display name.
func LayerID(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// CreateLayer appends a layer group with the given display name. The
// group id is derived from the name when id is empty. Creating the
// same name twice returns the existing group.
func (w *Writer) CreateLayer(name, id string) *etree.Element {
	if layer, ok := w.layers[name]; ok {
		return layer
	}
	if id == "" {
		id = LayerID(name)
	}
	layer := w.root.CreateElement("g")
	layer.CreateAttr("id", id)
	layer.CreateAttr("inkscape:groupmode", "layer")
	layer.CreateAttr("inkscape:label", name)
	w.layers[name] = layer
	return layer
}

// AddPath appends a path element to the named layer, creating the
// layer when needed. An empty layer name targets the document root.
func (w *Writer) AddPath(pathData, style, layerName, id string) {
	path := w.parent(layerName).CreateElement("path")
	path.CreateAttr("d", pathData)
	if style != "" {
		path.CreateAttr("style", style)
	}
	if id != "" {
		path.CreateAttr("id", id)
	}
}

// AddRect appends a rect element to the named layer.
func (w *Writer) AddRect(x, y, width, height float64, style, layerName, id string) {
	rect := w.parent(layerName).CreateElement("rect")
	rect.CreateAttr("x", fmt.Sprintf("%g", x))
	rect.CreateAttr("y", fmt.Sprintf("%g", y))
	rect.CreateAttr("width", fmt.Sprintf("%g", width))
	rect.CreateAttr("height", fmt.Sprintf("%g", height))
	if style != "" {
		rect.CreateAttr("style", style)
	}
	if id != "" {
		rect.CreateAttr("id", id)
	}
}

// AddElement copies a path or rect element from a parsed document into
// the named layer, folding its presentation attributes into a single
// style string. Other tags are ignored.
func (w *Writer) AddElement(el *etree.Element, layerName string) error {
	switch el.Tag {
	case "path":
		w.AddPath(el.SelectAttrValue("d", ""), BuildStyleString(el), layerName, el.SelectAttrValue("id", ""))
		return nil
	case "rect":
		var vals [4]float64
		for i, attr := range [...]string{"x", "y", "width", "height"} {
			raw := el.SelectAttrValue(attr, "0")
			if raw == "" {
				raw = "0"
			}
			f, err := svgdom.ParseDimension(raw)
			if err != nil {
				return fmt.Errorf("rect %s: %w", attr, err)
			}
			vals[i] = f
		}
		w.AddRect(vals[0], vals[1], vals[2], vals[3], BuildStyleString(el), layerName, el.SelectAttrValue("id", ""))
		return nil
	}
	return nil
}

// BuildStyleString folds an element's styling into one CSS-style
// declaration list: the inline style declarations first, in source
// order, then any presentation attribute not already declared inline.
// Declarations outside the recognized set ride along verbatim.
func BuildStyleString(el *etree.Element) string {
	var parts []string
	declared := make(map[string]bool)
	for _, declaration := range strings.Split(el.SelectAttrValue("style", ""), ";") {
		declaration = strings.TrimSpace(declaration)
		prop, value, found := strings.Cut(declaration, ":")
		if !found {
			continue
		}
		prop = strings.TrimSpace(prop)
		parts = append(parts, prop+":"+strings.TrimSpace(value))
		declared[prop] = true
	}
	for _, attr := range svgstyle.PresentationAttributes {
		if declared[attr] {
			continue
		}
		if a := el.SelectAttr(attr); a != nil {
			parts = append(parts, attr+":"+a.Value)
		}
	}
	return strings.Join(parts, ";")
}

func (w *Writer) parent(layerName string) *etree.Element {
	if layerName == "" {
		return w.root
	}
	return w.CreateLayer(layerName, "")
}

// WriteTo serializes the document to out, indented.
func (w *Writer) WriteTo(out io.Writer) error {
	w.doc.Indent(2)
	_, err := w.doc.WriteTo(out)
	return err
}

// Save writes the document to path atomically: the bytes land in a
// temp file in the target directory which is then renamed into place.
func (w *Writer) Save(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".inklayer-*.svg")
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := w.WriteTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
