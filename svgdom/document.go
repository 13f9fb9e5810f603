// Package svgdom loads Inkscape-flavored SVG documents and answers the
// structural queries the renderer needs: viewbox and unit resolution,
// and layer lookup by label or id.
package svgdom

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

// Namespace URIs found in Inkscape documents.
const (
	SVGNamespace      = "http://www.w3.org/2000/svg"
	InkscapeNamespace = "http://www.inkscape.org/namespaces/inkscape"
	SodipodiNamespace = "http://sodipodi.sourceforge.net/DTD/sodipodi-0.dtd"
)

// Document is a parsed SVG document.
type Document struct {
	tree *etree.Document
	root *etree.Element
}

// Load reads and parses the named SVG file.
func Load(path string) (*Document, error) {
	tree := newTree()
	if err := tree.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return fromTree(tree)
}

// LoadReader parses an SVG document from r.
func LoadReader(r io.Reader) (*Document, error) {
	tree := newTree()
	if _, err := tree.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("reading svg: %w", err)
	}
	return fromTree(tree)
}

func newTree() *etree.Document {
	tree := etree.NewDocument()
	tree.ReadSettings.CharsetReader = charset.NewReaderLabel
	return tree
}

func fromTree(tree *etree.Document) (*Document, error) {
	root := tree.Root()
	if root == nil || root.Tag != "svg" {
		return nil, fmt.Errorf("invalid svg: missing svg root element")
	}
	return &Document{tree: tree, root: root}, nil
}

// Root exposes the underlying root element.
func (d *Document) Root() *etree.Element { return d.root }

// Width returns the declared width attribute, with unit suffix.
func (d *Document) Width() string { return d.root.SelectAttrValue("width", "") }

// Height returns the declared height attribute, with unit suffix.
func (d *Document) Height() string { return d.root.SelectAttrValue("height", "") }

// ViewBox resolves the document viewbox, falling back to the declared
// width/height when the viewBox attribute is absent.
func (d *Document) ViewBox() (ViewBox, error) {
	return ResolveViewBox(
		d.root.SelectAttrValue("viewBox", ""),
		d.Width(),
		d.Height(),
	)
}

// Unit infers the document unit from the declared width attribute.
func (d *Document) Unit() Unit { return DetectUnit(d.Width()) }

// RenderTarget computes the pixel canvas and scale for this document.
// A nil dpi selects the native 1:1 viewbox-to-pixel mode.
func (d *Document) RenderTarget(dpi *float64) (RenderTarget, error) {
	vb, err := d.ViewBox()
	if err != nil {
		return RenderTarget{}, err
	}
	return ComputeRenderTarget(vb, d.Unit(), dpi), nil
}

// Layer is a group element carrying inkscape:groupmode="layer".
type Layer struct {
	el *etree.Element
}

// Element exposes the underlying group element.
func (l Layer) Element() *etree.Element { return l.el }

// Label returns the layer display name, falling back to the id
// attribute when no inkscape:label is set.
func (l Layer) Label() string {
	if label := l.el.SelectAttrValue("inkscape:label", ""); label != "" {
		return label
	}
	return l.el.SelectAttrValue("id", "")
}

// ID returns the layer id attribute.
func (l Layer) ID() string { return l.el.SelectAttrValue("id", "") }

// drawableTags is the closed set of element kinds the renderer handles.
var drawableTags = [...]string{"path", "rect"}

// Elements returns the layer's path and rect elements in document order.
func (l Layer) Elements() []*etree.Element {
	var out []*etree.Element
	walk(l.el, func(el *etree.Element) {
		for _, tag := range drawableTags {
			if el.Tag == tag {
				out = append(out, el)
				return
			}
		}
	})
	return out
}

// LayerNotFoundError reports a lookup for a layer that does not exist,
// enumerating the labels that do.
type LayerNotFoundError struct {
	Name      string
	Available []string
}

func (e LayerNotFoundError) Error() string {
	available := "none"
	if len(e.Available) > 0 {
		available = strings.Join(e.Available, ", ")
	}
	return fmt.Sprintf("layer %q not found. Available layers: %s", e.Name, available)
}

// Layers returns all layers in document order.
func (d *Document) Layers() []Layer {
	var out []Layer
	walk(d.root, func(el *etree.Element) {
		if el.Tag == "g" && el.SelectAttrValue("inkscape:groupmode", "") == "layer" {
			out = append(out, Layer{el: el})
		}
	})
	return out
}

// LayerNames returns the labels of all layers in document order.
func (d *Document) LayerNames() []string {
	layers := d.Layers()
	names := make([]string, 0, len(layers))
	for _, l := range layers {
		if name := l.Label(); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Layer looks a layer up by label first, then by id.
func (d *Document) Layer(identifier string) (Layer, error) {
	layers := d.Layers()
	for _, l := range layers {
		if l.el.SelectAttrValue("inkscape:label", "") == identifier {
			return l, nil
		}
	}
	for _, l := range layers {
		if l.ID() == identifier {
			return l, nil
		}
	}
	return Layer{}, LayerNotFoundError{Name: identifier, Available: d.LayerNames()}
}

// walk visits el and every descendant element in document order.
func walk(el *etree.Element, visit func(*etree.Element)) {
	visit(el)
	for _, child := range el.ChildElements() {
		walk(child, visit)
	}
}
