// Package svgrender walks layer elements and sequences geometry and
// paint against a Surface. It owns no pixels itself; raster output is
// provided by a Surface implementation such as svgraster.
package svgrender

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"

	"github.com/gosvg/inklayer/svgdom"
	"github.com/gosvg/inklayer/svgpath"
	"github.com/gosvg/inklayer/svgstyle"
)

// Surface receives drawing primitives and paint commands. Primitives
// accumulate as pending geometry until Fill, Stroke or Reset consumes
// them; Fill keeps the geometry alive only when preserve is set.
type Surface interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	CurveTo(x1, y1, x2, y2, x, y float64)
	ClosePath()

	// SetColor selects the paint color for the next Fill or Stroke.
	SetColor(c svgstyle.RGB, opacity float64)
	// SetStroke configures the pen for the next Stroke call.
	SetStroke(width float64, join svgstyle.JoinMode, miterLimit float64)
	// Fill paints the pending geometry, keeping it for a following
	// Stroke when preserve is set.
	Fill(preserve bool)
	// Stroke outlines the pending geometry and discards it.
	Stroke()
	// Reset discards pending geometry without painting.
	Reset()
}

// DefaultMiterLimit applies when an element sets a miter join but no
// usable stroke-miterlimit value.
const DefaultMiterLimit = 4

// ErrNoDrawableElements reports that the selected layers contain no
// path or rect elements. Callers usually treat it as a warning.
var ErrNoDrawableElements = errors.New("no drawable elements in the selected layers")

// geometryFuncs maps the supported element tags to their geometry
// builders. The set is closed; svgdom.Layer.Elements only yields these
// tags.
var geometryFuncs = map[string]func(*etree.Element) (svgpath.Path, error){
	"path": pathGeometry,
	"rect": rectGeometry,
}

func pathGeometry(el *etree.Element) (svgpath.Path, error) {
	return svgpath.Interpret(el.SelectAttrValue("d", ""))
}

// rectGeometry synthesizes a rectangle as a four-corner closed subpath.
func rectGeometry(el *etree.Element) (svgpath.Path, error) {
	var vals [4]float64
	for i, attr := range [...]string{"x", "y", "width", "height"} {
		raw := el.SelectAttrValue(attr, "0")
		if raw == "" {
			raw = "0"
		}
		f, err := svgdom.ParseDimension(raw)
		if err != nil {
			return nil, fmt.Errorf("rect %s: %w", attr, err)
		}
		vals[i] = f
	}
	x, y, w, h := vals[0], vals[1], vals[2], vals[3]
	return svgpath.Path{
		svgpath.MoveTo{X: x, Y: y},
		svgpath.LineTo{X: x + w, Y: y},
		svgpath.LineTo{X: x + w, Y: y + h},
		svgpath.LineTo{X: x, Y: y + h},
		svgpath.Close{},
	}, nil
}

// DrawLayer traces and paints every drawable element of the layer onto
// the surface, scaling user-space coordinates by scale. It returns
// ErrNoDrawableElements when the layer holds nothing to draw.
func DrawLayer(layer svgdom.Layer, surface Surface, scale float64) error {
	elements := layer.Elements()
	if len(elements) == 0 {
		return ErrNoDrawableElements
	}
	for _, el := range elements {
		if err := drawElement(el, surface, scale); err != nil {
			return err
		}
	}
	return nil
}

func drawElement(el *etree.Element, surface Surface, scale float64) error {
	geometry := geometryFuncs[el.Tag]
	path, err := geometry(el)
	if err != nil {
		return elementError(el, err)
	}
	paint, err := svgstyle.ResolvePaint(el)
	if err != nil {
		return err
	}

	path.DrawTo(surface, scale)

	if paint.Fill == nil && paint.Stroke == nil {
		surface.Reset()
		return nil
	}
	if paint.Fill != nil {
		surface.SetColor(*paint.Fill, paint.FillOpacity)
		surface.Fill(paint.Stroke != nil)
	}
	if paint.Stroke != nil {
		limit := float64(DefaultMiterLimit)
		if paint.MiterLimit != nil {
			limit = *paint.MiterLimit
		}
		surface.SetColor(*paint.Stroke, paint.StrokeOpacity)
		surface.SetStroke(paint.StrokeWidth*scale, paint.LineJoin, limit)
		surface.Stroke()
	}
	return nil
}

// RenderLayers draws the named layers onto the surface in selection
// order. Unknown names fail with LayerNotFoundError; when every
// selected layer is empty the result is ErrNoDrawableElements.
func RenderLayers(doc *svgdom.Document, surface Surface, names []string, scale float64) error {
	layers := make([]svgdom.Layer, len(names))
	for i, name := range names {
		layer, err := doc.Layer(name)
		if err != nil {
			return err
		}
		layers[i] = layer
	}
	drawn := false
	for _, layer := range layers {
		err := DrawLayer(layer, surface, scale)
		if errors.Is(err, ErrNoDrawableElements) {
			continue
		}
		if err != nil {
			return err
		}
		drawn = true
	}
	if !drawn {
		return ErrNoDrawableElements
	}
	return nil
}

// ListLayers returns the labels of all layers in document order.
func ListLayers(doc *svgdom.Document) []string { return doc.LayerNames() }

func elementError(el *etree.Element, err error) error {
	if id := el.SelectAttrValue("id", ""); id != "" {
		return fmt.Errorf("element %q: %w", id, err)
	}
	return fmt.Errorf("%s element: %w", el.Tag, err)
}
