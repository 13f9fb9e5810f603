package svgdom

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ViewBox is the rectangular coordinate region the document contents
// are defined in, independent of output pixel size.
type ViewBox struct {
	X, Y, W, H float64
}

// Unit is the physical or pixel unit the document's declared
// width/height are expressed in.
type Unit string

const (
	Px Unit = "px"
	Pt Unit = "pt"
	Pc Unit = "pc"
	Mm Unit = "mm"
	Cm Unit = "cm"
	In Unit = "in"
)

// RenderTarget maps the viewbox onto an integer pixel canvas.
// Scale converts one viewbox unit into output pixels.
type RenderTarget struct {
	Width, Height int
	Scale         float64
}

// ErrMissingViewport reports a document with neither a viewBox
// attribute nor width/height to fall back on.
var ErrMissingViewport = errors.New("no viewBox attribute and no width/height fallback available")

// DimensionError reports a width/height or viewBox value that does not
// parse to finite numbers.
type DimensionError struct {
	Raw string
}

func (e DimensionError) Error() string {
	return fmt.Sprintf("malformed dimension %q", e.Raw)
}

// dimensionSuffixes are stripped before parsing a dimension value.
// Order matters: two-letter suffixes are checked as written, so "mm"
// is never shadowed by a shorter match.
var dimensionSuffixes = [...]string{"px", "pt", "mm", "cm", "in", "pc", "em", "ex", "%"}

// ParseDimension parses a dimension value such as "210mm" or "100",
// stripping a known unit suffix.
func ParseDimension(v string) (float64, error) {
	v = strings.TrimSpace(v)
	raw := v
	for _, suffix := range dimensionSuffixes {
		if strings.HasSuffix(v, suffix) {
			v = strings.TrimSuffix(v, suffix)
			break
		}
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, DimensionError{Raw: raw}
	}
	return f, nil
}

// documentUnits lists the suffixes DetectUnit recognizes, in the fixed
// order they are checked.
var documentUnits = [...]Unit{Mm, Cm, In, Pt, Pc}

// DetectUnit infers the document unit from the declared width
// attribute. Unitless values are px per the SVG convention.
func DetectUnit(width string) Unit {
	width = strings.TrimSpace(width)
	for _, u := range documentUnits {
		if strings.HasSuffix(width, string(u)) {
			return u
		}
	}
	return Px
}

// ResolveViewBox parses a 4-number viewBox string, falling back to
// (0,0,width,height) from the unit-stripped dimension attributes.
func ResolveViewBox(viewBox, width, height string) (ViewBox, error) {
	if strings.TrimSpace(viewBox) != "" {
		parts := splitOnCommaOrSpace(viewBox)
		if len(parts) != 4 {
			return ViewBox{}, DimensionError{Raw: viewBox}
		}
		var nums [4]float64
		for i, p := range parts {
			f, err := strconv.ParseFloat(p, 64)
			if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
				return ViewBox{}, DimensionError{Raw: viewBox}
			}
			nums[i] = f
		}
		return ViewBox{X: nums[0], Y: nums[1], W: nums[2], H: nums[3]}, nil
	}
	if width != "" && height != "" {
		w, err := ParseDimension(width)
		if err != nil {
			return ViewBox{}, err
		}
		h, err := ParseDimension(height)
		if err != nil {
			return ViewBox{}, err
		}
		return ViewBox{W: w, H: h}, nil
	}
	return ViewBox{}, ErrMissingViewport
}

// inchesPerUnit converts one document unit into inches.
// CSS px is 1/96 inch, a point 1/72, a pica 1/6.
var inchesPerUnit = map[Unit]float64{
	Px: 1.0 / 96.0,
	Pt: 1.0 / 72.0,
	Pc: 1.0 / 6.0,
	Mm: 1.0 / 25.4,
	Cm: 1.0 / 2.54,
	In: 1.0,
}

// ComputeRenderTarget derives the pixel canvas and coordinate scale for
// a viewbox. A nil dpi selects the legacy native mode: one viewbox unit
// per pixel, dimensions truncated to integers. With a dpi the pixel
// size is round(dim * inchesPerUnit * dpi) and the scale follows from
// the resulting width (1.0 for a zero-width viewbox).
func ComputeRenderTarget(vb ViewBox, unit Unit, dpi *float64) RenderTarget {
	if dpi == nil {
		return RenderTarget{Width: int(vb.W), Height: int(vb.H), Scale: 1.0}
	}
	perInch, ok := inchesPerUnit[unit]
	if !ok {
		perInch = inchesPerUnit[Px]
	}
	w := int(math.Round(vb.W * perInch * *dpi))
	h := int(math.Round(vb.H * perInch * *dpi))
	scale := 1.0
	if vb.W != 0 {
		scale = float64(w) / vb.W
	}
	return RenderTarget{Width: w, Height: h, Scale: scale}
}

// splitOnCommaOrSpace returns the fields of s after splitting on comma
// and whitespace delimiters.
func splitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
}
