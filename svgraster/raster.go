// Package svgraster implements a raster paint surface by wrapping
// rasterx, and renders layers to PNG files.
package svgraster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"github.com/gosvg/inklayer/svgdom"
	"github.com/gosvg/inklayer/svgrender"
	"github.com/gosvg/inklayer/svgstyle"
)

var _ svgrender.Surface = (*Canvas)(nil) // assert interface conformance

// op is one buffered drawing primitive. Geometry is buffered because
// the dasher needs its stroke options before segments are added, so
// the pending path is replayed into filler and dasher separately.
type op struct {
	kind byte // 'M', 'L', 'C' or 'Z'
	pts  [6]float64
}

// Canvas rasterizes paint operations onto an RGBA image. The filler
// and dasher share one scanner, so color applies to whichever draw
// comes next.
type Canvas struct {
	img    *image.RGBA
	filler *rasterx.Filler
	dasher *rasterx.Dasher

	pending []op
}

// NewCanvas returns a canvas of the given pixel size with an opaque
// white background.
func NewCanvas(width, height int) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	return &Canvas{
		img:    img,
		filler: rasterx.NewFiller(width, height, scanner),
		dasher: rasterx.NewDasher(width, height, scanner),
	}
}

// Image exposes the backing image.
func (c *Canvas) Image() *image.RGBA { return c.img }

func (c *Canvas) MoveTo(x, y float64) {
	c.pending = append(c.pending, op{kind: 'M', pts: [6]float64{x, y}})
}

func (c *Canvas) LineTo(x, y float64) {
	c.pending = append(c.pending, op{kind: 'L', pts: [6]float64{x, y}})
}

func (c *Canvas) CurveTo(x1, y1, x2, y2, x, y float64) {
	c.pending = append(c.pending, op{kind: 'C', pts: [6]float64{x1, y1, x2, y2, x, y}})
}

func (c *Canvas) ClosePath() {
	c.pending = append(c.pending, op{kind: 'Z'})
}

// Reset discards the pending geometry without painting.
func (c *Canvas) Reset() { c.pending = nil }

// SetColor selects the scanner color for the next Fill or Stroke.
func (c *Canvas) SetColor(col svgstyle.RGB, opacity float64) {
	c.filler.Scanner.SetColor(col.NRGBA(opacity))
}

var joinToJoin = [...]rasterx.JoinMode{
	svgstyle.Miter: rasterx.Miter,
	svgstyle.Round: rasterx.Round,
	svgstyle.Bevel: rasterx.Bevel,
}

// SetStroke configures the pen for the next Stroke. Line width and
// miter limit are converted to 26.6 fixed point.
func (c *Canvas) SetStroke(width float64, join svgstyle.JoinMode, miterLimit float64) {
	c.dasher.SetStroke(
		toFixed(width), toFixed(miterLimit),
		rasterx.ButtCap, rasterx.ButtCap, rasterx.FlatGap,
		joinToJoin[join], nil, 0,
	)
}

// Fill paints the pending geometry, keeping it for a following Stroke
// when preserve is set.
func (c *Canvas) Fill(preserve bool) {
	replay(c.filler, c.pending)
	c.filler.Draw()
	c.filler.Clear()
	if !preserve {
		c.pending = nil
	}
}

// Stroke outlines the pending geometry and discards it.
func (c *Canvas) Stroke() {
	replay(c.dasher, c.pending)
	c.dasher.Draw()
	c.dasher.Clear()
	c.pending = nil
}

// replay feeds buffered primitives into an adder. Subpaths left open
// at a move or at the end are stopped without closing.
func replay(adder rasterx.Adder, ops []op) {
	open := false
	for _, o := range ops {
		switch o.kind {
		case 'M':
			if open {
				adder.Stop(false)
			}
			adder.Start(toFixedP(o.pts[0], o.pts[1]))
			open = true
		case 'L':
			adder.Line(toFixedP(o.pts[0], o.pts[1]))
		case 'C':
			adder.CubeBezier(
				toFixedP(o.pts[0], o.pts[1]),
				toFixedP(o.pts[2], o.pts[3]),
				toFixedP(o.pts[4], o.pts[5]),
			)
		case 'Z':
			adder.Stop(true)
			open = false
		}
	}
	if open {
		adder.Stop(false)
	}
}

func toFixed(f float64) fixed.Int26_6 { return fixed.Int26_6(f * 64) }

func toFixedP(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{X: toFixed(x), Y: toFixed(y)}
}

// EncodePNG writes the canvas as PNG to w.
func (c *Canvas) EncodePNG(w io.Writer) error { return png.Encode(w, c.img) }

// SavePNG writes the canvas to path atomically via a temp file in the
// target directory.
func (c *Canvas) SavePNG(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".inklayer-*.png")
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := c.EncodePNG(tmp); err != nil {
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

// RenderLayersToPNG rasterizes the named layers of doc onto one canvas
// and writes the PNG to path. A nil dpi renders at the native viewbox
// size. No file is written when the selection has no drawable
// elements; the error is svgrender.ErrNoDrawableElements.
func RenderLayersToPNG(doc *svgdom.Document, names []string, path string, dpi *float64) error {
	target, err := doc.RenderTarget(dpi)
	if err != nil {
		return err
	}
	if target.Width <= 0 || target.Height <= 0 {
		return fmt.Errorf("degenerate canvas size %dx%d", target.Width, target.Height)
	}
	canvas := NewCanvas(target.Width, target.Height)
	if err := svgrender.RenderLayers(doc, canvas, names, target.Scale); err != nil {
		return err
	}
	return canvas.SavePNG(path)
}
