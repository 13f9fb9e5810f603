// Package svgpath interprets the SVG path mini-language subset
// {M,m,L,l,C,c,Z,z} into an ordered sequence of absolute-coordinate
// drawing primitives.
package svgpath

import (
	"fmt"
	"strings"
)

// Tracer receives drawing primitives. Coordinates are in document
// user-space; the caller applies any output scaling.
type Tracer interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	CurveTo(x1, y1, x2, y2, x, y float64)
	ClosePath()
}

// Operation is one drawing primitive of a compiled path.
type Operation interface {
	// drawTo replays the operation on t, scaling coordinates by s.
	drawTo(t Tracer, s float64)
}

// MoveTo starts a new subpath at the given point.
type MoveTo struct{ X, Y float64 }

// LineTo draws a line from the current point.
type LineTo struct{ X, Y float64 }

// CurveTo draws a cubic bezier curve; (X1,Y1) and (X2,Y2) are the
// control points, (X,Y) the endpoint.
type CurveTo struct{ X1, Y1, X2, Y2, X, Y float64 }

// Close closes the current subpath.
type Close struct{}

func (op MoveTo) drawTo(t Tracer, s float64) { t.MoveTo(op.X*s, op.Y*s) }
func (op LineTo) drawTo(t Tracer, s float64) { t.LineTo(op.X*s, op.Y*s) }
func (op CurveTo) drawTo(t Tracer, s float64) {
	t.CurveTo(op.X1*s, op.Y1*s, op.X2*s, op.Y2*s, op.X*s, op.Y*s)
}
func (op Close) drawTo(t Tracer, _ float64) { t.ClosePath() }

// Path is a sequence of drawing primitives.
type Path []Operation

// DrawTo replays the path on t, scaling every coordinate by s.
func (p Path) DrawTo(t Tracer, s float64) {
	for _, op := range p {
		op.drawTo(t, s)
	}
}

// ToSVGPath returns a path-data representation of the primitives.
func (p Path) ToSVGPath() string {
	chunks := make([]string, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = fmt.Sprintf("M%g,%g", op.X, op.Y)
		case LineTo:
			chunks[i] = fmt.Sprintf("L%g,%g", op.X, op.Y)
		case CurveTo:
			chunks[i] = fmt.Sprintf("C%g,%g,%g,%g,%g,%g", op.X1, op.Y1, op.X2, op.Y2, op.X, op.Y)
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}
