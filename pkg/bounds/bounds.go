// Package bounds provides data-space rectangles for point clouds: the data
// extent (Box), the caller-controlled visible window (View), and the
// normalization that maps coordinates into the unit square.
package bounds

import (
	"fmt"
	"math"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
)

// Epsilon is the half-extent added to an axis with zero width so that
// normalization never divides by zero.
const Epsilon = 1e-6

// UnitMax is the largest float64 strictly below 1. Normalized coordinates
// that land exactly on 1 are clamped to it so they stay in the last cell.
var UnitMax = math.Nextafter(1, 0)

// Box is an axis-aligned rectangle in data space.
type Box struct {
	r2.Rect
}

// New returns a box spanning the two corners in any order.
func New(x0, y0, x1, y1 float64) Box {
	return Box{r2.RectFromPoints(r2.Point{X: x0, Y: y0}, r2.Point{X: x1, Y: y1})}
}

// Empty returns a box that contains nothing. Adding a point to it yields a
// degenerate box around that point.
func Empty() Box {
	return Box{r2.EmptyRect()}
}

// FromPositions computes the bounds of an interleaved x,y slice. Pairs with
// a non-finite coordinate are ignored and counted.
func FromPositions(positions []float64) (box Box, skipped int) {
	box = Empty()
	for i := 0; i+1 < len(positions); i += 2 {
		x, y := positions[i], positions[i+1]
		if !Finite(x, y) {
			skipped++
			continue
		}
		box.Rect = box.AddPoint(r2.Point{X: x, Y: y})
	}
	return box, skipped
}

// Finite reports whether both coordinates are real numbers.
func Finite(x, y float64) bool {
	return !math.IsNaN(x) && !math.IsNaN(y) && !math.IsInf(x, 0) && !math.IsInf(y, 0)
}

// MinX returns the left edge.
func (b Box) MinX() float64 { return b.X.Lo }

// MinY returns the bottom edge.
func (b Box) MinY() float64 { return b.Y.Lo }

// MaxX returns the right edge.
func (b Box) MaxX() float64 { return b.X.Hi }

// MaxY returns the top edge.
func (b Box) MaxY() float64 { return b.Y.Hi }

// Width returns the extent along x.
func (b Box) Width() float64 { return b.X.Length() }

// Height returns the extent along y.
func (b Box) Height() float64 { return b.Y.Length() }

// Valid reports whether the box has positive extent on both axes.
func (b Box) Valid() bool {
	return !b.IsEmpty() && b.Width() > 0 && b.Height() > 0
}

// Widen returns a copy where every axis with non-positive extent is grown
// by eps on both sides. An empty box becomes the unit square.
func (b Box) Widen(eps float64) Box {
	if b.IsEmpty() {
		return New(0, 0, 1, 1)
	}
	if b.Width() <= 0 {
		b.X = widenInterval(b.X, eps)
	}
	if b.Height() <= 0 {
		b.Y = widenInterval(b.Y, eps)
	}
	return b
}

func widenInterval(i r1.Interval, eps float64) r1.Interval {
	pad := eps
	if m := math.Max(math.Abs(i.Lo), math.Abs(i.Hi)); m > 1 {
		pad = eps * m
	}
	return r1.Interval{Lo: i.Lo - pad, Hi: i.Hi + pad}
}

// Normalize maps (x, y) into [0,1) relative to the box. Values on the max
// edge are clamped to UnitMax. The box must be Valid.
func (b Box) Normalize(x, y float64) (nx, ny float64) {
	nx = (x - b.X.Lo) / b.Width()
	ny = (y - b.Y.Lo) / b.Height()
	if nx == 1 {
		nx = UnitMax
	}
	if ny == 1 {
		ny = UnitMax
	}
	return nx, ny
}

// Contains reports whether the point lies inside the box, edges included.
func (b Box) Contains(x, y float64) bool {
	return b.ContainsPoint(r2.Point{X: x, Y: y})
}

func (b Box) String() string {
	if b.IsEmpty() {
		return "[empty]"
	}
	return fmt.Sprintf("[%g, %g, %g, %g]", b.X.Lo, b.Y.Lo, b.X.Hi, b.Y.Hi)
}
