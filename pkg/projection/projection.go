// Package projection maps between data coordinates and pixels.
//
// Data space has its origin at the bottom-left and y grows upward. Pixel
// space has its origin at the top-left and y grows downward.
package projection

import (
	"math"

	"github.com/matzehuels/chartlayout/pkg/bounds"
	"github.com/matzehuels/chartlayout/pkg/ticks"
)

// zeroRange stands in for an empty data range so the scale stays finite.
// Points in an empty range all project to the bounds' left or bottom edge.
const zeroRange = 0.5

// Projection scales a data range onto a rectangle.
type Projection struct {
	Bounds  bounds.Bounds `json:"bounds"`
	LeftX   float64       `json:"left_x"`
	BottomY float64       `json:"bottom_y"`
	XMult   float64       `json:"x_mult"`
	YMult   float64       `json:"y_mult"`
}

// New maps the data ranges [x1, x2] and [y1, y2] onto b.
func New(b bounds.Bounds, x1, x2, y1, y2 float64) Projection {
	return Projection{
		Bounds:  b,
		LeftX:   x1,
		BottomY: y1,
		XMult:   mult(b.Width(), x1, x2),
		YMult:   mult(b.Height(), y1, y2),
	}
}

// FromRanges maps two domain ranges onto b. Invalid ranges count as
// (0, 0).
func FromRanges[X, Y ticks.Value](b bounds.Bounds, rx ticks.Range[X], ry ticks.Range[Y]) Projection {
	x1, x2 := rx.Positions()
	y1, y2 := ry.Positions()
	return New(b, x1, x2, y1, y2)
}

func nonZero(v float64) float64 {
	if v == 0 {
		return zeroRange
	}
	return v
}

// DataToPixel converts a data point to pixels.
func (p Projection) DataToPixel(x, y float64) (float64, float64) {
	px := p.Bounds.Left + scaled(x, p.LeftX, p.XMult)
	py := p.Bounds.Bottom - scaled(y, p.BottomY, p.YMult)
	return px, py
}

// PixelToData converts a pixel to data coordinates. The inverse is
// undefined on bounds of zero width or height, where it returns ±Inf or NaN.
func (p Projection) PixelToData(px, py float64) (float64, float64) {
	x := unscaled(p.LeftX, px-p.Bounds.Left, p.XMult)
	y := unscaled(p.BottomY, p.Bounds.Bottom-py, p.YMult)
	return x, y
}

// mult is length / (hi - lo), halving both sides when the range
// overflows.
func mult(length, lo, hi float64) float64 {
	if d := hi - lo; math.IsInf(d, 0) {
		return length / 2 / (hi/2 - lo/2)
	}
	return length / nonZero(hi-lo)
}

// scaled is (v - origin) * m for values whose distance from origin may
// overflow.
func scaled(v, origin, m float64) float64 {
	if d := v - origin; !math.IsInf(d, 0) {
		return d * m
	}
	return (v/2 - origin/2) * m * 2
}

// unscaled is origin + delta / m, halving the terms when the result
// overflows.
func unscaled(origin, delta, m float64) float64 {
	v := origin + delta/m
	if !math.IsInf(v, 0) || m == 0 {
		return v
	}
	return (origin/2 + delta/2/m) * 2
}
