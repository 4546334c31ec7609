// Package bounds provides the rectangle type every layout computation
// routes through.
//
// Coordinates are pixels with the origin at the top-left: y grows downward,
// so Top ≤ Bottom and Left ≤ Right for any valid Bounds.
package bounds

import (
	"math"

	"github.com/matzehuels/chartlayout/pkg/errors"
)

// Bounds is an axis-aligned rectangle described CSS-style by its four edges.
type Bounds struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// New returns a rectangle of the given size anchored at the origin.
// Negative sizes are clamped to zero.
func New(width, height float64) Bounds {
	return Bounds{
		Top:    0,
		Right:  math.Max(width, 0),
		Bottom: math.Max(height, 0),
		Left:   0,
	}
}

// FromPoints builds a rectangle from its top-left (x1, y1) and bottom-right
// (x2, y2) corners. Crossed points are a caller bug and panic with an
// *errors.Error of code ErrCodeInvalidBounds.
func FromPoints(x1, y1, x2, y2 float64) Bounds {
	if x1 > x2 || y1 > y2 {
		panic(errors.New(errors.ErrCodeInvalidBounds,
			"crossed points: (%v, %v) is not above-left of (%v, %v)", x1, y1, x2, y2))
	}
	return Bounds{Top: y1, Right: x2, Bottom: y2, Left: x1}
}

// Shrink moves each edge inward by the given amounts. Negative and NaN
// deltas count as zero and edges never cross: when over-constrained the
// left and bottom edges keep their position and the right and top edges
// collapse onto them.
func (b Bounds) Shrink(top, right, bottom, left float64) Bounds {
	top, right, bottom, left = delta(top), delta(right), delta(bottom), delta(left)

	l := math.Min(b.Left+left, b.Right)
	btm := math.Max(b.Bottom-bottom, b.Top)
	return Bounds{
		Top:    math.Min(b.Top+top, btm),
		Right:  math.Max(b.Right-right, l),
		Bottom: btm,
		Left:   l,
	}
}

func delta(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	return v
}

// Contains reports whether (x, y) lies inside b, edges included.
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.Left && x <= b.Right && y >= b.Top && y <= b.Bottom
}

// Width returns the horizontal span.
func (b Bounds) Width() float64 { return b.Right - b.Left }

// Height returns the vertical span.
func (b Bounds) Height() float64 { return b.Bottom - b.Top }

// CentreX returns the horizontal midpoint.
func (b Bounds) CentreX() float64 { return b.Left + b.Width()/2 }

// CentreY returns the vertical midpoint.
func (b Bounds) CentreY() float64 { return b.Top + b.Height()/2 }

// IsZero reports whether b has no area.
func (b Bounds) IsZero() bool { return b.Width() == 0 || b.Height() == 0 }
