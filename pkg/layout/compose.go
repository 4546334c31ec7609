package layout

import (
	"math"

	"github.com/matzehuels/chartlayout/pkg/aspect"
	"github.com/matzehuels/chartlayout/pkg/bounds"
	"github.com/matzehuels/chartlayout/pkg/ticks"
)

// EdgeSet holds the components on each edge. Top and bottom label the x
// axis, left and right the y axis. Each list runs from the component
// nearest the plot area outward.
type EdgeSet[X, Y ticks.Value] struct {
	Top    []Component[X]
	Right  []Component[Y]
	Bottom []Component[X]
	Left   []Component[Y]
}

// State is the chart-wide input every component is sized from.
type State[X, Y ticks.Value] struct {
	Font    FontMetrics
	Padding bounds.Padding
	RangeX  ticks.Range[X]
	RangeY  ticks.Range[Y]
	Series  []string
}

// X returns the context seen by top and bottom components.
func (s State[X, Y]) X() Context[X] {
	return Context[X]{Font: s.Font, Padding: s.Padding, Range: s.RangeX, Series: s.Series}
}

// Y returns the context seen by left and right components.
func (s State[X, Y]) Y() Context[Y] {
	return Context[Y]{Font: s.Font, Padding: s.Padding, Range: s.RangeY, Series: s.Series}
}

// Measurement is the outcome of sizing every component.
type Measurement struct {
	// Sizes holds each component's thickness per edge, nearest the plot first.
	Sizes [4][]float64
	// Uses holds what each component will render, in the same order.
	Uses [4][]Use

	InnerWidth  float64
	InnerHeight float64
}

// Total is the summed thickness of an edge.
func (m Measurement) Total(e Edge) float64 {
	var sum float64
	for _, s := range m.Sizes[e] {
		sum += s
	}
	return sum
}

// Measure sizes the components in two passes.
//
// Top and bottom heights are fixed, so they settle the inner height. Left
// and right components then size themselves against that height, which
// settles the inner width. Finally top and bottom components generate
// their content against the inner width.
func Measure[X, Y ticks.Value](edges EdgeSet[X, Y], known aspect.Known, state State[X, Y]) Measurement {
	var m Measurement
	cx, cy := state.X(), state.Y()

	for _, c := range edges.Top {
		m.Sizes[Top] = append(m.Sizes[Top], c.FixedHeight(cx))
	}
	for _, c := range edges.Bottom {
		m.Sizes[Bottom] = append(m.Sizes[Bottom], c.FixedHeight(cx))
	}
	m.InnerHeight = known.InnerHeight(m.Total(Top), m.Total(Bottom))

	availHeight := math.Max(m.InnerHeight, 0)
	for _, c := range edges.Left {
		w, use := c.Vertical(cy, availHeight)
		m.Sizes[Left] = append(m.Sizes[Left], w)
		m.Uses[Left] = append(m.Uses[Left], use)
	}
	for _, c := range edges.Right {
		w, use := c.Vertical(cy, availHeight)
		m.Sizes[Right] = append(m.Sizes[Right], w)
		m.Uses[Right] = append(m.Uses[Right], use)
	}
	m.InnerWidth = known.InnerWidth(m.Total(Left), m.Total(Right))

	availWidth := math.Max(m.InnerWidth, 0)
	for _, c := range edges.Top {
		m.Uses[Top] = append(m.Uses[Top], c.Horizontal(cx, availWidth))
	}
	for _, c := range edges.Bottom {
		m.Uses[Bottom] = append(m.Uses[Bottom], c.Horizontal(cx, availWidth))
	}
	return m
}

// Placed is a component with its final rectangle.
type Placed struct {
	Bounds bounds.Bounds `json:"bounds"`
	Use    Use           `json:"use"`
}

// Band is the strip between the plot area and the chart's outer edge on
// one side. Corners belong to no band.
type Band struct {
	Edge       Edge          `json:"edge"`
	Bounds     bounds.Bounds `json:"bounds"`
	Components []Placed      `json:"components"`
}

// Layout is the final geometry of a chart.
type Layout struct {
	Outer  bounds.Bounds `json:"outer"`
	Inner  bounds.Bounds `json:"inner"`
	Top    Band          `json:"top"`
	Right  Band          `json:"right"`
	Bottom Band          `json:"bottom"`
	Left   Band          `json:"left"`
}

// Compose measures the components and places them.
//
// The outer rectangle is the sum of the bands and the inner size, so for an
// outer target it matches the declared size. When the bands need more room
// than there is, the plot area and then the bands collapse to zero area.
func Compose[X, Y ticks.Value](edges EdgeSet[X, Y], known aspect.Known, state State[X, Y]) Layout {
	return Place(Measure(edges, known, state))
}

// Place turns a measurement into rectangles.
func Place(m Measurement) Layout {
	top, right, bottom, left := m.Total(Top), m.Total(Right), m.Total(Bottom), m.Total(Left)

	outer := bounds.New(left+m.InnerWidth+right, top+m.InnerHeight+bottom)
	inner := outer.Shrink(top, right, bottom, left)

	l := Layout{Outer: outer, Inner: inner}
	l.Top = band(Top, bounds.FromPoints(inner.Left, outer.Top, inner.Right, inner.Top), m)
	l.Right = band(Right, bounds.FromPoints(inner.Right, inner.Top, outer.Right, inner.Bottom), m)
	l.Bottom = band(Bottom, bounds.FromPoints(inner.Left, inner.Bottom, inner.Right, outer.Bottom), m)
	l.Left = band(Left, bounds.FromPoints(outer.Left, inner.Top, inner.Left, inner.Bottom), m)
	return l
}

// band splits b among the edge's components. Proximal and distal are the
// distances of a component's near and far sides from the plot area.
func band(e Edge, b bounds.Bounds, m Measurement) Band {
	out := Band{Edge: e, Bounds: b, Components: make([]Placed, 0, len(m.Sizes[e]))}
	w, h := b.Width(), b.Height()

	var proximal float64
	for i, size := range m.Sizes[e] {
		distal := proximal + size
		var cb bounds.Bounds
		switch e {
		case Top:
			cb = b.Shrink(h-distal, 0, proximal, 0)
		case Bottom:
			cb = b.Shrink(proximal, 0, h-distal, 0)
		case Left:
			cb = b.Shrink(0, proximal, 0, w-distal)
		case Right:
			cb = b.Shrink(0, w-distal, 0, proximal)
		}
		out.Components = append(out.Components, Placed{Bounds: cb, Use: m.Uses[e][i]})
		proximal = distal
	}
	return out
}

// Band returns the band on edge e.
func (l Layout) Band(e Edge) Band {
	switch e {
	case Top:
		return l.Top
	case Right:
		return l.Right
	case Bottom:
		return l.Bottom
	}
	return l.Left
}

// Bands returns all four bands in CSS order.
func (l Layout) Bands() []Band {
	return []Band{l.Top, l.Right, l.Bottom, l.Left}
}

// XWidth is the width of one of n equal slots across the plot area, the
// room a bar chart gives each x value. It is the full width when n < 1.
func (l Layout) XWidth(n int) float64 {
	if n < 1 {
		return l.Inner.Width()
	}
	return l.Inner.Width() / float64(n)
}

// BarInner is the plot area inset by half a slot on each side, so that
// the first and last x values sit at slot centres.
func (l Layout) BarInner(n int) bounds.Bounds {
	half := l.XWidth(n) / 2
	return l.Inner.Shrink(0, half, 0, half)
}
