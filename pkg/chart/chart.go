// Package chart assembles a complete chart geometry from data and edge
// components.
//
// A [Chart] is a plain value. [Chart.Compute] resolves its size, composes
// the layout and projects the series into pixels; calling it again with a
// new environment size simply produces a new [Result].
package chart

import (
	"math"
	"slices"
	"time"

	"github.com/matzehuels/chartlayout/pkg/aspect"
	"github.com/matzehuels/chartlayout/pkg/bounds"
	"github.com/matzehuels/chartlayout/pkg/errors"
	"github.com/matzehuels/chartlayout/pkg/layout"
	"github.com/matzehuels/chartlayout/pkg/projection"
	"github.com/matzehuels/chartlayout/pkg/ticks"
)

// Series is a named sequence of y values, one per x value.
type Series[Y ticks.Value] struct {
	Name   string
	Values []Y
}

// Chart describes a chart with x values of type X and y values of type Y.
//
// Edge lists are declared the way they read on screen from the outside in:
// Top from the top of the chart down, Left from the left edge rightward,
// and Bottom and Right from the plot area outward.
type Chart[X, Y ticks.Value] struct {
	Aspect aspect.AspectRatio
	Font   layout.FontMetrics
	// Padding around text. Nil uses Font.Width on every side.
	Padding *bounds.Padding

	Top    []layout.Component[X]
	Right  []layout.Component[Y]
	Bottom []layout.Component[X]
	Left   []layout.Component[Y]

	X      []X
	Series []Series[Y]
	// Bar reserves half a slot on each side of the plot so that bars
	// centred on the first and last x values stay inside it.
	Bar bool
}

// Computer is a chart of any domain types.
type Computer interface {
	Validate() error
	IsEnvironment() bool
	Components() int
	Compute(envWidth, envHeight float64) Result
}

var (
	_ Computer = (*Chart[float64, float64])(nil)
	_ Computer = (*Chart[time.Time, float64])(nil)
)

// IsEnvironment reports whether Compute depends on the container size.
func (c *Chart[X, Y]) IsEnvironment() bool { return c.Aspect.IsEnvironment() }

// Components counts the edge components on all four sides.
func (c *Chart[X, Y]) Components() int {
	return len(c.Top) + len(c.Right) + len(c.Bottom) + len(c.Left)
}

// Validate reports problems that would make Compute meaningless.
func (c *Chart[X, Y]) Validate() error {
	if err := c.Aspect.Validate(); err != nil {
		return err
	}
	for _, s := range c.Series {
		if err := errors.ValidateLabel(s.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "series %q", s.Name)
		}
		if len(s.Values) > len(c.X) {
			return errors.New(errors.ErrCodeInvalidInput,
				"series %q has %d values for %d x values", s.Name, len(s.Values), len(c.X))
		}
	}
	return nil
}

// State returns the layout input derived from the chart's data.
func (c *Chart[X, Y]) State() layout.State[X, Y] {
	font := c.Font.WithDefaults()
	pad := bounds.Uniform(font.Width)
	if c.Padding != nil {
		pad = *c.Padding
	}
	return layout.State[X, Y]{
		Font:    font,
		Padding: pad,
		RangeX:  ticks.Extent(c.X),
		RangeY:  ticks.Extent(c.yValues()),
		Series:  c.names(),
	}
}

// Edges returns the edge components nearest the plot area first.
func (c *Chart[X, Y]) Edges() layout.EdgeSet[X, Y] {
	top := slices.Clone(c.Top)
	slices.Reverse(top)
	left := slices.Clone(c.Left)
	slices.Reverse(left)
	return layout.EdgeSet[X, Y]{
		Top:    top,
		Right:  c.Right,
		Bottom: c.Bottom,
		Left:   left,
	}
}

// Compute lays the chart out for a container of envWidth by envHeight.
// The container size only matters for environment aspect ratios.
func (c *Chart[X, Y]) Compute(envWidth, envHeight float64) Result {
	known := c.Aspect.Resolve(envWidth, envHeight)
	state := c.State()
	l := layout.Compose(c.Edges(), known, state)

	plot := l.Inner
	if c.Bar {
		plot = l.BarInner(len(c.X))
	}
	proj := projection.FromRanges(plot, state.RangeX, state.RangeY)

	res := Result{
		Size:       known,
		Font:       state.Font,
		Padding:    state.Padding,
		Layout:     l,
		Projection: proj,
		RangeX:     axisRange(state.RangeX),
		RangeY:     axisRange(state.RangeY),
		Series:     make([]ProjectedSeries, 0, len(c.Series)),
	}
	if c.Bar {
		res.XWidth = l.XWidth(len(c.X))
	}
	for _, s := range c.Series {
		res.Series = append(res.Series, c.project(proj, s))
	}
	return res
}

func (c *Chart[X, Y]) project(p projection.Projection, s Series[Y]) ProjectedSeries {
	out := ProjectedSeries{Name: s.Name, Points: make([]Point, 0, len(s.Values))}
	for i, y := range s.Values {
		if i >= len(c.X) {
			break
		}
		dx, dy := ticks.Position(c.X[i]), ticks.Position(y)
		if !finite(dx) || !finite(dy) {
			out.Points = append(out.Points, Point{Missing: true})
			continue
		}
		px, py := p.DataToPixel(dx, dy)
		out.Points = append(out.Points, Point{X: px, Y: py})
	}
	return out
}

func (c *Chart[X, Y]) yValues() []Y {
	var out []Y
	for _, s := range c.Series {
		out = append(out, s.Values...)
	}
	return out
}

func (c *Chart[X, Y]) names() []string {
	out := make([]string, len(c.Series))
	for i, s := range c.Series {
		out[i] = s.Name
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
