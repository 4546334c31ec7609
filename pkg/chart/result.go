package chart

import (
	"github.com/matzehuels/chartlayout/pkg/aspect"
	"github.com/matzehuels/chartlayout/pkg/bounds"
	"github.com/matzehuels/chartlayout/pkg/layout"
	"github.com/matzehuels/chartlayout/pkg/projection"
	"github.com/matzehuels/chartlayout/pkg/ticks"
)

// Result is a computed chart. It is independent of the chart's domain
// types: ranges and tick positions are in position space, see
// ticks.Position.
type Result struct {
	Size       aspect.Known          `json:"size"`
	Font       layout.FontMetrics    `json:"font"`
	Padding    bounds.Padding        `json:"padding"`
	Layout     layout.Layout         `json:"layout"`
	Projection projection.Projection `json:"projection"`
	RangeX     AxisRange             `json:"range_x"`
	RangeY     AxisRange             `json:"range_y"`
	// XWidth is the slot width of each x value in a bar chart.
	XWidth float64           `json:"x_width,omitempty"`
	Series []ProjectedSeries `json:"series"`
}

// AxisRange is a data range in position space.
type AxisRange struct {
	First float64 `json:"first"`
	Last  float64 `json:"last"`
	Valid bool    `json:"valid"`
}

func axisRange[T ticks.Value](r ticks.Range[T]) AxisRange {
	first, last := r.Positions()
	return AxisRange{First: first, Last: last, Valid: r.Valid}
}

// ProjectedSeries is a series in pixel coordinates.
type ProjectedSeries struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// Point is a pixel position. Missing points had a non-finite x or y.
type Point struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Missing bool    `json:"missing,omitempty"`
}

// Labels returns the tick labels on edge e with positions converted to
// pixels along the edge's axis.
func (r Result) Labels(e layout.Edge) [][]ticks.Label {
	band := r.Layout.Band(e)
	out := make([][]ticks.Label, len(band.Components))
	for i, c := range band.Components {
		labels := make([]ticks.Label, len(c.Use.Labels))
		for j, l := range c.Use.Labels {
			labels[j] = ticks.Label{Position: r.pixel(e, l.Position), Text: l.Text}
		}
		out[i] = labels
	}
	return out
}

func (r Result) pixel(e layout.Edge, pos float64) float64 {
	if e.IsHorizontal() {
		x, _ := r.Projection.DataToPixel(pos, r.Projection.BottomY)
		return x
	}
	_, y := r.Projection.DataToPixel(r.Projection.LeftX, pos)
	return y
}
