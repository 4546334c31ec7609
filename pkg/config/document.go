// Package config reads chart documents and tool settings.
//
// A chart [Document] is a declarative description of one chart: its size,
// font, axes, edge components and data. Documents are written in TOML,
// YAML or JSON and selected by file extension:
//
//	aspect = "outer:640x320"
//
//	[x]
//	kind = "time"
//	label = "Date"
//
//	[[edge]]
//	side = "bottom"
//	component = "ticks"
//
//	[data]
//	x = ["2015-01-01T00:00:00Z", "2015-02-01T00:00:00Z"]
//	[[data.series]]
//	name = "rain"
//	y = [3.5, 4]
//
// [Document.Build] turns a validated document into a pipeline job.
//
// [Settings] hold defaults for the command-line tool and the server,
// read from ~/.config/chartlayout/config.toml and CHARTLAYOUT_* variables.
package config

import (
	"github.com/matzehuels/chartlayout/pkg/bounds"
	"github.com/matzehuels/chartlayout/pkg/ticks"
)

// Axis kinds.
const (
	AxisFloat = "float"
	AxisTime  = "time"
)

// Document is a chart description.
//
// Edges on each side are listed the way they read on screen: top and left
// from the outside in, bottom and right from the plot area outward. TOML
// documents write them as [[edge]] tables, YAML and JSON as an "edges"
// list.
type Document struct {
	// Aspect uses aspect.Parse syntax. Empty takes the size from the
	// environment.
	Aspect  string          `json:"aspect,omitempty" toml:"aspect" yaml:"aspect,omitempty"`
	Font    FontSpec        `json:"font,omitempty" toml:"font" yaml:"font,omitempty"`
	Padding *bounds.Padding `json:"padding,omitempty" toml:"padding" yaml:"padding,omitempty"`
	X       Axis            `json:"x,omitempty" toml:"x" yaml:"x,omitempty"`
	Y       Axis            `json:"y,omitempty" toml:"y" yaml:"y,omitempty"`
	Edges   []EdgeSpec      `json:"edges,omitempty" toml:"edge" yaml:"edges,omitempty"`
	Data    Data            `json:"data" toml:"data" yaml:"data"`
	Bar     bool            `json:"bar,omitempty" toml:"bar" yaml:"bar,omitempty"`
}

// FontSpec sets the text metrics. Face names a built-in face to measure;
// explicit Height and Width win over it.
type FontSpec struct {
	Height float64 `json:"height,omitempty" toml:"height" yaml:"height,omitempty"`
	Width  float64 `json:"width,omitempty" toml:"width" yaml:"width,omitempty"`
	Face   string  `json:"face,omitempty" toml:"face" yaml:"face,omitempty"`
}

// Axis describes one data dimension.
type Axis struct {
	// Kind is "float" (the default) or "time".
	Kind  string     `json:"kind,omitempty" toml:"kind" yaml:"kind,omitempty"`
	Ticks ticks.Spec `json:"ticks,omitempty" toml:"ticks" yaml:"ticks,omitempty"`
	// Label adds an axis title outside every other component: below the
	// chart for x, left of it for y.
	Label string `json:"label,omitempty" toml:"label" yaml:"label,omitempty"`
}

// EdgeSpec places one component on a side of the chart.
type EdgeSpec struct {
	Side      string `json:"side" toml:"side" yaml:"side"`
	Component string `json:"component" toml:"component" yaml:"component"`
	Text      string `json:"text,omitempty" toml:"text" yaml:"text,omitempty"`
	Anchor    string `json:"anchor,omitempty" toml:"anchor" yaml:"anchor,omitempty"`
	// MinChars overrides the axis tick spec's min_chars for this component.
	MinChars int `json:"min_chars,omitempty" toml:"min_chars" yaml:"min_chars,omitempty"`
}

// Data holds x values and named series. Numeric values may be missing:
// null, NaN or an empty string leave a gap. Time values are RFC 3339
// strings, native TOML/YAML datetimes or Unix seconds.
type Data struct {
	X      []any        `json:"x" toml:"x" yaml:"x"`
	Series []SeriesSpec `json:"series" toml:"series" yaml:"series"`
}

// SeriesSpec is one named series.
type SeriesSpec struct {
	Name string `json:"name" toml:"name" yaml:"name"`
	Y    []any  `json:"y" toml:"y" yaml:"y"`
}

func (a Axis) isTime() bool { return a.Kind == AxisTime }
