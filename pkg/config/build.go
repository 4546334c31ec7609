package config

import (
	"encoding/json"
	"strings"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/chartlayout/pkg/bounds"
	"github.com/matzehuels/chartlayout/pkg/cache"
	"github.com/matzehuels/chartlayout/pkg/chart"
	"github.com/matzehuels/chartlayout/pkg/errors"
	"github.com/matzehuels/chartlayout/pkg/layout"
	"github.com/matzehuels/chartlayout/pkg/pipeline"
	"github.com/matzehuels/chartlayout/pkg/ticks"
)

// faces are the built-in font faces a document can name.
var faces = map[string]font.Face{
	"basic7x13": basicfont.Face7x13,
}

func lookupFace(name string) (font.Face, error) {
	if name == "" {
		return nil, nil
	}
	f, ok := faces[strings.ToLower(name)]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown font face %q (want basic7x13)", name)
	}
	return f, nil
}

// Metrics resolves the font. Unset values fall back to the face, then to
// layout.DefaultFont.
func (f FontSpec) Metrics() layout.FontMetrics {
	m := layout.FontMetrics{Height: f.Height, Width: f.Width}
	if face, _ := lookupFace(f.Face); face != nil {
		measured := layout.FontFromFace(face)
		if m.Height == 0 {
			m.Height = measured.Height
		}
		if m.Width == 0 {
			m.Width = measured.Width
		}
	}
	return m.WithDefaults()
}

// axisType binds a domain type to its document conversions.
type axisType[T ticks.Value] struct {
	parse func(any) (T, error)
	gen   func(ticks.Spec) (ticks.Generator[T], error)
}

var (
	floatAxis = axisType[float64]{parse: toFloat, gen: ticks.Spec.Floats}
	timeAxis  = axisType[time.Time]{parse: toTime, gen: ticks.Spec.Timestamps}
)

// Build validates d and assembles the chart it describes.
func (d *Document) Build() (pipeline.Job, error) {
	if err := d.Validate(); err != nil {
		return pipeline.Job{}, err
	}

	var (
		c   chart.Computer
		err error
	)
	switch {
	case d.X.isTime() && d.Y.isTime():
		c, err = build(d, timeAxis, timeAxis)
	case d.X.isTime():
		c, err = build(d, timeAxis, floatAxis)
	case d.Y.isTime():
		c, err = build(d, floatAxis, timeAxis)
	default:
		c, err = build(d, floatAxis, floatAxis)
	}
	if err != nil {
		return pipeline.Job{}, err
	}

	hash, err := d.Hash()
	if err != nil {
		return pipeline.Job{}, err
	}
	return pipeline.Job{Chart: c, Hash: hash}, nil
}

// Hash identifies the chart d describes. Documents that differ only in
// source format or in how missing values are written hash the same.
func (d *Document) Hash() (string, error) {
	norm := *d
	norm.Data = Data{X: canonicalSlice(d.Data.X), Series: make([]SeriesSpec, len(d.Data.Series))}
	for i, s := range d.Data.Series {
		norm.Data.Series[i] = SeriesSpec{Name: s.Name, Y: canonicalSlice(s.Y)}
	}
	data, err := json.Marshal(norm)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash document")
	}
	return cache.Hash(data), nil
}

func build[X, Y ticks.Value](d *Document, ax axisType[X], ay axisType[Y]) (*chart.Chart[X, Y], error) {
	a, err := d.aspect()
	if err != nil {
		return nil, invalid(err, "aspect")
	}
	c := &chart.Chart[X, Y]{
		Aspect:  a,
		Font:    d.Font.Metrics(),
		Padding: clonePadding(d.Padding),
		Bar:     d.Bar,
	}

	for i, e := range d.Edges {
		side, _ := layout.ParseEdge(e.Side)
		var err error
		switch side {
		case layout.Top:
			c.Top, err = appendComponent(c.Top, e, d.X, ax)
		case layout.Bottom:
			c.Bottom, err = appendComponent(c.Bottom, e, d.X, ax)
		case layout.Left:
			c.Left, err = appendComponent(c.Left, e, d.Y, ay)
		case layout.Right:
			c.Right, err = appendComponent(c.Right, e, d.Y, ay)
		}
		if err != nil {
			return nil, invalid(err, "edge %d", i+1)
		}
	}
	if d.X.Label != "" {
		c.Bottom = append(c.Bottom, layout.Label[X](layout.NewRotatedLabel(layout.Middle, d.X.Label)))
	}
	if d.Y.Label != "" {
		c.Left = append([]layout.Component[Y]{layout.Label[Y](layout.NewRotatedLabel(layout.Middle, d.Y.Label))}, c.Left...)
	}

	c.X, err = parseAll(d.Data.X, ax.parse)
	if err != nil {
		return nil, invalid(err, "data.x")
	}
	for _, s := range d.Data.Series {
		ys, err := parseAll(s.Y, ay.parse)
		if err != nil {
			return nil, invalid(err, "series %q", s.Name)
		}
		c.Series = append(c.Series, chart.Series[Y]{Name: s.Name, Values: ys})
	}
	return c, nil
}

// appendComponent adds the component e describes. Tick components on an
// axis whose ticks are "none" are left out.
func appendComponent[T ticks.Value](list []layout.Component[T], e EdgeSpec, a Axis, at axisType[T]) ([]layout.Component[T], error) {
	kind, err := layout.ParseKind(e.Component)
	if err != nil {
		return nil, err
	}
	anchor, err := layout.ParseAnchor(e.Anchor)
	if err != nil {
		return nil, err
	}

	switch kind {
	case layout.KindTickLabels:
		spec := e.tickSpec(a)
		gen, err := at.gen(spec)
		if err != nil {
			return nil, err
		}
		if gen == nil {
			return list, nil
		}
		tl := layout.NewTickLabels(gen)
		tl.MinChars = spec.MinChars
		return append(list, tl), nil
	case layout.KindRotatedLabel:
		return append(list, layout.Label[T](layout.NewRotatedLabel(anchor, e.Text))), nil
	case layout.KindLegend:
		return append(list, layout.LegendOf[T](layout.Legend{Anchor: anchor})), nil
	}
	return list, nil
}

func parseAll[T ticks.Value](vs []any, parse func(any) (T, error)) ([]T, error) {
	out := make([]T, len(vs))
	for i, v := range vs {
		t, err := parse(v)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "value %d", i)
		}
		out[i] = t
	}
	return out, nil
}

func clonePadding(p *bounds.Padding) *bounds.Padding {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
