package layout

import (
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/chartlayout/pkg/bounds"
	"github.com/matzehuels/chartlayout/pkg/errors"
	"github.com/matzehuels/chartlayout/pkg/ticks"
)

// Kind identifies a component type.
type Kind int

const (
	KindTickLabels Kind = iota
	KindRotatedLabel
	KindLegend
)

func (k Kind) String() string {
	switch k {
	case KindTickLabels:
		return "ticks"
	case KindRotatedLabel:
		return "label"
	case KindLegend:
		return "legend"
	}
	return "unknown"
}

// ParseKind converts a component name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ticks", "tick_labels":
		return KindTickLabels, nil
	case "label", "rotated_label":
		return KindRotatedLabel, nil
	case "legend":
		return KindLegend, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown component %q (want ticks, label or legend)", s)
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Context is what a component on an axis of domain T can see.
type Context[T ticks.Value] struct {
	Font    FontMetrics
	Padding bounds.Padding
	Range   ticks.Range[T]
	Series  []string
}

// Use is a sized component ready for a renderer.
type Use struct {
	Kind   Kind          `json:"kind"`
	Text   string        `json:"text,omitempty"`
	Anchor Anchor        `json:"anchor"`
	Labels []ticks.Label `json:"labels,omitempty"`
	Series []string      `json:"series,omitempty"`
}

// Component is something placed along an edge of the chart.
//
// Top and bottom components have a height that never depends on the
// available width, so FixedHeight is asked first and Horizontal only once
// the inner width is known. Left and right components size themselves from
// the available height.
type Component[T ticks.Value] interface {
	Kind() Kind
	FixedHeight(ctx Context[T]) float64
	Horizontal(ctx Context[T], availWidth float64) Use
	Vertical(ctx Context[T], availHeight float64) (float64, Use)
}

// TickLabels labels an axis with generated ticks.
type TickLabels[T ticks.Value] struct {
	Generator ticks.Generator[T]
	// MinChars reserves room for at least this many characters per label.
	MinChars int
	// Label optionally decorates each label. Nil uses the generator's format.
	Label ticks.LabelFunc[T]
}

// NewTickLabels wraps gen.
func NewTickLabels[T ticks.Value](gen ticks.Generator[T]) *TickLabels[T] {
	return &TickLabels[T]{Generator: gen}
}

// FloatTickLabels labels a numeric axis with ticks.AlignedFloats.
func FloatTickLabels() *TickLabels[float64] {
	return NewTickLabels[float64](ticks.AlignedFloats{})
}

// TimeTickLabels labels a time axis with ticks.DefaultTimestamps.
func TimeTickLabels() *TickLabels[time.Time] {
	return NewTickLabels[time.Time](ticks.DefaultTimestamps())
}

func (c *TickLabels[T]) Kind() Kind { return KindTickLabels }

func (c *TickLabels[T]) FixedHeight(ctx Context[T]) float64 {
	return ctx.Font.Height + ctx.Padding.Height()
}

func (c *TickLabels[T]) Horizontal(ctx Context[T], availWidth float64) Use {
	span := ticks.NewHorizontalSpan[T](ctx.Font.Width, c.MinChars, ctx.Padding.Width(), availWidth)
	if c.Label != nil {
		span.Label = c.Label
	}
	return Use{Kind: KindTickLabels, Anchor: Middle, Labels: c.labels(c.generate(ctx, span))}
}

func (c *TickLabels[T]) Vertical(ctx Context[T], availHeight float64) (float64, Use) {
	span := ticks.NewVerticalSpan[T](ctx.Font.Height+ctx.Padding.Height(), availHeight)
	labels := c.labels(c.generate(ctx, span))

	longest := c.MinChars
	for _, l := range labels {
		longest = max(longest, runewidth.StringWidth(l.Text))
	}
	width := ctx.Font.Width*float64(longest) + ctx.Padding.Width()
	return width, Use{Kind: KindTickLabels, Anchor: Middle, Labels: labels}
}

func (c *TickLabels[T]) generate(ctx Context[T], span ticks.Span[T]) ticks.GeneratedTicks[T] {
	if !ctx.Range.Valid || c.Generator == nil {
		return ticks.None[T]()
	}
	return c.Generator.Generate(ctx.Range.First, ctx.Range.Last, span)
}

func (c *TickLabels[T]) labels(gen ticks.GeneratedTicks[T]) []ticks.Label {
	if c.Label == nil {
		return gen.Labels()
	}
	out := make([]ticks.Label, len(gen.Ticks))
	for i, t := range gen.Ticks {
		out[i] = ticks.Label{Position: ticks.Position(t), Text: c.Label(t, gen.State)}
	}
	return out
}

// RotatedLabel is a line of text such as an axis title. On vertical edges
// renderers turn it to run along the edge.
type RotatedLabel struct {
	Text   string
	Anchor Anchor
}

// NewRotatedLabel returns a label anchored at anchor.
func NewRotatedLabel(anchor Anchor, text string) RotatedLabel {
	return RotatedLabel{Text: text, Anchor: anchor}
}

func (c RotatedLabel) size(font FontMetrics, pad bounds.Padding) float64 {
	if c.Text == "" {
		return 0
	}
	return font.Height + pad.Height()
}

func (c RotatedLabel) use() Use {
	return Use{Kind: KindRotatedLabel, Text: c.Text, Anchor: c.Anchor}
}

// rotated adapts a RotatedLabel to any axis domain.
type rotated[T ticks.Value] struct{ RotatedLabel }

// Label returns c as a component for an axis of domain T.
func Label[T ticks.Value](c RotatedLabel) Component[T] { return rotated[T]{c} }

func (r rotated[T]) Kind() Kind { return KindRotatedLabel }

func (r rotated[T]) FixedHeight(ctx Context[T]) float64 { return r.size(ctx.Font, ctx.Padding) }

func (r rotated[T]) Horizontal(Context[T], float64) Use { return r.use() }

func (r rotated[T]) Vertical(ctx Context[T], _ float64) (float64, Use) {
	return r.size(ctx.Font, ctx.Padding), r.use()
}

// Legend lists the series names next to their swatches.
type Legend struct {
	Anchor Anchor
}

// SnippetWidth is the room a legend reserves for a series swatch.
func SnippetWidth(font FontMetrics) float64 {
	return 2.5*font.Width + font.Width
}

// legend adapts a Legend to any axis domain.
type legend[T ticks.Value] struct{ Legend }

// LegendOf returns c as a component for an axis of domain T.
func LegendOf[T ticks.Value](c Legend) Component[T] { return legend[T]{c} }

func (l legend[T]) Kind() Kind { return KindLegend }

func (l legend[T]) FixedHeight(ctx Context[T]) float64 {
	return ctx.Font.Height + ctx.Padding.Height()
}

func (l legend[T]) Horizontal(ctx Context[T], _ float64) Use {
	return Use{Kind: KindLegend, Anchor: l.Anchor, Series: ctx.Series}
}

func (l legend[T]) Vertical(ctx Context[T], _ float64) (float64, Use) {
	longest := 0
	for _, name := range ctx.Series {
		longest = max(longest, runewidth.StringWidth(name))
	}
	width := SnippetWidth(ctx.Font) + float64(longest)*ctx.Font.Width + ctx.Padding.Width()
	return width, Use{Kind: KindLegend, Anchor: l.Anchor, Series: ctx.Series}
}
