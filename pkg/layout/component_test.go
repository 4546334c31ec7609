package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/chartlayout/pkg/bounds"
	"github.com/matzehuels/chartlayout/pkg/ticks"
)

func floatContext(pad bounds.Padding) Context[float64] {
	return Context[float64]{
		Font:    DefaultFont(),
		Padding: pad,
		Range:   ticks.NewRange(0.0, 1.0),
	}
}

func texts(labels []ticks.Label) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = l.Text
	}
	return out
}

func TestFontFromFace(t *testing.T) {
	f := FontFromFace(basicfont.Face7x13)
	assert.Equal(t, 13.0, f.Height)
	assert.InDelta(t, 7.0, f.Width, 1e-9)
}

func TestFontWithDefaults(t *testing.T) {
	assert.Equal(t, DefaultFont(), FontMetrics{}.WithDefaults())
	assert.Equal(t, FontMetrics{Height: 12, Width: 10}, FontMetrics{Height: 12}.WithDefaults())
}

func TestTickLabelsVertical(t *testing.T) {
	c := FloatTickLabels()
	ctx := floatContext(bounds.Padding{})

	// Eleven 16px lines fit in 176px: 0.0, 0.1, ..., 1.0.
	width, use := c.Vertical(ctx, 176)
	require.Len(t, use.Labels, 11)
	assert.Equal(t, KindTickLabels, use.Kind)
	assert.Equal(t, "0.0", use.Labels[0].Text)
	assert.Equal(t, "1.0", use.Labels[10].Text)
	assert.Equal(t, 30.0, width)

	c.MinChars = 6
	width, _ = c.Vertical(ctx, 176)
	assert.Equal(t, 60.0, width)
}

func TestTickLabelsVerticalPadding(t *testing.T) {
	c := FloatTickLabels()
	ctx := floatContext(bounds.Uniform(2))

	// Line height is 16 + 4.
	width, use := c.Vertical(ctx, 220)
	assert.Len(t, use.Labels, 11)
	assert.Equal(t, 34.0, width)
}

func TestTickLabelsHorizontal(t *testing.T) {
	c := FloatTickLabels()
	ctx := floatContext(bounds.Padding{})

	use := c.Horizontal(ctx, 330)
	assert.Len(t, use.Labels, 11)

	c.MinChars = 5
	use = c.Horizontal(ctx, 330)
	assert.Equal(t, []string{"0.0", "0.2", "0.4", "0.6", "0.8", "1.0"}, texts(use.Labels))
}

func TestTickLabelsFixedHeight(t *testing.T) {
	c := FloatTickLabels()
	assert.Equal(t, 16.0, c.FixedHeight(floatContext(bounds.Padding{})))
	assert.Equal(t, 22.0, c.FixedHeight(floatContext(bounds.HV(1, 3))))
}

func TestTickLabelsInvalidRange(t *testing.T) {
	c := FloatTickLabels()
	c.MinChars = 2
	ctx := floatContext(bounds.Uniform(1))
	ctx.Range = ticks.Range[float64]{}

	width, use := c.Vertical(ctx, 500)
	assert.Empty(t, use.Labels)
	assert.Equal(t, 22.0, width)
	assert.Empty(t, c.Horizontal(ctx, 500).Labels)
}

func TestTickLabelsCustomLabel(t *testing.T) {
	c := FloatTickLabels()
	c.Label = func(v float64, state ticks.Format[float64]) string {
		return state.Format(v) + "%"
	}
	width, use := c.Vertical(floatContext(bounds.Padding{}), 176)
	require.NotEmpty(t, use.Labels)
	assert.Equal(t, "0.0%", use.Labels[0].Text)
	assert.Equal(t, 40.0, width)
}

func TestRotatedLabel(t *testing.T) {
	ctx := floatContext(bounds.Uniform(3))

	empty := Label[float64](NewRotatedLabel(Middle, ""))
	assert.Equal(t, 0.0, empty.FixedHeight(ctx))
	w, _ := empty.Vertical(ctx, 100)
	assert.Equal(t, 0.0, w)

	title := Label[float64](NewRotatedLabel(End, "Revenue"))
	assert.Equal(t, KindRotatedLabel, title.Kind())
	assert.Equal(t, 22.0, title.FixedHeight(ctx))
	w, use := title.Vertical(ctx, 100)
	assert.Equal(t, 22.0, w)
	assert.Equal(t, Use{Kind: KindRotatedLabel, Text: "Revenue", Anchor: End}, use)
	assert.Equal(t, use, title.Horizontal(ctx, 100))
}

func TestLegend(t *testing.T) {
	ctx := floatContext(bounds.Uniform(2))
	ctx.Series = []string{"a", "long"}

	l := LegendOf[float64](Legend{Anchor: Start})
	assert.Equal(t, KindLegend, l.Kind())
	assert.Equal(t, 20.0, l.FixedHeight(ctx))

	// Swatch 35, four characters 40, padding 4.
	w, use := l.Vertical(ctx, 100)
	assert.Equal(t, 79.0, w)
	assert.Equal(t, []string{"a", "long"}, use.Series)
	assert.Equal(t, Start, use.Anchor)

	assert.Equal(t, 35.0, SnippetWidth(DefaultFont()))
}
