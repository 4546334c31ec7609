package sink

import (
	"github.com/matzehuels/chartlayout/pkg/bounds"
	"github.com/matzehuels/chartlayout/pkg/chart"
	"github.com/matzehuels/chartlayout/pkg/layout"
	"github.com/matzehuels/chartlayout/pkg/ticks"
)

// canvas is the drawing surface a scene is painted on. Colours are
// "#rrggbb"; an empty colour skips that part.
type canvas interface {
	Rect(b bounds.Bounds, fill, stroke string)
	Polyline(xs, ys []float64, stroke string, width float64)
	// Text draws s with its anchor point at (x, y), vertically centred,
	// turned by rotate degrees clockwise about that point.
	Text(x, y float64, s string, anchor layout.Anchor, rotate float64, colour string)
}

// Theme holds the colours of a scene.
type Theme struct {
	Background string
	Axis       string
	Text       string
	Debug      string
	Series     []string
}

// DefaultTheme is a light theme with a ten colour series palette.
func DefaultTheme() Theme {
	return Theme{
		Background: "#ffffff",
		Axis:       "#888888",
		Text:       "#222222",
		Debug:      "#e377c2",
		Series: []string{
			"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
			"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
		},
	}
}

func (t Theme) colour(i int) string {
	if len(t.Series) == 0 {
		return t.Axis
	}
	return t.Series[i%len(t.Series)]
}

type scene struct {
	res   chart.Result
	theme Theme
	debug bool
}

func (s scene) draw(c canvas) {
	l := s.res.Layout
	c.Rect(l.Outer, s.theme.Background, "")
	if s.debug {
		s.drawDebug(c)
	}
	c.Rect(l.Inner, "", s.theme.Axis)

	if s.res.XWidth > 0 {
		s.drawBars(c)
	} else {
		s.drawLines(c)
	}

	for _, band := range l.Bands() {
		labels := s.res.Labels(band.Edge)
		for i, p := range band.Components {
			s.drawComponent(c, band.Edge, p, labels[i])
		}
	}
}

func (s scene) drawDebug(c canvas) {
	for _, band := range s.res.Layout.Bands() {
		c.Rect(band.Bounds, "", s.theme.Debug)
		for _, p := range band.Components {
			c.Rect(p.Bounds, "", s.theme.Debug)
		}
	}
}

// drawLines draws each series as polylines broken at missing points.
func (s scene) drawLines(c canvas) {
	for i, series := range s.res.Series {
		var xs, ys []float64
		flush := func() {
			if len(xs) > 1 {
				c.Polyline(xs, ys, s.theme.colour(i), 2)
			}
			xs, ys = xs[:0], ys[:0]
		}
		for _, p := range series.Points {
			if p.Missing {
				flush()
				continue
			}
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
		}
		flush()
	}
}

// drawBars splits each x slot among the series, leaving a fifth of the
// slot as a gap.
func (s scene) drawBars(c canvas) {
	n := len(s.res.Series)
	if n == 0 {
		return
	}
	inner := s.res.Layout.Inner
	slot := s.res.XWidth * 0.8
	w := slot / float64(n)
	for i, series := range s.res.Series {
		for _, p := range series.Points {
			if p.Missing {
				continue
			}
			left := p.X - slot/2 + float64(i)*w
			top := min(p.Y, inner.Bottom)
			c.Rect(bounds.FromPoints(left, top, left+w, inner.Bottom), s.theme.colour(i), "")
		}
	}
}

func (s scene) drawComponent(c canvas, e layout.Edge, p layout.Placed, labels []ticks.Label) {
	switch p.Use.Kind {
	case layout.KindTickLabels:
		s.drawTicks(c, e, p.Bounds, labels)
	case layout.KindRotatedLabel:
		s.drawLabel(c, e, p.Bounds, p.Use)
	case layout.KindLegend:
		s.drawLegend(c, e, p.Bounds, p.Use)
	}
}

func (s scene) drawTicks(c canvas, e layout.Edge, b bounds.Bounds, labels []ticks.Label) {
	pad := s.res.Padding
	for _, l := range labels {
		switch e {
		case layout.Top, layout.Bottom:
			c.Text(l.Position, b.CentreY(), l.Text, layout.Middle, 0, s.theme.Text)
		case layout.Left:
			c.Text(b.Right-pad.Right, l.Position, l.Text, layout.End, 0, s.theme.Text)
		case layout.Right:
			c.Text(b.Left+pad.Left, l.Position, l.Text, layout.Start, 0, s.theme.Text)
		}
	}
}

func (s scene) drawLabel(c canvas, e layout.Edge, b bounds.Bounds, u layout.Use) {
	if u.Text == "" {
		return
	}
	pad := s.res.Padding
	switch e {
	case layout.Top, layout.Bottom:
		x := u.Anchor.Pick(b.Left+pad.Left, b.CentreX(), b.Right-pad.Right)
		c.Text(x, b.CentreY(), u.Text, u.Anchor, 0, s.theme.Text)
	case layout.Left:
		// Reads bottom to top, so the start is at the bottom.
		y := u.Anchor.Pick(b.Bottom-pad.Bottom, b.CentreY(), b.Top+pad.Top)
		c.Text(b.CentreX(), y, u.Text, u.Anchor, -90, s.theme.Text)
	case layout.Right:
		y := u.Anchor.Pick(b.Top+pad.Top, b.CentreY(), b.Bottom-pad.Bottom)
		c.Text(b.CentreX(), y, u.Text, u.Anchor, 90, s.theme.Text)
	}
}

func (s scene) drawLegend(c canvas, e layout.Edge, b bounds.Bounds, u layout.Use) {
	font, pad := s.res.Font, s.res.Padding
	snippet := layout.SnippetWidth(font)

	entry := func(x, y float64, i int, name string) {
		c.Polyline([]float64{x + font.Width/2, x + snippet - font.Width/2}, []float64{y, y}, s.theme.colour(i), 3)
		c.Text(x+snippet, y, name, layout.Start, 0, s.theme.Text)
	}

	if e.IsHorizontal() {
		widths := make([]float64, len(u.Series))
		var total float64
		for i, name := range u.Series {
			widths[i] = snippet + float64(len([]rune(name)))*font.Width + pad.Width()
			total += widths[i]
		}
		x := u.Anchor.Pick(b.Left, b.CentreX()-total/2, b.Right-total)
		for i, name := range u.Series {
			entry(x+pad.Left, b.CentreY(), i, name)
			x += widths[i]
		}
		return
	}

	lines := float64(len(u.Series)) * font.Height
	y := u.Anchor.Pick(b.Top+pad.Top, b.CentreY()-lines/2, b.Bottom-pad.Bottom-lines)
	for i, name := range u.Series {
		entry(b.Left+pad.Left, y+(float64(i)+0.5)*font.Height, i, name)
	}
}
