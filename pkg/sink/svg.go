package sink

import (
	"bytes"
	"fmt"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/chartlayout/pkg/bounds"
	"github.com/matzehuels/chartlayout/pkg/chart"
	"github.com/matzehuels/chartlayout/pkg/layout"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	theme      Theme
	debug      bool
	fontFamily string
}

// WithDebug outlines every band and component.
func WithDebug() SVGOption { return func(r *svgRenderer) { r.debug = true } }

// WithTheme replaces DefaultTheme.
func WithTheme(t Theme) SVGOption { return func(r *svgRenderer) { r.theme = t } }

// WithFontFamily sets the CSS font family. Labels were sized for a
// monospaced font, so the default is "monospace".
func WithFontFamily(f string) SVGOption { return func(r *svgRenderer) { r.fontFamily = f } }

// RenderSVG draws res as an SVG document.
func RenderSVG(res chart.Result, opts ...SVGOption) []byte {
	r := svgRenderer{theme: DefaultTheme(), fontFamily: "monospace"}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	w, h := px(res.Layout.Outer.Width()), px(res.Layout.Outer.Height())
	canvas.Start(w, h,
		fmt.Sprintf(`viewBox="0 0 %d %d"`, w, h),
		fmt.Sprintf(`font-family="%s" font-size="%.6gpx"`, r.fontFamily, res.Font.Height))

	scene{res: res, theme: r.theme, debug: r.debug}.draw(svgCanvas{canvas})

	canvas.End()
	return buf.Bytes()
}

func px(v float64) int { return int(math.Round(v)) }

type svgCanvas struct{ *svg.SVG }

func (c svgCanvas) Rect(b bounds.Bounds, fill, stroke string) {
	if fill == "" {
		fill = "none"
	}
	style := "fill:" + fill
	if stroke != "" {
		style += ";stroke:" + stroke
	}
	c.SVG.Rect(px(b.Left), px(b.Top), px(b.Width()), px(b.Height()), style)
}

func (c svgCanvas) Polyline(xs, ys []float64, stroke string, width float64) {
	ix, iy := make([]int, len(xs)), make([]int, len(ys))
	for i := range xs {
		ix[i], iy[i] = px(xs[i]), px(ys[i])
	}
	c.SVG.Polyline(ix, iy, fmt.Sprintf("fill:none;stroke:%s;stroke-width:%.6g", stroke, width))
}

func (c svgCanvas) Text(x, y float64, s string, anchor layout.Anchor, rotate float64, colour string) {
	attrs := fmt.Sprintf(`text-anchor="%s" dy=".3em" fill="%s"`, anchor, colour)
	if rotate != 0 {
		attrs += fmt.Sprintf(` transform="rotate(%.6g %d %d)"`, rotate, px(x), px(y))
	}
	c.SVG.Text(px(x), px(y), s, attrs)
}
