package sink

import (
	"bytes"
	"math"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/chartlayout/pkg/bounds"
	"github.com/matzehuels/chartlayout/pkg/chart"
	"github.com/matzehuels/chartlayout/pkg/errors"
	"github.com/matzehuels/chartlayout/pkg/layout"
)

// MaxRasterPixels caps the pixel count of a rendered PNG, after scaling.
const MaxRasterPixels = 1 << 25

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	theme Theme
	debug bool
	scale float64
	face  font.Face
}

// WithScale sets the pixel density (default 2 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithPNGDebug outlines every band and component.
func WithPNGDebug() PNGOption { return func(r *pngRenderer) { r.debug = true } }

// WithPNGTheme replaces DefaultTheme.
func WithPNGTheme(t Theme) PNGOption { return func(r *pngRenderer) { r.theme = t } }

// WithFace sets the label font face. The default is basicfont.Face7x13;
// lay the chart out with layout.FontFromFace of the same face for labels
// that fill their bands exactly.
func WithFace(f font.Face) PNGOption { return func(r *pngRenderer) { r.face = f } }

// RenderPNG rasterises res.
func RenderPNG(res chart.Result, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{theme: DefaultTheme(), scale: 2, face: basicfont.Face7x13}
	for _, opt := range opts {
		opt(&r)
	}

	fw := math.Max(1, math.Round(res.Layout.Outer.Width()*r.scale))
	fh := math.Max(1, math.Round(res.Layout.Outer.Height()*r.scale))
	if !(fw*fh <= MaxRasterPixels) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"raster of %gx%g pixels exceeds the limit of %d; lower the scale or the chart size", fw, fh, MaxRasterPixels)
	}
	dc := gg.NewContext(int(fw), int(fh))
	dc.Scale(r.scale, r.scale)
	dc.SetFontFace(r.face)

	scene{res: res, theme: r.theme, debug: r.debug}.draw(ggCanvas{dc})

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type ggCanvas struct{ dc *gg.Context }

func (c ggCanvas) Rect(b bounds.Bounds, fill, stroke string) {
	if fill != "" {
		c.dc.DrawRectangle(b.Left, b.Top, b.Width(), b.Height())
		c.dc.SetHexColor(fill)
		c.dc.Fill()
	}
	if stroke != "" {
		c.dc.DrawRectangle(b.Left, b.Top, b.Width(), b.Height())
		c.dc.SetHexColor(stroke)
		c.dc.SetLineWidth(1)
		c.dc.Stroke()
	}
}

func (c ggCanvas) Polyline(xs, ys []float64, stroke string, width float64) {
	if len(xs) == 0 {
		return
	}
	c.dc.MoveTo(xs[0], ys[0])
	for i := 1; i < len(xs); i++ {
		c.dc.LineTo(xs[i], ys[i])
	}
	c.dc.SetHexColor(stroke)
	c.dc.SetLineWidth(width)
	c.dc.Stroke()
}

func (c ggCanvas) Text(x, y float64, s string, anchor layout.Anchor, rotate float64, colour string) {
	c.dc.Push()
	defer c.dc.Pop()
	if rotate != 0 {
		c.dc.RotateAbout(gg.Radians(rotate), x, y)
	}
	c.dc.SetHexColor(colour)
	c.dc.DrawStringAnchored(s, x, y, anchor.Pick(0, 0.5, 1), 0.5)
}
