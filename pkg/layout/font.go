package layout

import (
	"golang.org/x/image/font"
)

// Default font metrics in pixels.
const (
	DefaultFontHeight = 16
	DefaultFontWidth  = 10
)

// FontMetrics is the line height and average character advance used to
// size text bands. Labels are assumed monospaced at Width per cell.
type FontMetrics struct {
	Height float64 `json:"height" toml:"height" yaml:"height"`
	Width  float64 `json:"width" toml:"width" yaml:"width"`
}

// DefaultFont returns the default metrics.
func DefaultFont() FontMetrics {
	return FontMetrics{Height: DefaultFontHeight, Width: DefaultFontWidth}
}

// WithDefaults fills zero fields from DefaultFont.
func (f FontMetrics) WithDefaults() FontMetrics {
	if f.Height <= 0 {
		f.Height = DefaultFontHeight
	}
	if f.Width <= 0 {
		f.Width = DefaultFontWidth
	}
	return f
}

const fontSample = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// FontFromFace measures a font face: the line height from its metrics
// and the width as the mean advance over digits and letters.
func FontFromFace(face font.Face) FontMetrics {
	height := face.Metrics().Height.Ceil()
	advance := font.MeasureString(face, fontSample)
	return FontMetrics{
		Height: float64(height),
		Width:  float64(advance) / 64 / float64(len(fontSample)),
	}
}
