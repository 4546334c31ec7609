package ticks

import (
	"math"

	"github.com/mattn/go-runewidth"
)

// LabelFunc renders a tick for measurement. It lets a caller measure a
// decorated label (prefix, unit) rather than the generator's raw output.
type LabelFunc[T Value] func(v T, state Format[T]) string

// IdentityLabel measures the generator's own formatting.
func IdentityLabel[T Value](v T, state Format[T]) string { return state.Format(v) }

// VerticalSpan stacks labels one per line.
type VerticalSpan[T Value] struct {
	LineHeight  float64
	AvailHeight float64
}

// NewVerticalSpan returns a span of availHeight holding lines of lineHeight.
func NewVerticalSpan[T Value](lineHeight, availHeight float64) VerticalSpan[T] {
	return VerticalSpan[T]{LineHeight: lineHeight, AvailHeight: availHeight}
}

func (s VerticalSpan[T]) Length() float64 { return s.AvailHeight }

func (s VerticalSpan[T]) Consumed(_ Format[T], ticks []T) float64 {
	return s.LineHeight * float64(len(ticks))
}

// HorizontalSpan lays labels side by side. Every label is given the width
// of the widest one so that spacing stays even.
type HorizontalSpan[T Value] struct {
	FontWidth    float64
	MinChars     int
	PaddingWidth float64
	AvailWidth   float64
	Label        LabelFunc[T]
}

// NewHorizontalSpan returns a span measuring labels with the generator's
// formatting.
func NewHorizontalSpan[T Value](fontWidth float64, minChars int, paddingWidth, availWidth float64) HorizontalSpan[T] {
	return HorizontalSpan[T]{
		FontWidth:    fontWidth,
		MinChars:     minChars,
		PaddingWidth: paddingWidth,
		AvailWidth:   availWidth,
		Label:        IdentityLabel[T],
	}
}

func (s HorizontalSpan[T]) Length() float64 { return s.AvailWidth }

func (s HorizontalSpan[T]) Consumed(state Format[T], ticks []T) float64 {
	label := s.Label
	if label == nil {
		label = IdentityLabel[T]
	}
	maxChars := 0
	for _, t := range ticks {
		maxChars = max(maxChars, runewidth.StringWidth(label(t, state)), s.MinChars)
	}
	width := float64(maxChars)*s.FontWidth + s.PaddingWidth*2
	return width * float64(len(ticks))
}

// fits converts a length and a per-tick cost into a tick count.
func fits(length, consumed float64) int {
	if consumed <= 0 {
		return maxFloatTicks
	}
	n := math.Floor(length / consumed)
	if n <= 0 || math.IsNaN(n) {
		return 0
	}
	return int(math.Min(n, maxFloatTicks))
}
