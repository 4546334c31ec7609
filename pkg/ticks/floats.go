package ticks

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// maxFloatTicks bounds the tick count when a span reports no cost per label.
const maxFloatTicks = 10_000

// AlignedFloats generates evenly spaced numeric ticks rounded to a shared
// decimal precision, e.g. 0.1, 0.2, 0.3.
//
// The precision is the coarsest that keeps neighbouring labels distinct for
// the number of labels that fit. Labels are left-padded to equal width.
type AlignedFloats struct{}

// Generate implements Generator.
func (AlignedFloats) Generate(first, last float64, span Span[float64]) GeneratedTicks[float64] {
	if !finite(first) || !finite(last) {
		return GeneratedTicks[float64]{State: alignedState{}}
	}
	scale, count := findPrecision(first, last, span)
	ticks := generateCount(first, last, count)

	state := alignedState{scale: scale}
	for _, t := range ticks {
		state.width = max(state.width, len(state.Format(t)))
	}
	return GeneratedTicks[float64]{Ticks: ticks, State: state}
}

// findPrecision returns the scale and count to use for the range and span.
//
// The first estimate shows one digit beyond the range's order of magnitude
// and counts how many of the widest endpoint labels fit. That count then
// decides how many more digits are needed to keep every label distinct.
// Intermediate scales are evaluated too, capped at the number of distinct
// values they can show, so that more room never yields fewer ticks.
func findPrecision(first, last float64, span Span[float64]) (int, int) {
	coarse := rangeScale(first, last) - 1
	lower := mockCount(first, last, coarse, span)
	fine := coarse - scale10(float64(lower)-2)

	scale, count := fine, mockCount(first, last, fine, span)
	for s := fine + 1; s <= coarse; s++ {
		c := min(mockCount(first, last, s, span), distinct(first, last, s))
		if c > count {
			scale, count = s, c
		}
	}
	return scale, count
}

// mockCount is how many of the widest endpoint label fit in span at scale.
func mockCount(first, last float64, scale int, span Span[float64]) int {
	state := alignedState{scale: scale}
	consumed := math.Max(span.Consumed(state, []float64{first}), span.Consumed(state, []float64{last}))
	return fits(span.Length(), consumed)
}

// distinct is the number of distinguishable ticks across the range when
// labels are shown to scale.
func distinct(first, last float64, scale int) int {
	n := math.Floor(math.Abs(last-first)/math.Pow10(scale)+1e-9) + 1
	if n > maxFloatTicks {
		return maxFloatTicks
	}
	return int(n)
}

// generateCount returns count evenly spaced values from first to last
// inclusive, or the midpoint when count is too small or the range empty.
func generateCount(first, last float64, count int) []float64 {
	if finite(last - first) {
		if count <= 1 || first == last {
			return []float64{first + (last-first)/2}
		}
		return floats.Span(make([]float64, count), first, last)
	}
	// The range overflows: interpolate between the endpoints instead.
	if count <= 1 {
		return []float64{first/2 + last/2}
	}
	out := make([]float64, count)
	for i := range out {
		t := float64(i) / float64(count-1)
		out[i] = first*(1-t) + last*t
	}
	out[0], out[count-1] = first, last
	return out
}

// rangeScale is scale10 of last-first, also for finite endpoints whose
// difference overflows.
func rangeScale(first, last float64) int {
	if d := last - first; finite(d) {
		return scale10(d)
	}
	return int(math.Floor(math.Log10(math.Abs(last/2-first/2)) + math.Log10(2)))
}

// alignedState formats values at a fixed scale. A positive scale zeroes
// that many trailing integer digits; a negative one shows that many
// decimal places.
type alignedState struct {
	scale int
	width int
}

func (s alignedState) Format(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	precision := 0
	if s.scale < 0 {
		precision = -s.scale
	}
	out := strconv.FormatFloat(v, 'f', precision, 64)
	if s.scale > 0 {
		neg := 0
		if strings.HasPrefix(out, "-") {
			neg = 1
		}
		// Always keep the leading digit.
		n := min(s.scale, len(out)-1-neg)
		out = out[:len(out)-n] + strings.Repeat("0", n)
	}
	if s.width > len(out) {
		out = fmt.Sprintf("%*s", s.width, out)
	}
	return out
}

// scale10 is the power of ten of x: 0 for 1..9, 1 for 10..99, -1 for
// 0.1..0.99. Zero and non-finite values map to 0.
func scale10(x float64) int {
	s := math.Floor(math.Log10(math.Abs(x)))
	if math.IsInf(s, 0) || math.IsNaN(s) {
		return 0
	}
	return int(s)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
