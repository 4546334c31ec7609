package ticks

import (
	"cmp"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
)

// Value is the set of axis domain types.
type Value interface {
	float64 | time.Time
}

// Position maps v onto the numeric axis line. Times map to fractional Unix
// seconds; the zero time is treated as missing and maps to NaN.
func Position[T Value](v T) float64 {
	switch v := any(v).(type) {
	case float64:
		return v
	case time.Time:
		if v.IsZero() {
			return math.NaN()
		}
		return float64(v.Unix()) + float64(v.Nanosecond())/1e9
	}
	panic("ticks: unsupported value type")
}

// Compare orders two domain values. NaN sorts before every float.
func Compare[T Value](a, b T) int {
	switch a := any(a).(type) {
	case float64:
		return cmp.Compare(a, any(b).(float64))
	case time.Time:
		return a.Compare(any(b).(time.Time))
	}
	panic("ticks: unsupported value type")
}

// Range is the extent of an axis in its own domain.
type Range[T Value] struct {
	First T
	Last  T
	Valid bool
}

// NewRange returns a valid range from first to last.
func NewRange[T Value](first, last T) Range[T] {
	return Range[T]{First: first, Last: last, Valid: true}
}

// Positions returns the range in position space. An invalid range is
// reported as (0, 0).
func (r Range[T]) Positions() (float64, float64) {
	if !r.Valid {
		return 0, 0
	}
	return Position(r.First), Position(r.Last)
}

// Extent returns the range covered by values. Values whose position is
// not finite are ignored; if none remain the range is invalid.
func Extent[T Value](values []T) Range[T] {
	finite := make([]float64, 0, len(values))
	index := make([]int, 0, len(values))
	for i, v := range values {
		p := Position(v)
		if math.IsNaN(p) || math.IsInf(p, 0) {
			continue
		}
		finite = append(finite, p)
		index = append(index, i)
	}
	if len(finite) == 0 {
		return Range[T]{}
	}
	return NewRange(values[index[floats.MinIdx(finite)]], values[index[floats.MaxIdx(finite)]])
}
