package ticks

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPosition(t *testing.T) {
	assert.Equal(t, 1.5, Position(1.5))
	assert.Equal(t, 12.25, Position(time.Unix(12, 250_000_000)))
	assert.True(t, math.IsNaN(Position(time.Time{})))
}

func TestExtent(t *testing.T) {
	t.Run("floats skip non-finite", func(t *testing.T) {
		r := Extent([]float64{3, math.NaN(), -2, math.Inf(1), 7, math.Inf(-1)})
		assert.True(t, r.Valid)
		assert.Equal(t, -2.0, r.First)
		assert.Equal(t, 7.0, r.Last)
	})

	t.Run("all missing", func(t *testing.T) {
		r := Extent([]float64{math.NaN(), math.NaN()})
		assert.False(t, r.Valid)
		lo, hi := r.Positions()
		assert.Zero(t, lo)
		assert.Zero(t, hi)
	})

	t.Run("empty", func(t *testing.T) {
		assert.False(t, Extent[time.Time](nil).Valid)
	})

	t.Run("times skip zero", func(t *testing.T) {
		a := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
		b := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
		r := Extent([]time.Time{b, {}, a})
		assert.True(t, r.Valid)
		assert.True(t, r.First.Equal(a))
		assert.True(t, r.Last.Equal(b))
	})
}

func TestGeneratedTicksEqual(t *testing.T) {
	a := GeneratedTicks[float64]{Ticks: []float64{1, 2}, State: alignedState{scale: 0}}
	b := GeneratedTicks[float64]{Ticks: []float64{1, 2}, State: alignedState{scale: -3}}
	c := GeneratedTicks[float64]{Ticks: []float64{1, 3}, State: alignedState{scale: 0}}
	assert.True(t, a.Equal(b), "state must not affect equality")
	assert.False(t, a.Equal(c))
	assert.True(t, None[float64]().Equal(None[float64]()))
}

func TestLabels(t *testing.T) {
	g := GeneratedTicks[float64]{Ticks: []float64{0, 0.5}, State: alignedState{scale: -1}}
	assert.Equal(t, []Label{{Position: 0, Text: "0.0"}, {Position: 0.5, Text: "0.5"}}, g.Labels())
}
