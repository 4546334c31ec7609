package ticks

import (
	"slices"
	"sort"
	"time"
)

// DefaultMaxCandidates caps how many boundaries a single period may
// produce before finer periods are abandoned.
const DefaultMaxCandidates = 100_000

// TimestampFormat renders t for the period it was selected at.
type TimestampFormat func(p Period, t time.Time) string

// ShortFormat uses Period.ShortLayout, e.g. "14:03", "Mar" or "2015".
func ShortFormat(p Period, t time.Time) string { return t.Format(p.ShortLayout()) }

// LongFormat uses Period.LongLayout, e.g. "2015-03-01 14:03 UTC".
func LongFormat(p Period, t time.Time) string { return t.Format(p.LongLayout()) }

// LayoutFormat formats every tick with a fixed Go time layout.
func LayoutFormat(layout string) TimestampFormat {
	return func(_ Period, t time.Time) string { return t.Format(layout) }
}

// Timestamps generates calendar-aligned time ticks.
type Timestamps struct {
	periods       []Period
	format        TimestampFormat
	maxCandidates int
}

// TimestampOption configures Timestamps.
type TimestampOption func(*Timestamps)

// WithLongFormat selects LongFormat.
func WithLongFormat() TimestampOption {
	return func(g *Timestamps) { g.format = LongFormat }
}

// WithLayout formats every tick with a fixed Go time layout.
func WithLayout(layout string) TimestampOption {
	return func(g *Timestamps) { g.format = LayoutFormat(layout) }
}

// WithFormat installs a custom formatter. It receives the coarsest period
// the tick is aligned to.
func WithFormat(f TimestampFormat) TimestampOption {
	return func(g *Timestamps) {
		if f != nil {
			g.format = f
		}
	}
}

// WithMaxCandidates overrides DefaultMaxCandidates.
func WithMaxCandidates(n int) TimestampOption {
	return func(g *Timestamps) { g.maxCandidates = n }
}

// NewTimestamps creates a generator over periods. Periods are
// de-duplicated and tried coarsest first. The short format is the default.
func NewTimestamps(periods []Period, opts ...TimestampOption) *Timestamps {
	ps := slices.Clone(periods)
	slices.Sort(ps)
	ps = slices.Compact(ps)
	slices.Reverse(ps)

	g := &Timestamps{
		periods:       ps,
		format:        ShortFormat,
		maxCandidates: DefaultMaxCandidates,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// DefaultTimestamps uses every period with short labels.
func DefaultTimestamps() *Timestamps {
	return NewTimestamps(AllPeriods())
}

// Periods returns the periods tried, coarsest first.
func (g *Timestamps) Periods() []Period { return slices.Clone(g.periods) }

// Generate implements Generator.
//
// Periods are tried coarsest first. Each contributes its boundaries in
// [first, last), merged with the ticks already chosen and thinned by an
// increasing stride until they fit. Iteration ends once a period needed
// thinning or used more than half of the span, since a finer period could
// no longer dominate the axis.
func (g *Timestamps) Generate(first, last time.Time, span Span[time.Time]) GeneratedTicks[time.Time] {
	if len(g.periods) == 0 || !first.Before(last) {
		return None[time.Time]()
	}

	var ticks []time.Time
	state := g.state(g.periods[0])

outer:
	for _, period := range g.periods {
		if g.maxCandidates > 0 && period.estimate(first, last) > g.maxCandidates {
			break
		}
		candidates := period.AlignedRange(first, last)
		for sample := 1; sample <= len(candidates); sample++ {
			sampled := mergeTicks(ticks, candidates, sample)
			state = g.state(period)
			used := span.Consumed(state, sampled)
			if used <= span.Length() {
				ticks = sampled
				if sample != 1 || used > span.Length()/2 {
					break outer
				}
				break
			}
			if len(sampled) == 1 {
				// Not even one label fits; finer periods won't either.
				break outer
			}
		}
	}

	return GeneratedTicks[time.Time]{Ticks: ticks, State: state}
}

func (g *Timestamps) state(p Period) timestampState {
	return timestampState{format: g.format, periods: g.periods, period: p}
}

// timestampState formats each tick at the coarsest period it is aligned
// to, falling back to the period that was selected.
type timestampState struct {
	format  TimestampFormat
	periods []Period
	period  Period
}

func (s timestampState) Format(t time.Time) string {
	p := s.period
	for _, coarser := range s.periods {
		if coarser.Aligned(t) {
			p = coarser
			break
		}
	}
	return s.format(p, t)
}

// mergeTicks thins candidates to every sample-th boundary, anchored on the
// first candidate already present in existing, and unions the result with
// existing.
func mergeTicks(existing, candidates []time.Time, sample int) []time.Time {
	anchor := sample - 1
	for _, t := range existing {
		i := sort.Search(len(candidates), func(i int) bool { return !candidates[i].Before(t) })
		if i < len(candidates) && candidates[i].Equal(t) {
			anchor = i
			break
		}
	}
	sampled := sampleTicks(candidates, anchor, sample)

	out := make([]time.Time, 0, len(existing)+len(sampled))
	i, j := 0, 0
	for i < len(existing) || j < len(sampled) {
		var next time.Time
		switch {
		case j >= len(sampled) || (i < len(existing) && existing[i].Before(sampled[j])):
			next = existing[i]
			i++
		default:
			next = sampled[j]
			j++
		}
		if n := len(out); n > 0 && out[n-1].Equal(next) {
			continue
		}
		out = append(out, next)
	}
	return out
}

// sampleTicks keeps every keepEvery-th tick such that ticks[align] is kept.
func sampleTicks[T any](ticks []T, align, keepEvery int) []T {
	mod := align % keepEvery
	out := make([]T, 0, len(ticks)/keepEvery+1)
	for i, t := range ticks {
		if i%keepEvery == mod {
			out = append(out, t)
		}
	}
	return out
}
