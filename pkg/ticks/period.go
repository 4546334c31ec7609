package ticks

import (
	"strings"
	"time"

	"github.com/matzehuels/chartlayout/pkg/errors"
)

// Period is a calendar granularity, ordered from finest to coarsest.
type Period int

const (
	Nanosecond Period = iota
	Microsecond
	Millisecond
	Second
	Minute
	Hour
	Day
	Month
	Year
)

// AllPeriods lists every period, coarsest first.
func AllPeriods() []Period {
	return []Period{Year, Month, Day, Hour, Minute, Second, Millisecond, Microsecond, Nanosecond}
}

var periodNames = map[Period]string{
	Nanosecond:  "nanosecond",
	Microsecond: "microsecond",
	Millisecond: "millisecond",
	Second:      "second",
	Minute:      "minute",
	Hour:        "hour",
	Day:         "day",
	Month:       "month",
	Year:        "year",
}

// String returns the lower-case period name.
func (p Period) String() string {
	if s, ok := periodNames[p]; ok {
		return s
	}
	return "unknown"
}

var periodAliases = map[string]Period{
	"ns": Nanosecond, "us": Microsecond, "µs": Microsecond, "ms": Millisecond,
	"s": Second, "m": Minute, "h": Hour, "d": Day, "M": Month, "Y": Year,
}

// ParsePeriod accepts a period name ("hour"), its plural ("hours") or a
// unit abbreviation ("h", "ms", "M" for month, "Y" for year).
func ParsePeriod(s string) (Period, error) {
	if p, ok := periodAliases[s]; ok {
		return p, nil
	}
	name := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s")
	for p, n := range periodNames {
		if n == name {
			return p, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidPeriod, "unknown period %q", s)
}

// ParsePeriods parses a list of period names.
func ParsePeriods(names []string) ([]Period, error) {
	out := make([]Period, 0, len(names))
	for _, n := range names {
		p, err := ParsePeriod(n)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// duration is the fixed length of sub-day periods.
func (p Period) duration() time.Duration {
	switch p {
	case Nanosecond:
		return time.Nanosecond
	case Microsecond:
		return time.Microsecond
	case Millisecond:
		return time.Millisecond
	case Second:
		return time.Second
	case Minute:
		return time.Minute
	case Hour:
		return time.Hour
	case Day:
		return 24 * time.Hour
	}
	return 0
}

// Truncate rounds t down to the start of its period in t's location. The
// Unix epoch is aligned to every period.
func (p Period) Truncate(t time.Time) time.Time {
	if t.UnixNano() == 0 {
		return t
	}
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	ns := t.Nanosecond()
	loc := t.Location()
	switch p {
	case Year:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	case Month:
		return time.Date(y, mo, 1, 0, 0, 0, 0, loc)
	case Day:
		return time.Date(y, mo, d, 0, 0, 0, 0, loc)
	case Hour:
		return time.Date(y, mo, d, h, 0, 0, 0, loc)
	case Minute:
		return time.Date(y, mo, d, h, mi, 0, 0, loc)
	case Second:
		return time.Date(y, mo, d, h, mi, s, 0, loc)
	case Millisecond:
		return time.Date(y, mo, d, h, mi, s, ns-ns%1e6, loc)
	case Microsecond:
		return time.Date(y, mo, d, h, mi, s, ns-ns%1e3, loc)
	}
	return t
}

// Aligned reports whether t sits exactly on a period boundary.
func (p Period) Aligned(t time.Time) bool {
	return p.Truncate(t).Equal(t)
}

// Add advances t by one period. Days, months and years follow the
// calendar; shorter periods are fixed durations.
func (p Period) Add(t time.Time) time.Time {
	switch p {
	case Year:
		return t.AddDate(1, 0, 0)
	case Month:
		return t.AddDate(0, 1, 0)
	case Day:
		return t.AddDate(0, 0, 1)
	}
	return t.Add(p.duration())
}

// estimate approximates how many period boundaries lie in [from, to).
func (p Period) estimate(from, to time.Time) int {
	switch p {
	case Year:
		return to.Year() - from.Year() + 1
	case Month:
		return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month()) + 1
	}
	// Sub saturates for spans beyond ~292 years.
	n := to.Sub(from) / p.duration()
	if n < 0 {
		return 0
	}
	return int(n) + 1
}

// AlignedRange returns every period boundary in [from, to).
func (p Period) AlignedRange(from, to time.Time) []time.Time {
	var out []time.Time
	at := p.Truncate(from)
	for at.Before(from) {
		at = p.Add(at)
	}
	for ; at.Before(to); at = p.Add(at) {
		out = append(out, at)
	}
	return out
}

// ShortLayout is the compact layout for labels where space is scarce.
func (p Period) ShortLayout() string {
	switch p {
	case Nanosecond:
		return "15:04:05.000000000"
	case Microsecond:
		return "15:04:05.000000"
	case Millisecond:
		return "15:04:05.000"
	case Second:
		return "15:04:05"
	case Minute, Hour:
		return "15:04"
	case Day:
		return "Mon"
	case Month:
		return "Jan"
	}
	return "2006"
}

// LongLayout is an unambiguous layout including date and zone.
func (p Period) LongLayout() string {
	switch p {
	case Nanosecond:
		return "2006-01-02 15:04:05.000000000 MST"
	case Microsecond:
		return "2006-01-02 15:04:05.000000 MST"
	case Millisecond:
		return "2006-01-02 15:04:05.000 MST"
	case Second:
		return "2006-01-02 15:04:05 MST"
	case Minute, Hour, Day:
		return "2006-01-02 15:04 MST"
	case Month:
		return "January 2006 MST"
	}
	return "2006 MST"
}
