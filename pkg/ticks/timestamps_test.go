package ticks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timeSpan(width float64) Span[time.Time] {
	return NewHorizontalSpan[time.Time](6, 0, 2, width)
}

func utc(y int, mo time.Month, d, h, mi, s, ns int) time.Time {
	return time.Date(y, mo, d, h, mi, s, ns, time.UTC)
}

func TestTimestampsGenerate(t *testing.T) {
	gen := DefaultTimestamps()

	tests := []struct {
		name        string
		first, last time.Time
		width       float64
		want        []string
	}{
		{
			name:  "years",
			first: utc(2014, 3, 1, 0, 0, 0, 0),
			last:  utc(2018, 7, 5, 0, 0, 0, 0),
			width: (4*6 + 4) * 4,
			want:  []string{"2015", "2016", "2017", "2018"},
		},
		{
			name:  "months with year boundary",
			first: utc(2014, 3, 1, 0, 0, 0, 0),
			last:  utc(2015, 3, 5, 0, 0, 0, 0),
			width: (4*6 + 4) * 14,
			want: []string{
				"Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec", "2015", "Feb", "Mar",
			},
		},
		{
			name:  "single nanosecond",
			first: utc(2015, 1, 1, 0, 0, 0, 0),
			last:  utc(2015, 1, 1, 0, 0, 0, 1),
			width: 1_000_000,
			want:  []string{"2015"},
		},
		{
			name:  "drill down to nanoseconds",
			first: utc(2015, 1, 1, 0, 0, 0, 0),
			last:  utc(2015, 1, 1, 0, 0, 0, 3),
			width: 1_000_000,
			want:  []string{"2015", "00:00:00.000000001", "00:00:00.000000002"},
		},
		{
			name:  "sampled hours",
			first: utc(2005, 3, 5, 6, 0, 0, 0),
			last:  utc(2005, 3, 5, 12, 0, 0, 0),
			width: (5*6 + 4) * 3,
			want:  []string{"07:00", "09:00", "11:00"},
		},
		{
			name:  "epoch",
			first: time.Unix(0, 0).UTC(),
			last:  time.Unix(12, 6_000_000).UTC(),
			width: 1000,
			want: []string{
				"1970", "00:00:01", "00:00:02", "00:00:03", "00:00:04", "00:00:05", "00:00:06",
				"00:00:07", "00:00:08", "00:00:09", "00:00:10", "00:00:11", "00:00:12",
			},
		},
		{
			name:  "no range",
			first: utc(2015, 1, 1, 0, 0, 0, 0),
			last:  utc(2015, 1, 1, 0, 0, 0, 0),
			width: 1000,
			want:  []string{},
		},
		{
			name:  "small space",
			first: time.Unix(0, 0).UTC(),
			last:  time.Unix(0, 3_000_000).UTC(),
			width: 10,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := gen.Generate(tt.first, tt.last, timeSpan(tt.width))
			assert.Equal(t, tt.want, got.Strings())
		})
	}
}

func TestTimestampsDeterministic(t *testing.T) {
	gen := DefaultTimestamps()
	first := utc(2021, 11, 3, 17, 12, 0, 0)
	last := utc(2022, 2, 9, 4, 0, 0, 0)
	for _, width := range []float64{50, 200, 640, 1920} {
		a := gen.Generate(first, last, timeSpan(width))
		b := gen.Generate(first, last, timeSpan(width))
		assert.True(t, a.Equal(b), "width %v", width)
		assert.Equal(t, a.Strings(), b.Strings())
	}
}

func TestTimestampsEmptyPeriods(t *testing.T) {
	gen := NewTimestamps(nil)
	got := gen.Generate(utc(2014, 3, 1, 0, 0, 0, 0), utc(2018, 7, 5, 0, 0, 0, 0), timeSpan(1000))
	assert.Empty(t, got.Ticks)
}

func TestTimestampsPeriodsSorted(t *testing.T) {
	gen := NewTimestamps([]Period{Hour, Year, Hour, Day})
	assert.Equal(t, []Period{Year, Day, Hour}, gen.Periods())
}

func TestTimestampsFormats(t *testing.T) {
	first := utc(2005, 3, 5, 6, 0, 0, 0)
	last := utc(2005, 3, 5, 12, 0, 0, 0)
	span := timeSpan(10_000)

	long := NewTimestamps(AllPeriods(), WithLongFormat()).Generate(first, last, span)
	require.NotEmpty(t, long.Ticks)
	assert.Equal(t, "2005-03-05 06:00 UTC", long.State.Format(long.Ticks[0]))

	layout := NewTimestamps(AllPeriods(), WithLayout("15h")).Generate(first, last, span)
	require.NotEmpty(t, layout.Ticks)
	assert.Equal(t, "06h", layout.State.Format(layout.Ticks[0]))

	var seen []Period
	custom := NewTimestamps([]Period{Day, Hour}, WithFormat(func(p Period, at time.Time) string {
		seen = append(seen, p)
		return p.String()
	})).Generate(first, last, span)
	require.NotEmpty(t, custom.Ticks)
	assert.Equal(t, "hour", custom.State.Format(custom.Ticks[0]))
	assert.Contains(t, seen, Hour)
}

func TestTimestampsMaxCandidates(t *testing.T) {
	gen := NewTimestamps([]Period{Second, Millisecond}, WithMaxCandidates(100))
	got := gen.Generate(time.Unix(0, 0).UTC(), time.Unix(60, 0).UTC(), timeSpan(1_000_000))
	// Seconds fit; milliseconds would produce 60k candidates and are skipped.
	assert.Len(t, got.Ticks, 60)
}

func TestSampleTicks(t *testing.T) {
	six := []int{0, 1, 2, 3, 4, 5}
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, sampleTicks(six, 0, 1))
	assert.Equal(t, []int{1, 3, 5}, sampleTicks(six, 1, 2))
	assert.Equal(t, []int{2, 5}, sampleTicks(six, 2, 3))
	assert.Equal(t, []int{3}, sampleTicks(six, 3, 4))
	assert.Equal(t, []int{4}, sampleTicks(six, 4, 5))
	assert.Equal(t, []int{5}, sampleTicks(six, 5, 6))
	assert.Empty(t, sampleTicks(six, 6, 7))

	sixty := make([]int, 60)
	for i := range sixty {
		sixty[i] = i
	}
	assert.Equal(t, sixty, sampleTicks(sixty, 0, 1))
	for i := 1; i < 100; i++ {
		assert.Len(t, sampleTicks(sixty, i-1, i), 60/i, "i=%d", i)
	}
}

func TestMergeTicksAnchorsOnExisting(t *testing.T) {
	existing := []time.Time{utc(2015, 1, 1, 0, 0, 0, 0)}
	candidates := Month.AlignedRange(utc(2014, 10, 1, 0, 0, 0, 0), utc(2015, 5, 1, 0, 0, 0, 0))
	got := mergeTicks(existing, candidates, 3)
	want := []time.Time{
		utc(2014, 10, 1, 0, 0, 0, 0),
		utc(2015, 1, 1, 0, 0, 0, 0),
		utc(2015, 4, 1, 0, 0, 0, 0),
	}
	assert.Equal(t, want, got)
}

func TestPeriodAlignedRange(t *testing.T) {
	var years []int
	for _, at := range Year.AlignedRange(utc(2014, 3, 1, 0, 0, 0, 0), utc(2018, 7, 5, 0, 0, 0, 0)) {
		assert.Equal(t, time.January, at.Month())
		assert.Equal(t, 1, at.Day())
		assert.Zero(t, at.Hour()+at.Minute()+at.Second()+at.Nanosecond())
		years = append(years, at.Year())
	}
	assert.Equal(t, []int{2015, 2016, 2017, 2018}, years)

	assert.Empty(t, Month.AlignedRange(utc(2014, 3, 5, 0, 0, 0, 0), utc(2014, 3, 30, 0, 0, 0, 0)))

	var secs []int
	for _, at := range Second.AlignedRange(utc(2027, 4, 5, 1, 2, 57, 0), utc(2027, 4, 5, 1, 3, 7, 0)) {
		secs = append(secs, at.Second())
	}
	assert.Equal(t, []int{57, 58, 59, 0, 1, 2, 3, 4, 5, 6}, secs)
}

func TestPeriodTruncate(t *testing.T) {
	at := utc(2014, 2, 3, 4, 5, 6, 7)
	noNanos := utc(2014, 2, 3, 4, 5, 6, 0)

	tests := []struct {
		period Period
		want   time.Time
	}{
		{Year, utc(2014, 1, 1, 0, 0, 0, 0)},
		{Month, utc(2014, 2, 1, 0, 0, 0, 0)},
		{Day, utc(2014, 2, 3, 0, 0, 0, 0)},
		{Hour, utc(2014, 2, 3, 4, 0, 0, 0)},
		{Minute, utc(2014, 2, 3, 4, 5, 0, 0)},
		{Second, noNanos},
		{Millisecond, noNanos},
		{Microsecond, noNanos},
		{Nanosecond, at},
	}

	for _, tt := range tests {
		t.Run(tt.period.String(), func(t *testing.T) {
			assert.True(t, tt.want.Equal(tt.period.Truncate(at)), "got %v", tt.period.Truncate(at))
		})
	}
}

func TestPeriodTruncateEpochInZone(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	epoch := time.Unix(0, 0).In(loc)
	for _, p := range AllPeriods() {
		assert.True(t, p.Aligned(epoch), "%s", p)
	}
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		in      string
		want    Period
		wantErr bool
	}{
		{"year", Year, false},
		{"Years", Year, false},
		{"M", Month, false},
		{"m", Minute, false},
		{"ms", Millisecond, false},
		{"hours", Hour, false},
		{"ns", Nanosecond, false},
		{"fortnight", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePeriod(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
