package ticks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/chartlayout/pkg/errors"
)

func TestSpecValidate(t *testing.T) {
	tests := []struct {
		name    string
		spec    Spec
		wantErr bool
	}{
		{"empty", Spec{}, false},
		{"floats", Spec{Kind: "Floats", MinChars: 4}, false},
		{"timestamps", Spec{Kind: "timestamps", Periods: []string{"year", "M"}, Format: "long"}, false},
		{"none", Spec{Kind: "none"}, false},
		{"unknown kind", Spec{Kind: "logs"}, true},
		{"negative min chars", Spec{MinChars: -1}, true},
		{"bad period", Spec{Periods: []string{"fortnight"}}, true},
		{"floats with format", Spec{Kind: "floats", Format: "long"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSpecFloats(t *testing.T) {
	gen, err := Spec{}.Floats()
	require.NoError(t, err)
	assert.Equal(t, AlignedFloats{}, gen)

	gen, err = Spec{Kind: "none"}.Floats()
	require.NoError(t, err)
	assert.Nil(t, gen)

	_, err = Spec{Kind: "timestamps"}.Floats()
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestSpecTimestamps(t *testing.T) {
	gen, err := Spec{Periods: []string{"day", "year", "days"}}.Timestamps()
	require.NoError(t, err)
	ts, ok := gen.(*Timestamps)
	require.True(t, ok)
	assert.Equal(t, []Period{Year, Day}, ts.Periods())

	gen, err = Spec{Kind: "timestamps", Format: "2006/01"}.Timestamps()
	require.NoError(t, err)
	got := gen.Generate(utc(2014, 3, 1, 0, 0, 0, 0), utc(2018, 7, 5, 0, 0, 0, 0), timeSpan(1000))
	require.NotEmpty(t, got.Ticks)
	assert.Equal(t, got.Ticks[0].Format("2006/01"), got.Strings()[0])

	gen, err = Spec{Kind: "none"}.Timestamps()
	require.NoError(t, err)
	assert.Nil(t, gen)

	_, err = Spec{Kind: "floats"}.Timestamps()
	assert.Error(t, err)
}

func TestSpecLongFormat(t *testing.T) {
	gen, err := Spec{Format: "long", Periods: []string{"year"}}.Timestamps()
	require.NoError(t, err)
	got := gen.Generate(utc(2014, 3, 1, 0, 0, 0, 0), utc(2016, 7, 5, 0, 0, 0, 0), NewHorizontalSpan[time.Time](6, 0, 2, 1000))
	require.Len(t, got.Ticks, 2)
	assert.Equal(t, got.Ticks[0].Format(Year.LongLayout()), got.Strings()[0])
}
