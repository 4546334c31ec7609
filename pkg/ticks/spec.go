package ticks

import (
	"strings"
	"time"

	"github.com/matzehuels/chartlayout/pkg/errors"
)

// Tick generator kinds accepted by Spec.
const (
	KindFloats     = "floats"
	KindTimestamps = "timestamps"
	KindNone       = "none"
)

// Spec selects and configures a generator declaratively.
//
// An empty Kind picks the generator matching the axis type. Periods and
// Format only apply to timestamps; Format is "short" (the default), "long"
// or a Go time layout such as "2006-01-02".
type Spec struct {
	Kind     string   `json:"kind,omitempty" toml:"kind" yaml:"kind,omitempty"`
	Periods  []string `json:"periods,omitempty" toml:"periods" yaml:"periods,omitempty"`
	Format   string   `json:"format,omitempty" toml:"format" yaml:"format,omitempty"`
	MinChars int      `json:"min_chars,omitempty" toml:"min_chars" yaml:"min_chars,omitempty"`
}

func (s Spec) kind() string { return strings.ToLower(strings.TrimSpace(s.Kind)) }

// IsNone reports whether the axis should carry no ticks at all.
func (s Spec) IsNone() bool { return s.kind() == KindNone }

// Validate checks the fields without regard to the axis type.
func (s Spec) Validate() error {
	switch s.kind() {
	case "", KindFloats, KindTimestamps, KindNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown tick kind %q (want floats, timestamps or none)", s.Kind)
	}
	if s.MinChars < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "min_chars cannot be negative, got %d", s.MinChars)
	}
	if _, err := ParsePeriods(s.Periods); err != nil {
		return err
	}
	if s.kind() == KindFloats && (len(s.Periods) > 0 || s.Format != "") {
		return errors.New(errors.ErrCodeInvalidInput, "periods and format only apply to timestamps")
	}
	return nil
}

// Floats returns the generator for a numeric axis, or nil for KindNone.
func (s Spec) Floats() (Generator[float64], error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	switch s.kind() {
	case KindNone:
		return nil, nil
	case KindTimestamps:
		return nil, errors.New(errors.ErrCodeInvalidInput, "timestamp ticks on a numeric axis")
	}
	return AlignedFloats{}, nil
}

// Timestamps returns the generator for a time axis, or nil for KindNone.
func (s Spec) Timestamps() (Generator[time.Time], error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	switch s.kind() {
	case KindNone:
		return nil, nil
	case KindFloats:
		return nil, errors.New(errors.ErrCodeInvalidInput, "float ticks on a time axis")
	}

	periods := AllPeriods()
	if len(s.Periods) > 0 {
		periods, _ = ParsePeriods(s.Periods)
	}
	var opts []TimestampOption
	switch strings.ToLower(s.Format) {
	case "", "short":
	case "long":
		opts = append(opts, WithLongFormat())
	default:
		opts = append(opts, WithLayout(s.Format))
	}
	return NewTimestamps(periods, opts...), nil
}
