package config

import (
	"strings"

	"github.com/matzehuels/chartlayout/pkg/aspect"
	"github.com/matzehuels/chartlayout/pkg/errors"
	"github.com/matzehuels/chartlayout/pkg/layout"
	"github.com/matzehuels/chartlayout/pkg/ticks"
)

func invalid(cause error, format string, args ...any) error {
	return errors.Wrap(errors.ErrCodeInvalidConfig, cause, format, args...)
}

// Validate reports the first problem that would stop Build.
func (d *Document) Validate() error {
	if _, err := d.aspect(); err != nil {
		return invalid(err, "aspect")
	}
	if err := d.Font.validate(); err != nil {
		return invalid(err, "font")
	}
	if p := d.Padding; p != nil {
		for _, side := range []struct {
			name string
			v    float64
		}{{"top", p.Top}, {"right", p.Right}, {"bottom", p.Bottom}, {"left", p.Left}} {
			if err := errors.ValidateDimension(side.name, side.v); err != nil {
				return invalid(err, "padding")
			}
		}
	}
	if err := d.X.validate(); err != nil {
		return invalid(err, "x axis")
	}
	if err := d.Y.validate(); err != nil {
		return invalid(err, "y axis")
	}
	for i, e := range d.Edges {
		if err := e.validate(); err != nil {
			return invalid(err, "edge %d", i+1)
		}
	}
	return d.Data.validate(d.X, d.Y)
}

func (d *Document) aspect() (aspect.AspectRatio, error) {
	if strings.TrimSpace(d.Aspect) == "" {
		return aspect.Environment(), nil
	}
	return aspect.Parse(d.Aspect)
}

func (f FontSpec) validate() error {
	if err := errors.ValidateDimension("height", f.Height); err != nil {
		return err
	}
	if err := errors.ValidateDimension("width", f.Width); err != nil {
		return err
	}
	_, err := lookupFace(f.Face)
	return err
}

func (a Axis) validate() error {
	switch a.Kind {
	case "", AxisFloat:
		if _, err := a.Ticks.Floats(); err != nil {
			return err
		}
	case AxisTime:
		if _, err := a.Ticks.Timestamps(); err != nil {
			return err
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown axis kind %q (want float or time)", a.Kind)
	}
	return errors.ValidateLabel(a.Label)
}

func (e EdgeSpec) validate() error {
	if _, err := layout.ParseEdge(e.Side); err != nil {
		return err
	}
	if _, err := layout.ParseKind(e.Component); err != nil {
		return err
	}
	if _, err := layout.ParseAnchor(e.Anchor); err != nil {
		return err
	}
	if e.MinChars < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "min_chars cannot be negative, got %d", e.MinChars)
	}
	return errors.ValidateLabel(e.Text)
}

func (d Data) validate(x, y Axis) error {
	for i, v := range d.X {
		if err := checkValue(x, v); err != nil {
			return invalid(err, "data.x[%d]", i)
		}
	}
	for _, s := range d.Series {
		if err := errors.ValidateLabel(s.Name); err != nil {
			return invalid(err, "series %q", s.Name)
		}
		if len(s.Y) > len(d.X) {
			return errors.New(errors.ErrCodeInvalidConfig,
				"series %q has %d values for %d x values", s.Name, len(s.Y), len(d.X))
		}
		for i, v := range s.Y {
			if err := checkValue(y, v); err != nil {
				return invalid(err, "series %q y[%d]", s.Name, i)
			}
		}
	}
	return nil
}

func checkValue(a Axis, v any) error {
	var err error
	if a.isTime() {
		_, err = toTime(v)
	} else {
		_, err = toFloat(v)
	}
	return err
}

// tickSpec returns the tick selection for a component, applying its min_chars override.
func (e EdgeSpec) tickSpec(a Axis) ticks.Spec {
	s := a.Ticks
	if e.MinChars > 0 {
		s.MinChars = e.MinChars
	}
	return s
}
