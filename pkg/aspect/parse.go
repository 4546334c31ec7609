package aspect

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/chartlayout/pkg/errors"
)

// Parse reads the textual form used by config files and flags:
//
//	outer:600x300   both outer dimensions
//	outer:600:2     outer width, ratio
//	outer:h300:2    outer height, ratio
//	inner:...       same forms for the plot area
//	env             size from the environment
//	env:2           width from the environment, ratio
//	env:h:2         height from the environment, ratio
func Parse(s string) (AspectRatio, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	invalid := func(cause error) (AspectRatio, error) {
		if cause != nil {
			return AspectRatio{}, errors.Wrap(errors.ErrCodeInvalidAspectRatio, cause, "invalid aspect ratio %q", s)
		}
		return AspectRatio{}, errors.New(errors.ErrCodeInvalidAspectRatio, "invalid aspect ratio %q", s)
	}

	var a AspectRatio
	switch strings.ToLower(parts[0]) {
	case "env", "environment":
		switch {
		case len(parts) == 1:
			a = Environment()
		case len(parts) == 2:
			r, err := strconv.ParseFloat(parts[1], 64)
			if err != nil {
				return invalid(err)
			}
			a = EnvironmentHeight(r)
		case len(parts) == 3 && parts[1] == "h":
			r, err := strconv.ParseFloat(parts[2], 64)
			if err != nil {
				return invalid(err)
			}
			a = EnvironmentWidth(r)
		default:
			return invalid(nil)
		}

	case "outer", "inner":
		target := Outer
		if strings.EqualFold(parts[0], "inner") {
			target = Inner
		}
		v, err := parseVars(parts[1:])
		if err != nil {
			return invalid(err)
		}
		a = known(target, v)

	default:
		return invalid(nil)
	}

	if err := a.Validate(); err != nil {
		return invalid(err)
	}
	return a, nil
}

func parseVars(parts []string) (Vars, error) {
	switch len(parts) {
	case 1:
		w, h, ok := strings.Cut(parts[0], "x")
		if !ok {
			return Vars{}, fmt.Errorf("expected WIDTHxHEIGHT, got %q", parts[0])
		}
		width, err := strconv.ParseFloat(w, 64)
		if err != nil {
			return Vars{}, err
		}
		height, err := strconv.ParseFloat(h, 64)
		if err != nil {
			return Vars{}, err
		}
		return Vars{Calc: WidthAndHeight, Width: width, Height: height}, nil

	case 2:
		ratio, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return Vars{}, err
		}
		if h, ok := strings.CutPrefix(parts[0], "h"); ok {
			height, err := strconv.ParseFloat(h, 64)
			if err != nil {
				return Vars{}, err
			}
			return Vars{Calc: HeightAndRatio, Height: height, Ratio: ratio}, nil
		}
		width, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return Vars{}, err
		}
		return Vars{Calc: WidthAndRatio, Width: width, Ratio: ratio}, nil
	}
	return Vars{}, fmt.Errorf("expected 1 or 2 fields, got %d", len(parts))
}

// String returns the form accepted by Parse.
func (a AspectRatio) String() string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	if a.env {
		switch a.calc {
		case WidthAndRatio:
			return "env:" + f(a.ratio)
		case HeightAndRatio:
			return "env:h:" + f(a.ratio)
		}
		return "env"
	}
	prefix := "outer:"
	if a.known.Target == Inner {
		prefix = "inner:"
	}
	v := a.known.Vars
	switch v.Calc {
	case WidthAndRatio:
		return prefix + f(v.Width) + ":" + f(v.Ratio)
	case HeightAndRatio:
		return prefix + "h" + f(v.Height) + ":" + f(v.Ratio)
	}
	return prefix + f(v.Width) + "x" + f(v.Height)
}

// MarshalText implements encoding.TextMarshaler.
func (a AspectRatio) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so aspect ratios can be
// written as strings in TOML, YAML and JSON documents.
func (a *AspectRatio) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
