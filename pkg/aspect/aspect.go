// Package aspect resolves a declared chart size into concrete pixels.
//
// An [AspectRatio] is either known up front (a width, height or ratio aimed
// at the whole chart or just its plot area) or taken from the environment,
// in which case the container's measured size completes it. Resolution
// always produces a [Known] value, from which the layout reads the inner
// plot size once edge bands have been measured.
package aspect

import (
	"github.com/matzehuels/chartlayout/pkg/errors"
)

// Calc names which two of width, height and ratio are given.
type Calc int

const (
	WidthAndRatio Calc = iota
	HeightAndRatio
	WidthAndHeight
)

// Vars holds two of width, height and ratio and derives the third.
// Ratio is width / height.
type Vars struct {
	Calc   Calc    `json:"calc"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Ratio  float64 `json:"ratio,omitempty"`
}

// ResolvedWidth returns the width, deriving it from height and ratio if needed.
func (v Vars) ResolvedWidth() float64 {
	if v.Calc == HeightAndRatio {
		return v.Height * v.Ratio
	}
	return v.Width
}

// ResolvedHeight returns the height, deriving it from width and ratio if needed.
func (v Vars) ResolvedHeight() float64 {
	if v.Calc == WidthAndRatio {
		return v.Width / v.Ratio
	}
	return v.Height
}

// Target is the region a known size applies to.
type Target int

const (
	// Outer sizes the whole chart including edge bands.
	Outer Target = iota
	// Inner sizes only the plot area; edge bands are added around it.
	Inner
)

// Known is a fully specified size.
type Known struct {
	Target Target `json:"target"`
	Vars   Vars   `json:"vars"`
}

// Width is the resolved width of the target region.
func (k Known) Width() float64 { return k.Vars.ResolvedWidth() }

// Height is the resolved height of the target region.
func (k Known) Height() float64 { return k.Vars.ResolvedHeight() }

// InnerWidth is the plot width once left and right bands are known.
func (k Known) InnerWidth(left, right float64) float64 {
	if k.Target == Inner {
		return k.Vars.ResolvedWidth()
	}
	return k.Vars.ResolvedWidth() - left - right
}

// InnerHeight is the plot height once top and bottom bands are known.
func (k Known) InnerHeight(top, bottom float64) float64 {
	if k.Target == Inner {
		return k.Vars.ResolvedHeight()
	}
	return k.Vars.ResolvedHeight() - top - bottom
}

// AspectRatio is a declared size, possibly awaiting the environment's.
type AspectRatio struct {
	env   bool
	calc  Calc
	ratio float64
	known Known
}

func known(t Target, v Vars) AspectRatio {
	return AspectRatio{known: Known{Target: t, Vars: v}}
}

// OuterHeight fixes the chart width; height follows from ratio.
func OuterHeight(width, ratio float64) AspectRatio {
	return known(Outer, Vars{Calc: WidthAndRatio, Width: width, Ratio: ratio})
}

// OuterWidth fixes the chart height; width follows from ratio.
func OuterWidth(height, ratio float64) AspectRatio {
	return known(Outer, Vars{Calc: HeightAndRatio, Height: height, Ratio: ratio})
}

// OuterRatio fixes both chart dimensions.
func OuterRatio(width, height float64) AspectRatio {
	return known(Outer, Vars{Calc: WidthAndHeight, Width: width, Height: height})
}

// InnerHeight fixes the plot width; height follows from ratio.
func InnerHeight(width, ratio float64) AspectRatio {
	return known(Inner, Vars{Calc: WidthAndRatio, Width: width, Ratio: ratio})
}

// InnerWidth fixes the plot height; width follows from ratio.
func InnerWidth(height, ratio float64) AspectRatio {
	return known(Inner, Vars{Calc: HeightAndRatio, Height: height, Ratio: ratio})
}

// InnerRatio fixes both plot dimensions.
func InnerRatio(width, height float64) AspectRatio {
	return known(Inner, Vars{Calc: WidthAndHeight, Width: width, Height: height})
}

// EnvironmentHeight takes the chart width from the environment.
func EnvironmentHeight(ratio float64) AspectRatio {
	return AspectRatio{env: true, calc: WidthAndRatio, ratio: ratio}
}

// EnvironmentWidth takes the chart height from the environment.
func EnvironmentWidth(ratio float64) AspectRatio {
	return AspectRatio{env: true, calc: HeightAndRatio, ratio: ratio}
}

// Environment takes both chart dimensions from the environment.
func Environment() AspectRatio {
	return AspectRatio{env: true, calc: WidthAndHeight}
}

// IsEnvironment reports whether Resolve depends on its arguments.
func (a AspectRatio) IsEnvironment() bool { return a.env }

// Resolve completes a with the environment's measured size. Environment
// sizes always describe the outer chart. Known sizes ignore the arguments.
func (a AspectRatio) Resolve(envWidth, envHeight float64) Known {
	if !a.env {
		return a.known
	}
	switch a.calc {
	case WidthAndRatio:
		return Known{Target: Outer, Vars: Vars{Calc: WidthAndRatio, Width: envWidth, Ratio: a.ratio}}
	case HeightAndRatio:
		return Known{Target: Outer, Vars: Vars{Calc: HeightAndRatio, Height: envHeight, Ratio: a.ratio}}
	}
	return Known{Target: Outer, Vars: Vars{Calc: WidthAndHeight, Width: envWidth, Height: envHeight}}
}

// Validate rejects sizes that cannot produce a chart: negative, non-finite
// or oversized dimensions (including those derived from a ratio) and
// non-positive ratios.
func (a AspectRatio) Validate() error {
	if a.env {
		if a.calc != WidthAndHeight {
			return errors.ValidateRatio(a.ratio)
		}
		return nil
	}
	v := a.known.Vars
	switch v.Calc {
	case WidthAndRatio:
		if err := errors.ValidateDimension("width", v.Width); err != nil {
			return err
		}
		if err := errors.ValidateRatio(v.Ratio); err != nil {
			return err
		}
		return errors.ValidateDimension("height", v.ResolvedHeight())
	case HeightAndRatio:
		if err := errors.ValidateDimension("height", v.Height); err != nil {
			return err
		}
		if err := errors.ValidateRatio(v.Ratio); err != nil {
			return err
		}
		return errors.ValidateDimension("width", v.ResolvedWidth())
	}
	if err := errors.ValidateDimension("width", v.Width); err != nil {
		return err
	}
	return errors.ValidateDimension("height", v.Height)
}
