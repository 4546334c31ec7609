package bounds

// Padding is whitespace reserved around a rectangle, listed in CSS order.
type Padding struct {
	Top    float64 `json:"top" toml:"top" yaml:"top"`
	Right  float64 `json:"right" toml:"right" yaml:"right"`
	Bottom float64 `json:"bottom" toml:"bottom" yaml:"bottom"`
	Left   float64 `json:"left" toml:"left" yaml:"left"`
}

// Uniform applies the same padding on every side.
func Uniform(v float64) Padding {
	return Padding{Top: v, Right: v, Bottom: v, Left: v}
}

// HV pads left/right by h and top/bottom by v.
func HV(h, v float64) Padding {
	return Padding{Top: v, Right: h, Bottom: v, Left: h}
}

// Sides sets each side explicitly.
func Sides(top, right, bottom, left float64) Padding {
	return Padding{Top: top, Right: right, Bottom: bottom, Left: left}
}

// Width is the total horizontal padding.
func (p Padding) Width() float64 { return p.Left + p.Right }

// Height is the total vertical padding.
func (p Padding) Height() float64 { return p.Top + p.Bottom }

// Apply shrinks b by the padding.
func (p Padding) Apply(b Bounds) Bounds {
	return b.Shrink(p.Top, p.Right, p.Bottom, p.Left)
}
