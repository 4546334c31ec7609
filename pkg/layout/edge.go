package layout

import (
	"strings"

	"github.com/matzehuels/chartlayout/pkg/errors"
)

// Edge is a side of the chart that holds components.
type Edge int

const (
	Top Edge = iota
	Right
	Bottom
	Left
)

// Edges lists every edge in CSS order.
var Edges = []Edge{Top, Right, Bottom, Left}

func (e Edge) String() string {
	switch e {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	}
	return "unknown"
}

// IsHorizontal reports whether the edge runs along the x axis.
func (e Edge) IsHorizontal() bool { return e == Top || e == Bottom }

// ParseEdge converts a side name to an Edge.
func ParseEdge(s string) (Edge, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top":
		return Top, nil
	case "right":
		return Right, nil
	case "bottom":
		return Bottom, nil
	case "left":
		return Left, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidEdge, "unknown edge %q (want top, right, bottom or left)", s)
}

func (e Edge) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

func (e *Edge) UnmarshalText(text []byte) error {
	v, err := ParseEdge(string(text))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// Anchor positions content along its band.
type Anchor int

const (
	Start Anchor = iota
	Middle
	End
)

func (a Anchor) String() string {
	switch a {
	case Start:
		return "start"
	case Middle:
		return "middle"
	case End:
		return "end"
	}
	return "unknown"
}

// ParseAnchor converts a name to an Anchor. The empty string is Middle.
func ParseAnchor(s string) (Anchor, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "start":
		return Start, nil
	case "middle", "":
		return Middle, nil
	case "end":
		return End, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown anchor %q (want start, middle or end)", s)
}

// Pick returns start, middle or end according to a.
func (a Anchor) Pick(start, middle, end float64) float64 {
	switch a {
	case Start:
		return start
	case End:
		return end
	}
	return middle
}

func (a Anchor) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *Anchor) UnmarshalText(text []byte) error {
	v, err := ParseAnchor(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}
