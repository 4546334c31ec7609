package ticks

// Format renders a tick value as a label.
type Format[T Value] interface {
	Format(v T) string
}

// FormatFunc adapts a function to Format.
type FormatFunc[T Value] func(v T) string

// Format calls f(v).
func (f FormatFunc[T]) Format(v T) string { return f(v) }

// Span describes the room available for tick labels along an axis.
type Span[T Value] interface {
	// Length is the available pixel length.
	Length() float64
	// Consumed is the pixel length ticks would use when rendered by state.
	Consumed(state Format[T], ticks []T) float64
}

// Generator selects ticks between first and last that fit span.
type Generator[T Value] interface {
	Generate(first, last T, span Span[T]) GeneratedTicks[T]
}

// GeneratedTicks is the output of a Generator.
type GeneratedTicks[T Value] struct {
	Ticks []T
	State Format[T]
}

// Label is a tick prepared for rendering.
type Label struct {
	Position float64 `json:"position"`
	Text     string  `json:"text"`
}

// None returns an empty set of ticks.
func None[T Value]() GeneratedTicks[T] {
	return GeneratedTicks[T]{State: FormatFunc[T](func(T) string { return "-" })}
}

// Equal reports whether g and o hold the same ticks. Formatter state is not
// compared: generators produce identical formatting for identical ticks.
func (g GeneratedTicks[T]) Equal(o GeneratedTicks[T]) bool {
	if len(g.Ticks) != len(o.Ticks) {
		return false
	}
	for i := range g.Ticks {
		if Compare(g.Ticks[i], o.Ticks[i]) != 0 {
			return false
		}
	}
	return true
}

// Strings formats every tick.
func (g GeneratedTicks[T]) Strings() []string {
	out := make([]string, len(g.Ticks))
	for i, t := range g.Ticks {
		out[i] = g.State.Format(t)
	}
	return out
}

// Labels pairs each tick's position with its formatted text.
func (g GeneratedTicks[T]) Labels() []Label {
	out := make([]Label, len(g.Ticks))
	for i, t := range g.Ticks {
		out[i] = Label{Position: Position(t), Text: g.State.Format(t)}
	}
	return out
}
