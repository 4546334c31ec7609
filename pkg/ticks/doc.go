// Package ticks picks axis tick values that fit a pixel span and formats
// them for display.
//
// A [Generator] takes the first and last value of an axis and a [Span]
// describing the room available, and returns [GeneratedTicks]: the chosen
// values plus the [Format] that renders them. Two generators are provided:
//
//   - [AlignedFloats] for numeric axes. It picks a decimal precision so
//     that evenly spaced ticks are both distinguishable and as many as fit.
//   - [Timestamps] for time axes. It walks calendar periods from years down
//     to nanoseconds, keeping the coarsest period that dominates the axis
//     and sampling finer ones when they would overflow.
//
// Generators are pure: the same inputs always give the same ticks.
package ticks
