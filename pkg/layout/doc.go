// Package layout sizes and places the components around a chart's plot area.
//
// Components sit on the four edges: tick labels, rotated axis titles and
// legends. Their sizes depend on one another. Tick labels on the left need
// the plot height to decide how many ticks fit, and tick labels along the
// bottom need the plot width, which in turn depends on how wide the left
// labels turned out. [Measure] breaks the cycle with a fixed order:
//
//  1. Top and bottom components report a height that never depends on the
//     width available to them.
//  2. The plot height follows from the resolved size.
//  3. Left and right components size themselves against the plot height,
//     which gives the plot width.
//  4. Top and bottom components generate their content for that width.
//
// [Compose] then turns the measurement into rectangles: the outer chart,
// the inner plot area, one band per edge and one rectangle per component.
// Nothing here fails; when space runs out rectangles collapse to zero area.
package layout
