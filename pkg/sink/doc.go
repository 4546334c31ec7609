// Package sink renders a computed chart into output formats.
//
//   - SVG via [RenderSVG], vector output built with ajstarks/svgo
//   - PNG via [RenderPNG], rasterised with gg and the basic 7x13 face
//   - JSON via [RenderJSON], the raw [chart.Result] for external renderers
//
// SVG and PNG share one scene: plot frame, series, then each edge
// component at the rectangle the layout assigned it. [WithDebug] also
// outlines every band and component, which is the quickest way to see
// what the compositor decided.
//
//	svg := sink.RenderSVG(res, sink.WithDebug())
//	png, err := sink.RenderPNG(res, sink.WithScale(2))
//
// [chart.Result]: github.com/matzehuels/chartlayout/pkg/chart.Result
package sink
