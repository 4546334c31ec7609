package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/chartlayout/pkg/chart"
	"github.com/matzehuels/chartlayout/pkg/sink"
)

// Render generates output artifacts in the requested formats. Formats are
// rendered concurrently; the first failure cancels the rest.
func Render(ctx context.Context, res chart.Result, opts Options) (map[string][]byte, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}

	out := make([][]byte, len(opts.Formats))
	g, ctx := errgroup.WithContext(ctx)
	for i, format := range opts.Formats {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := renderFormat(res, format, opts)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			out[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(out))
	for i, format := range opts.Formats {
		artifacts[format] = out[i]
	}
	return artifacts, nil
}

func renderFormat(res chart.Result, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		var svgOpts []sink.SVGOption
		if opts.Debug {
			svgOpts = append(svgOpts, sink.WithDebug())
		}
		return sink.RenderSVG(res, svgOpts...), nil
	case FormatPNG:
		pngOpts := []sink.PNGOption{sink.WithScale(opts.Scale)}
		if opts.Debug {
			pngOpts = append(pngOpts, sink.WithPNGDebug())
		}
		return sink.RenderPNG(res, pngOpts...)
	case FormatJSON:
		return sink.RenderJSON(res, sink.WithIndent())
	}
	return nil, fmt.Errorf("unsupported format: %s", format)
}
