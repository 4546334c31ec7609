package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartlayout/pkg/config"
	"github.com/matzehuels/chartlayout/pkg/pipeline"
)

// renderOpts holds the command-line flags shared by render, layout and watch.
type renderOpts struct {
	output  string  // output file (single format) or base path
	formats string  // comma-separated output formats
	env     string  // container size for env charts, WIDTHxHEIGHT
	scale   float64 // PNG scale factor
	debug   bool    // outline bands and components
	noCache bool    // bypass the cache entirely
	refresh bool    // recompute but still write the cache
}

func (o *renderOpts) register(cmd *cobra.Command, withFormats bool) {
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (single format) or base path (multiple)")
	if withFormats {
		cmd.Flags().StringVarP(&o.formats, "format", "f", "", "output format(s): svg, png, json (comma-separated; default from settings)")
		cmd.Flags().Float64Var(&o.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
		cmd.Flags().BoolVar(&o.debug, "debug", false, "outline edge bands and components")
	}
	cmd.Flags().StringVar(&o.env, "env", "", "container size for environment-sized charts, e.g. 1024x768")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "recompute even when cached")
}

// options merges settings with the command-line flags.
func (o *renderOpts) options(c *CLI, s config.Settings) (pipeline.Options, error) {
	opts := renderDefaults(s, c.Logger)
	opts.Formats = parseFormats(o.formats, s.Formats)
	if o.scale != 0 {
		opts.Scale = o.scale
	}
	opts.Debug = o.debug
	opts.Refresh = o.refresh
	if o.env != "" {
		w, h, err := config.ParseSize(o.env)
		if err != nil {
			return opts, err
		}
		opts.EnvWidth, opts.EnvHeight = w, h
	}
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return opts, err
	}
	return opts, nil
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [document]",
		Short: "Render a chart document to SVG, PNG or JSON",
		Long: `Render lays out a chart document (TOML, YAML or JSON) and writes one file per format.

With a single format, --output names the file. With several, --output is a base path
and each file gets its format as extension.`,
		Example: `  chartlayout render rain.toml
  chartlayout render rain.toml -f svg,png -o out/rain
  chartlayout render dashboard.yaml --env 1280x720 --scale 1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.settings()
			if err != nil {
				return err
			}
			popts, err := opts.options(c, s)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cmd.Context(), s, opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			paths, err := runRender(cmd.Context(), runner, args[0], opts.output, popts)
			if err != nil {
				return err
			}
			out := printer{cmd.OutOrStdout()}
			for _, p := range paths {
				out.file(p)
			}
			return nil
		},
	}
	opts.register(cmd, true)
	return cmd
}

// loadJob reads, validates and builds the document at path.
func loadJob(ctx context.Context, path string) (pipeline.Job, error) {
	logger := loggerFromContext(ctx)
	doc, err := config.Load(path)
	if err != nil {
		return pipeline.Job{}, err
	}
	job, err := doc.Build()
	if err != nil {
		return pipeline.Job{}, err
	}
	logger.Debug("loaded document", "path", path, "components", job.Chart.Components(), "hash", shortHash(job.Hash))
	return job, nil
}

// runRender runs the pipeline for the document at input and writes every
// artifact. It returns the written paths in format order.
func runRender(ctx context.Context, runner *pipeline.Runner, input, output string, opts pipeline.Options) ([]string, error) {
	prog := newProgress(runner.Logger)

	job, err := loadJob(ctx, input)
	if err != nil {
		return nil, err
	}
	result, err := runner.Execute(ctx, job, opts)
	if err != nil {
		return nil, err
	}

	paths := outputPaths(output, input, opts.Formats)
	for i, format := range opts.Formats {
		if err := writeOutput(paths[i], result.Artifacts[format]); err != nil {
			return nil, err
		}
	}
	prog.done("rendered "+filepath.Base(input), "formats", strings.Join(opts.Formats, ","), "cached", result.CacheInfo.RenderHit)
	return paths, nil
}

// outputPaths names one file per format. A single format writes to output
// as given; otherwise output is a base path.
func outputPaths(output, input string, formats []string) []string {
	if len(formats) == 1 && output != "" && !pipeline.ValidFormats[strings.TrimPrefix(filepath.Ext(output), ".")] {
		return []string{output}
	}
	base := basePath(output, input)
	paths := make([]string, len(formats))
	for i, f := range formats {
		paths[i] = base + "." + f
	}
	return paths
}

// basePath strips the document extension from input, or a format
// extension from output.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
