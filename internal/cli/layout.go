package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartlayout/pkg/pipeline"
	"github.com/matzehuels/chartlayout/pkg/sink"
)

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "layout [document]",
		Short: "Compute a chart layout and write it as JSON",
		Long: `Compute a chart layout without drawing it.

The output holds the resolved size, the bounds of every edge band and component,
the tick labels and the projected series. Renderers in other languages can draw
from it directly. Use -o - to write to stdout.

Results are cached, so repeated runs on an unchanged document are instant.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], &opts)
		},
	}
	opts.register(cmd, false)
	return cmd
}

// runLayout loads the document, computes its layout and writes the JSON.
func (c *CLI) runLayout(ctx context.Context, stdout, stderr io.Writer, input string, ro *renderOpts) error {
	s, err := c.settings()
	if err != nil {
		return err
	}
	opts, err := ro.options(c, s)
	if err != nil {
		return err
	}
	job, err := loadJob(ctx, input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, s, ro.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, stderr, "Computing layout...")
	spinner.Start()
	res, cacheHit, err := runner.ComputeWithCacheInfo(ctx, job, opts)
	spinner.Stop()
	if err != nil {
		printer{stderr}.failure("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	data, err := sink.RenderJSON(res, sink.WithIndent())
	if err != nil {
		return err
	}

	outputPath := ro.output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
	}
	if outputPath == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := writeOutput(outputPath, data); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	out := printer{stdout}
	out.success("Layout complete")
	out.file(outputPath)
	out.stats(&pipeline.Result{
		Chart:     res,
		Stats:     pipeline.Stats{Components: job.Chart.Components(), Series: len(res.Series)},
		CacheInfo: pipeline.CacheInfo{LayoutHit: cacheHit},
	})
	return nil
}
