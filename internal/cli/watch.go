package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartlayout/pkg/errors"
	"github.com/matzehuels/chartlayout/pkg/watcher"
)

// watchCommand creates the watch command, which re-renders a document
// whenever it is saved.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		opts     renderOpts
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch [document]",
		Short: "Re-render a chart document whenever it changes",
		Long: `Watch renders the document once, then again every time it is saved, until interrupted.

Invalid edits are reported and the previous outputs are left in place.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.settings()
			if err != nil {
				return err
			}
			popts, err := opts.options(c, s)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, s, opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			out := printer{cmd.OutOrStdout()}
			render := func(ctx context.Context, path string) {
				paths, err := runRender(ctx, runner, path, opts.output, popts)
				if err != nil {
					out.failure("%s", errors.UserMessage(err))
					return
				}
				for _, p := range paths {
					out.file(p)
				}
			}

			w, err := watcher.New(args[0], render, watcher.WithDebounce(debounce), watcher.WithLogger(c.Logger))
			if err != nil {
				return err
			}
			render(ctx, w.Path())
			out.info("Watching %s (Ctrl+C to stop)", args[0])
			return w.Run(ctx)
		},
	}
	opts.register(cmd, true)
	cmd.Flags().DurationVar(&debounce, "debounce", watcher.DefaultDebounceDuration, "wait this long after the last change before rendering")
	return cmd
}
