package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartlayout/pkg/config"
	"github.com/matzehuels/chartlayout/pkg/layout"
	"github.com/matzehuels/chartlayout/pkg/pipeline"
)

// ticksCommand creates the ticks command for trying tick generation on a
// single axis.
func (c *CLI) ticksCommand() *cobra.Command {
	var (
		req     pipeline.TicksRequest
		periods string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "ticks",
		Short: "Show the tick labels an axis would get",
		Long: `Show the tick labels an axis of the given length would get for a data range.

Numbers select float ticks; RFC 3339 timestamps select timestamp ticks. Use --kind
to force one.`,
		Example: `  chartlayout ticks --first 0 --last 1 --length 176 --vertical
  chartlayout ticks --first 2015-01-01T00:00:00Z --last 2018-06-01T00:00:00Z --length 400 --periods year,month`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Spec.Periods = config.ParseList(periods)
			res, err := pipeline.GenerateTicks(cmd.Context(), req)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}

			out := printer{cmd.OutOrStdout()}
			out.keyValue("kind", res.Kind)
			out.keyValue("labels", fmt.Sprint(len(res.Labels)))
			if req.Vertical {
				out.keyValue("width", fmt.Sprintf("%g", res.Width))
			}
			if len(res.Labels) == 0 {
				out.info("No labels fit")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), labelTable(res.Labels))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.First, "first", "", "first value of the range")
	f.StringVar(&req.Last, "last", "", "last value of the range")
	f.Float64Var(&req.Length, "length", 0, "axis length in pixels")
	f.BoolVar(&req.Vertical, "vertical", false, "lay labels out top to bottom")
	f.StringVar(&req.Spec.Kind, "kind", "", "tick kind: floats, timestamps or none (default from --first)")
	f.StringVar(&periods, "periods", "", "calendar periods for timestamps, e.g. year,month,day")
	f.StringVar(&req.Spec.Format, "label-format", "", "timestamp label format: short, long or a Go time layout")
	f.IntVar(&req.Spec.MinChars, "min-chars", 0, "minimum characters to reserve per label")
	f.Float64Var(&req.Font.Height, "font-height", layout.DefaultFontHeight, "line height in pixels")
	f.Float64Var(&req.Font.Width, "font-width", layout.DefaultFontWidth, "character width in pixels")
	f.BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	_ = cmd.MarkFlagRequired("first")
	_ = cmd.MarkFlagRequired("last")
	_ = cmd.MarkFlagRequired("length")

	return cmd
}
