package cli

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartlayout/pkg/bounds"
	"github.com/matzehuels/chartlayout/pkg/chart"
	"github.com/matzehuels/chartlayout/pkg/errors"
	"github.com/matzehuels/chartlayout/pkg/layout"
	"github.com/matzehuels/chartlayout/pkg/pipeline"
)

// Pixels per terminal cell when the terminal stands in for the environment.
const (
	cellWidth  = 8
	cellHeight = 16
	footerRows = 3
)

// previewCommand creates the preview command: an interactive sketch of
// the layout that follows the terminal size.
func (c *CLI) previewCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "preview [document]",
		Short: "Sketch a chart layout in the terminal",
		Long: `Preview draws the plot area and data of a chart in the terminal.

Environment-sized charts take their size from the terminal (one cell is 8x16 pixels)
and are laid out again on every resize. Press r to reload the document, q to quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.settings()
			if err != nil {
				return err
			}
			job, err := loadJob(ctx, args[0])
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, s, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			// The TUI owns the terminal; keep log lines out of it.
			quiet := *runner
			quiet.Logger = newLogger(io.Discard, c.Logger.GetLevel())
			m := newPreviewModel(ctx, &quiet, args[0], job, renderDefaults(s, quiet.Logger))

			if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

// =============================================================================
// previewModel
// =============================================================================

type layoutMsg struct {
	res    chart.Result
	cached bool
	err    error
}

type reloadMsg struct {
	job pipeline.Job
	err error
}

type previewModel struct {
	ctx    context.Context
	runner *pipeline.Runner
	path   string
	job    pipeline.Job
	opts   pipeline.Options

	cols, rows int
	res        *chart.Result
	cached     bool
	err        error
}

func newPreviewModel(ctx context.Context, r *pipeline.Runner, path string, job pipeline.Job, opts pipeline.Options) previewModel {
	return previewModel{ctx: ctx, runner: r, path: path, job: job, opts: opts}
}

func (m previewModel) Init() tea.Cmd { return nil }

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			return m, m.reload()
		}
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		return m, m.compute()
	case reloadMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.job = msg.job
		return m, m.compute()
	case layoutMsg:
		m.err = msg.err
		if msg.err == nil {
			m.res = &msg.res
			m.cached = msg.cached
		}
	}
	return m, nil
}

// compute lays the chart out for the current terminal size.
func (m previewModel) compute() tea.Cmd {
	opts := m.opts
	opts.EnvWidth = float64(m.cols * cellWidth)
	opts.EnvHeight = float64(max(m.rows-footerRows, 1) * cellHeight)
	ctx, runner, job := m.ctx, m.runner, m.job
	return func() tea.Msg {
		res, cached, err := runner.ComputeWithCacheInfo(ctx, job, opts)
		return layoutMsg{res: res, cached: cached, err: err}
	}
}

func (m previewModel) reload() tea.Cmd {
	ctx, path := m.ctx, m.path
	return func() tea.Msg {
		job, err := loadJob(ctx, path)
		return reloadMsg{job: job, err: err}
	}
}

func (m previewModel) View() string {
	if m.cols == 0 {
		return "measuring terminal..."
	}
	var b strings.Builder
	if m.res != nil {
		for _, line := range sketch(*m.res, m.cols, max(m.rows-footerRows, 1)) {
			b.WriteString(line)
			b.WriteByte('\n')
		}
		outer, inner := m.res.Layout.Outer, m.res.Layout.Inner
		b.WriteString(StyleTitle.Render(m.path) + "  " + joinDim([]string{
			fmt.Sprintf("outer %gx%g", outer.Width(), outer.Height()),
			fmt.Sprintf("plot %gx%g", inner.Width(), inner.Height()),
		}) + StyleDim.Render(" · ") + cacheStatus(m.cached) + "\n")
	}
	if m.err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + errors.UserMessage(m.err) + "\n")
	}
	b.WriteString(StyleDim.Render("r reload · q quit"))
	return b.String()
}

// sketch draws the plot area and series points of res into a cols x rows
// grid, scaling the outer chart to fit.
func sketch(res chart.Result, cols, rows int) []string {
	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", cols))
	}
	outer := res.Layout.Outer
	if outer.IsZero() || cols < 2 || rows < 2 {
		return rowsOf(grid)
	}
	sx := float64(cols-1) / outer.Width()
	sy := float64(rows-1) / outer.Height()
	cell := func(x, y float64) (int, int, bool) {
		c := int(math.Round((x - outer.Left) * sx))
		r := int(math.Round((y - outer.Top) * sy))
		return c, r, c >= 0 && c < cols && r >= 0 && r < rows
	}

	box(grid, res.Layout.Inner, cell)
	for _, e := range layout.Edges {
		for _, p := range res.Layout.Band(e).Components {
			if p.Use.Kind == layout.KindRotatedLabel || p.Use.Kind == layout.KindLegend {
				if c, r, ok := cell(p.Bounds.CentreX(), p.Bounds.CentreY()); ok {
					grid[r][c] = '▪'
				}
			}
		}
	}
	for _, s := range res.Series {
		for _, p := range s.Points {
			if p.Missing {
				continue
			}
			if c, r, ok := cell(p.X, p.Y); ok {
				grid[r][c] = '•'
			}
		}
	}
	return rowsOf(grid)
}

func box(grid [][]rune, b bounds.Bounds, cell func(x, y float64) (int, int, bool)) {
	l, t, okTL := cell(b.Left, b.Top)
	r, bt, okBR := cell(b.Right, b.Bottom)
	if !okTL || !okBR || r <= l || bt <= t {
		return
	}
	for c := l + 1; c < r; c++ {
		grid[t][c], grid[bt][c] = '─', '─'
	}
	for row := t + 1; row < bt; row++ {
		grid[row][l], grid[row][r] = '│', '│'
	}
	grid[t][l], grid[t][r], grid[bt][l], grid[bt][r] = '┌', '┐', '└', '┘'
}

func rowsOf(grid [][]rune) []string {
	out := make([]string, len(grid))
	for i, row := range grid {
		out[i] = string(row)
	}
	return out
}
