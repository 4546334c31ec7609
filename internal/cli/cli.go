// Package cli implements the chartlayout command-line interface.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartlayout/pkg/buildinfo"
	"github.com/matzehuels/chartlayout/pkg/cache"
	"github.com/matzehuels/chartlayout/pkg/config"
	"github.com/matzehuels/chartlayout/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// SettingsPath overrides the user settings file. Empty uses
	// config.SettingsPath.
	SettingsPath string

	// lookupEnv reads CHARTLAYOUT_* overrides; tests replace it.
	lookupEnv func(string) (string, bool)
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:    newLogger(w, level),
		lookupEnv: os.LookupEnv,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Chartlayout lays out and renders two-axis charts",
		Long: `Chartlayout computes chart layouts from a declarative document: tick labels that fit
their axis, edge bands sized around the plot area and data projected to pixels. Layouts
render to SVG, PNG or JSON, from the command line or over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.SettingsPath, "config", c.SettingsPath, "settings file (default "+defaultSettingsHint()+")")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.ticksCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Settings
// =============================================================================

func defaultSettingsHint() string {
	if p, err := config.SettingsPath(); err == nil {
		return p
	}
	return "$XDG_CONFIG_HOME/" + appName + "/config.toml"
}

// settings loads the settings file, then applies CHARTLAYOUT_* overrides.
func (c *CLI) settings() (config.Settings, error) {
	path := c.SettingsPath
	if path == "" {
		var err error
		if path, err = config.SettingsPath(); err != nil {
			s := config.DefaultSettings()
			return s, s.ApplyEnv(c.env())
		}
	}
	s, err := config.LoadSettings(path)
	if err != nil {
		return s, err
	}
	c.Logger.Debug("loaded settings", "path", path, "cache", s.Cache.Backend)
	return s, s.ApplyEnv(c.env())
}

func (c *CLI) env() func(string) (string, bool) {
	if c.lookupEnv == nil {
		return os.LookupEnv
	}
	return c.lookupEnv
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, s config.Settings, noCache bool) (*pipeline.Runner, error) {
	ch, err := newCache(ctx, s, noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(ch, nil, c.Logger)
	r.TTL = s.CacheTTL.Duration
	return r, nil
}

func newCache(ctx context.Context, s config.Settings, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	return cache.Open(ctx, s.Cache)
}

// =============================================================================
// Options Helpers
// =============================================================================

// renderDefaults fills options from settings before flags are applied.
func renderDefaults(s config.Settings, logger *log.Logger) pipeline.Options {
	opts := pipeline.Options{
		EnvWidth:  s.EnvWidth,
		EnvHeight: s.EnvHeight,
		Formats:   append([]string(nil), s.Formats...),
		Logger:    logger,
	}
	opts.SetComputeDefaults()
	opts.SetRenderDefaults()
	return opts
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string, fallback []string) []string {
	if f := config.ParseList(s); len(f) > 0 {
		return f
	}
	if len(fallback) > 0 {
		return fallback
	}
	return []string{pipeline.FormatSVG}
}
