package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartlayout/internal/server"
	"github.com/matzehuels/chartlayout/pkg/observability"
)

// serveCommand creates the serve command, which exposes the pipeline over
// HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		listen  string
		env     string
		noCache bool
		maxBody int64
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layouts and renders over HTTP",
		Long: `Serve the chart pipeline over HTTP.

  POST /v1/layout            document in, layout JSON out
  POST /v1/render/{format}   document in, svg, png or json out
  GET  /v1/ticks             tick labels for one axis
  GET  /healthz              liveness
  GET  /metrics              Prometheus metrics

The cache backend comes from the settings file or CHARTLAYOUT_CACHE.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.settings()
			if err != nil {
				return err
			}
			if listen != "" {
				s.Listen = listen
			}
			ro := renderOpts{env: env}
			defaults, err := ro.options(c, s)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, s, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			observability.NewPrometheus(reg).Install()
			defer observability.Reset()

			srv := server.New(runner,
				server.WithLogger(c.Logger),
				server.WithGatherer(reg),
				server.WithMaxBodyBytes(maxBody),
				server.WithDefaults(defaults),
			)
			return srv.ListenAndServe(ctx, s.Listen)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "address to listen on (default from settings, :8080)")
	cmd.Flags().StringVar(&env, "env", "", "default container size for environment-sized charts")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().Int64Var(&maxBody, "max-body", server.DefaultMaxBodyBytes, "largest accepted document in bytes")
	return cmd
}
