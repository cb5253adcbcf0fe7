package main

import (
	handlers "github.com/GriffinCanCode/relnotes/internal/api/http"
	"github.com/GriffinCanCode/relnotes/internal/infrastructure/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	var host, port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve the parse and translate API:

  GET  /health         status, totals and circuit breaker states
  POST /v1/parse       {"html": ..., "url": ..., "origin": ..., "translate": bool}
  POST /v1/translate   a release-notes document
  GET  /metrics        Prometheus metrics

Stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e := envFrom(cmd)
			if cmd.Flags().Changed("host") {
				e.cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				e.cfg.Server.Port = port
			}

			c, err := build(e.cfg, e.logger)
			if err != nil {
				return err
			}

			deps := handlers.Deps{
				Pipeline: c.pipeline(false),
				Breakers: []handlers.BreakerReporter{c.fetchHTTP},
				Metrics:  c.metrics,
				Version:  Version,
			}
			if c.translator != nil {
				deps.Translating = c.pipeline(true)
				deps.Translator = c.translator
				deps.Breakers = append(deps.Breakers, c.translateC)
			}

			e.logger.Info("Initializing relnotes server",
				zap.String("version", Version),
				zap.Bool("translation", c.translator != nil),
			)
			return server.NewServer(e.cfg, deps, e.logger).Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Listen host (default from RELNOTES_HOST)")
	cmd.Flags().StringVar(&port, "port", "", "Listen port (default from RELNOTES_PORT)")
	return cmd
}
