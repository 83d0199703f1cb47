package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kitbuilder587/searchportal/internal/handler"
	"github.com/kitbuilder587/searchportal/internal/ratelimit"
	"github.com/kitbuilder587/searchportal/internal/server"
)

func newServeCmd(st *appState) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, logger := st.cfg, st.logger
			m := newMetrics()

			library, closeDB, err := openLibrary(ctx, cfg, migrate, logger)
			if err != nil {
				return err
			}
			defer closeDB()

			limiter := ratelimit.New(ratelimit.Config{RequestsPerMinute: cfg.RateLimit.RequestsPerMinute})
			defer limiter.Stop()

			svc := buildServices(cfg, m, logger)
			srv := server.New(server.Config{
				Addr:        cfg.Addr(),
				CORSOrigins: cfg.Server.CORSOrigins,
			}, server.Deps{
				Search:  handler.NewSearchHandler(svc.handlers(), cfg.Server.RequestTimeout, logger),
				Library: library,
				Limiter: limiter,
				Metrics: m,
				Logger:  logger,
			})
			return srv.Run(ctx)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply the library schema before serving")
	return cmd
}
