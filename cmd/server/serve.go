package main

import (
	"os/signal"
	"syscall"

	"talent-match/internal/app"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the websocket update stream",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := opts.load(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			log.Info("starting", zap.String("app", cfg.App.AppName), zap.String("env", cfg.App.Environment))

			container, err := app.NewContainer(ctx, cfg, log)
			if err != nil {
				log.Error("container init failed", zap.Error(err))
				return err
			}

			server, cleanup, err := app.Bootstrap(container)
			if err != nil {
				return err
			}
			defer func() {
				if err := cleanup(); err != nil {
					log.Warn("cleanup error", zap.Error(err))
				}
			}()

			if err := server.Run(ctx); err != nil && ctx.Err() == nil {
				log.Error("server error", zap.Error(err))
				return err
			}
			log.Info("stopped")
			return nil
		},
	}
}

