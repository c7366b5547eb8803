package main

import (
	"context"
	"fmt"
	"time"

	"talent-match/internal/database/migration"
	dbpostgres "talent-match/internal/database/postgres"

	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQL migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := opts.load(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if !cfg.Database.Enabled() {
				return fmt.Errorf("migrate: DB_HOST and DB_NAME must be set")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			db, err := dbpostgres.Connect(ctx, cfg.Database)
			if err != nil {
				return fmt.Errorf("connect postgres: %w", err)
			}
			defer db.Close()

			runner := migration.Runner{FS: migration.Embedded(), Logger: log.Named("migration")}
			return runner.Run(ctx, db.SQLDB())
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall migration timeout")
	return cmd
}
