package main

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/ressourcerie/internal/config"
	"github.com/deppfellow/ressourcerie/internal/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, loggerService, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer loggerService.Shutdown()

		if cfg.Storage.Driver != config.StorageDriverPostgres {
			return fmt.Errorf("migrate needs the %s storage driver, got %s", config.StorageDriverPostgres, cfg.Storage.Driver)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), DefaultContextTimeout*time.Second)
		defer cancel()

		return database.Migrate(ctx, &log, cfg.Database.DSN())
	},
}
