package main

import (
	"fmt"
	"os"

	"github.com/deppfellow/ressourcerie/internal/config"
	"github.com/deppfellow/ressourcerie/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// DefaultContextTimeout bounds graceful shutdown and one-shot commands.
const DefaultContextTimeout = 30

var rootCmd = &cobra.Command{
	Use:           "ressourcerie",
	Short:         "Offer and demand exchange between associations",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, scenarioCmd, statsCmd, previewEmailCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads the configuration and builds the application logger.
// The returned LoggerService must be shut down by the caller.
func bootstrap() (*config.Config, *logger.LoggerService, zerolog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, zerolog.Nop(), fmt.Errorf("failed to load config: %w", err)
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	return cfg, loggerService, log, nil
}
