package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/ressourcerie/internal/config"
	"github.com/deppfellow/ressourcerie/internal/database"
	"github.com/deppfellow/ressourcerie/internal/handler"
	"github.com/deppfellow/ressourcerie/internal/repository"
	"github.com/deppfellow/ressourcerie/internal/router"
	"github.com/deppfellow/ressourcerie/internal/server"
	"github.com/deppfellow/ressourcerie/internal/service"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run migrations, then serve the HTTP API until interrupted",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, loggerService, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer loggerService.Shutdown()

	if cfg.Storage.Driver == config.StorageDriverPostgres {
		ctx, cancel := context.WithTimeout(cmd.Context(), DefaultContextTimeout*time.Second)
		err := database.Migrate(ctx, &log, cfg.Database.DSN())
		cancel()
		if err != nil {
			return err
		}
	}

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		return err
	}

	repos, err := repository.NewRepositories(srv)
	if err != nil {
		return err
	}
	services, err := service.NewServices(srv, repos)
	if err != nil {
		return err
	}

	handlers := handler.NewHandlers(srv, services)
	r := router.NewRouter(srv, handlers)
	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			_ = srv.Shutdown(context.Background())
			return err
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultContextTimeout*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	log.Info().Msg("server exited properly")
	return nil
}
