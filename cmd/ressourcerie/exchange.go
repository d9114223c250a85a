package main

import (
	"github.com/deppfellow/ressourcerie/internal/config"
	"github.com/deppfellow/ressourcerie/internal/database"
	"github.com/deppfellow/ressourcerie/internal/logger"
	"github.com/deppfellow/ressourcerie/internal/repository"
	"github.com/deppfellow/ressourcerie/internal/server"
	"github.com/deppfellow/ressourcerie/internal/service"
	"github.com/rs/zerolog"
)

// openExchange builds the exchange service for one-shot commands: storage
// only, no HTTP server and no job workers, so no approval notices are sent.
func openExchange(cfg *config.Config, log *zerolog.Logger, loggerService *logger.LoggerService) (*service.ExchangeService, func(), error) {
	srv := &server.Server{
		Config:        cfg,
		Logger:        log,
		LoggerService: loggerService,
	}

	if cfg.Storage.Driver == config.StorageDriverPostgres {
		db, err := database.New(cfg, log, loggerService)
		if err != nil {
			return nil, nil, err
		}
		srv.DB = db
	}

	closeFn := func() {
		if srv.DB != nil {
			if err := srv.DB.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close database connection")
			}
		}
	}

	repos, err := repository.NewRepositories(srv)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	services, err := service.NewServices(srv, repos)
	if err != nil {
		closeFn()
		return nil, nil, err
	}

	return services.Exchange, closeFn, nil
}
