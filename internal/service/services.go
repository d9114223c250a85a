package service

import (
	"github.com/deppfellow/ressourcerie/internal/clock"
	"github.com/deppfellow/ressourcerie/internal/lib/job"
	"github.com/deppfellow/ressourcerie/internal/repository"
	"github.com/deppfellow/ressourcerie/internal/server"
)

type Services struct {
	Exchange *ExchangeService
	Job      *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	opts := []ExchangeServiceOption{WithLogger(*s.Logger)}
	// Approval notices need the job queue; without Redis they are skipped.
	if s.Job != nil {
		opts = append(opts, WithNotifier(s.Job))
	}

	return &Services{
		Exchange: NewExchangeService(repos, clock.NewSystem(), opts...),
		Job:      s.Job,
	}, nil
}
