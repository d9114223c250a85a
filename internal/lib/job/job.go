// Package job runs background work on asynq, a Redis-backed task queue.
//
// The JobService both enqueues tasks (asynq.Client) and runs the workers
// that process them (asynq.Server).
package job

import (
	"github.com/deppfellow/ressourcerie/internal/config"
	"github.com/deppfellow/ressourcerie/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// approvalMailer sends the approval email for a demand.
type approvalMailer interface {
	SendDemandApprovedEmail(to string, data email.DemandApprovedData) error
}

type JobService struct {
	Client *asynq.Client
	server *asynq.Server
	mailer approvalMailer
	logger *zerolog.Logger
}

func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			Logger:   newAsynqLogger(logger),
			LogLevel: asynq.WarnLevel,
		},
	)

	return &JobService{
		Client: asynq.NewClient(redisOpt),
		server: server,
		logger: logger,
	}
}

// InitHandlers wires the dependencies used by task handlers. Without a
// Resend API key approval tasks are acknowledged without sending anything.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	if client := email.NewClient(cfg, logger); client != nil {
		j.mailer = client
	}
}

func (j *JobService) mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskDemandApproved, j.handleDemandApprovedTask)
	return mux
}

// Start launches the workers in the background and returns.
func (j *JobService) Start() error {
	j.logger.Info().Msg("Starting background job server")

	return j.server.Start(j.mux())
}

func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Warn().Err(err).Msg("failed to close job client")
	}
}
