package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/ressourcerie/internal/lib/email"
	"github.com/hibiken/asynq"
)

func (j *JobService) handleDemandApprovedTask(ctx context.Context, t *asynq.Task) error {
	var p DemandApprovedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal demand approved payload: %w: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().
		Str("type", TaskDemandApproved).
		Int64("demand_id", p.DemandID).
		Logger()

	if j.mailer == nil {
		log.Warn().Msg("email integration disabled, dropping approval notice")
		return nil
	}

	log.Info().Msg("Processing demand approved task")

	err := j.mailer.SendDemandApprovedEmail(p.To, email.DemandApprovedData{
		MemberName: p.MemberName,
		OfferName:  p.OfferName,
		OfferID:    p.OfferID,
		DemandID:   p.DemandID,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to send approval email")
		return err
	}

	log.Info().Msg("Successfully sent approval email")
	return nil
}
