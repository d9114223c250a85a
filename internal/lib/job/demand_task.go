package job

import (
	"context"
	"encoding/json"
	"time"

	"github.com/deppfellow/ressourcerie/internal/domain"
	"github.com/hibiken/asynq"
)

const (
	// TaskDemandApproved notifies the member whose demand won an offer.
	TaskDemandApproved = "demand:approved"
)

type DemandApprovedPayload struct {
	To         string `json:"to"`
	MemberName string `json:"member_name"`
	OfferID    int64  `json:"offer_id"`
	OfferName  string `json:"offer_name"`
	DemandID   int64  `json:"demand_id"`
}

func NewDemandApprovedTask(p DemandApprovedPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskDemandApproved,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// NotifyDemandApproved enqueues the approval email. Members without an
// email address are skipped.
func (j *JobService) NotifyDemandApproved(ctx context.Context, approval domain.DemandApproved) error {
	if approval.MemberEmail == "" {
		j.logger.Debug().Int64("demand_id", approval.DemandID).Msg("demander has no email, skipping approval notice")
		return nil
	}

	task, err := NewDemandApprovedTask(DemandApprovedPayload{
		To:         approval.MemberEmail,
		MemberName: approval.MemberName,
		OfferID:    approval.OfferID,
		OfferName:  approval.OfferName,
		DemandID:   approval.DemandID,
	})
	if err != nil {
		return err
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return err
	}

	j.logger.Info().
		Str("task_id", info.ID).
		Int64("demand_id", approval.DemandID).
		Msg("enqueued approval notice")
	return nil
}
