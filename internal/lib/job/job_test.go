package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/deppfellow/ressourcerie/internal/domain"
	"github.com/deppfellow/ressourcerie/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

type fakeMailer struct {
	to   []string
	data []email.DemandApprovedData
	err  error
}

func (f *fakeMailer) SendDemandApprovedEmail(to string, data email.DemandApprovedData) error {
	f.to = append(f.to, to)
	f.data = append(f.data, data)
	return f.err
}

func newTestJobService(mailer approvalMailer) *JobService {
	logger := zerolog.Nop()
	j := &JobService{logger: &logger}
	if mailer != nil {
		j.mailer = mailer
	}
	return j
}

func TestNewDemandApprovedTask(t *testing.T) {
	task, err := NewDemandApprovedTask(DemandApprovedPayload{To: "m2@example.org", OfferName: "Table", DemandID: 4})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if task.Type() != TaskDemandApproved {
		t.Fatalf("expected type %s, got %s", TaskDemandApproved, task.Type())
	}

	var p DemandApprovedPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		t.Fatalf("expected json payload, got %v", err)
	}
	if p.To != "m2@example.org" || p.DemandID != 4 {
		t.Fatalf("unexpected payload %+v", p)
	}
}

func TestHandleDemandApprovedTask(t *testing.T) {
	ctx := context.Background()
	task, _ := NewDemandApprovedTask(DemandApprovedPayload{
		To:         "m2@example.org",
		MemberName: "M2",
		OfferID:    1,
		OfferName:  "Table",
		DemandID:   4,
	})

	t.Run("sends the email", func(t *testing.T) {
		mailer := &fakeMailer{}
		j := newTestJobService(mailer)

		if err := j.handleDemandApprovedTask(ctx, task); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(mailer.to) != 1 || mailer.to[0] != "m2@example.org" || mailer.data[0].OfferName != "Table" {
			t.Fatalf("unexpected mail %v %+v", mailer.to, mailer.data)
		}
	})

	t.Run("send failure is retried", func(t *testing.T) {
		mailer := &fakeMailer{err: errors.New("rate limited")}
		j := newTestJobService(mailer)

		if err := j.handleDemandApprovedTask(ctx, task); err == nil {
			t.Fatalf("expected error so the task is retried")
		}
	})

	t.Run("disabled integration acknowledges", func(t *testing.T) {
		j := newTestJobService(nil)

		if err := j.handleDemandApprovedTask(ctx, task); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("malformed payload is not retried", func(t *testing.T) {
		j := newTestJobService(&fakeMailer{})

		err := j.handleDemandApprovedTask(ctx, asynq.NewTask(TaskDemandApproved, []byte("{")))
		if !errors.Is(err, asynq.SkipRetry) {
			t.Fatalf("expected SkipRetry, got %v", err)
		}
	})
}

func TestNotifyDemandApprovedSkipsMembersWithoutEmail(t *testing.T) {
	j := newTestJobService(nil)

	// Client is nil: enqueueing would panic if attempted.
	if err := j.NotifyDemandApproved(context.Background(), domain.DemandApproved{DemandID: 1}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}
