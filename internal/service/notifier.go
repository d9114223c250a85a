package service

import (
	"context"

	"github.com/deppfellow/ressourcerie/internal/domain"
)

// Notifier is told about approvals once validateOffer has committed.
type Notifier interface {
	NotifyDemandApproved(ctx context.Context, approval domain.DemandApproved) error
}
