package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/ressourcerie/internal/clock"
	"github.com/deppfellow/ressourcerie/internal/domain"
	"github.com/deppfellow/ressourcerie/internal/lib/email"
	"github.com/deppfellow/ressourcerie/internal/repository"
	"github.com/deppfellow/ressourcerie/internal/repository/memory"
	"github.com/deppfellow/ressourcerie/internal/service"
	"github.com/rs/zerolog"
)

func TestRunScenario(t *testing.T) {
	repos := repository.NewMemoryRepositories(memory.New())
	exchange := service.NewExchangeService(repos, clock.NewStepping(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Second))
	ctx := context.Background()

	if err := runScenario(ctx, exchange, zerolog.Nop()); err != nil {
		t.Fatalf("expected scenario to pass, got %v", err)
	}

	offers, err := exchange.ListOffers(ctx)
	if err != nil {
		t.Fatalf("list offers: %v", err)
	}
	if len(offers) != 1 || offers[0].Status != domain.OfferStatusArchived {
		t.Fatalf("expected one archived offer, got %+v", offers)
	}

	wins, err := exchange.OfferWinsByAssociation(ctx)
	if err != nil {
		t.Fatalf("wins: %v", err)
	}
	if wins[offers[0].AssociationID] != 1 {
		t.Fatalf("expected one win, got %v", wins)
	}
}

func TestPreviewEmail(t *testing.T) {
	var out strings.Builder
	if err := previewEmail(&out, email.TemplateDemandApproved); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(out.String(), "Wooden Table") {
		t.Fatalf("expected sample offer name in preview, got %s", out.String())
	}

	if err := previewEmail(&out, email.Template("missing")); err == nil {
		t.Fatalf("expected error for unknown template")
	}
}
