package main

import (
	"context"
	"time"

	"github.com/deppfellow/ressourcerie/internal/domain"
	"github.com/deppfellow/ressourcerie/internal/service"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Run the reference exchange scenario against the configured store",
	Long: `Creates an association with two members, a category and an offer,
queues a demand, validates and archives the offer, then checks that
malformed and unknown references are refused. Each step is logged.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, loggerService, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer loggerService.Shutdown()

		exchange, closeFn, err := openExchange(cfg, &log, loggerService)
		if err != nil {
			return err
		}
		defer closeFn()

		ctx, cancel := context.WithTimeout(cmd.Context(), DefaultContextTimeout*time.Second)
		defer cancel()

		return runScenario(ctx, exchange, log)
	},
}

func runScenario(ctx context.Context, exchange *service.ExchangeService, log zerolog.Logger) error {
	association, err := exchange.CreateAssociation(ctx, "A")
	if err != nil {
		return errors.Wrap(err, "create association")
	}
	log.Info().Int64("association_id", association.ID).Msg("created association")

	rep, err := exchange.AddMember(ctx, service.AddMemberInput{AssociationID: association.ID, Name: "Rep"})
	if err != nil {
		return errors.Wrap(err, "add representer")
	}
	m2, err := exchange.AddMember(ctx, service.AddMemberInput{AssociationID: association.ID, Name: "M2"})
	if err != nil {
		return errors.Wrap(err, "add member")
	}
	log.Info().Int64("rep_id", rep.ID).Int64("member_id", m2.ID).Msg("added members")

	category, err := exchange.CreateCategory(ctx, "Furniture")
	if err != nil {
		return errors.Wrap(err, "create category")
	}

	price := decimal.NewFromInt(50)
	offer, err := exchange.CreateOffer(ctx, service.CreateOfferInput{
		ContactMemberID: rep.ID,
		Name:            "Table",
		Price:           &price,
		CategoryIDs:     []int64{category.ID},
	})
	if err != nil {
		return errors.Wrap(err, "create offer")
	}
	log.Info().Int64("offer_id", offer.ID).Str("status", string(offer.Status)).Msg("created offer")

	demand, err := exchange.CreateDemand(ctx, offer.ID, m2.ID)
	if err != nil {
		return errors.Wrap(err, "create demand")
	}

	rank, err := exchange.GetDemandRank(ctx, demand.ID)
	if err != nil {
		return errors.Wrap(err, "rank demand")
	}
	if rank == nil || *rank != 1 {
		return errors.Errorf("expected demand %d at rank 1, got %v", demand.ID, rank)
	}
	log.Info().Int64("demand_id", demand.ID).Int("rank", *rank).Msg("queued demand")

	approved, err := exchange.ValidateOffer(ctx, rep.ID, offer.ID)
	if err != nil {
		return errors.Wrap(err, "validate offer")
	}
	if approved == nil || approved.ID != demand.ID || approved.Status != domain.DemandStatusApproved {
		return errors.Errorf("expected demand %d to be approved, got %+v", demand.ID, approved)
	}
	log.Info().Int64("demand_id", approved.ID).Msg("validated offer")

	archived, err := exchange.ArchiveOffer(ctx, offer.ID)
	if err != nil {
		return errors.Wrap(err, "archive offer")
	}
	log.Info().Int64("offer_id", archived.ID).Str("status", string(archived.Status)).Msg("archived offer")

	checks := []struct {
		name string
		want error
		run  func() error
	}{
		{"add member to association -1", domain.ErrInvalidArgument, func() error {
			_, err := exchange.AddMember(ctx, service.AddMemberInput{AssociationID: -1, Name: "Nobody"})
			return err
		}},
		{"create offer without contact or name", domain.ErrInvalidArgument, func() error {
			zero := decimal.Zero
			_, err := exchange.CreateOffer(ctx, service.CreateOfferInput{ContactMemberID: -1, Price: &zero, CategoryIDs: []int64{category.ID}})
			return err
		}},
		{"validate unknown offer", domain.ErrNotFound, func() error {
			_, err := exchange.ValidateOffer(ctx, 999, 999)
			return err
		}},
	}
	for _, check := range checks {
		err := check.run()
		if !errors.Is(err, check.want) {
			return errors.Errorf("%s: expected %v, got %v", check.name, check.want, err)
		}
		log.Info().Str("check", check.name).Str("error", err.Error()).Msg("refused as expected")
	}

	log.Info().Msg("scenario completed")
	return nil
}
