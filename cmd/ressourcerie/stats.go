package main

import (
	"context"
	"time"

	"github.com/deppfellow/ressourcerie/internal/lib/utils"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print offer counts and wins per association as JSON",
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

		offers, err := exchange.OfferCountByAssociation(ctx)
		if err != nil {
			return err
		}
		wins, err := exchange.OfferWinsByAssociation(ctx)
		if err != nil {
			return err
		}

		return utils.WriteJSON(cmd.OutOrStdout(), map[string]map[int64]int{
			"offers": offers,
			"wins":   wins,
		})
	},
}
