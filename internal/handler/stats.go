package handler

import (
	"github.com/deppfellow/ressourcerie/internal/server"
	"github.com/deppfellow/ressourcerie/internal/service"
	"github.com/labstack/echo/v4"
)

// StatsHandler exposes per-association counters keyed by association id.
// Associations with nothing to count are absent.
type StatsHandler struct {
	Handler
	exchange *service.ExchangeService
}

func NewStatsHandler(s *server.Server, exchange *service.ExchangeService) *StatsHandler {
	return &StatsHandler{
		Handler:  NewHandler(s),
		exchange: exchange,
	}
}

func (h *StatsHandler) OfferCounts(c echo.Context, _ *EmptyRequest) (map[int64]int, error) {
	return h.exchange.OfferCountByAssociation(c.Request().Context())
}

func (h *StatsHandler) OfferWins(c echo.Context, _ *EmptyRequest) (map[int64]int, error) {
	return h.exchange.OfferWinsByAssociation(c.Request().Context())
}
