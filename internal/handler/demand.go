package handler

import (
	"github.com/deppfellow/ressourcerie/internal/domain"
	"github.com/deppfellow/ressourcerie/internal/server"
	"github.com/deppfellow/ressourcerie/internal/service"
	"github.com/labstack/echo/v4"
)

type DemandHandler struct {
	Handler
	exchange *service.ExchangeService
}

func NewDemandHandler(s *server.Server, exchange *service.ExchangeService) *DemandHandler {
	return &DemandHandler{
		Handler:  NewHandler(s),
		exchange: exchange,
	}
}

func (h *DemandHandler) CreateDemand(c echo.Context, req *CreateDemandRequest) (domain.Demand, error) {
	return h.exchange.CreateDemand(c.Request().Context(), req.OfferID, req.MemberID)
}

func (h *DemandHandler) GetDemand(c echo.Context, req *IDRequest) (domain.Demand, error) {
	return h.exchange.GetDemand(c.Request().Context(), req.ID)
}

func (h *DemandHandler) CancelDemand(c echo.Context, req *IDRequest) (domain.Demand, error) {
	return h.exchange.CancelDemand(c.Request().Context(), req.ID)
}

func (h *DemandHandler) GetRank(c echo.Context, req *IDRequest) (RankResponse, error) {
	rank, err := h.exchange.GetDemandRank(c.Request().Context(), req.ID)
	if err != nil {
		return RankResponse{}, err
	}
	return RankResponse{Rank: rank}, nil
}
