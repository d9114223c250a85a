package handler

import (
	"strconv"

	"github.com/deppfellow/ressourcerie/internal/domain"
	"github.com/deppfellow/ressourcerie/internal/errs"
	"github.com/deppfellow/ressourcerie/internal/server"
	"github.com/deppfellow/ressourcerie/internal/service"
	"github.com/labstack/echo/v4"
)

// OfferHandler serves offers and their lifecycle transitions.
type OfferHandler struct {
	Handler
	exchange *service.ExchangeService
}

func NewOfferHandler(s *server.Server, exchange *service.ExchangeService) *OfferHandler {
	return &OfferHandler{
		Handler:  NewHandler(s),
		exchange: exchange,
	}
}

func (h *OfferHandler) CreateOffer(c echo.Context, req *CreateOfferRequest) (domain.Offer, error) {
	return h.exchange.CreateOffer(c.Request().Context(), service.CreateOfferInput{
		ContactMemberID: req.ContactMemberID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		CategoryIDs:     req.categoryIDs(),
	})
}

// ListOffers returns every offer, or only those of one category when
// category_id is given.
func (h *OfferHandler) ListOffers(c echo.Context, req *ListOffersRequest) ([]domain.Offer, error) {
	ctx := c.Request().Context()
	if req.CategoryID == "" {
		return h.exchange.ListOffers(ctx)
	}

	categoryID, err := strconv.ParseInt(req.CategoryID, 10, 64)
	if err != nil {
		return nil, errs.NewBadRequestError("category_id must be an integer", true, nil, []errs.FieldError{
			{Field: "category_id", Error: "must be an integer"},
		})
	}
	return h.exchange.ListOffersByCategory(ctx, categoryID)
}

func (h *OfferHandler) GetOffer(c echo.Context, req *IDRequest) (domain.Offer, error) {
	return h.exchange.GetOffer(c.Request().Context(), req.ID)
}

func (h *OfferHandler) ValidateOffer(c echo.Context, req *ValidateOfferRequest) (ValidateOfferResponse, error) {
	approved, err := h.exchange.ValidateOffer(c.Request().Context(), req.ContactMemberID, req.OfferID)
	if err != nil {
		return ValidateOfferResponse{}, err
	}
	return ValidateOfferResponse{Approved: approved}, nil
}

func (h *OfferHandler) ArchiveOffer(c echo.Context, req *IDRequest) (domain.Offer, error) {
	return h.exchange.ArchiveOffer(c.Request().Context(), req.ID)
}

func (h *OfferHandler) ListDemands(c echo.Context, req *IDRequest) ([]domain.Demand, error) {
	return h.exchange.ListDemandsByOffer(c.Request().Context(), req.ID)
}
