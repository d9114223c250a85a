package handler

import (
	"github.com/deppfellow/ressourcerie/internal/domain"
	"github.com/deppfellow/ressourcerie/internal/server"
	"github.com/deppfellow/ressourcerie/internal/service"
	"github.com/labstack/echo/v4"
)

type CategoryHandler struct {
	Handler
	exchange *service.ExchangeService
}

func NewCategoryHandler(s *server.Server, exchange *service.ExchangeService) *CategoryHandler {
	return &CategoryHandler{
		Handler:  NewHandler(s),
		exchange: exchange,
	}
}

func (h *CategoryHandler) CreateCategory(c echo.Context, req *CreateCategoryRequest) (domain.Category, error) {
	return h.exchange.CreateCategory(c.Request().Context(), req.Name)
}

func (h *CategoryHandler) ListCategories(c echo.Context, _ *EmptyRequest) ([]domain.Category, error) {
	return h.exchange.ListCategories(c.Request().Context())
}
