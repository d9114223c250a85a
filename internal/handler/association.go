package handler

import (
	"github.com/deppfellow/ressourcerie/internal/domain"
	"github.com/deppfellow/ressourcerie/internal/server"
	"github.com/deppfellow/ressourcerie/internal/service"
	"github.com/labstack/echo/v4"
)

// AssociationHandler serves associations and their members.
type AssociationHandler struct {
	Handler
	exchange *service.ExchangeService
}

func NewAssociationHandler(s *server.Server, exchange *service.ExchangeService) *AssociationHandler {
	return &AssociationHandler{
		Handler:  NewHandler(s),
		exchange: exchange,
	}
}

func (h *AssociationHandler) CreateAssociation(c echo.Context, req *CreateAssociationRequest) (domain.Association, error) {
	return h.exchange.CreateAssociation(c.Request().Context(), req.Name)
}

func (h *AssociationHandler) GetAssociation(c echo.Context, req *IDRequest) (domain.Association, error) {
	return h.exchange.GetAssociation(c.Request().Context(), req.ID)
}

func (h *AssociationHandler) AddMember(c echo.Context, req *AddMemberRequest) (domain.Member, error) {
	return h.exchange.AddMember(c.Request().Context(), service.AddMemberInput{
		AssociationID: req.AssociationID,
		Name:          req.Name,
		Email:         req.Email,
	})
}

func (h *AssociationHandler) AssignRepresenter(c echo.Context, req *AssignRepresenterRequest) (domain.Association, error) {
	return h.exchange.AssignRepresenter(c.Request().Context(), req.AssociationID, req.MemberID)
}

func (h *AssociationHandler) GetMember(c echo.Context, req *IDRequest) (domain.Member, error) {
	return h.exchange.GetMember(c.Request().Context(), req.ID)
}
