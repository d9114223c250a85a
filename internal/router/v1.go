package router

import (
	"net/http"

	"github.com/deppfellow/ressourcerie/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerV1Routes(api *echo.Group, h *handler.Handlers) {
	associations := api.Group("/associations")
	associations.POST("", handler.Handle(h.Association.Handler, h.Association.CreateAssociation, http.StatusCreated, &handler.CreateAssociationRequest{}))
	associations.GET("/:id", handler.Handle(h.Association.Handler, h.Association.GetAssociation, http.StatusOK, &handler.IDRequest{}))
	associations.POST("/:id/members", handler.Handle(h.Association.Handler, h.Association.AddMember, http.StatusCreated, &handler.AddMemberRequest{}))
	associations.PUT("/:id/representer", handler.Handle(h.Association.Handler, h.Association.AssignRepresenter, http.StatusOK, &handler.AssignRepresenterRequest{}))

	api.GET("/members/:id", handler.Handle(h.Association.Handler, h.Association.GetMember, http.StatusOK, &handler.IDRequest{}))

	categories := api.Group("/categories")
	categories.POST("", handler.Handle(h.Category.Handler, h.Category.CreateCategory, http.StatusCreated, &handler.CreateCategoryRequest{}))
	categories.GET("", handler.Handle(h.Category.Handler, h.Category.ListCategories, http.StatusOK, &handler.EmptyRequest{}))

	offers := api.Group("/offers")
	offers.POST("", handler.Handle(h.Offer.Handler, h.Offer.CreateOffer, http.StatusCreated, &handler.CreateOfferRequest{}))
	offers.GET("", handler.Handle(h.Offer.Handler, h.Offer.ListOffers, http.StatusOK, &handler.ListOffersRequest{}))
	offers.GET("/:id", handler.Handle(h.Offer.Handler, h.Offer.GetOffer, http.StatusOK, &handler.IDRequest{}))
	offers.POST("/:id/validate", handler.Handle(h.Offer.Handler, h.Offer.ValidateOffer, http.StatusOK, &handler.ValidateOfferRequest{}))
	offers.POST("/:id/archive", handler.Handle(h.Offer.Handler, h.Offer.ArchiveOffer, http.StatusOK, &handler.IDRequest{}))
	offers.GET("/:id/demands", handler.Handle(h.Offer.Handler, h.Offer.ListDemands, http.StatusOK, &handler.IDRequest{}))

	demands := api.Group("/demands")
	demands.POST("", handler.Handle(h.Demand.Handler, h.Demand.CreateDemand, http.StatusCreated, &handler.CreateDemandRequest{}))
	demands.GET("/:id", handler.Handle(h.Demand.Handler, h.Demand.GetDemand, http.StatusOK, &handler.IDRequest{}))
	demands.POST("/:id/cancel", handler.Handle(h.Demand.Handler, h.Demand.CancelDemand, http.StatusOK, &handler.IDRequest{}))
	demands.GET("/:id/rank", handler.Handle(h.Demand.Handler, h.Demand.GetRank, http.StatusOK, &handler.IDRequest{}))

	stats := api.Group("/stats")
	stats.GET("/offers", handler.Handle(h.Stats.Handler, h.Stats.OfferCounts, http.StatusOK, &handler.EmptyRequest{}))
	stats.GET("/wins", handler.Handle(h.Stats.Handler, h.Stats.OfferWins, http.StatusOK, &handler.EmptyRequest{}))
}
