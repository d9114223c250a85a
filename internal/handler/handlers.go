package handler

import (
	"github.com/deppfellow/ressourcerie/internal/server"
	"github.com/deppfellow/ressourcerie/internal/service"
)

// Handlers groups all HTTP handlers so the router receives a single value.
type Handlers struct {
	Health      *HealthHandler
	Association *AssociationHandler
	Category    *CategoryHandler
	Offer       *OfferHandler
	Demand      *DemandHandler
	Stats       *StatsHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:      NewHealthHandler(s),
		Association: NewAssociationHandler(s, services.Exchange),
		Category:    NewCategoryHandler(s, services.Exchange),
		Offer:       NewOfferHandler(s, services.Exchange),
		Demand:      NewDemandHandler(s, services.Exchange),
		Stats:       NewStatsHandler(s, services.Exchange),
	}
}
