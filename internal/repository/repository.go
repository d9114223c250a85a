// Package repository handles all interactions with the storage layer.
//
// It declares the storage collaborator contract, one repository per entity
// kind plus a Transactor that scopes a unit of work, and wires the concrete
// driver (postgres or memory) selected by configuration.
//
// Find methods return (nil, nil) when the id does not resolve; the service
// layer turns that into a domain NotFound error.
package repository

import (
	"context"

	"github.com/deppfellow/ressourcerie/internal/domain"
)

// Transactor runs fn as one atomic unit of work. Repository calls made with
// the ctx passed to fn join that unit; nested calls reuse the outer one.
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type AssociationRepository interface {
	// Save inserts when ID is zero (assigning it) and updates otherwise.
	Save(ctx context.Context, a domain.Association) (domain.Association, error)
	FindByID(ctx context.Context, id int64) (*domain.Association, error)
	FindAll(ctx context.Context) ([]domain.Association, error)
}

type MemberRepository interface {
	Save(ctx context.Context, m domain.Member) (domain.Member, error)
	FindByID(ctx context.Context, id int64) (*domain.Member, error)
	FindAll(ctx context.Context) ([]domain.Member, error)
}

type CategoryRepository interface {
	Save(ctx context.Context, c domain.Category) (domain.Category, error)
	FindByID(ctx context.Context, id int64) (*domain.Category, error)
	FindAll(ctx context.Context) ([]domain.Category, error)
	// FindAllByID returns the categories that resolve, in id order.
	FindAllByID(ctx context.Context, ids []int64) ([]domain.Category, error)
}

type OfferRepository interface {
	// Save also replaces the offer's category links with o.CategoryIDs.
	Save(ctx context.Context, o domain.Offer) (domain.Offer, error)
	FindByID(ctx context.Context, id int64) (*domain.Offer, error)
	FindAll(ctx context.Context) ([]domain.Offer, error)
	// FindByCategory returns each offer linked to categoryID once.
	FindByCategory(ctx context.Context, categoryID int64) ([]domain.Offer, error)
}

type DemandRepository interface {
	Save(ctx context.Context, d domain.Demand) (domain.Demand, error)
	FindByID(ctx context.Context, id int64) (*domain.Demand, error)
	FindAll(ctx context.Context) ([]domain.Demand, error)
	// FindByOffer returns the offer's demands by created_at ascending, then id.
	FindByOffer(ctx context.Context, offerID int64) ([]domain.Demand, error)
	ExistsPending(ctx context.Context, offerID, demanderID int64) (bool, error)
}
