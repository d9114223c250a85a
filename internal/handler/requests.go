package handler

import (
	"github.com/deppfellow/ressourcerie/internal/domain"
	"github.com/deppfellow/ressourcerie/internal/validation"
	"github.com/shopspring/decimal"
)

// Ids are not checked here: the exchange rules reject non-positive ids with
// the same error whatever the transport.

type IDRequest struct {
	ID int64 `param:"id" json:"-"`
}

func (r *IDRequest) Validate() error { return nil }

type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error { return nil }

type CreateAssociationRequest struct {
	Name string `json:"name" validate:"required"`
}

func (r *CreateAssociationRequest) Validate() error {
	return validation.Struct(r)
}

type AddMemberRequest struct {
	AssociationID int64  `param:"id" json:"-"`
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"omitempty,email"`
}

func (r *AddMemberRequest) Validate() error {
	return validation.Struct(r)
}

type AssignRepresenterRequest struct {
	AssociationID int64 `param:"id" json:"-"`
	MemberID      int64 `json:"member_id"`
}

func (r *AssignRepresenterRequest) Validate() error { return nil }

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

func (r *CreateCategoryRequest) Validate() error {
	return validation.Struct(r)
}

type CreateOfferRequest struct {
	ContactMemberID int64            `json:"contact_member_id"`
	Name            string           `json:"name" validate:"required"`
	Description     string           `json:"description"`
	Price           *decimal.Decimal `json:"price" validate:"required"`
	// CategoryIDs may hold JSON nulls; they are dropped before linking.
	CategoryIDs     []*int64         `json:"category_ids"`
}

func (r *CreateOfferRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CreateOfferRequest) categoryIDs() []int64 {
	out := make([]int64, 0, len(r.CategoryIDs))
	for _, id := range r.CategoryIDs {
		if id != nil {
			out = append(out, *id)
		}
	}
	return out
}

// ListOffersRequest filters by category when category_id is present.
// It is kept as text so a malformed value is reported, not ignored.
type ListOffersRequest struct {
	CategoryID string `query:"category_id" json:"-"`
}

func (r *ListOffersRequest) Validate() error { return nil }

type ValidateOfferRequest struct {
	OfferID         int64 `param:"id" json:"-"`
	ContactMemberID int64 `json:"contact_member_id"`
}

func (r *ValidateOfferRequest) Validate() error { return nil }

type CreateDemandRequest struct {
	OfferID  int64 `json:"offer_id"`
	MemberID int64 `json:"member_id"`
}

func (r *CreateDemandRequest) Validate() error { return nil }

type RankResponse struct {
	// Rank is null when the demand is no longer pending.
	Rank *int `json:"rank"`
}

type ValidateOfferResponse struct {
	// Approved is null when the offer had no pending demand.
	Approved *domain.Demand `json:"approved"`
}
