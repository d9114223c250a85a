package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OfferStatus string

const (
	OfferStatusOpen     OfferStatus = "OPEN"
	OfferStatusClosed   OfferStatus = "CLOSED"
	OfferStatusArchived OfferStatus = "ARCHIVED"
)

// Offer is a good posted by an association. Status only moves forward:
// OPEN -> CLOSED -> ARCHIVED, or OPEN -> ARCHIVED.
type Offer struct {
	ID            int64           `json:"id"`
	AssociationID int64           `json:"association_id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Status        OfferStatus     `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	ClosedAt      *time.Time      `json:"closed_at"`
	CategoryIDs   []int64         `json:"category_ids"`
}

// HasCategory reports whether the offer is linked to categoryID.
func (o Offer) HasCategory(categoryID int64) bool {
	for _, id := range o.CategoryIDs {
		if id == categoryID {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slices or pointers with o.
func (o Offer) Clone() Offer {
	out := o
	out.CategoryIDs = append([]int64(nil), o.CategoryIDs...)
	if o.ClosedAt != nil {
		closedAt := *o.ClosedAt
		out.ClosedAt = &closedAt
	}
	return out
}
