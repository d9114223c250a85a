package domain

import (
	"sort"
	"time"
)

type DemandStatus string

const (
	DemandStatusPending   DemandStatus = "PENDING"
	DemandStatusApproved  DemandStatus = "APPROVED"
	DemandStatusRejected  DemandStatus = "REJECTED"
	DemandStatusCancelled DemandStatus = "CANCELLED"
)

// Demand is a member's request for an offer.
// At most one PENDING demand exists per (OfferID, DemanderID).
type Demand struct {
	ID         int64        `json:"id"`
	OfferID    int64        `json:"offer_id"`
	DemanderID int64        `json:"demander_id"`
	CreatedAt  time.Time    `json:"created_at"`
	Status     DemandStatus `json:"status"`
}

// SortQueue orders demands by CreatedAt ascending, ties broken by ID.
func SortQueue(demands []Demand) {
	sort.SliceStable(demands, func(i, j int) bool {
		if !demands[i].CreatedAt.Equal(demands[j].CreatedAt) {
			return demands[i].CreatedAt.Before(demands[j].CreatedAt)
		}
		return demands[i].ID < demands[j].ID
	})
}

// DemandApproved describes the winning demand of a validated offer.
type DemandApproved struct {
	DemandID    int64
	OfferID     int64
	OfferName   string
	MemberID    int64
	MemberName  string
	MemberEmail string
}
