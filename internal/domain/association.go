package domain

// MaxNameLength bounds association and offer names.
const MaxNameLength = 64

// Association posts offers through its members.
type Association struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	// RepresenterID is the contact member, nil until assigned.
	RepresenterID *int64 `json:"representer_id"`
}

// Clone returns a copy that shares no pointers with a.
func (a Association) Clone() Association {
	out := a
	if a.RepresenterID != nil {
		id := *a.RepresenterID
		out.RepresenterID = &id
	}
	return out
}

// Member belongs to exactly one association.
type Member struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
	AssociationID int64  `json:"association_id"`
}

// Category groups offers; linked to offers through offer_categories.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
