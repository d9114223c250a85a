// Package memory provides an in-process store with the same contract as the
// postgres repositories. Entities live in id-indexed tables (id = index + 1)
// and relations are plain id fields resolved through lookups.
//
// A unit of work holds the store lock for its whole duration and restores a
// snapshot of every table if fn fails, so concurrent WithTx calls serialise.
package memory

import (
	"context"
	"sync"

	"github.com/deppfellow/ressourcerie/internal/domain"
)

type state struct {
	associations []domain.Association
	members      []domain.Member
	categories   []domain.Category
	offers       []domain.Offer
	demands      []domain.Demand
}

func (s *state) clone() *state {
	out := &state{
		associations: make([]domain.Association, len(s.associations)),
		members:      append([]domain.Member(nil), s.members...),
		categories:   append([]domain.Category(nil), s.categories...),
		offers:       make([]domain.Offer, len(s.offers)),
		demands:      append([]domain.Demand(nil), s.demands...),
	}
	for i, a := range s.associations {
		if a.RepresenterID != nil {
			id := *a.RepresenterID
			a.RepresenterID = &id
		}
		out.associations[i] = a
	}
	for i, o := range s.offers {
		out.offers[i] = o.Clone()
	}
	return out
}

// Store owns the tables and hands out repositories bound to them.
type Store struct {
	mu    sync.Mutex
	state *state
}

func New() *Store {
	return &Store{state: &state{}}
}

type txKey struct{}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// WithTx runs fn under the store lock; on error every table is rolled back.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.state = snapshot
		return err
	}
	return nil
}

// run gives fn access to the tables, locking unless ctx already holds a unit of work.
func (s *Store) run(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.inTx(ctx) {
		return fn(s.state)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

func (s *Store) Associations() *AssociationRepository { return &AssociationRepository{store: s} }
func (s *Store) Members() *MemberRepository           { return &MemberRepository{store: s} }
func (s *Store) Categories() *CategoryRepository      { return &CategoryRepository{store: s} }
func (s *Store) Offers() *OfferRepository             { return &OfferRepository{store: s} }
func (s *Store) Demands() *DemandRepository           { return &DemandRepository{store: s} }

// slot resolves id to a table index, or -1.
func slot(id int64, size int) int {
	if id <= 0 || id > int64(size) {
		return -1
	}
	return int(id - 1)
}
