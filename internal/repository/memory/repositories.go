package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/deppfellow/ressourcerie/internal/domain"
)

type AssociationRepository struct {
	store *Store
}

func (r *AssociationRepository) Save(ctx context.Context, a domain.Association) (domain.Association, error) {
	err := r.store.run(ctx, func(st *state) error {
		a = a.Clone()
		if a.ID == 0 {
			a.ID = int64(len(st.associations) + 1)
			st.associations = append(st.associations, a)
			return nil
		}
		i := slot(a.ID, len(st.associations))
		if i < 0 {
			return fmt.Errorf("save association: id %d does not exist", a.ID)
		}
		st.associations[i] = a
		return nil
	})
	return a.Clone(), err
}

func (r *AssociationRepository) FindByID(ctx context.Context, id int64) (*domain.Association, error) {
	var out *domain.Association
	err := r.store.run(ctx, func(st *state) error {
		if i := slot(id, len(st.associations)); i >= 0 {
			a := st.associations[i].Clone()
			out = &a
		}
		return nil
	})
	return out, err
}

func (r *AssociationRepository) FindAll(ctx context.Context) ([]domain.Association, error) {
	var out []domain.Association
	err := r.store.run(ctx, func(st *state) error {
		out = make([]domain.Association, 0, len(st.associations))
		for _, a := range st.associations {
			out = append(out, a.Clone())
		}
		return nil
	})
	return out, err
}

type MemberRepository struct {
	store *Store
}

func (r *MemberRepository) Save(ctx context.Context, m domain.Member) (domain.Member, error) {
	err := r.store.run(ctx, func(st *state) error {
		if slot(m.AssociationID, len(st.associations)) < 0 {
			return fmt.Errorf("save member: association %d does not exist", m.AssociationID)
		}
		if m.ID == 0 {
			m.ID = int64(len(st.members) + 1)
			st.members = append(st.members, m)
			return nil
		}
		i := slot(m.ID, len(st.members))
		if i < 0 {
			return fmt.Errorf("save member: id %d does not exist", m.ID)
		}
		st.members[i] = m
		return nil
	})
	return m, err
}

func (r *MemberRepository) FindByID(ctx context.Context, id int64) (*domain.Member, error) {
	var out *domain.Member
	err := r.store.run(ctx, func(st *state) error {
		if i := slot(id, len(st.members)); i >= 0 {
			m := st.members[i]
			out = &m
		}
		return nil
	})
	return out, err
}

func (r *MemberRepository) FindAll(ctx context.Context) ([]domain.Member, error) {
	var out []domain.Member
	err := r.store.run(ctx, func(st *state) error {
		out = append(make([]domain.Member, 0, len(st.members)), st.members...)
		return nil
	})
	return out, err
}

type CategoryRepository struct {
	store *Store
}

func (r *CategoryRepository) Save(ctx context.Context, c domain.Category) (domain.Category, error) {
	err := r.store.run(ctx, func(st *state) error {
		if c.ID == 0 {
			c.ID = int64(len(st.categories) + 1)
			st.categories = append(st.categories, c)
			return nil
		}
		i := slot(c.ID, len(st.categories))
		if i < 0 {
			return fmt.Errorf("save category: id %d does not exist", c.ID)
		}
		st.categories[i] = c
		return nil
	})
	return c, err
}

func (r *CategoryRepository) FindByID(ctx context.Context, id int64) (*domain.Category, error) {
	var out *domain.Category
	err := r.store.run(ctx, func(st *state) error {
		if i := slot(id, len(st.categories)); i >= 0 {
			c := st.categories[i]
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	err := r.store.run(ctx, func(st *state) error {
		out = append(make([]domain.Category, 0, len(st.categories)), st.categories...)
		return nil
	})
	return out, err
}

func (r *CategoryRepository) FindAllByID(ctx context.Context, ids []int64) ([]domain.Category, error) {
	out := make([]domain.Category, 0, len(ids))
	err := r.store.run(ctx, func(st *state) error {
		seen := make(map[int64]bool, len(ids))
		for _, id := range ids {
			i := slot(id, len(st.categories))
			if i < 0 || seen[id] {
				continue
			}
			seen[id] = true
			out = append(out, st.categories[i])
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

type OfferRepository struct {
	store *Store
}

func (r *OfferRepository) Save(ctx context.Context, o domain.Offer) (domain.Offer, error) {
	err := r.store.run(ctx, func(st *state) error {
		if slot(o.AssociationID, len(st.associations)) < 0 {
			return fmt.Errorf("save offer: association %d does not exist", o.AssociationID)
		}
		for _, id := range o.CategoryIDs {
			if slot(id, len(st.categories)) < 0 {
				return fmt.Errorf("save offer: category %d does not exist", id)
			}
		}
		o = o.Clone()
		sort.Slice(o.CategoryIDs, func(i, j int) bool { return o.CategoryIDs[i] < o.CategoryIDs[j] })
		if o.ID == 0 {
			o.ID = int64(len(st.offers) + 1)
			st.offers = append(st.offers, o)
			return nil
		}
		i := slot(o.ID, len(st.offers))
		if i < 0 {
			return fmt.Errorf("save offer: id %d does not exist", o.ID)
		}
		st.offers[i] = o
		return nil
	})
	return o.Clone(), err
}

func (r *OfferRepository) FindByID(ctx context.Context, id int64) (*domain.Offer, error) {
	var out *domain.Offer
	err := r.store.run(ctx, func(st *state) error {
		if i := slot(id, len(st.offers)); i >= 0 {
			o := st.offers[i].Clone()
			out = &o
		}
		return nil
	})
	return out, err
}

func (r *OfferRepository) FindAll(ctx context.Context) ([]domain.Offer, error) {
	var out []domain.Offer
	err := r.store.run(ctx, func(st *state) error {
		out = make([]domain.Offer, 0, len(st.offers))
		for _, o := range st.offers {
			out = append(out, o.Clone())
		}
		return nil
	})
	return out, err
}

func (r *OfferRepository) FindByCategory(ctx context.Context, categoryID int64) ([]domain.Offer, error) {
	out := make([]domain.Offer, 0)
	err := r.store.run(ctx, func(st *state) error {
		for _, o := range st.offers {
			if o.HasCategory(categoryID) {
				out = append(out, o.Clone())
			}
		}
		return nil
	})
	return out, err
}

type DemandRepository struct {
	store *Store
}

func (r *DemandRepository) Save(ctx context.Context, d domain.Demand) (domain.Demand, error) {
	err := r.store.run(ctx, func(st *state) error {
		if slot(d.OfferID, len(st.offers)) < 0 {
			return fmt.Errorf("save demand: offer %d does not exist", d.OfferID)
		}
		if slot(d.DemanderID, len(st.members)) < 0 {
			return fmt.Errorf("save demand: member %d does not exist", d.DemanderID)
		}
		if d.ID == 0 {
			d.ID = int64(len(st.demands) + 1)
			st.demands = append(st.demands, d)
			return nil
		}
		i := slot(d.ID, len(st.demands))
		if i < 0 {
			return fmt.Errorf("save demand: id %d does not exist", d.ID)
		}
		st.demands[i] = d
		return nil
	})
	return d, err
}

func (r *DemandRepository) FindByID(ctx context.Context, id int64) (*domain.Demand, error) {
	var out *domain.Demand
	err := r.store.run(ctx, func(st *state) error {
		if i := slot(id, len(st.demands)); i >= 0 {
			d := st.demands[i]
			out = &d
		}
		return nil
	})
	return out, err
}

func (r *DemandRepository) FindAll(ctx context.Context) ([]domain.Demand, error) {
	var out []domain.Demand
	err := r.store.run(ctx, func(st *state) error {
		out = append(make([]domain.Demand, 0, len(st.demands)), st.demands...)
		return nil
	})
	return out, err
}

func (r *DemandRepository) FindByOffer(ctx context.Context, offerID int64) ([]domain.Demand, error) {
	out := make([]domain.Demand, 0)
	err := r.store.run(ctx, func(st *state) error {
		for _, d := range st.demands {
			if d.OfferID == offerID {
				out = append(out, d)
			}
		}
		return nil
	})
	domain.SortQueue(out)
	return out, err
}

func (r *DemandRepository) ExistsPending(ctx context.Context, offerID, demanderID int64) (bool, error) {
	var exists bool
	err := r.store.run(ctx, func(st *state) error {
		for _, d := range st.demands {
			if d.OfferID == offerID && d.DemanderID == demanderID && d.Status == domain.DemandStatusPending {
				exists = true
				return nil
			}
		}
		return nil
	})
	return exists, err
}
