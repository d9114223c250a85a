package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/deppfellow/ressourcerie/internal/clock"
	"github.com/deppfellow/ressourcerie/internal/domain"
	"github.com/deppfellow/ressourcerie/internal/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ExchangeService runs the offer and demand lifecycle. It keeps no state of
// its own: every operation reads and writes through the repositories inside
// a single unit of work.
type ExchangeService struct {
	repos    *repository.Repositories
	clock    clock.Clock
	notifier Notifier
	logger   zerolog.Logger
}

type ExchangeServiceOption func(*ExchangeService)

// WithNotifier sends approval notices after validateOffer commits.
func WithNotifier(n Notifier) ExchangeServiceOption {
	return func(s *ExchangeService) {
		s.notifier = n
	}
}

func WithLogger(logger zerolog.Logger) ExchangeServiceOption {
	return func(s *ExchangeService) {
		s.logger = logger
	}
}

func NewExchangeService(repos *repository.Repositories, clk clock.Clock, opts ...ExchangeServiceOption) *ExchangeService {
	svc := &ExchangeService{
		repos:  repos,
		clock:  clk,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type AddMemberInput struct {
	AssociationID int64
	Name          string
	Email         string
}

type CreateOfferInput struct {
	ContactMemberID int64
	Name            string
	Description     string
	// Price is required; nil means it was not provided.
	Price       *decimal.Decimal
	CategoryIDs []int64
}

func (s *ExchangeService) CreateAssociation(ctx context.Context, name string) (domain.Association, error) {
	name, err := requireName("association", name, domain.MaxNameLength)
	if err != nil {
		return domain.Association{}, err
	}

	var result domain.Association
	err = s.repos.Tx.WithTx(ctx, func(txCtx context.Context) error {
		result, err = s.repos.Associations.Save(txCtx, domain.Association{Name: name})
		return err
	})
	if err != nil {
		return domain.Association{}, err
	}
	return result, nil
}

func (s *ExchangeService) AddMember(ctx context.Context, in AddMemberInput) (domain.Member, error) {
	if err := requireID("associationId", in.AssociationID); err != nil {
		return domain.Member{}, err
	}
	name, err := requireName("member", in.Name, 0)
	if err != nil {
		return domain.Member{}, err
	}

	var result domain.Member
	err = s.repos.Tx.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.association(txCtx, in.AssociationID); err != nil {
			return err
		}

		result, err = s.repos.Members.Save(txCtx, domain.Member{
			Name:          name,
			Email:         strings.TrimSpace(in.Email),
			AssociationID: in.AssociationID,
		})
		return err
	})
	if err != nil {
		return domain.Member{}, err
	}
	return result, nil
}

// AssignRepresenter makes memberID the contact of associationID. The member
// must already belong to that association.
func (s *ExchangeService) AssignRepresenter(ctx context.Context, associationID, memberID int64) (domain.Association, error) {
	if err := requireID("associationId", associationID); err != nil {
		return domain.Association{}, err
	}
	if err := requireID("memberId", memberID); err != nil {
		return domain.Association{}, err
	}

	var result domain.Association
	err := s.repos.Tx.WithTx(ctx, func(txCtx context.Context) error {
		association, err := s.association(txCtx, associationID)
		if err != nil {
			return err
		}
		member, err := s.member(txCtx, memberID)
		if err != nil {
			return err
		}
		if member.AssociationID != association.ID {
			return domain.InvalidState("member %d does not belong to association %d", memberID, associationID)
		}

		association.RepresenterID = &member.ID
		result, err = s.repos.Associations.Save(txCtx, *association)
		return err
	})
	if err != nil {
		return domain.Association{}, err
	}
	return result, nil
}

func (s *ExchangeService) CreateCategory(ctx context.Context, name string) (domain.Category, error) {
	name, err := requireName("category", name, 0)
	if err != nil {
		return domain.Category{}, err
	}

	var result domain.Category
	err = s.repos.Tx.WithTx(ctx, func(txCtx context.Context) error {
		result, err = s.repos.Categories.Save(txCtx, domain.Category{Name: name})
		return err
	})
	if err != nil {
		return domain.Category{}, err
	}
	return result, nil
}

// CreateOffer posts an offer on behalf of the contact member's association.
// Every category id must resolve; duplicates are ignored.
func (s *ExchangeService) CreateOffer(ctx context.Context, in CreateOfferInput) (domain.Offer, error) {
	if err := requireID("contactId", in.ContactMemberID); err != nil {
		return domain.Offer{}, err
	}
	name, err := requireName("offer", in.Name, domain.MaxNameLength)
	if err != nil {
		return domain.Offer{}, err
	}
	if in.Price == nil {
		return domain.Offer{}, domain.InvalidArgument("offer price is required")
	}
	if in.Price.IsNegative() {
		return domain.Offer{}, domain.InvalidArgument("offer price cannot be negative")
	}
	categoryIDs := distinct(in.CategoryIDs)
	if len(categoryIDs) == 0 {
		return domain.Offer{}, domain.InvalidArgument("categoryIds is required")
	}

	var result domain.Offer
	err = s.repos.Tx.WithTx(ctx, func(txCtx context.Context) error {
		contact, err := s.member(txCtx, in.ContactMemberID)
		if err != nil {
			return err
		}
		association, err := s.memberAssociation(txCtx, contact)
		if err != nil {
			return err
		}
		if association == nil {
			return domain.InvalidState("contact member %d has no association", contact.ID)
		}

		categories, err := s.repos.Categories.FindAllByID(txCtx, categoryIDs)
		if err != nil {
			return err
		}
		if missing := missingIDs(categoryIDs, categories); len(missing) > 0 {
			return domain.MissingCategories(missing)
		}

		resolved := make([]int64, len(categories))
		for i, c := range categories {
			resolved[i] = c.ID
		}

		result, err = s.repos.Offers.Save(txCtx, domain.Offer{
			AssociationID: association.ID,
			Name:          name,
			Description:   strings.TrimSpace(in.Description),
			Price:         *in.Price,
			Status:        domain.OfferStatusOpen,
			CreatedAt:     s.clock.Now(),
			CategoryIDs:   resolved,
		})
		return err
	})
	if err != nil {
		return domain.Offer{}, err
	}
	return result, nil
}

// ListOffers returns every offer, archived ones included.
func (s *ExchangeService) ListOffers(ctx context.Context) ([]domain.Offer, error) {
	var result []domain.Offer
	err := s.repos.Tx.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		result, err = s.repos.Offers.FindAll(txCtx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *ExchangeService) ListOffersByCategory(ctx context.Context, categoryID int64) ([]domain.Offer, error) {
	if err := requireID("categoryId", categoryID); err != nil {
		return nil, err
	}

	var result []domain.Offer
	err := s.repos.Tx.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		result, err = s.repos.Offers.FindByCategory(txCtx, categoryID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CreateDemand queues memberID on an open offer. A member holds at most one
// pending demand per offer.
func (s *ExchangeService) CreateDemand(ctx context.Context, offerID, memberID int64) (domain.Demand, error) {
	if err := requireID("offerId", offerID); err != nil {
		return domain.Demand{}, err
	}
	if err := requireID("demanderId", memberID); err != nil {
		return domain.Demand{}, err
	}

	var result domain.Demand
	err := s.repos.Tx.WithTx(ctx, func(txCtx context.Context) error {
		offer, err := s.offer(txCtx, offerID)
		if err != nil {
			return err
		}
		if offer.Status != domain.OfferStatusOpen {
			return domain.InvalidState("offer %d is not OPEN (status=%s)", offer.ID, offer.Status)
		}
		if _, err := s.member(txCtx, memberID); err != nil {
			return err
		}

		pending, err := s.repos.Demands.ExistsPending(txCtx, offerID, memberID)
		if err != nil {
			return err
		}
		if pending {
			return domain.InvalidState("member %d already has a PENDING demand for offer %d", memberID, offerID)
		}

		result, err = s.repos.Demands.Save(txCtx, domain.Demand{
			OfferID:    offerID,
			DemanderID: memberID,
			CreatedAt:  s.clock.Now(),
			Status:     domain.DemandStatusPending,
		})
		return err
	})
	if err != nil {
		return domain.Demand{}, err
	}
	return result, nil
}

func (s *ExchangeService) CancelDemand(ctx context.Context, demandID int64) (domain.Demand, error) {
	if err := requireID("demandId", demandID); err != nil {
		return domain.Demand{}, err
	}

	var result domain.Demand
	err := s.repos.Tx.WithTx(ctx, func(txCtx context.Context) error {
		demand, err := s.demand(txCtx, demandID)
		if err != nil {
			return err
		}
		if demand.Status != domain.DemandStatusPending {
			return domain.InvalidState("only PENDING demands can be cancelled (demand %d is %s)", demand.ID, demand.Status)
		}

		demand.Status = domain.DemandStatusCancelled
		result, err = s.repos.Demands.Save(txCtx, *demand)
		return err
	})
	if err != nil {
		return domain.Demand{}, err
	}
	return result, nil
}

// GetDemandRank returns the 1-based position of the demand among the
// pending demands of its offer. It returns nil when the demand exists but
// is no longer pending.
func (s *ExchangeService) GetDemandRank(ctx context.Context, demandID int64) (*int, error) {
	if err := requireID("demandId", demandID); err != nil {
		return nil, err
	}

	var rank *int
	err := s.repos.Tx.WithTx(ctx, func(txCtx context.Context) error {
		demand, err := s.demand(txCtx, demandID)
		if err != nil {
			return err
		}
		offer, err := s.repos.Offers.FindByID(txCtx, demand.OfferID)
		if err != nil {
			return err
		}
		if offer == nil {
			return domain.InvalidState("demand %d has no offer", demand.ID)
		}

		queue, err := s.repos.Demands.FindByOffer(txCtx, offer.ID)
		if err != nil {
			return err
		}

		position := 0
		for _, d := range queue {
			if d.Status != domain.DemandStatusPending {
				continue
			}
			position++
			if d.ID == demandID {
				rank = &position
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rank, nil
}

// ValidateOffer closes an open offer. The oldest pending demand is approved
// and every other pending demand rejected. Any member of the owning
// association may validate. It returns nil when nothing was pending.
func (s *ExchangeService) ValidateOffer(ctx context.Context, contactMemberID, offerID int64) (*domain.Demand, error) {
	if err := requireID("contactMemberId", contactMemberID); err != nil {
		return nil, err
	}
	if err := requireID("offerId", offerID); err != nil {
		return nil, err
	}

	var (
		approved *domain.Demand
		offer    *domain.Offer
	)
	err := s.repos.Tx.WithTx(ctx, func(txCtx context.Context) error {
		approved = nil

		contact, err := s.member(txCtx, contactMemberID)
		if err != nil {
			return err
		}
		offer, err = s.offer(txCtx, offerID)
		if err != nil {
			return err
		}
		if offer.Status != domain.OfferStatusOpen {
			return domain.InvalidState("offer %d is not OPEN (status=%s)", offer.ID, offer.Status)
		}
		if offer.AssociationID == 0 || contact.AssociationID != offer.AssociationID {
			return domain.InvalidState("contact member %d is not allowed to validate offer %d", contact.ID, offer.ID)
		}

		queue, err := s.repos.Demands.FindByOffer(txCtx, offer.ID)
		if err != nil {
			return err
		}
		for _, d := range queue {
			winner := false
			if d.Status == domain.DemandStatusPending {
				if approved == nil {
					d.Status = domain.DemandStatusApproved
					winner = true
				} else {
					d.Status = domain.DemandStatusRejected
				}
			}
			saved, err := s.repos.Demands.Save(txCtx, d)
			if err != nil {
				return err
			}
			if winner {
				approved = &saved
			}
		}

		closedAt := s.clock.Now()
		offer.Status = domain.OfferStatusClosed
		offer.ClosedAt = &closedAt
		_, err = s.repos.Offers.Save(txCtx, *offer)
		return err
	})
	if err != nil {
		return nil, err
	}

	if approved != nil {
		s.notifyApproved(ctx, *offer, *approved)
	}
	return approved, nil
}

// notifyApproved runs after commit; a failure here never undoes the validation.
func (s *ExchangeService) notifyApproved(ctx context.Context, offer domain.Offer, demand domain.Demand) {
	if s.notifier == nil {
		return
	}

	member, err := s.repos.Members.FindByID(ctx, demand.DemanderID)
	if err != nil || member == nil {
		s.logger.Warn().Err(err).Int64("demand_id", demand.ID).Msg("could not load demander for approval notice")
		return
	}

	err = s.notifier.NotifyDemandApproved(ctx, domain.DemandApproved{
		DemandID:    demand.ID,
		OfferID:     offer.ID,
		OfferName:   offer.Name,
		MemberID:    member.ID,
		MemberName:  member.Name,
		MemberEmail: member.Email,
	})
	if err != nil {
		s.logger.Warn().Err(err).
			Int64("demand_id", demand.ID).
			Int64("offer_id", offer.ID).
			Msg("failed to send approval notice")
	}
}

// ArchiveOffer archives the offer whatever its status. Its demands are left
// as they are.
func (s *ExchangeService) ArchiveOffer(ctx context.Context, offerID int64) (domain.Offer, error) {
	if err := requireID("offerId", offerID); err != nil {
		return domain.Offer{}, err
	}

	var result domain.Offer
	err := s.repos.Tx.WithTx(ctx, func(txCtx context.Context) error {
		offer, err := s.offer(txCtx, offerID)
		if err != nil {
			return err
		}

		closedAt := s.clock.Now()
		offer.Status = domain.OfferStatusArchived
		offer.ClosedAt = &closedAt
		result, err = s.repos.Offers.Save(txCtx, *offer)
		return err
	})
	if err != nil {
		return domain.Offer{}, err
	}
	return result, nil
}

// OfferCountByAssociation counts offers of every status per owning
// association.
func (s *ExchangeService) OfferCountByAssociation(ctx context.Context) (map[int64]int, error) {
	counts := map[int64]int{}
	err := s.repos.Tx.WithTx(ctx, func(txCtx context.Context) error {
		associations, err := s.associationIDs(txCtx)
		if err != nil {
			return err
		}
		offers, err := s.repos.Offers.FindAll(txCtx)
		if err != nil {
			return err
		}
		for _, o := range offers {
			if associations[o.AssociationID] {
				counts[o.AssociationID]++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// OfferWinsByAssociation counts approved demands per association of the
// demanding member.
func (s *ExchangeService) OfferWinsByAssociation(ctx context.Context) (map[int64]int, error) {
	wins := map[int64]int{}
	err := s.repos.Tx.WithTx(ctx, func(txCtx context.Context) error {
		associations, err := s.associationIDs(txCtx)
		if err != nil {
			return err
		}
		members, err := s.repos.Members.FindAll(txCtx)
		if err != nil {
			return err
		}
		memberAssociation := make(map[int64]int64, len(members))
		for _, m := range members {
			memberAssociation[m.ID] = m.AssociationID
		}

		demands, err := s.repos.Demands.FindAll(txCtx)
		if err != nil {
			return err
		}
		for _, d := range demands {
			if d.Status != domain.DemandStatusApproved {
				continue
			}
			associationID, ok := memberAssociation[d.DemanderID]
			if !ok || !associations[associationID] {
				continue
			}
			wins[associationID]++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return wins, nil
}

func (s *ExchangeService) GetAssociation(ctx context.Context, id int64) (domain.Association, error) {
	return get(ctx, s, "associationId", id, s.association)
}

func (s *ExchangeService) GetMember(ctx context.Context, id int64) (domain.Member, error) {
	return get(ctx, s, "memberId", id, s.member)
}

func (s *ExchangeService) GetOffer(ctx context.Context, id int64) (domain.Offer, error) {
	return get(ctx, s, "offerId", id, s.offer)
}

func (s *ExchangeService) GetDemand(ctx context.Context, id int64) (domain.Demand, error) {
	return get(ctx, s, "demandId", id, s.demand)
}

func (s *ExchangeService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var result []domain.Category
	err := s.repos.Tx.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		result, err = s.repos.Categories.FindAll(txCtx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListDemandsByOffer returns the offer's demands in queue order, whatever
// their status.
func (s *ExchangeService) ListDemandsByOffer(ctx context.Context, offerID int64) ([]domain.Demand, error) {
	if err := requireID("offerId", offerID); err != nil {
		return nil, err
	}

	var result []domain.Demand
	err := s.repos.Tx.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.offer(txCtx, offerID); err != nil {
			return err
		}
		var err error
		result, err = s.repos.Demands.FindByOffer(txCtx, offerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func get[T any](ctx context.Context, s *ExchangeService, field string, id int64, find func(context.Context, int64) (*T, error)) (T, error) {
	var zero T
	if err := requireID(field, id); err != nil {
		return zero, err
	}

	var result *T
	err := s.repos.Tx.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		result, err = find(txCtx, id)
		return err
	})
	if err != nil {
		return zero, err
	}
	return *result, nil
}

func (s *ExchangeService) association(ctx context.Context, id int64) (*domain.Association, error) {
	a, err := s.repos.Associations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.NotFound("association %d not found", id)
	}
	return a, nil
}

func (s *ExchangeService) member(ctx context.Context, id int64) (*domain.Member, error) {
	m, err := s.repos.Members.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.NotFound("member %d not found", id)
	}
	return m, nil
}

// memberAssociation returns nil when the member's association does not resolve.
func (s *ExchangeService) memberAssociation(ctx context.Context, m *domain.Member) (*domain.Association, error) {
	if m.AssociationID <= 0 {
		return nil, nil
	}
	return s.repos.Associations.FindByID(ctx, m.AssociationID)
}

func (s *ExchangeService) offer(ctx context.Context, id int64) (*domain.Offer, error) {
	o, err := s.repos.Offers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.NotFound("offer %d not found", id)
	}
	return o, nil
}

func (s *ExchangeService) demand(ctx context.Context, id int64) (*domain.Demand, error) {
	d, err := s.repos.Demands.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.NotFound("demand %d not found", id)
	}
	return d, nil
}

func (s *ExchangeService) associationIDs(ctx context.Context) (map[int64]bool, error) {
	associations, err := s.repos.Associations.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	ids := make(map[int64]bool, len(associations))
	for _, a := range associations {
		ids[a.ID] = true
	}
	return ids, nil
}

func requireID(field string, id int64) error {
	if id <= 0 {
		return domain.InvalidArgument("%s is invalid: %d", field, id)
	}
	return nil
}

// requireName trims name and rejects it when blank or, with maxLen > 0,
// longer than maxLen characters.
func requireName(entity, name string, maxLen int) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.InvalidArgument("%s name is blank", entity)
	}
	if maxLen > 0 && utf8.RuneCountInString(name) > maxLen {
		return "", domain.InvalidArgument("%s name exceeds %d characters", entity, maxLen)
	}
	return name, nil
}

func distinct(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func missingIDs(want []int64, found []domain.Category) []int64 {
	have := make(map[int64]bool, len(found))
	for _, c := range found {
		have[c.ID] = true
	}
	var missing []int64
	for _, id := range want {
		if !have[id] {
			missing = append(missing, id)
		}
	}
	return missing
}
