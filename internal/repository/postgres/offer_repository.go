package postgres

import (
	"context"
	"time"

	"github.com/deppfellow/ressourcerie/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type OfferRepository struct {
	pool *pgxpool.Pool
}

func NewOfferRepository(pool *pgxpool.Pool) *OfferRepository {
	return &OfferRepository{pool: pool}
}

// Prices cross the wire as text so numeric precision is never lost.
const offerSelect = `
SELECT o.id, o.association_id, o.name, o.description, o.price::text, o.status, o.created_at, o.closed_at,
       COALESCE(array_agg(oc.category_id ORDER BY oc.category_id) FILTER (WHERE oc.category_id IS NOT NULL), '{}')
FROM offers o
LEFT JOIN offer_categories oc ON oc.offer_id = o.id`

func (r *OfferRepository) Save(ctx context.Context, o domain.Offer) (domain.Offer, error) {
	err := withTx(ctx, r.pool, func(ctx context.Context) error {
		q := conn(ctx, r.pool)
		if o.ID == 0 {
			const stmt = `
INSERT INTO offers (association_id, name, description, price, status, created_at, closed_at)
VALUES ($1, $2, $3, $4::numeric, $5, $6, $7)
RETURNING id`
			if err := q.QueryRow(ctx, stmt,
				o.AssociationID, o.Name, o.Description, o.Price.String(), o.Status, o.CreatedAt, o.ClosedAt,
			).Scan(&o.ID); err != nil {
				return errors.Wrap(err, "insert offer")
			}
		} else {
			const stmt = `
UPDATE offers
SET association_id = $2, name = $3, description = $4, price = $5::numeric, status = $6, created_at = $7, closed_at = $8
WHERE id = $1`
			tag, err := q.Exec(ctx, stmt,
				o.ID, o.AssociationID, o.Name, o.Description, o.Price.String(), o.Status, o.CreatedAt, o.ClosedAt,
			)
			if err != nil {
				return errors.Wrap(err, "update offer")
			}
			if tag.RowsAffected() == 0 {
				return errors.Wrapf(pgx.ErrNoRows, "table:offers: update offer %d", o.ID)
			}
			if _, err := q.Exec(ctx, `DELETE FROM offer_categories WHERE offer_id = $1`, o.ID); err != nil {
				return errors.Wrap(err, "clear offer categories")
			}
		}

		if len(o.CategoryIDs) > 0 {
			const stmt = `
INSERT INTO offer_categories (offer_id, category_id)
SELECT $1, unnest($2::bigint[])
ON CONFLICT DO NOTHING`
			if _, err := q.Exec(ctx, stmt, o.ID, o.CategoryIDs); err != nil {
				return errors.Wrap(err, "link offer categories")
			}
		}
		return nil
	})
	if err != nil {
		return domain.Offer{}, err
	}

	saved, err := r.FindByID(ctx, o.ID)
	if err != nil {
		return domain.Offer{}, err
	}
	if saved == nil {
		return domain.Offer{}, errors.Errorf("offer %d vanished after save", o.ID)
	}
	return *saved, nil
}

func (r *OfferRepository) FindByID(ctx context.Context, id int64) (*domain.Offer, error) {
	offers, err := r.list(ctx, offerSelect+` WHERE o.id = $1 GROUP BY o.id`, id)
	if err != nil {
		return nil, err
	}
	if len(offers) == 0 {
		return nil, nil
	}
	return &offers[0], nil
}

func (r *OfferRepository) FindAll(ctx context.Context) ([]domain.Offer, error) {
	return r.list(ctx, offerSelect+` GROUP BY o.id ORDER BY o.id`)
}

func (r *OfferRepository) FindByCategory(ctx context.Context, categoryID int64) ([]domain.Offer, error) {
	query := offerSelect + `
WHERE EXISTS (SELECT 1 FROM offer_categories f WHERE f.offer_id = o.id AND f.category_id = $1)
GROUP BY o.id
ORDER BY o.id`
	return r.list(ctx, query, categoryID)
}

func (r *OfferRepository) list(ctx context.Context, query string, args ...any) ([]domain.Offer, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query offers")
	}
	defer rows.Close()

	out := make([]domain.Offer, 0)
	for rows.Next() {
		var (
			o        domain.Offer
			price    string
			closedAt *time.Time
		)
		if err := rows.Scan(
			&o.ID, &o.AssociationID, &o.Name, &o.Description, &price, &o.Status, &o.CreatedAt, &closedAt, &o.CategoryIDs,
		); err != nil {
			return nil, errors.Wrap(err, "scan offer")
		}
		if o.Price, err = decimal.NewFromString(price); err != nil {
			return nil, errors.Wrapf(err, "parse price of offer %d", o.ID)
		}
		o.CreatedAt = o.CreatedAt.UTC()
		if closedAt != nil {
			t := closedAt.UTC()
			o.ClosedAt = &t
		}
		out = append(out, o)
	}
	return out, errors.Wrap(rows.Err(), "query offers")
}
