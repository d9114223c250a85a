package postgres

import (
	"context"

	"github.com/deppfellow/ressourcerie/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

type DemandRepository struct {
	pool *pgxpool.Pool
}

func NewDemandRepository(pool *pgxpool.Pool) *DemandRepository {
	return &DemandRepository{pool: pool}
}

const demandSelect = `SELECT id, offer_id, demander_id, created_at, status FROM demands`

func (r *DemandRepository) Save(ctx context.Context, d domain.Demand) (domain.Demand, error) {
	if d.ID == 0 {
		const stmt = `
INSERT INTO demands (offer_id, demander_id, created_at, status)
VALUES ($1, $2, $3, $4)
RETURNING id`
		if err := conn(ctx, r.pool).QueryRow(ctx, stmt, d.OfferID, d.DemanderID, d.CreatedAt, d.Status).Scan(&d.ID); err != nil {
			return domain.Demand{}, errors.Wrap(err, "insert demand")
		}
		return d, nil
	}

	const stmt = `UPDATE demands SET offer_id = $2, demander_id = $3, created_at = $4, status = $5 WHERE id = $1`
	tag, err := conn(ctx, r.pool).Exec(ctx, stmt, d.ID, d.OfferID, d.DemanderID, d.CreatedAt, d.Status)
	if err != nil {
		return domain.Demand{}, errors.Wrap(err, "update demand")
	}
	if tag.RowsAffected() == 0 {
		return domain.Demand{}, errors.Wrapf(pgx.ErrNoRows, "table:demands: update demand %d", d.ID)
	}
	return d, nil
}

func (r *DemandRepository) FindByID(ctx context.Context, id int64) (*domain.Demand, error) {
	demands, err := r.list(ctx, demandSelect+` WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(demands) == 0 {
		return nil, nil
	}
	return &demands[0], nil
}

func (r *DemandRepository) FindAll(ctx context.Context) ([]domain.Demand, error) {
	return r.list(ctx, demandSelect+` ORDER BY id`)
}

func (r *DemandRepository) FindByOffer(ctx context.Context, offerID int64) ([]domain.Demand, error) {
	return r.list(ctx, demandSelect+` WHERE offer_id = $1 ORDER BY created_at ASC, id ASC`, offerID)
}

func (r *DemandRepository) ExistsPending(ctx context.Context, offerID, demanderID int64) (bool, error) {
	const query = `
SELECT EXISTS (
	SELECT 1 FROM demands WHERE offer_id = $1 AND demander_id = $2 AND status = 'PENDING'
)`
	var exists bool
	if err := conn(ctx, r.pool).QueryRow(ctx, query, offerID, demanderID).Scan(&exists); err != nil {
		return false, errors.Wrap(err, "check pending demand")
	}
	return exists, nil
}

func (r *DemandRepository) list(ctx context.Context, query string, args ...any) ([]domain.Demand, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query demands")
	}
	defer rows.Close()

	out := make([]domain.Demand, 0)
	for rows.Next() {
		var d domain.Demand
		if err := rows.Scan(&d.ID, &d.OfferID, &d.DemanderID, &d.CreatedAt, &d.Status); err != nil {
			return nil, errors.Wrap(err, "scan demand")
		}
		d.CreatedAt = d.CreatedAt.UTC()
		out = append(out, d)
	}
	return out, errors.Wrap(rows.Err(), "query demands")
}
