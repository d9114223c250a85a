package postgres

import (
	"context"

	"github.com/deppfellow/ressourcerie/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

type AssociationRepository struct {
	pool *pgxpool.Pool
}

func NewAssociationRepository(pool *pgxpool.Pool) *AssociationRepository {
	return &AssociationRepository{pool: pool}
}

func (r *AssociationRepository) Save(ctx context.Context, a domain.Association) (domain.Association, error) {
	if a.ID == 0 {
		const stmt = `INSERT INTO associations (name, representer_id) VALUES ($1, $2) RETURNING id`
		if err := conn(ctx, r.pool).QueryRow(ctx, stmt, a.Name, a.RepresenterID).Scan(&a.ID); err != nil {
			return domain.Association{}, errors.Wrap(err, "insert association")
		}
		return a, nil
	}

	const stmt = `UPDATE associations SET name = $2, representer_id = $3 WHERE id = $1`
	tag, err := conn(ctx, r.pool).Exec(ctx, stmt, a.ID, a.Name, a.RepresenterID)
	if err != nil {
		return domain.Association{}, errors.Wrap(err, "update association")
	}
	if tag.RowsAffected() == 0 {
		return domain.Association{}, errors.Wrapf(pgx.ErrNoRows, "table:associations: update association %d", a.ID)
	}
	return a, nil
}

func (r *AssociationRepository) FindByID(ctx context.Context, id int64) (*domain.Association, error) {
	const query = `SELECT id, name, representer_id FROM associations WHERE id = $1`
	var a domain.Association
	err := conn(ctx, r.pool).QueryRow(ctx, query, id).Scan(&a.ID, &a.Name, &a.RepresenterID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find association")
	}
	return &a, nil
}

func (r *AssociationRepository) FindAll(ctx context.Context) ([]domain.Association, error) {
	const query = `SELECT id, name, representer_id FROM associations ORDER BY id`
	rows, err := conn(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "list associations")
	}
	defer rows.Close()

	out := make([]domain.Association, 0)
	for rows.Next() {
		var a domain.Association
		if err := rows.Scan(&a.ID, &a.Name, &a.RepresenterID); err != nil {
			return nil, errors.Wrap(err, "scan association")
		}
		out = append(out, a)
	}
	return out, errors.Wrap(rows.Err(), "list associations")
}
