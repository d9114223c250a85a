package postgres

import (
	"context"

	"github.com/deppfellow/ressourcerie/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

type MemberRepository struct {
	pool *pgxpool.Pool
}

func NewMemberRepository(pool *pgxpool.Pool) *MemberRepository {
	return &MemberRepository{pool: pool}
}

const memberColumns = `id, name, COALESCE(email, ''), association_id`

func (r *MemberRepository) Save(ctx context.Context, m domain.Member) (domain.Member, error) {
	if m.ID == 0 {
		const stmt = `INSERT INTO members (name, email, association_id) VALUES ($1, NULLIF($2, ''), $3) RETURNING id`
		if err := conn(ctx, r.pool).QueryRow(ctx, stmt, m.Name, m.Email, m.AssociationID).Scan(&m.ID); err != nil {
			return domain.Member{}, errors.Wrap(err, "insert member")
		}
		return m, nil
	}

	const stmt = `UPDATE members SET name = $2, email = NULLIF($3, ''), association_id = $4 WHERE id = $1`
	tag, err := conn(ctx, r.pool).Exec(ctx, stmt, m.ID, m.Name, m.Email, m.AssociationID)
	if err != nil {
		return domain.Member{}, errors.Wrap(err, "update member")
	}
	if tag.RowsAffected() == 0 {
		return domain.Member{}, errors.Wrapf(pgx.ErrNoRows, "table:members: update member %d", m.ID)
	}
	return m, nil
}

func (r *MemberRepository) FindByID(ctx context.Context, id int64) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`
	var m domain.Member
	err := conn(ctx, r.pool).QueryRow(ctx, query, id).Scan(&m.ID, &m.Name, &m.Email, &m.AssociationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find member")
	}
	return &m, nil
}

func (r *MemberRepository) FindAll(ctx context.Context) ([]domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members ORDER BY id`
	rows, err := conn(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "list members")
	}
	defer rows.Close()

	out := make([]domain.Member, 0)
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.AssociationID); err != nil {
			return nil, errors.Wrap(err, "scan member")
		}
		out = append(out, m)
	}
	return out, errors.Wrap(rows.Err(), "list members")
}
