package postgres

import (
	"context"

	"github.com/deppfellow/ressourcerie/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

func (r *CategoryRepository) Save(ctx context.Context, c domain.Category) (domain.Category, error) {
	if c.ID == 0 {
		const stmt = `INSERT INTO categories (name) VALUES ($1) RETURNING id`
		if err := conn(ctx, r.pool).QueryRow(ctx, stmt, c.Name).Scan(&c.ID); err != nil {
			return domain.Category{}, errors.Wrap(err, "insert category")
		}
		return c, nil
	}

	const stmt = `UPDATE categories SET name = $2 WHERE id = $1`
	tag, err := conn(ctx, r.pool).Exec(ctx, stmt, c.ID, c.Name)
	if err != nil {
		return domain.Category{}, errors.Wrap(err, "update category")
	}
	if tag.RowsAffected() == 0 {
		return domain.Category{}, errors.Wrapf(pgx.ErrNoRows, "table:categories: update category %d", c.ID)
	}
	return c, nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id int64) (*domain.Category, error) {
	const query = `SELECT id, name FROM categories WHERE id = $1`
	var c domain.Category
	if err := conn(ctx, r.pool).QueryRow(ctx, query, id).Scan(&c.ID, &c.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find category")
	}
	return &c, nil
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]domain.Category, error) {
	return r.list(ctx, `SELECT id, name FROM categories ORDER BY id`)
}

func (r *CategoryRepository) FindAllByID(ctx context.Context, ids []int64) ([]domain.Category, error) {
	return r.list(ctx, `SELECT id, name FROM categories WHERE id = ANY($1) ORDER BY id`, ids)
}

func (r *CategoryRepository) list(ctx context.Context, query string, args ...any) ([]domain.Category, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list categories")
	}
	defer rows.Close()

	out := make([]domain.Category, 0)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, errors.Wrap(err, "scan category")
		}
		out = append(out, c)
	}
	return out, errors.Wrap(rows.Err(), "list categories")
}
