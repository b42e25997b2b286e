package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/projetointegrador/estoque-api/internal/domain/catalog"
	"github.com/projetointegrador/estoque-api/internal/observability"
)

type CategoriesRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewCategoriesRepo(pool *pgxpool.Pool, prom *observability.Prom) *CategoriesRepo {
	return &CategoriesRepo{pool: pool, prom: prom}
}

func (r *CategoriesRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}

	return fn()
}

func (r *CategoriesRepo) Create(ctx context.Context, name string) (catalog.Category, error) {
	c := catalog.Category{ID: uuid.NewString(), Name: name}

	err := r.observe("categories.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO categories (id, name) VALUES ($1, $2)`, c.ID, c.Name)

		return err
	})

	if err != nil {
		if isUniqueViolation(err) {
			return catalog.Category{}, ErrDuplicate
		}

		return catalog.Category{}, err
	}

	return c, nil
}

func (r *CategoriesRepo) GetByID(ctx context.Context, id string) (catalog.Category, error) {
	var c catalog.Category

	err := r.observe("categories.get_by_id", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT id, name FROM categories WHERE id = $1`, id).Scan(&c.ID, &c.Name)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Category{}, ErrNotFound
		}

		return catalog.Category{}, err
	}

	return c, nil
}

func (r *CategoriesRepo) List(ctx context.Context) ([]catalog.Category, error) {
	out := make([]catalog.Category, 0)

	err := r.observe("categories.list", func() error {
		rows, err := r.pool.Query(ctx, `SELECT id, name FROM categories ORDER BY name ASC`)

		if err != nil {
			return err
		}

		defer rows.Close()

		for rows.Next() {
			var c catalog.Category

			if err := rows.Scan(&c.ID, &c.Name); err != nil {
				return err
			}

			out = append(out, c)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *CategoriesRepo) Update(ctx context.Context, id, name string) (catalog.Category, error) {
	var tag pgconn.CommandTag

	err := r.observe("categories.update", func() error {
		t, err := r.pool.Exec(ctx,
			`UPDATE categories SET name = $2 WHERE id = $1`, id, name)

		tag = t

		return err
	})

	if err != nil {
		if isUniqueViolation(err) {
			return catalog.Category{}, ErrDuplicate
		}

		return catalog.Category{}, err
	}

	if tag.RowsAffected() == 0 {
		return catalog.Category{}, ErrNotFound
	}

	return catalog.Category{ID: id, Name: name}, nil
}

func (r *CategoriesRepo) Delete(ctx context.Context, id string) error {
	var tag pgconn.CommandTag

	err := r.observe("categories.delete", func() error {
		t, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)

		tag = t

		return err
	})

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
