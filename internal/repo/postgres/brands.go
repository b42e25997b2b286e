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

type BrandsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewBrandsRepo(pool *pgxpool.Pool, prom *observability.Prom) *BrandsRepo {
	return &BrandsRepo{pool: pool, prom: prom}
}

func (r *BrandsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}

	return fn()
}

func (r *BrandsRepo) Create(ctx context.Context, name string) (catalog.Brand, error) {
	b := catalog.Brand{ID: uuid.NewString(), Name: name}

	err := r.observe("brands.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO brands (id, name) VALUES ($1, $2)`, b.ID, b.Name)

		return err
	})

	if err != nil {
		if isUniqueViolation(err) {
			return catalog.Brand{}, ErrDuplicate
		}

		return catalog.Brand{}, err
	}

	return b, nil
}

func (r *BrandsRepo) GetByID(ctx context.Context, id string) (catalog.Brand, error) {
	var b catalog.Brand

	err := r.observe("brands.get_by_id", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT id, name FROM brands WHERE id = $1`, id).Scan(&b.ID, &b.Name)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Brand{}, ErrNotFound
		}

		return catalog.Brand{}, err
	}

	return b, nil
}

func (r *BrandsRepo) List(ctx context.Context) ([]catalog.Brand, error) {
	out := make([]catalog.Brand, 0)

	err := r.observe("brands.list", func() error {
		rows, err := r.pool.Query(ctx, `SELECT id, name FROM brands ORDER BY name ASC`)

		if err != nil {
			return err
		}

		defer rows.Close()

		for rows.Next() {
			var b catalog.Brand

			if err := rows.Scan(&b.ID, &b.Name); err != nil {
				return err
			}

			out = append(out, b)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *BrandsRepo) Update(ctx context.Context, id, name string) (catalog.Brand, error) {
	var tag pgconn.CommandTag

	err := r.observe("brands.update", func() error {
		t, err := r.pool.Exec(ctx,
			`UPDATE brands SET name = $2 WHERE id = $1`, id, name)

		tag = t

		return err
	})

	if err != nil {
		if isUniqueViolation(err) {
			return catalog.Brand{}, ErrDuplicate
		}

		return catalog.Brand{}, err
	}

	if tag.RowsAffected() == 0 {
		return catalog.Brand{}, ErrNotFound
	}

	return catalog.Brand{ID: id, Name: name}, nil
}

func (r *BrandsRepo) Delete(ctx context.Context, id string) error {
	var tag pgconn.CommandTag

	err := r.observe("brands.delete", func() error {
		t, err := r.pool.Exec(ctx, `DELETE FROM brands WHERE id = $1`, id)

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
