package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/projetointegrador/estoque-api/internal/domain/catalog"
	"github.com/projetointegrador/estoque-api/internal/observability"
)

type ProductsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewProductsRepo(pool *pgxpool.Pool, prom *observability.Prom) *ProductsRepo {
	return &ProductsRepo{pool: pool, prom: prom}
}

func (r *ProductsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}

	return fn()
}

const productColumns = `id, name, price, quantity, unit, code, min_stock, max_stock,
	expires_at, description, available, category_id, brand_id, supplier_id,
	created_at, updated_at`

func scanProduct(row pgx.Row) (catalog.Product, error) {
	var p catalog.Product
	var unit string

	err := row.Scan(
		&p.ID, &p.Name, &p.Price, &p.Quantity, &unit, &p.Code,
		&p.MinStock, &p.MaxStock, &p.ExpiresAt, &p.Description, &p.Available,
		&p.CategoryID, &p.BrandID, &p.SupplierID, &p.CreatedAt, &p.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Product{}, ErrNotFound
		}

		return catalog.Product{}, err
	}

	p.Unit = catalog.Unit(unit)

	return p, nil
}

func productFromRequest(req catalog.ProductRequest) catalog.Product {
	now := time.Now().UTC()

	return catalog.Product{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Unit:        catalog.Unit(req.Unit),
		Code:        req.Code,
		MinStock:    req.MinStock,
		MaxStock:    req.MaxStock,
		ExpiresAt:   req.ExpiresAt,
		Description: req.Description,
		Available:   req.Available,
		CategoryID:  req.CategoryID,
		BrandID:     req.BrandID,
		SupplierID:  req.SupplierID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (r *ProductsRepo) Create(ctx context.Context, req catalog.ProductRequest) (catalog.Product, error) {
	p := productFromRequest(req)

	err := r.observe("products.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO products (id, name, price, quantity, unit, code, min_stock,
				max_stock, expires_at, description, available, category_id, brand_id,
				supplier_id, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
			p.ID, p.Name, p.Price, p.Quantity, string(p.Unit), p.Code, p.MinStock,
			p.MaxStock, p.ExpiresAt, p.Description, p.Available, p.CategoryID,
			p.BrandID, p.SupplierID, p.CreatedAt, p.UpdatedAt,
		)

		return err
	})

	if err != nil {
		if isUniqueViolation(err) {
			return catalog.Product{}, ErrDuplicate
		}

		return catalog.Product{}, err
	}

	return p, nil
}

func (r *ProductsRepo) GetByID(ctx context.Context, id string) (catalog.Product, error) {
	var p catalog.Product

	err := r.observe("products.get_by_id", func() error {
		var err error
		p, err = scanProduct(r.pool.QueryRow(ctx,
			`SELECT `+productColumns+` FROM products WHERE id = $1`, id))

		return err
	})

	return p, err
}

func (r *ProductsRepo) List(ctx context.Context) ([]catalog.Product, error) {
	out := make([]catalog.Product, 0)

	err := r.observe("products.list", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT `+productColumns+` FROM products ORDER BY name ASC, id ASC`)

		if err != nil {
			return err
		}

		defer rows.Close()

		for rows.Next() {
			p, err := scanProduct(rows)

			if err != nil {
				return err
			}

			out = append(out, p)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *ProductsRepo) Update(ctx context.Context, id string, req catalog.ProductRequest) (catalog.Product, error) {
	now := time.Now().UTC()

	var tag pgconn.CommandTag

	err := r.observe("products.update", func() error {
		t, err := r.pool.Exec(ctx,
			`UPDATE products
			 SET name = $2, price = $3, quantity = $4, unit = $5, code = $6,
			     min_stock = $7, max_stock = $8, expires_at = $9, description = $10,
			     available = $11, category_id = $12, brand_id = $13, supplier_id = $14,
			     updated_at = $15
			 WHERE id = $1`,
			id, req.Name, req.Price, req.Quantity, req.Unit, req.Code,
			req.MinStock, req.MaxStock, req.ExpiresAt, req.Description,
			req.Available, req.CategoryID, req.BrandID, req.SupplierID, now,
		)

		tag = t

		return err
	})

	if err != nil {
		if isUniqueViolation(err) {
			return catalog.Product{}, ErrDuplicate
		}

		return catalog.Product{}, err
	}

	if tag.RowsAffected() == 0 {
		return catalog.Product{}, ErrNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *ProductsRepo) Delete(ctx context.Context, id string) error {
	var tag pgconn.CommandTag

	err := r.observe("products.delete", func() error {
		t, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)

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
