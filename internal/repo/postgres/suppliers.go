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

type SuppliersRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewSuppliersRepo(pool *pgxpool.Pool, prom *observability.Prom) *SuppliersRepo {
	return &SuppliersRepo{pool: pool, prom: prom}
}

func (r *SuppliersRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}

	return fn()
}

const supplierColumns = `id, name, cnpj, email, phone, address`

func scanSupplier(row pgx.Row) (catalog.Supplier, error) {
	var s catalog.Supplier

	err := row.Scan(&s.ID, &s.Name, &s.CNPJ, &s.Email, &s.Phone, &s.Address)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Supplier{}, ErrNotFound
		}

		return catalog.Supplier{}, err
	}

	return s, nil
}

func (r *SuppliersRepo) Create(ctx context.Context, req catalog.SupplierRequest) (catalog.Supplier, error) {
	s := catalog.Supplier{
		ID:      uuid.NewString(),
		Name:    req.Name,
		CNPJ:    req.CNPJ,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}

	err := r.observe("suppliers.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO suppliers (id, name, cnpj, email, phone, address)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			s.ID, s.Name, s.CNPJ, s.Email, s.Phone, s.Address,
		)

		return err
	})

	if err != nil {
		if isUniqueViolation(err) {
			return catalog.Supplier{}, ErrDuplicate
		}

		return catalog.Supplier{}, err
	}

	return s, nil
}

func (r *SuppliersRepo) GetByID(ctx context.Context, id string) (catalog.Supplier, error) {
	var s catalog.Supplier

	err := r.observe("suppliers.get_by_id", func() error {
		var err error
		s, err = scanSupplier(r.pool.QueryRow(ctx,
			`SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id))

		return err
	})

	return s, err
}

func (r *SuppliersRepo) List(ctx context.Context) ([]catalog.Supplier, error) {
	out := make([]catalog.Supplier, 0)

	err := r.observe("suppliers.list", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT `+supplierColumns+` FROM suppliers ORDER BY name ASC`)

		if err != nil {
			return err
		}

		defer rows.Close()

		for rows.Next() {
			s, err := scanSupplier(rows)

			if err != nil {
				return err
			}

			out = append(out, s)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *SuppliersRepo) Update(ctx context.Context, id string, req catalog.SupplierRequest) (catalog.Supplier, error) {
	var tag pgconn.CommandTag

	err := r.observe("suppliers.update", func() error {
		t, err := r.pool.Exec(ctx,
			`UPDATE suppliers
			 SET name = $2, cnpj = $3, email = $4, phone = $5, address = $6
			 WHERE id = $1`,
			id, req.Name, req.CNPJ, req.Email, req.Phone, req.Address,
		)

		tag = t

		return err
	})

	if err != nil {
		if isUniqueViolation(err) {
			return catalog.Supplier{}, ErrDuplicate
		}

		return catalog.Supplier{}, err
	}

	if tag.RowsAffected() == 0 {
		return catalog.Supplier{}, ErrNotFound
	}

	return catalog.Supplier{
		ID: id, Name: req.Name, CNPJ: req.CNPJ,
		Email: req.Email, Phone: req.Phone, Address: req.Address,
	}, nil
}

func (r *SuppliersRepo) Delete(ctx context.Context, id string) error {
	var tag pgconn.CommandTag

	err := r.observe("suppliers.delete", func() error {
		t, err := r.pool.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)

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
