package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/projetointegrador/estoque-api/internal/domain/client"
	"github.com/projetointegrador/estoque-api/internal/observability"
)

type ClientsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewClientsRepo(pool *pgxpool.Pool, prom *observability.Prom) *ClientsRepo {
	return &ClientsRepo{pool: pool, prom: prom}
}

func (r *ClientsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}

	return fn()
}

const clientColumns = `id, name, cpf, email, phone, address`

func scanClient(row pgx.Row) (client.Client, error) {
	var c client.Client

	err := row.Scan(&c.ID, &c.Name, &c.CPF, &c.Email, &c.Phone, &c.Address)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return client.Client{}, ErrNotFound
		}

		return client.Client{}, err
	}

	return c, nil
}

func (r *ClientsRepo) Create(ctx context.Context, req client.ClientRequest) (client.Client, error) {
	c := client.Client{
		ID:      uuid.NewString(),
		Name:    req.Name,
		CPF:     req.CPF,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}

	err := r.observe("clients.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO clients (id, name, cpf, email, phone, address)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			c.ID, c.Name, c.CPF, c.Email, c.Phone, c.Address,
		)

		return err
	})

	if err != nil {
		if isUniqueViolation(err) {
			return client.Client{}, ErrDuplicate
		}

		return client.Client{}, err
	}

	return c, nil
}

func (r *ClientsRepo) GetByID(ctx context.Context, id string) (client.Client, error) {
	var c client.Client

	err := r.observe("clients.get_by_id", func() error {
		var err error
		c, err = scanClient(r.pool.QueryRow(ctx,
			`SELECT `+clientColumns+` FROM clients WHERE id = $1`, id))

		return err
	})

	return c, err
}

func (r *ClientsRepo) List(ctx context.Context) ([]client.Client, error) {
	out := make([]client.Client, 0)

	err := r.observe("clients.list", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT `+clientColumns+` FROM clients ORDER BY name ASC`)

		if err != nil {
			return err
		}

		defer rows.Close()

		for rows.Next() {
			c, err := scanClient(rows)

			if err != nil {
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

func (r *ClientsRepo) Update(ctx context.Context, id string, req client.ClientRequest) (client.Client, error) {
	var tag pgconn.CommandTag

	err := r.observe("clients.update", func() error {
		t, err := r.pool.Exec(ctx,
			`UPDATE clients
			 SET name = $2, cpf = $3, email = $4, phone = $5, address = $6
			 WHERE id = $1`,
			id, req.Name, req.CPF, req.Email, req.Phone, req.Address,
		)

		tag = t

		return err
	})

	if err != nil {
		if isUniqueViolation(err) {
			return client.Client{}, ErrDuplicate
		}

		return client.Client{}, err
	}

	if tag.RowsAffected() == 0 {
		return client.Client{}, ErrNotFound
	}

	return client.Client{
		ID: id, Name: req.Name, CPF: req.CPF,
		Email: req.Email, Phone: req.Phone, Address: req.Address,
	}, nil
}

func (r *ClientsRepo) Delete(ctx context.Context, id string) error {
	var tag pgconn.CommandTag

	err := r.observe("clients.delete", func() error {
		t, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)

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
