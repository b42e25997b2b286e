package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/projetointegrador/estoque-api/internal/domain/order"
	"github.com/projetointegrador/estoque-api/internal/observability"
)

type SalesRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewSalesRepo(pool *pgxpool.Pool, prom *observability.Prom) *SalesRepo {
	return &SalesRepo{pool: pool, prom: prom}
}

func (r *SalesRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}

	return fn()
}

// Create records the sale and decrements product stock in one transaction.
// Item prices are read from the product row under lock, so a concurrent
// price update cannot split a sale across two price versions.
func (r *SalesRepo) Create(ctx context.Context, req order.SaleRequest) (order.Sale, error) {
	s := order.Sale{
		ID:        uuid.NewString(),
		ClientID:  req.ClientID,
		Items:     make([]order.SaleItem, 0, len(req.Items)),
		CreatedAt: time.Now().UTC(),
	}

	err := r.observe("sales.create", func() error {
		tx, err := r.pool.Begin(ctx)

		if err != nil {
			return err
		}

		defer func() { _ = tx.Rollback(ctx) }()

		for _, item := range req.Items {
			var price float64
			var stock int

			err := tx.QueryRow(ctx,
				`SELECT price, quantity FROM products WHERE id = $1 FOR UPDATE`,
				item.ProductID,
			).Scan(&price, &stock)

			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return ErrNotFound
				}

				return err
			}

			if stock < item.Quantity {
				return ErrInsufficientStock
			}

			_, err = tx.Exec(ctx,
				`UPDATE products SET quantity = quantity - $2, updated_at = $3 WHERE id = $1`,
				item.ProductID, item.Quantity, s.CreatedAt,
			)

			if err != nil {
				return err
			}

			lineTotal := price * float64(item.Quantity)

			s.Items = append(s.Items, order.SaleItem{
				ID:        uuid.NewString(),
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: price,
				Total:     lineTotal,
			})

			s.Total += lineTotal
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO sales (id, client_id, total, created_at) VALUES ($1, $2, $3, $4)`,
			s.ID, s.ClientID, s.Total, s.CreatedAt,
		)

		if err != nil {
			return err
		}

		for _, item := range s.Items {
			_, err = tx.Exec(ctx,
				`INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, total)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				item.ID, s.ID, item.ProductID, item.Quantity, item.UnitPrice, item.Total,
			)

			if err != nil {
				return err
			}
		}

		return tx.Commit(ctx)
	})

	if err != nil {
		return order.Sale{}, err
	}

	return s, nil
}

func (r *SalesRepo) GetByID(ctx context.Context, id string) (order.Sale, error) {
	var s order.Sale

	err := r.observe("sales.get_by_id", func() error {
		err := r.pool.QueryRow(ctx,
			`SELECT id, client_id, total, created_at FROM sales WHERE id = $1`, id,
		).Scan(&s.ID, &s.ClientID, &s.Total, &s.CreatedAt)

		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}

			return err
		}

		s.Items, err = r.itemsForSale(ctx, id)

		return err
	})

	if err != nil {
		return order.Sale{}, err
	}

	return s, nil
}

func (r *SalesRepo) List(ctx context.Context) ([]order.Sale, error) {
	out := make([]order.Sale, 0)

	err := r.observe("sales.list", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT id, client_id, total, created_at FROM sales ORDER BY created_at DESC, id ASC`)

		if err != nil {
			return err
		}

		defer rows.Close()

		for rows.Next() {
			var s order.Sale

			if err := rows.Scan(&s.ID, &s.ClientID, &s.Total, &s.CreatedAt); err != nil {
				return err
			}

			out = append(out, s)
		}

		if err := rows.Err(); err != nil {
			return err
		}

		for i := range out {
			out[i].Items, err = r.itemsForSale(ctx, out[i].ID)

			if err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *SalesRepo) itemsForSale(ctx context.Context, saleID string) ([]order.SaleItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, product_id, quantity, unit_price, total
		 FROM sale_items WHERE sale_id = $1 ORDER BY id ASC`, saleID)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	items := make([]order.SaleItem, 0)

	for rows.Next() {
		var it order.SaleItem

		if err := rows.Scan(&it.ID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.Total); err != nil {
			return nil, err
		}

		items = append(items, it)
	}

	return items, rows.Err()
}
