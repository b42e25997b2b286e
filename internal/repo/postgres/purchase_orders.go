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

// ErrOrderClosed is returned on a status change for an order that already
// reached a terminal state (RECEIVED or CANCELLED).
var ErrOrderClosed = errors.New("purchase order already closed")

type PurchaseOrdersRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewPurchaseOrdersRepo(pool *pgxpool.Pool, prom *observability.Prom) *PurchaseOrdersRepo {
	return &PurchaseOrdersRepo{pool: pool, prom: prom}
}

func (r *PurchaseOrdersRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}

	return fn()
}

func (r *PurchaseOrdersRepo) Create(ctx context.Context, req order.PurchaseOrderRequest) (order.PurchaseOrder, error) {
	po := order.PurchaseOrder{
		ID:         uuid.NewString(),
		SupplierID: req.SupplierID,
		Status:     order.PurchasePending,
		Items:      make([]order.PurchaseItem, 0, len(req.Items)),
		CreatedAt:  time.Now().UTC(),
	}

	for _, item := range req.Items {
		po.Items = append(po.Items, order.PurchaseItem{
			ID:        uuid.NewString(),
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})

		po.Total += item.UnitPrice * float64(item.Quantity)
	}

	err := r.observe("purchase_orders.create", func() error {
		tx, err := r.pool.Begin(ctx)

		if err != nil {
			return err
		}

		defer func() { _ = tx.Rollback(ctx) }()

		_, err = tx.Exec(ctx,
			`INSERT INTO purchase_orders (id, supplier_id, status, total, created_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			po.ID, po.SupplierID, string(po.Status), po.Total, po.CreatedAt,
		)

		if err != nil {
			return err
		}

		for _, item := range po.Items {
			_, err = tx.Exec(ctx,
				`INSERT INTO purchase_order_items (id, order_id, product_id, quantity, unit_price)
				 VALUES ($1, $2, $3, $4, $5)`,
				item.ID, po.ID, item.ProductID, item.Quantity, item.UnitPrice,
			)

			if err != nil {
				return err
			}
		}

		return tx.Commit(ctx)
	})

	if err != nil {
		return order.PurchaseOrder{}, err
	}

	return po, nil
}

// SetStatus transitions a PENDING order. Moving to RECEIVED restocks every
// ordered product inside the same transaction.
func (r *PurchaseOrdersRepo) SetStatus(ctx context.Context, id string, status order.PurchaseStatus) (order.PurchaseOrder, error) {
	err := r.observe("purchase_orders.set_status", func() error {
		tx, err := r.pool.Begin(ctx)

		if err != nil {
			return err
		}

		defer func() { _ = tx.Rollback(ctx) }()

		var current string

		err = tx.QueryRow(ctx,
			`SELECT status FROM purchase_orders WHERE id = $1 FOR UPDATE`, id,
		).Scan(&current)

		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}

			return err
		}

		if order.PurchaseStatus(current) != order.PurchasePending {
			return ErrOrderClosed
		}

		if status == order.PurchaseReceived {
			rows, err := tx.Query(ctx,
				`SELECT product_id, quantity FROM purchase_order_items WHERE order_id = $1`, id)

			if err != nil {
				return err
			}

			type restock struct {
				productID string
				quantity  int
			}

			var restocks []restock

			for rows.Next() {
				var rs restock

				if err := rows.Scan(&rs.productID, &rs.quantity); err != nil {
					rows.Close()
					return err
				}

				restocks = append(restocks, rs)
			}

			rows.Close()

			if err := rows.Err(); err != nil {
				return err
			}

			now := time.Now().UTC()

			for _, rs := range restocks {
				_, err = tx.Exec(ctx,
					`UPDATE products SET quantity = quantity + $2, updated_at = $3 WHERE id = $1`,
					rs.productID, rs.quantity, now,
				)

				if err != nil {
					return err
				}
			}
		}

		_, err = tx.Exec(ctx,
			`UPDATE purchase_orders SET status = $2 WHERE id = $1`, id, string(status))

		if err != nil {
			return err
		}

		return tx.Commit(ctx)
	})

	if err != nil {
		return order.PurchaseOrder{}, err
	}

	return r.GetByID(ctx, id)
}

func (r *PurchaseOrdersRepo) GetByID(ctx context.Context, id string) (order.PurchaseOrder, error) {
	var po order.PurchaseOrder

	err := r.observe("purchase_orders.get_by_id", func() error {
		var status string

		err := r.pool.QueryRow(ctx,
			`SELECT id, supplier_id, status, total, created_at FROM purchase_orders WHERE id = $1`, id,
		).Scan(&po.ID, &po.SupplierID, &status, &po.Total, &po.CreatedAt)

		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}

			return err
		}

		po.Status = order.PurchaseStatus(status)

		po.Items, err = r.itemsForOrder(ctx, id)

		return err
	})

	if err != nil {
		return order.PurchaseOrder{}, err
	}

	return po, nil
}

func (r *PurchaseOrdersRepo) List(ctx context.Context) ([]order.PurchaseOrder, error) {
	out := make([]order.PurchaseOrder, 0)

	err := r.observe("purchase_orders.list", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT id, supplier_id, status, total, created_at
			 FROM purchase_orders ORDER BY created_at DESC, id ASC`)

		if err != nil {
			return err
		}

		defer rows.Close()

		for rows.Next() {
			var po order.PurchaseOrder
			var status string

			if err := rows.Scan(&po.ID, &po.SupplierID, &status, &po.Total, &po.CreatedAt); err != nil {
				return err
			}

			po.Status = order.PurchaseStatus(status)
			out = append(out, po)
		}

		if err := rows.Err(); err != nil {
			return err
		}

		for i := range out {
			out[i].Items, err = r.itemsForOrder(ctx, out[i].ID)

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

func (r *PurchaseOrdersRepo) itemsForOrder(ctx context.Context, orderID string) ([]order.PurchaseItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, product_id, quantity, unit_price
		 FROM purchase_order_items WHERE order_id = $1 ORDER BY id ASC`, orderID)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	items := make([]order.PurchaseItem, 0)

	for rows.Next() {
		var it order.PurchaseItem

		if err := rows.Scan(&it.ID, &it.ProductID, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, err
		}

		items = append(items, it)
	}

	return items, rows.Err()
}
