package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates every table the service needs. All statements are
// idempotent so a restart against an existing database is a no-op.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            UUID PRIMARY KEY,
			name          TEXT NOT NULL,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			roles         TEXT[] NOT NULL DEFAULT '{USER}',
			created_at    TIMESTAMPTZ NOT NULL,
			updated_at    TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id   UUID PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS brands (
			id   UUID PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS suppliers (
			id      UUID PRIMARY KEY,
			name    TEXT NOT NULL,
			cnpj    TEXT NOT NULL UNIQUE,
			email   TEXT NOT NULL DEFAULT '',
			phone   TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS clients (
			id      UUID PRIMARY KEY,
			name    TEXT NOT NULL,
			cpf     TEXT NOT NULL UNIQUE,
			email   TEXT NOT NULL DEFAULT '',
			phone   TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id          UUID PRIMARY KEY,
			name        TEXT NOT NULL,
			price       NUMERIC(12,2) NOT NULL,
			quantity    INT NOT NULL DEFAULT 0,
			unit        TEXT NOT NULL,
			code        TEXT NOT NULL UNIQUE,
			min_stock   INT NOT NULL DEFAULT 0,
			max_stock   INT NOT NULL DEFAULT 0,
			expires_at  DATE,
			description TEXT NOT NULL DEFAULT '',
			available   BOOLEAN NOT NULL DEFAULT TRUE,
			category_id UUID NOT NULL REFERENCES categories(id),
			brand_id    UUID NOT NULL REFERENCES brands(id),
			supplier_id UUID NOT NULL REFERENCES suppliers(id),
			created_at  TIMESTAMPTZ NOT NULL,
			updated_at  TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sales (
			id         UUID PRIMARY KEY,
			client_id  UUID NOT NULL REFERENCES clients(id),
			total      NUMERIC(12,2) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sale_items (
			id         UUID PRIMARY KEY,
			sale_id    UUID NOT NULL REFERENCES sales(id) ON DELETE CASCADE,
			product_id UUID NOT NULL REFERENCES products(id),
			quantity   INT NOT NULL,
			unit_price NUMERIC(12,2) NOT NULL,
			total      NUMERIC(12,2) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS purchase_orders (
			id          UUID PRIMARY KEY,
			supplier_id UUID NOT NULL REFERENCES suppliers(id),
			status      TEXT NOT NULL DEFAULT 'PENDING',
			total       NUMERIC(12,2) NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS purchase_order_items (
			id         UUID PRIMARY KEY,
			order_id   UUID NOT NULL REFERENCES purchase_orders(id) ON DELETE CASCADE,
			product_id UUID NOT NULL REFERENCES products(id),
			quantity   INT NOT NULL,
			unit_price NUMERIC(12,2) NOT NULL
		)`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	return nil
}
