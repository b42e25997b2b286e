package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/projetointegrador/estoque-api/internal/config"
	"github.com/projetointegrador/estoque-api/internal/domain/user"
	"github.com/projetointegrador/estoque-api/internal/security"
)

// EnsureAdminUser creates the bootstrap admin account if it does not exist.
// Idempotent: when the account is already there nothing is written, so the
// stored password hash survives restarts even if ADMIN_PASSWORD changed.
// This is the only write the service performs outside request handling.
func EnsureAdminUser(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	var existing string

	err := pool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, cfg.AdminEmail).Scan(&existing)

	if err == nil {
		return nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := security.HashPassword(cfg.AdminPassword)

	if err != nil {
		return err
	}

	now := time.Now().UTC()

	u := user.User{
		ID:           uuid.NewString(),
		Name:         cfg.AdminName,
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		Roles:        []user.Role{user.RoleAdmin},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, roles, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.RoleNames(), u.CreatedAt, u.UpdatedAt,
	)

	return err
}
