package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/projetointegrador/estoque-api/internal/domain/user"
	"github.com/projetointegrador/estoque-api/internal/observability"
)

type UsersRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewUsersRepo(pool *pgxpool.Pool, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{pool: pool, prom: prom}
}

func (r *UsersRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}

	return fn()
}

const userColumns = `id, name, email, password_hash, roles, created_at, updated_at`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	var roles []string

	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &roles, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, ErrNotFound
		}

		return user.User{}, err
	}

	u.Roles = make([]user.Role, 0, len(roles))

	for _, r := range roles {
		u.Roles = append(u.Roles, user.Role(r))
	}

	return u, nil
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User

	err := r.observe("users.get_by_email", func() error {
		var err error
		u, err = scanUser(r.pool.QueryRow(ctx,
			`SELECT `+userColumns+` FROM users WHERE email = $1`, email))

		return err
	})

	return u, err
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	var u user.User

	err := r.observe("users.get_by_id", func() error {
		var err error
		u, err = scanUser(r.pool.QueryRow(ctx,
			`SELECT `+userColumns+` FROM users WHERE id = $1`, id))

		return err
	})

	return u, err
}

func (r *UsersRepo) List(ctx context.Context) ([]user.User, error) {
	out := make([]user.User, 0)

	err := r.observe("users.list", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT `+userColumns+` FROM users ORDER BY created_at ASC, id ASC`)

		if err != nil {
			return err
		}

		defer rows.Close()

		for rows.Next() {
			u, err := scanUser(rows)

			if err != nil {
				return err
			}

			out = append(out, u)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *UsersRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	var exists bool

	err := r.observe("users.exists_by_id", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	})

	return exists, err
}

func (r *UsersRepo) Create(ctx context.Context, name, email, passwordHash string, roles []user.Role) (user.User, error) {
	now := time.Now().UTC()

	u := user.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Roles:        roles,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := r.observe("users.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO users (id, name, email, password_hash, roles, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			u.ID, u.Name, u.Email, u.PasswordHash, u.RoleNames(), u.CreatedAt, u.UpdatedAt,
		)

		return err
	})

	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, ErrDuplicate
		}

		return user.User{}, err
	}

	return u, nil
}

// Update persists the full mutable field set; the handler decides which
// fields changed before calling.
func (r *UsersRepo) Update(ctx context.Context, u user.User) (user.User, error) {
	u.UpdatedAt = time.Now().UTC()

	var tag pgconn.CommandTag

	err := r.observe("users.update", func() error {
		t, err := r.pool.Exec(ctx,
			`UPDATE users
			 SET name = $2, email = $3, password_hash = $4, roles = $5, updated_at = $6
			 WHERE id = $1`,
			u.ID, u.Name, u.Email, u.PasswordHash, u.RoleNames(), u.UpdatedAt,
		)

		tag = t

		return err
	})

	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, ErrDuplicate
		}

		return user.User{}, err
	}

	if tag.RowsAffected() == 0 {
		return user.User{}, ErrNotFound
	}

	return u, nil
}

func (r *UsersRepo) Delete(ctx context.Context, id string) error {
	var tag pgconn.CommandTag

	err := r.observe("users.delete", func() error {
		t, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)

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
