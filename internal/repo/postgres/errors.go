package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate surfaces a unique-constraint violation (duplicate email,
	// CNPJ, CPF, product code, ...). The database enforces uniqueness; this
	// layer only translates the failure.
	ErrDuplicate = errors.New("duplicate record")
	// ErrInsufficientStock is raised when a sale asks for more units than a
	// product currently has.
	ErrInsufficientStock = errors.New("insufficient stock")
)

const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
