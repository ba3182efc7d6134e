package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrDuplicate reports a unique-constraint violation, e.g. an email
	// or username that is already taken.
	ErrDuplicate = errors.New("duplicate value for unique column")

	// ErrForeignKey reports an insert or update referencing a row that
	// does not exist.
	ErrForeignKey = errors.New("referenced row does not exist")

	// ErrCheckViolation reports a value rejected by a table check
	// constraint.
	ErrCheckViolation = errors.New("value rejected by check constraint")
)

// translateError maps postgres constraint errors onto the typed sentinel
// errors above so callers can branch with errors.Is instead of matching
// driver error codes.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%w (%s)", ErrDuplicate, pgErr.ConstraintName)
		case "23503":
			return fmt.Errorf("%w (%s)", ErrForeignKey, pgErr.ConstraintName)
		case "23514":
			return fmt.Errorf("%w (%s)", ErrCheckViolation, pgErr.ConstraintName)
		}
	}
	return err
}
