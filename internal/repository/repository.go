package repository

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
)

// Querier is the subset of sqlx used by the repositories. Both *sqlx.DB
// and *sqlx.Tx satisfy it, so a repository can run against the shared
// pool or inside an explicit transaction.
type Querier interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// RunInTx executes fn inside a single transaction, committing on success
// and rolling back on error. Multi-statement operations that must be
// atomic construct their repositories over the transaction it passes in.
func RunInTx(ctx context.Context, db *sqlx.DB, fn func(q Querier) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}

	return tx.Commit()
}
