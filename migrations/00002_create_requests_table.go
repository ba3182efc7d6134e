package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateRequestsTable, downCreateRequestsTable)
}

func upCreateRequestsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
		CREATE TABLE requests (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			tags TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL,
			hourly_rate DOUBLE PRECISION NOT NULL,
			status TEXT NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'in_progress', 'completed', 'cancelled')),
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
			updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
		);

		CREATE INDEX idx_requests_user_id ON requests(user_id);
		CREATE INDEX idx_requests_status ON requests(status);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateRequestsTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS requests;`
	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}
