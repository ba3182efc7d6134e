package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateSessionsTable, downCreateSessionsTable)
}

func upCreateSessionsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
		CREATE TABLE sessions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			request_id UUID NOT NULL UNIQUE REFERENCES requests(id) ON DELETE CASCADE,
			family_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			nanny_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			start_time TIMESTAMP WITH TIME ZONE NOT NULL,
			end_time TIMESTAMP WITH TIME ZONE,
			hourly_rate DOUBLE PRECISION NOT NULL,
			status TEXT NOT NULL DEFAULT 'scheduled',
			notes TEXT,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
			CHECK (family_id <> nanny_id)
		);

		CREATE INDEX idx_sessions_family_id ON sessions(family_id);
		CREATE INDEX idx_sessions_nanny_id ON sessions(nanny_id);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateSessionsTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS sessions;`
	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}
