package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateRatingsTable, downCreateRatingsTable)
}

func upCreateRatingsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
		CREATE TABLE ratings (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			rater_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			rated_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			session_id UUID REFERENCES sessions(id) ON DELETE SET NULL,
			rating INT CHECK (rating IS NULL OR (rating >= 1 AND rating <= 5)),
			comment TEXT,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
			CHECK (rater_id <> rated_id)
		);

		CREATE INDEX idx_ratings_rated_id ON ratings(rated_id);
		CREATE INDEX idx_ratings_rater_id ON ratings(rater_id);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateRatingsTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS ratings;`
	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}
