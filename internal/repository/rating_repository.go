package repository

import (
	"context"

	"github.com/google/uuid"

	"careconnect-server/internal/model"
)

type RatingRepository interface {
	Create(ctx context.Context, rating *model.Rating) (*model.Rating, error)
	ListByRatedID(ctx context.Context, ratedID uuid.UUID) ([]model.RatingDetails, error)
	ValuesByRatedID(ctx context.Context, ratedID uuid.UUID) ([]int, error)
}

type postgresRatingRepository struct {
	db Querier
}

func NewPostgresRatingRepository(db Querier) RatingRepository {
	return &postgresRatingRepository{db: db}
}

func (r *postgresRatingRepository) Create(ctx context.Context, rating *model.Rating) (*model.Rating, error) {
	query := `
		INSERT INTO ratings (rater_id, rated_id, session_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	row := r.db.QueryRowxContext(ctx, query,
		rating.RaterID, rating.RatedID, rating.SessionID, rating.Rating, rating.Comment,
	)
	if err := row.Scan(&rating.ID, &rating.CreatedAt); err != nil {
		return nil, translateError(err)
	}

	return rating, nil
}

func (r *postgresRatingRepository) ListByRatedID(ctx context.Context, ratedID uuid.UUID) ([]model.RatingDetails, error) {
	query := `
	SELECT rt.id, rt.rater_id, rt.rated_id, rt.session_id, rt.rating, rt.comment, rt.created_at,
	       a.id AS "rater.id", a.email AS "rater.email", a.username AS "rater.username",
	       a.full_name AS "rater.full_name", a.role AS "rater.role", a.bio AS "rater.bio",
	       a.location AS "rater.location", a.phone AS "rater.phone", a.is_active AS "rater.is_active",
	       a.created_at AS "rater.created_at", a.updated_at AS "rater.updated_at",
	       b.id AS "rated.id", b.email AS "rated.email", b.username AS "rated.username",
	       b.full_name AS "rated.full_name", b.role AS "rated.role", b.bio AS "rated.bio",
	       b.location AS "rated.location", b.phone AS "rated.phone", b.is_active AS "rated.is_active",
	       b.created_at AS "rated.created_at", b.updated_at AS "rated.updated_at"
	FROM ratings rt
	JOIN users a ON a.id = rt.rater_id
	JOIN users b ON b.id = rt.rated_id
	WHERE rt.rated_id = $1
	ORDER BY rt.created_at, rt.id`

	var ratings []model.RatingDetails
	if err := r.db.SelectContext(ctx, &ratings, query, ratedID); err != nil {
		return nil, err
	}

	return ratings, nil
}

// ValuesByRatedID returns only the numeric values, used by the stats
// aggregation which recomputes on every call. Rows with a NULL rating
// are skipped so the nullable column cannot break the scan.
func (r *postgresRatingRepository) ValuesByRatedID(ctx context.Context, ratedID uuid.UUID) ([]int, error) {
	var values []int
	query := `SELECT rating FROM ratings WHERE rated_id = $1 AND rating IS NOT NULL`
	if err := r.db.SelectContext(ctx, &values, query, ratedID); err != nil {
		return nil, err
	}

	return values, nil
}
