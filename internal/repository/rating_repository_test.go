package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"careconnect-server/internal/model"
	repo "careconnect-server/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestPostgresRatingRepository_Create(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	r := repo.NewPostgresRatingRepository(sqlxDB)

	id := uuid.New()
	raterID := uuid.New()
	ratedID := uuid.New()
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO ratings (rater_id, rated_id, session_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`)).WithArgs(raterID, ratedID, nil, 5, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(id, now))

	created, err := r.Create(context.Background(), &model.Rating{
		RaterID: raterID,
		RatedID: ratedID,
		Rating:  5,
	})
	require.NoError(t, err)
	require.Equal(t, id, created.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRatingRepository_Create_UnknownRatedUser(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	r := repo.NewPostgresRatingRepository(sqlxDB)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO ratings`)).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "ratings_rated_id_fkey"})

	_, err := r.Create(context.Background(), &model.Rating{
		RaterID: uuid.New(),
		RatedID: uuid.New(),
		Rating:  4,
	})
	require.ErrorIs(t, err, repo.ErrForeignKey)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRatingRepository_ListByRatedID(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	r := repo.NewPostgresRatingRepository(sqlxDB)

	ratedID := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "rater_id", "rated_id", "rating", "rater.username", "rated.username"}).
		AddRow(uuid.New(), uuid.New(), ratedID, 5, "family_one", "nanny_one").
		AddRow(uuid.New(), uuid.New(), ratedID, 3, "family_two", "nanny_one")
	mock.ExpectQuery(`WHERE rt\.rated_id = \$1\s+ORDER BY rt\.created_at, rt\.id`).
		WithArgs(ratedID).WillReturnRows(rows)

	ratings, err := r.ListByRatedID(context.Background(), ratedID)
	require.NoError(t, err)
	require.Len(t, ratings, 2)
	require.Equal(t, "family_one", ratings[0].Rater.Username)
	require.Equal(t, "nanny_one", ratings[0].Rated.Username)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRatingRepository_ValuesByRatedID(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	r := repo.NewPostgresRatingRepository(sqlxDB)

	// NULL ratings never reach the scan; the query filters them out.
	ratedID := uuid.New()
	rows := sqlmock.NewRows([]string{"rating"}).AddRow(3).AddRow(4).AddRow(5)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT rating FROM ratings WHERE rated_id = $1 AND rating IS NOT NULL`)).
		WithArgs(ratedID).WillReturnRows(rows)

	values, err := r.ValuesByRatedID(context.Background(), ratedID)
	require.NoError(t, err)
	require.Equal(t, []int{3, 4, 5}, values)
	require.NoError(t, mock.ExpectationsWereMet())
}
