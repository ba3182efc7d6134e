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

func TestPostgresRequestRepository_Create(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	r := repo.NewPostgresRequestRepository(sqlxDB)

	id := uuid.New()
	posterID := uuid.New()
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO requests (user_id, title, description, tags, location, hourly_rate, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`)).WithArgs(posterID, "Evening babysitter", "Two kids", "evening,weekday", "Oslo", 25.0, model.RequestOpen).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(id, now, now))

	created, err := r.Create(context.Background(), &model.Request{
		UserID:      posterID,
		Title:       "Evening babysitter",
		Description: "Two kids",
		Tags:        "evening,weekday",
		Location:    "Oslo",
		HourlyRate:  25.0,
		Status:      model.RequestOpen,
	})
	require.NoError(t, err)
	require.Equal(t, id, created.ID)
	require.Equal(t, model.RequestOpen, created.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRequestRepository_Create_UnknownPoster(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	r := repo.NewPostgresRequestRepository(sqlxDB)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO requests`)).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "requests_user_id_fkey"})

	_, err := r.Create(context.Background(), &model.Request{
		UserID: uuid.New(), Title: "T", Location: "L", HourlyRate: 1, Status: model.RequestOpen,
	})
	require.ErrorIs(t, err, repo.ErrForeignKey)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRequestRepository_FindByID_EagerPoster(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	r := repo.NewPostgresRequestRepository(sqlxDB)

	id := uuid.New()
	posterID := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "status", "poster.id", "poster.username", "poster.role"}).
		AddRow(id, posterID, "Evening babysitter", "open", posterID, "family_one", "family")
	mock.ExpectQuery(`SELECT r\.id, r\.user_id, .+ FROM requests r\s+JOIN users u ON u\.id = r\.user_id\s+WHERE r\.id = \$1`).
		WithArgs(id).WillReturnRows(rows)

	details, err := r.FindByID(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, id, details.ID)
	require.Equal(t, posterID, details.Poster.ID)
	require.Equal(t, "family_one", details.Poster.Username)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRequestRepository_FindByID_NotFound(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	r := repo.NewPostgresRequestRepository(sqlxDB)

	mock.ExpectQuery(`SELECT r\.id, .+ WHERE r\.id = \$1`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	details, err := r.FindByID(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Nil(t, details)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRequestRepository_List_StatusFilter(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	r := repo.NewPostgresRequestRepository(sqlxDB)

	status := model.RequestOpen
	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "status", "poster.id"}).
		AddRow(uuid.New(), uuid.New(), "T", "open", uuid.New())
	mock.ExpectQuery(`WHERE r\.status = \$1 ORDER BY r\.created_at, r\.id LIMIT \$2 OFFSET \$3`).
		WithArgs(status, 20, 0).WillReturnRows(rows)

	requests, err := r.List(context.Background(), 0, 20, &status)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRequestRepository_List_NoFilter(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	r := repo.NewPostgresRequestRepository(sqlxDB)

	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "status", "poster.id"}).
		AddRow(uuid.New(), uuid.New(), "T1", "open", uuid.New()).
		AddRow(uuid.New(), uuid.New(), "T2", "completed", uuid.New())
	mock.ExpectQuery(`ORDER BY r\.created_at, r\.id LIMIT \$1 OFFSET \$2`).
		WithArgs(100, 0).WillReturnRows(rows)

	requests, err := r.List(context.Background(), 0, 100, nil)
	require.NoError(t, err)
	require.Len(t, requests, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRequestRepository_Delete(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	r := repo.NewPostgresRequestRepository(sqlxDB)

	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM requests WHERE id = $1`)).
		WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, r.Delete(context.Background(), id))
	require.NoError(t, mock.ExpectationsWereMet())
}
