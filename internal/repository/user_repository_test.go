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
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestPostgresUserRepository_Create(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	r := repo.NewPostgresUserRepository(sqlxDB)

	id := uuid.New()
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO users (email, username, password_hash, full_name, role, bio, location, phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, is_active, created_at, updated_at
	`)).WithArgs("a@b.com", "abee", "hash", "A Bee", model.RoleFamily, nil, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "is_active", "created_at", "updated_at"}).AddRow(id, true, now, now))

	created, err := r.Create(context.Background(), &model.User{
		Email:        "a@b.com",
		Username:     "abee",
		PasswordHash: "hash",
		FullName:     "A Bee",
		Role:         model.RoleFamily,
	})
	require.NoError(t, err)
	require.Equal(t, id, created.ID)
	require.True(t, created.IsActive)
	require.Equal(t, "hash", created.PasswordHash)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_Create_DuplicateEmail(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	r := repo.NewPostgresUserRepository(sqlxDB)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := r.Create(context.Background(), &model.User{
		Email:        "a@b.com",
		Username:     "abee",
		PasswordHash: "hash",
		FullName:     "A Bee",
		Role:         model.RoleFamily,
	})
	require.ErrorIs(t, err, repo.ErrDuplicate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_FindByID_NotFound(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	r := repo.NewPostgresUserRepository(sqlxDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, email, username, password_hash, full_name, role, bio, location, phone, is_active, created_at, updated_at FROM users WHERE id = $1`)).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	u, err := r.FindByID(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Nil(t, u)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_FindByUsername(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	r := repo.NewPostgresUserRepository(sqlxDB)

	id := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "email", "username", "password_hash", "full_name", "role"}).
		AddRow(id, "a@b.com", "abee", "hash", "A Bee", "nanny")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, email, username, password_hash, full_name, role, bio, location, phone, is_active, created_at, updated_at FROM users WHERE username = $1`)).
		WithArgs("abee").WillReturnRows(rows)

	u, err := r.FindByUsername(context.Background(), "abee")
	require.NoError(t, err)
	require.Equal(t, "abee", u.Username)
	require.Equal(t, model.RoleNanny, u.Role)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_Update_EmptyFieldSet(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	r := repo.NewPostgresUserRepository(sqlxDB)

	// No UPDATE may be issued, only the refetch.
	id := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "email", "username", "full_name", "role"}).
		AddRow(id, "a@b.com", "abee", "A Bee", "family")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, email, username, password_hash, full_name, role, bio, location, phone, is_active, created_at, updated_at FROM users WHERE id = $1`)).
		WithArgs(id).WillReturnRows(rows)

	u, err := r.Update(context.Background(), id, model.UserUpdate{})
	require.NoError(t, err)
	require.Equal(t, "abee", u.Username)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_Update_PartialFieldSet(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	r := repo.NewPostgresUserRepository(sqlxDB)

	id := uuid.New()
	bio := "experienced sitter"

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET full_name = $1, bio = $2, updated_at = now() WHERE id = $3`)).
		WithArgs("New Name", &bio, id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rows := sqlmock.NewRows([]string{"id", "email", "username", "full_name", "bio", "role"}).
		AddRow(id, "a@b.com", "abee", "New Name", bio, "family")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, email, username, password_hash, full_name, role, bio, location, phone, is_active, created_at, updated_at FROM users WHERE id = $1`)).
		WithArgs(id).WillReturnRows(rows)

	u, err := r.Update(context.Background(), id, model.UserUpdate{
		FullName: model.Some("New Name"),
		Bio:      model.Some(&bio),
	})
	require.NoError(t, err)
	require.Equal(t, "New Name", u.FullName)
	require.NotNil(t, u.Bio)
	require.Equal(t, bio, *u.Bio)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_Update_SetNull(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	r := repo.NewPostgresUserRepository(sqlxDB)

	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET phone = $1, updated_at = now() WHERE id = $2`)).
		WithArgs((*string)(nil), id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rows := sqlmock.NewRows([]string{"id", "email", "username", "full_name", "phone", "role"}).
		AddRow(id, "a@b.com", "abee", "A Bee", nil, "family")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, email, username, password_hash, full_name, role, bio, location, phone, is_active, created_at, updated_at FROM users WHERE id = $1`)).
		WithArgs(id).WillReturnRows(rows)

	u, err := r.Update(context.Background(), id, model.UserUpdate{
		Phone: model.Some[*string](nil),
	})
	require.NoError(t, err)
	require.Nil(t, u.Phone)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_List(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	r := repo.NewPostgresUserRepository(sqlxDB)

	rows := sqlmock.NewRows([]string{"id", "email", "username", "full_name", "role"}).
		AddRow(uuid.New(), "a@b.com", "abee", "A Bee", "family").
		AddRow(uuid.New(), "c@d.com", "cdee", "C Dee", "nanny")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, email, username, password_hash, full_name, role, bio, location, phone, is_active, created_at, updated_at FROM users ORDER BY created_at, id LIMIT $1 OFFSET $2`)).
		WithArgs(10, 5).WillReturnRows(rows)

	users, err := r.List(context.Background(), 5, 10)
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}
