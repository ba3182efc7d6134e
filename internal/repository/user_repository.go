package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"careconnect-server/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context, skip, limit int) ([]model.User, error)
	Update(ctx context.Context, id uuid.UUID, upd model.UserUpdate) (*model.User, error)
}

type postgresUserRepository struct {
	db Querier
}

func NewPostgresUserRepository(db Querier) UserRepository {
	return &postgresUserRepository{db: db}
}

const userColumns = `id, email, username, password_hash, full_name, role, bio, location, phone, is_active, created_at, updated_at`

func (r *postgresUserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
		INSERT INTO users (email, username, password_hash, full_name, role, bio, location, phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, is_active, created_at, updated_at
	`
	row := r.db.QueryRowxContext(ctx, query,
		user.Email, user.Username, user.PasswordHash, user.FullName,
		user.Role, user.Bio, user.Location, user.Phone,
	)
	if err := row.Scan(&user.ID, &user.IsActive, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return nil, translateError(err)
	}

	return user, nil
}

func (r *postgresUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return r.findBy(ctx, "id", id)
}

func (r *postgresUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findBy(ctx, "email", email)
}

func (r *postgresUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findBy(ctx, "username", username)
}

func (r *postgresUserRepository) findBy(ctx context.Context, column string, value interface{}) (*model.User, error) {
	var user model.User
	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s = $1`, userColumns, column)
	err := r.db.GetContext(ctx, &user, query, value)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (r *postgresUserRepository) List(ctx context.Context, skip, limit int) ([]model.User, error) {
	var users []model.User
	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY created_at, id LIMIT $1 OFFSET $2`, userColumns)
	err := r.db.SelectContext(ctx, &users, query, limit, skip)

	if err != nil {
		return nil, err
	}

	return users, nil
}

func (r *postgresUserRepository) Update(ctx context.Context, id uuid.UUID, upd model.UserUpdate) (*model.User, error) {
	var setClauses []string
	var args []interface{}
	argID := 1

	set := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	if upd.Email.Set {
		set("email", upd.Email.Value)
	}
	if upd.Username.Set {
		set("username", upd.Username.Value)
	}
	if upd.FullName.Set {
		set("full_name", upd.FullName.Value)
	}
	if upd.Bio.Set {
		set("bio", upd.Bio.Value)
	}
	if upd.Location.Set {
		set("location", upd.Location.Value)
	}
	if upd.Phone.Set {
		set("phone", upd.Phone.Value)
	}
	if upd.IsActive.Set {
		set("is_active", upd.IsActive.Value)
	}

	// Nothing provided: no write, just return the current row.
	if len(setClauses) == 0 {
		return r.FindByID(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = now()")
	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", strings.Join(setClauses, ", "), argID)
	args = append(args, id)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, translateError(err)
	}

	return r.FindByID(ctx, id)
}
