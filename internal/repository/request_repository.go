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

type RequestRepository interface {
	Create(ctx context.Context, request *model.Request) (*model.Request, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.RequestDetails, error)
	List(ctx context.Context, skip, limit int, status *model.RequestStatus) ([]model.RequestDetails, error)
	Update(ctx context.Context, id uuid.UUID, upd model.RequestUpdate) (*model.RequestDetails, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type postgresRequestRepository struct {
	db Querier
}

func NewPostgresRequestRepository(db Querier) RequestRepository {
	return &postgresRequestRepository{db: db}
}

// requestDetailsSelect eager-loads the poster alongside the request.
// Column aliases map onto the nested Poster struct; the password hash is
// deliberately never selected into eager shapes.
const requestDetailsSelect = `
	SELECT r.id, r.user_id, r.title, r.description, r.tags, r.location, r.hourly_rate, r.status, r.created_at, r.updated_at,
	       u.id AS "poster.id", u.email AS "poster.email", u.username AS "poster.username",
	       u.full_name AS "poster.full_name", u.role AS "poster.role", u.bio AS "poster.bio",
	       u.location AS "poster.location", u.phone AS "poster.phone", u.is_active AS "poster.is_active",
	       u.created_at AS "poster.created_at", u.updated_at AS "poster.updated_at"
	FROM requests r
	JOIN users u ON u.id = r.user_id`

func (r *postgresRequestRepository) Create(ctx context.Context, request *model.Request) (*model.Request, error) {
	query := `
		INSERT INTO requests (user_id, title, description, tags, location, hourly_rate, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	row := r.db.QueryRowxContext(ctx, query,
		request.UserID, request.Title, request.Description, request.Tags,
		request.Location, request.HourlyRate, request.Status,
	)
	if err := row.Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt); err != nil {
		return nil, translateError(err)
	}

	return request, nil
}

func (r *postgresRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.RequestDetails, error) {
	var details model.RequestDetails
	query := requestDetailsSelect + ` WHERE r.id = $1`
	err := r.db.GetContext(ctx, &details, query, id)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &details, nil
}

func (r *postgresRequestRepository) List(ctx context.Context, skip, limit int, status *model.RequestStatus) ([]model.RequestDetails, error) {
	query := requestDetailsSelect
	args := []interface{}{}
	argID := 1

	if status != nil {
		query += fmt.Sprintf(" WHERE r.status = $%d", argID)
		args = append(args, *status)
		argID++
	}

	query += fmt.Sprintf(" ORDER BY r.created_at, r.id LIMIT $%d OFFSET $%d", argID, argID+1)
	args = append(args, limit, skip)

	var requests []model.RequestDetails
	if err := r.db.SelectContext(ctx, &requests, query, args...); err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *postgresRequestRepository) Update(ctx context.Context, id uuid.UUID, upd model.RequestUpdate) (*model.RequestDetails, error) {
	var setClauses []string
	var args []interface{}
	argID := 1

	set := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	if upd.Title.Set {
		set("title", upd.Title.Value)
	}
	if upd.Description.Set {
		set("description", upd.Description.Value)
	}
	if upd.Tags.Set {
		set("tags", upd.Tags.Value)
	}
	if upd.Location.Set {
		set("location", upd.Location.Value)
	}
	if upd.HourlyRate.Set {
		set("hourly_rate", upd.HourlyRate.Value)
	}
	if upd.Status.Set {
		set("status", upd.Status.Value)
	}

	if len(setClauses) == 0 {
		return r.FindByID(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = now()")
	query := fmt.Sprintf("UPDATE requests SET %s WHERE id = $%d", strings.Join(setClauses, ", "), argID)
	args = append(args, id)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, translateError(err)
	}

	return r.FindByID(ctx, id)
}

func (r *postgresRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM requests WHERE id = $1`, id)
	return translateError(err)
}
