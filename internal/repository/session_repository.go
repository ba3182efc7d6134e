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

// SessionRole values accepted by ListByUser. Anything else matches
// sessions where the user participates in either role.
const (
	SessionRoleNanny  = "nanny"
	SessionRoleFamily = "family"
)

type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) (*model.Session, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.SessionDetails, error)
	ListByUser(ctx context.Context, userID uuid.UUID, role string, skip, limit int) ([]model.SessionDetails, error)
	Update(ctx context.Context, id uuid.UUID, upd model.SessionUpdate) (*model.SessionDetails, error)
}

type postgresSessionRepository struct {
	db Querier
}

func NewPostgresSessionRepository(db Querier) SessionRepository {
	return &postgresSessionRepository{db: db}
}

// sessionDetailsSelect eager-loads the parent request and both
// participants in one round trip.
const sessionDetailsSelect = `
	SELECT s.id, s.request_id, s.family_id, s.nanny_id, s.start_time, s.end_time, s.hourly_rate, s.status, s.notes, s.created_at,
	       r.id AS "request.id", r.user_id AS "request.user_id", r.title AS "request.title",
	       r.description AS "request.description", r.tags AS "request.tags", r.location AS "request.location",
	       r.hourly_rate AS "request.hourly_rate", r.status AS "request.status",
	       r.created_at AS "request.created_at", r.updated_at AS "request.updated_at",
	       f.id AS "family.id", f.email AS "family.email", f.username AS "family.username",
	       f.full_name AS "family.full_name", f.role AS "family.role", f.bio AS "family.bio",
	       f.location AS "family.location", f.phone AS "family.phone", f.is_active AS "family.is_active",
	       f.created_at AS "family.created_at", f.updated_at AS "family.updated_at",
	       n.id AS "nanny.id", n.email AS "nanny.email", n.username AS "nanny.username",
	       n.full_name AS "nanny.full_name", n.role AS "nanny.role", n.bio AS "nanny.bio",
	       n.location AS "nanny.location", n.phone AS "nanny.phone", n.is_active AS "nanny.is_active",
	       n.created_at AS "nanny.created_at", n.updated_at AS "nanny.updated_at"
	FROM sessions s
	JOIN requests r ON r.id = s.request_id
	JOIN users f ON f.id = s.family_id
	JOIN users n ON n.id = s.nanny_id`

func (r *postgresSessionRepository) Create(ctx context.Context, session *model.Session) (*model.Session, error) {
	query := `
		INSERT INTO sessions (request_id, family_id, nanny_id, start_time, end_time, hourly_rate, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	row := r.db.QueryRowxContext(ctx, query,
		session.RequestID, session.FamilyID, session.NannyID, session.StartTime,
		session.EndTime, session.HourlyRate, session.Status, session.Notes,
	)
	if err := row.Scan(&session.ID, &session.CreatedAt); err != nil {
		return nil, translateError(err)
	}

	return session, nil
}

func (r *postgresSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.SessionDetails, error) {
	var details model.SessionDetails
	query := sessionDetailsSelect + ` WHERE s.id = $1`
	err := r.db.GetContext(ctx, &details, query, id)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &details, nil
}

func (r *postgresSessionRepository) ListByUser(ctx context.Context, userID uuid.UUID, role string, skip, limit int) ([]model.SessionDetails, error) {
	query := sessionDetailsSelect

	switch role {
	case SessionRoleNanny:
		query += ` WHERE s.nanny_id = $1`
	case SessionRoleFamily:
		query += ` WHERE s.family_id = $1`
	default:
		query += ` WHERE (s.nanny_id = $1 OR s.family_id = $1)`
	}

	query += ` ORDER BY s.created_at, s.id LIMIT $2 OFFSET $3`

	var sessions []model.SessionDetails
	if err := r.db.SelectContext(ctx, &sessions, query, userID, limit, skip); err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *postgresSessionRepository) Update(ctx context.Context, id uuid.UUID, upd model.SessionUpdate) (*model.SessionDetails, error) {
	var setClauses []string
	var args []interface{}
	argID := 1

	set := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	if upd.EndTime.Set {
		set("end_time", upd.EndTime.Value)
	}
	if upd.Status.Set {
		set("status", upd.Status.Value)
	}
	if upd.Notes.Set {
		set("notes", upd.Notes.Value)
	}

	if len(setClauses) == 0 {
		return r.FindByID(ctx, id)
	}

	query := fmt.Sprintf("UPDATE sessions SET %s WHERE id = $%d", strings.Join(setClauses, ", "), argID)
	args = append(args, id)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, translateError(err)
	}

	return r.FindByID(ctx, id)
}
