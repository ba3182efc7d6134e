package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"careconnect-server/internal/model"
	"careconnect-server/internal/repository"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSameParticipant = errors.New("family and nanny must be distinct users")
	ErrRequestNotOpen  = errors.New("request is not open for scheduling")
)

type CreateSessionInput struct {
	RequestID  uuid.UUID
	FamilyID   uuid.UUID
	NannyID    uuid.UUID
	StartTime  time.Time
	EndTime    *time.Time
	HourlyRate float64
	Notes      *string
}

type SessionService interface {
	CreateSession(ctx context.Context, input CreateSessionInput) (*model.Session, error)
	GetSession(ctx context.Context, id uuid.UUID) (*model.SessionDetails, error)
	ListUserSessions(ctx context.Context, userID uuid.UUID, role string, skip, limit int) ([]model.SessionDetails, error)
	UpdateSession(ctx context.Context, id uuid.UUID, upd model.SessionUpdate) (*model.SessionDetails, error)
}

type sessionService struct {
	db          *sqlx.DB
	sessionRepo repository.SessionRepository
	requestRepo repository.RequestRepository
}

// NewSessionService takes the db handle in addition to the repositories
// because scheduling a session and flipping the parent request to
// in_progress must commit as one unit of work.
func NewSessionService(db *sqlx.DB, sessionRepo repository.SessionRepository, requestRepo repository.RequestRepository) SessionService {
	return &sessionService{
		db:          db,
		sessionRepo: sessionRepo,
		requestRepo: requestRepo,
	}
}

func (s *sessionService) CreateSession(ctx context.Context, input CreateSessionInput) (*model.Session, error) {
	if input.FamilyID == input.NannyID {
		return nil, ErrSameParticipant
	}

	request, err := s.requestRepo.FindByID(ctx, input.RequestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, ErrRequestNotFound
	}
	if request.Status != model.RequestOpen {
		return nil, ErrRequestNotOpen
	}

	session := &model.Session{
		RequestID:  input.RequestID,
		FamilyID:   input.FamilyID,
		NannyID:    input.NannyID,
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
		HourlyRate: input.HourlyRate,
		Status:     model.SessionStatusScheduled,
		Notes:      input.Notes,
	}

	err = repository.RunInTx(ctx, s.db, func(q repository.Querier) error {
		if _, err := repository.NewPostgresSessionRepository(q).Create(ctx, session); err != nil {
			return err
		}

		upd := model.RequestUpdate{Status: model.Some(model.RequestInProgress)}
		_, err := repository.NewPostgresRequestRepository(q).Update(ctx, input.RequestID, upd)
		return err
	})
	if err != nil {
		return nil, err
	}

	return session, nil
}

func (s *sessionService) GetSession(ctx context.Context, id uuid.UUID) (*model.SessionDetails, error) {
	details, err := s.sessionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if details == nil {
		return nil, ErrSessionNotFound
	}

	return details, nil
}

func (s *sessionService) ListUserSessions(ctx context.Context, userID uuid.UUID, role string, skip, limit int) ([]model.SessionDetails, error) {
	return s.sessionRepo.ListByUser(ctx, userID, role, skip, limit)
}

func (s *sessionService) UpdateSession(ctx context.Context, id uuid.UUID, upd model.SessionUpdate) (*model.SessionDetails, error) {
	var details *model.SessionDetails
	err := repository.RunInTx(ctx, s.db, func(q repository.Querier) error {
		var txErr error
		details, txErr = repository.NewPostgresSessionRepository(q).Update(ctx, id, upd)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	if details == nil {
		return nil, ErrSessionNotFound
	}

	return details, nil
}
