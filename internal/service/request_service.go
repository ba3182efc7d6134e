package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"careconnect-server/internal/model"
	"careconnect-server/internal/repository"
)

var (
	ErrRequestNotFound = errors.New("request not found")
	ErrInvalidStatus   = errors.New("status is not a valid request status")
)

type CreateRequestInput struct {
	Title       string
	Description string
	Tags        string
	Location    string
	HourlyRate  float64
}

type RequestService interface {
	CreateRequest(ctx context.Context, posterID uuid.UUID, input CreateRequestInput) (*model.Request, error)
	GetRequest(ctx context.Context, id uuid.UUID) (*model.RequestDetails, error)
	ListRequests(ctx context.Context, skip, limit int, status string) ([]model.RequestDetails, error)
	UpdateRequest(ctx context.Context, id uuid.UUID, upd model.RequestUpdate) (*model.RequestDetails, error)
	DeleteRequest(ctx context.Context, id uuid.UUID) error
}

type requestService struct {
	db          *sqlx.DB
	requestRepo repository.RequestRepository
}

// NewRequestService takes the db handle in addition to the repository
// so the update-then-reload pair commits as one unit of work.
func NewRequestService(db *sqlx.DB, requestRepo repository.RequestRepository) RequestService {
	return &requestService{db: db, requestRepo: requestRepo}
}

func (s *requestService) CreateRequest(ctx context.Context, posterID uuid.UUID, input CreateRequestInput) (*model.Request, error) {
	request := &model.Request{
		UserID:      posterID,
		Title:       input.Title,
		Description: input.Description,
		Tags:        input.Tags,
		Location:    input.Location,
		HourlyRate:  input.HourlyRate,
		Status:      model.RequestOpen,
	}

	return s.requestRepo.Create(ctx, request)
}

func (s *requestService) GetRequest(ctx context.Context, id uuid.UUID) (*model.RequestDetails, error) {
	details, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if details == nil {
		return nil, ErrRequestNotFound
	}

	return details, nil
}

func (s *requestService) ListRequests(ctx context.Context, skip, limit int, status string) ([]model.RequestDetails, error) {
	var filter *model.RequestStatus
	if status != "" {
		st := model.RequestStatus(status)
		if !st.Valid() {
			return nil, ErrInvalidStatus
		}
		filter = &st
	}

	return s.requestRepo.List(ctx, skip, limit, filter)
}

func (s *requestService) UpdateRequest(ctx context.Context, id uuid.UUID, upd model.RequestUpdate) (*model.RequestDetails, error) {
	if upd.Status.Set && !upd.Status.Value.Valid() {
		return nil, ErrInvalidStatus
	}

	var details *model.RequestDetails
	err := repository.RunInTx(ctx, s.db, func(q repository.Querier) error {
		var txErr error
		details, txErr = repository.NewPostgresRequestRepository(q).Update(ctx, id, upd)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	if details == nil {
		return nil, ErrRequestNotFound
	}

	return details, nil
}

func (s *requestService) DeleteRequest(ctx context.Context, id uuid.UUID) error {
	return s.requestRepo.Delete(ctx, id)
}
