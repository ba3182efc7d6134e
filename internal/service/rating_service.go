package service

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"

	"careconnect-server/internal/model"
	"careconnect-server/internal/repository"
)

var (
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")
	ErrSelfRating       = errors.New("users cannot rate themselves")
)

type CreateRatingInput struct {
	RatedID   uuid.UUID
	SessionID *uuid.UUID
	Rating    int
	Comment   *string
}

type RatingService interface {
	CreateRating(ctx context.Context, raterID uuid.UUID, input CreateRatingInput) (*model.Rating, error)
	ListUserRatings(ctx context.Context, userID uuid.UUID) ([]model.RatingDetails, error)
	GetUserRatingStats(ctx context.Context, userID uuid.UUID) (model.RatingStats, error)
}

type ratingService struct {
	ratingRepo repository.RatingRepository
}

func NewRatingService(ratingRepo repository.RatingRepository) RatingService {
	return &ratingService{ratingRepo: ratingRepo}
}

func (s *ratingService) CreateRating(ctx context.Context, raterID uuid.UUID, input CreateRatingInput) (*model.Rating, error) {
	// The rating column is nullable at the storage level, so the bound
	// check has to happen here.
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrRatingOutOfRange
	}
	if raterID == input.RatedID {
		return nil, ErrSelfRating
	}

	rating := &model.Rating{
		RaterID:   raterID,
		RatedID:   input.RatedID,
		SessionID: input.SessionID,
		Rating:    input.Rating,
		Comment:   input.Comment,
	}

	return s.ratingRepo.Create(ctx, rating)
}

func (s *ratingService) ListUserRatings(ctx context.Context, userID uuid.UUID) ([]model.RatingDetails, error) {
	return s.ratingRepo.ListByRatedID(ctx, userID)
}

// GetUserRatingStats recomputes the aggregate on every call. A user with
// no ratings gets a zero average and zero count, not an error.
func (s *ratingService) GetUserRatingStats(ctx context.Context, userID uuid.UUID) (model.RatingStats, error) {
	values, err := s.ratingRepo.ValuesByRatedID(ctx, userID)
	if err != nil {
		return model.RatingStats{}, err
	}

	if len(values) == 0 {
		return model.RatingStats{}, nil
	}

	total := 0
	for _, v := range values {
		total += v
	}

	average := float64(total) / float64(len(values))

	return model.RatingStats{
		AverageRating: math.Round(average*100) / 100,
		TotalRatings:  len(values),
	}, nil
}
