package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"careconnect-server/internal/model"
	"careconnect-server/internal/repository"
)

type UserService interface {
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	ListUsers(ctx context.Context, skip, limit int) ([]model.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, upd model.UserUpdate) (*model.User, error)
}

type userService struct {
	db       *sqlx.DB
	userRepo repository.UserRepository
}

// NewUserService takes the db handle in addition to the repository
// because the partial update writes and then reloads the record, and
// both statements must commit as one unit of work.
func NewUserService(db *sqlx.DB, userRepo repository.UserRepository) UserService {
	return &userService{db: db, userRepo: userRepo}
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, skip, limit int) ([]model.User, error) {
	return s.userRepo.List(ctx, skip, limit)
}

func (s *userService) UpdateUser(ctx context.Context, id uuid.UUID, upd model.UserUpdate) (*model.User, error) {
	var user *model.User
	err := repository.RunInTx(ctx, s.db, func(q repository.Querier) error {
		var txErr error
		user, txErr = repository.NewPostgresUserRepository(q).Update(ctx, id, upd)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}
