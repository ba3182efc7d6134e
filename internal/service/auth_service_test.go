package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"careconnect-server/internal/model"
	"careconnect-server/internal/service"
)

type stubUserRepo struct {
	created *model.User
	byName  map[string]*model.User
}

func (s *stubUserRepo) Create(ctx context.Context, user *model.User) (*model.User, error) {
	user.ID = uuid.New()
	user.IsActive = true
	s.created = user
	return user, nil
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return nil, nil
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, nil
}

func (s *stubUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.byName[username], nil
}

func (s *stubUserRepo) List(ctx context.Context, skip, limit int) ([]model.User, error) {
	return nil, nil
}

func (s *stubUserRepo) Update(ctx context.Context, id uuid.UUID, upd model.UserUpdate) (*model.User, error) {
	return nil, nil
}

type stubHasher struct{}

func (stubHasher) Hash(plaintext string) (string, error) {
	return "hashed:" + plaintext, nil
}

func (stubHasher) Compare(hash, plaintext string) error {
	if hash != "hashed:"+plaintext {
		return service.ErrInvalidCredentials
	}
	return nil
}

func TestAuthService_RegisterUser_HashesPassword(t *testing.T) {
	repo := &stubUserRepo{}
	svc := service.NewAuthService(repo, stubHasher{})

	user, err := svc.RegisterUser(context.Background(), service.RegisterInput{
		Email:    "a@b.com",
		Username: "abee",
		Password: "supersecret",
		FullName: "A Bee",
		Role:     model.RoleFamily,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, user.ID)
	require.NotEqual(t, "supersecret", repo.created.PasswordHash)
	require.Equal(t, "hashed:supersecret", repo.created.PasswordHash)
}

func TestAuthService_RegisterUser_InvalidRole(t *testing.T) {
	repo := &stubUserRepo{}
	svc := service.NewAuthService(repo, stubHasher{})

	_, err := svc.RegisterUser(context.Background(), service.RegisterInput{
		Email:    "a@b.com",
		Username: "abee",
		Password: "supersecret",
		FullName: "A Bee",
		Role:     model.UserRole("admin"),
	})
	require.ErrorIs(t, err, service.ErrInvalidRole)
	require.Nil(t, repo.created)
}

func TestAuthService_LoginUser_UnknownUser(t *testing.T) {
	repo := &stubUserRepo{byName: map[string]*model.User{}}
	svc := service.NewAuthService(repo, stubHasher{})

	_, err := svc.LoginUser(context.Background(), "ghost", "whatever")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthService_LoginUser_WrongPassword(t *testing.T) {
	repo := &stubUserRepo{byName: map[string]*model.User{
		"abee": {ID: uuid.New(), Username: "abee", PasswordHash: "hashed:right"},
	}}
	svc := service.NewAuthService(repo, stubHasher{})

	_, err := svc.LoginUser(context.Background(), "abee", "wrong")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
}
