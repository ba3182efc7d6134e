package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"careconnect-server/internal/jwt"
	"careconnect-server/internal/model"
	"careconnect-server/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidRole        = errors.New("role must be nanny or family")
	ErrUserNotFound       = errors.New("user not found")
)

// PasswordHasher is the one-way hashing collaborator. Only the hash
// output is ever persisted.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Compare(hash, plaintext string) error
}

type bcryptHasher struct{}

func NewBcryptHasher() PasswordHasher {
	return bcryptHasher{}
}

func (bcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (bcryptHasher) Compare(hash, plaintext string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
}

type RegisterInput struct {
	Email    string
	Username string
	Password string
	FullName string
	Role     model.UserRole
	Bio      *string
	Location *string
	Phone    *string
}

type AuthService interface {
	RegisterUser(ctx context.Context, input RegisterInput) (*model.User, error)
	LoginUser(ctx context.Context, username, password string) (accessToken string, err error)
}

type authService struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
}

func NewAuthService(userRepo repository.UserRepository, hasher PasswordHasher) AuthService {
	return &authService{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

func (s *authService) RegisterUser(ctx context.Context, input RegisterInput) (*model.User, error) {
	if !input.Role.Valid() {
		return nil, ErrInvalidRole
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: passwordHash,
		FullName:     input.FullName,
		Role:         input.Role,
		Bio:          input.Bio,
		Location:     input.Location,
		Phone:        input.Phone,
	}

	// Uniqueness of email and username is enforced by the storage
	// constraints, surfaced as repository.ErrDuplicate.
	return s.userRepo.Create(ctx, user)
}

func (s *authService) LoginUser(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}

	accessToken, err := jwt.GenerateToken(user)
	if err != nil {
		return "", err
	}

	return accessToken, nil
}
