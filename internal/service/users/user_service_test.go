package users

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/katryana/airport-api/internal/auth"
	"github.com/katryana/airport-api/internal/domain"
)

// MockUserRepository is a mock implementation of repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func TestUserService_Register(t *testing.T) {
	repo := &MockUserRepository{}
	service := NewUserService(repo, auth.NewTokenManager("secret", time.Hour))

	ctx := context.Background()
	repo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = 1
	}).Return(nil)

	user, err := service.Register(ctx, "user@example.com", "hunter22")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "hunter22", user.PasswordHash)
}

func TestUserService_Login(t *testing.T) {
	repo := &MockUserRepository{}
	tokens := auth.NewTokenManager("secret", time.Hour)
	service := NewUserService(repo, tokens)

	hash, err := auth.HashPassword("hunter22")
	assert.NoError(t, err)

	ctx := context.Background()
	repo.On("GetByEmail", ctx, "user@example.com").Return(&domain.User{
		ID:           1,
		Email:        "user@example.com",
		PasswordHash: hash,
	}, nil)

	token, err := service.Login(ctx, "user@example.com", "hunter22")
	assert.NoError(t, err)

	ident, err := tokens.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), ident.UserID)
}

func TestUserService_Login_wrongPassword(t *testing.T) {
	repo := &MockUserRepository{}
	service := NewUserService(repo, auth.NewTokenManager("secret", time.Hour))

	hash, _ := auth.HashPassword("hunter22")
	ctx := context.Background()
	repo.On("GetByEmail", ctx, "user@example.com").Return(&domain.User{PasswordHash: hash}, nil)

	_, err := service.Login(ctx, "user@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestUserService_Login_unknownEmail(t *testing.T) {
	repo := &MockUserRepository{}
	service := NewUserService(repo, auth.NewTokenManager("secret", time.Hour))

	ctx := context.Background()
	repo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, domain.ErrNotFound)

	_, err := service.Login(ctx, "ghost@example.com", "whatever")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
