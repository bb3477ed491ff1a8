package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service"
)

// MockUserService implements service.UserService for testing
type MockUserService struct {
	RegisterFn     func(ctx context.Context, name, email, password string) (*domain.User, error)
	AuthenticateFn func(ctx context.Context, email, password string) (*domain.User, error)
	GetUserFn      func(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// Default return values
	User         *domain.User
	DefaultError error
}

var _ service.UserService = (*MockUserService)(nil)

// Register implements the UserService.Register method
func (m *MockUserService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, name, email, password)
	}
	return m.User, m.DefaultError
}

// Authenticate implements the UserService.Authenticate method
func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	if m.AuthenticateFn != nil {
		return m.AuthenticateFn(ctx, email, password)
	}
	return m.User, m.DefaultError
}

// GetUser implements the UserService.GetUser method
func (m *MockUserService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	if m.GetUserFn != nil {
		return m.GetUserFn(ctx, userID)
	}
	return m.User, m.DefaultError
}
