package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MockJWTService is a mock implementation of the JWTService interface for testing.
type MockJWTService struct {
	GenerateTokenFunc func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateTokenFunc func(ctx context.Context, tokenString string) (*Claims, error)

	Token           string  // Default token to return
	TokenError      error   // Default error for token generation
	ValidationError error   // Default error for token validation
	Claims          *Claims // Default claims to return
	Lifetime        time.Duration
}

// Ensure MockJWTService implements JWTService interface
var _ JWTService = (*MockJWTService)(nil)

// NewMockJWTService creates a new mock JWT service that issues "mock-jwt-token"
// and accepts any token as belonging to userID.
func NewMockJWTService(userID uuid.UUID) *MockJWTService {
	now := time.Now()
	return &MockJWTService{
		Token:    "mock-jwt-token",
		Lifetime: time.Hour,
		Claims: &Claims{
			UserID:    userID,
			Subject:   userID.String(),
			IssuedAt:  now,
			ExpiresAt: now.Add(time.Hour),
			ID:        uuid.New().String(),
		},
	}
}

// GenerateToken implements the JWTService.GenerateToken method.
func (m *MockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(ctx, userID)
	}
	return m.Token, m.TokenError
}

// ValidateToken implements the JWTService.ValidateToken method.
func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(ctx, tokenString)
	}
	if m.ValidationError != nil {
		return nil, m.ValidationError
	}
	return m.Claims, nil
}

// TokenLifetime implements the JWTService.TokenLifetime method.
func (m *MockJWTService) TokenLifetime() time.Duration {
	return m.Lifetime
}

// WithValidationError sets a custom token validation error and returns the mock.
func (m *MockJWTService) WithValidationError(err error) *MockJWTService {
	m.ValidationError = err
	return m
}

// WithTokenError sets a custom token generation error and returns the mock.
func (m *MockJWTService) WithTokenError(err error) *MockJWTService {
	m.TokenError = err
	return m
}
