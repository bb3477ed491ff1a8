package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/config"
)

// DefaultJWTConfig returns a standard configuration for JWT authentication suitable for testing.
func DefaultJWTConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            "test-jwt-secret-that-is-32-chars-long",
		TokenLifetimeMinutes: 60,
		BcryptCost:           4,
	}
}

// NewTestJWTService creates a JWT service with an injectable clock.
func NewTestJWTService(secret string, lifetime time.Duration, timeFunc func() time.Time) JWTService {
	return &hmacJWTService{
		signingKey:    []byte(secret),
		tokenLifetime: lifetime,
		timeFunc:      timeFunc,
		clockSkew:     2 * time.Minute,
	}
}

// GenerateAuthHeaderForTesting creates an Authorization header value with
// Bearer prefix for userID, signed with the DefaultJWTConfig secret.
func GenerateAuthHeaderForTesting(userID uuid.UUID) (string, error) {
	svc, err := NewJWTService(DefaultJWTConfig())
	if err != nil {
		return "", fmt.Errorf("failed to create JWT service: %w", err)
	}
	token, err := svc.GenerateToken(context.Background(), userID)
	if err != nil {
		return "", err
	}
	return "Bearer " + token, nil
}
