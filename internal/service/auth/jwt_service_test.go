package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "tasks-api-signing-secret-for-tests-only"

var issuedAt = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func serviceAt(secret string, now time.Time) JWTService {
	return NewTestJWTService(secret, time.Hour, func() time.Time { return now })
}

// signRaw signs arbitrary claims with testSecret, bypassing GenerateToken.
func signRaw(t *testing.T, method jwt.SigningMethod, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc := serviceAt(testSecret, issuedAt)

	token, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(token, "."))

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.True(t, claims.IssuedAt.Equal(issuedAt))
	assert.True(t, claims.ExpiresAt.Equal(issuedAt.Add(svc.TokenLifetime())))

	again, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	second, err := svc.ValidateToken(context.Background(), again)
	require.NoError(t, err)
	assert.NotEqual(t, claims.ID, second.ID, "every token gets its own jti")
}

func TestValidateTokenClock(t *testing.T) {
	t.Parallel()

	token, err := serviceAt(testSecret, issuedAt).GenerateToken(context.Background(), uuid.New())
	require.NoError(t, err)

	tests := []struct {
		name       string
		validateAt time.Time
		wantErr    error
	}{
		{"fresh", issuedAt.Add(time.Minute), nil},
		{"just before expiry", issuedAt.Add(59 * time.Minute), nil},
		{"expired but inside leeway", issuedAt.Add(61 * time.Minute), nil},
		{"expired past leeway", issuedAt.Add(63 * time.Minute), ErrExpiredToken},
		{"clock slightly behind issuer", issuedAt.Add(-time.Minute), nil},
		{"issued in the future", issuedAt.Add(-10 * time.Minute), ErrTokenNotYetValid},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			claims, err := serviceAt(testSecret, tc.validateAt).ValidateToken(context.Background(), token)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, claims)
		})
	}
}

func TestValidateTokenRejects(t *testing.T) {
	t.Parallel()

	valid := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
	}
	otherKey, err := serviceAt("a-completely-different-secret-value!!", issuedAt).
		GenerateToken(context.Background(), uuid.New())
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"empty", "", ErrMissingToken},
		{"garbage", "not-a-jwt", ErrInvalidToken},
		{"signed with another key", otherKey, ErrInvalidToken},
		{"other hmac algorithm", signRaw(t, jwt.SigningMethodHS512, jwtCustomClaims{UserID: uuid.New(), RegisteredClaims: valid}), ErrInvalidToken},
		{"no user id", signRaw(t, jwt.SigningMethodHS256, jwtCustomClaims{RegisteredClaims: valid}), ErrInvalidToken},
	}

	svc := serviceAt(testSecret, issuedAt)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			claims, err := svc.ValidateToken(context.Background(), tc.token)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, claims)
		})
	}
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(cfg *config.AuthConfig)
		wantErr bool
	}{
		{"defaults", func(*config.AuthConfig) {}, false},
		{"short secret", func(c *config.AuthConfig) { c.JWTSecret = "too-short" }, true},
		{"zero lifetime", func(c *config.AuthConfig) { c.TokenLifetimeMinutes = 0 }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultJWTConfig()
			tc.mutate(&cfg)
			svc, err := NewJWTService(cfg)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, time.Duration(cfg.TokenLifetimeMinutes)*time.Minute, svc.TokenLifetime())
		})
	}
}

func TestGenerateAuthHeaderForTesting(t *testing.T) {
	t.Parallel()
	userID := uuid.New()

	header, err := GenerateAuthHeaderForTesting(userID)
	require.NoError(t, err)
	token, ok := strings.CutPrefix(header, "Bearer ")
	require.True(t, ok)

	svc, err := NewJWTService(DefaultJWTConfig())
	require.NoError(t, err)
	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}
