package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/mocks"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserHandler(t *testing.T) {
	user := sampleUser()

	tests := []struct {
		name        string
		handler     func(h *UserHandler) http.HandlerFunc
		wantMessage string
	}{
		{
			name:        "me",
			handler:     func(h *UserHandler) http.HandlerFunc { return h.Me },
			wantMessage: MsgUserRetrieved,
		},
		{
			name:        "profile",
			handler:     func(h *UserHandler) http.HandlerFunc { return h.Profile },
			wantMessage: MsgProfileRetrieved,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotID uuid.UUID
			users := &mocks.MockUserService{
				GetUserFn: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
					gotID = id
					return user, nil
				},
			}
			h := NewUserHandler(users, slog.Default())

			req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
			req = req.WithContext(shared.WithUserID(req.Context(), user.ID))
			rec := httptest.NewRecorder()

			tc.handler(h)(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, user.ID, gotID)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.wantMessage, body["message"])
			data := body["data"].(map[string]any)
			assert.Equal(t, user.ID.String(), data["id"])
			assert.Equal(t, "Ada Lovelace", data["name"])
			assert.Contains(t, data, "email_verified_at")
			assert.Nil(t, data["email_verified_at"])
			assert.NotContains(t, data, "password")
		})
	}
}

func TestUserHandlerRequiresAuthentication(t *testing.T) {
	users := &mocks.MockUserService{User: sampleUser()}
	h := NewUserHandler(users, slog.Default())

	rec := httptest.NewRecorder()
	h.Me(rec, httptest.NewRequest(http.MethodGet, "/api/user", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, MsgUnauthenticated, decodeError(t, rec).Message)
}

func TestUserHandlerMissingUser(t *testing.T) {
	users := &mocks.MockUserService{DefaultError: store.ErrUserNotFound}
	h := NewUserHandler(users, slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
	req = req.WithContext(shared.WithUserID(req.Context(), uuid.New()))
	rec := httptest.NewRecorder()
	h.Profile(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, MsgUserNotFound, decodeError(t, rec).Message)
}
