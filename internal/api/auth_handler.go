package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/phrazzld/tasks-api/internal/service/auth"
)

// Success messages for auth endpoints.
const (
	MsgRegistered = "User registered successfully"
	MsgLoggedIn   = "Login successful"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	users      service.UserService
	jwtService auth.JWTService
	now        func() time.Time
	logger     *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(users service.UserService, jwtService auth.JWTService, logger *slog.Logger) *AuthHandler {
	if users == nil || jwtService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("users and jwtService cannot be nil for AuthHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		users:      users,
		jwtService: jwtService,
		now:        time.Now,
		logger:     logger.With(slog.String("component", "auth_handler")),
	}
}

// Register handles the /auth/register endpoint.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create user")
		return
	}

	resp, err := h.issueToken(r, user)
	if err != nil {
		log.Error("failed to generate token", slog.String("user_id", user.ID.String()))
		HandleAPIError(w, r, err, "Failed to generate authentication token")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusCreated, MsgRegistered, resp)
}

// Login handles the /auth/login endpoint.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to authenticate user")
		return
	}

	resp, err := h.issueToken(r, user)
	if err != nil {
		log.Error("failed to generate token", slog.String("user_id", user.ID.String()))
		HandleAPIError(w, r, err, "Failed to generate authentication token")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, MsgLoggedIn, resp)
}

// issueToken signs an access token for user. The reported expiry is measured
// from just before signing.
func (h *AuthHandler) issueToken(r *http.Request, user *domain.User) (AuthResponse, error) {
	issuedAt := h.now()
	token, err := h.jwtService.GenerateToken(r.Context(), user.ID)
	if err != nil {
		return AuthResponse{}, err
	}
	return AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   issuedAt.Add(h.jwtService.TokenLifetime()).UTC().Format(time.RFC3339),
		User:        userToResponse(user),
	}, nil
}
