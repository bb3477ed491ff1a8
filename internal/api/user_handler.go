package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/service"
)

// Success messages for user endpoints.
const (
	MsgUserRetrieved    = "User information retrieved successfully"
	MsgProfileRetrieved = "User profile retrieved successfully"
)

// UserHandler serves the authenticated principal.
type UserHandler struct {
	users  service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users service.UserService, logger *slog.Logger) *UserHandler {
	if users == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("users cannot be nil for UserHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		users:  users,
		logger: logger.With(slog.String("component", "user_handler")),
	}
}

// Me handles GET /user requests.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	h.respondWithCurrentUser(w, r, MsgUserRetrieved)
}

// Profile handles GET /user/profile requests.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	h.respondWithCurrentUser(w, r, MsgProfileRetrieved)
}

func (h *UserHandler) respondWithCurrentUser(w http.ResponseWriter, r *http.Request, message string) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	user, err := h.users.GetUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to retrieve user")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, message, userToResponse(user))
}
