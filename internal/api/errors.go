package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/phrazzld/tasks-api/internal/store"
)

// Client facing messages.
const (
	MsgTaskNotFound       = "Task not found."
	MsgUserNotFound       = "User not found."
	MsgUnauthenticated    = "Unauthenticated."
	MsgInvalidCredentials = "The provided credentials are incorrect."
	MsgEmailTaken         = service.MsgEmailTaken
	MsgInvalidData        = "The given data was invalid."
	MsgMalformedJSON      = "Malformed JSON request body."
	MsgPayloadTooLarge    = "Request body is too large."
	MsgAlreadyExists      = "The resource already exists."
	MsgNotFound           = "Not found."
	MsgUnexpected         = "An unexpected error occurred."
	MsgTooManyRequests    = "Too Many Attempts."
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Validation errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusUnprocessableEntity

	// Malformed bodies
	case errors.Is(err, shared.ErrMalformedJSON):
		return http.StatusBadRequest

	case errors.Is(err, shared.ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge

	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Not found errors. A task id that is not an integer can never match a
	// row, so it is reported the same way.
	case store.IsNotFoundError(err),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusNotFound

	// Conflict errors
	case store.IsDuplicateError(err):
		return http.StatusConflict

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return MsgUnexpected
	}

	var verr *domain.ValidationErrors
	switch {
	case errors.As(err, &verr):
		return verr.Summary()

	case errors.Is(err, domain.ErrInvalidStatus):
		return domain.MsgStatusInvalid

	case errors.Is(err, store.ErrInvalidEntity):
		return MsgInvalidData

	case errors.Is(err, shared.ErrMalformedJSON):
		return MsgMalformedJSON

	case errors.Is(err, service.ErrInvalidCredentials):
		return MsgInvalidCredentials

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return MsgUnauthenticated

	case errors.Is(err, store.ErrUserNotFound):
		return MsgUserNotFound

	case errors.Is(err, store.ErrTaskNotFound),
		errors.Is(err, domain.ErrInvalidID):
		return MsgTaskNotFound

	case errors.Is(err, store.ErrEmailExists):
		return MsgEmailTaken

	case errors.Is(err, shared.ErrBodyTooLarge):
		return MsgPayloadTooLarge

	case store.IsNotFoundError(err):
		return MsgNotFound

	case store.IsDuplicateError(err):
		return MsgAlreadyExists

	default:
		return MsgUnexpected
	}
}

// HandleAPIError writes the error envelope for err. Field violations are
// sent with their per-field messages; everything else gets the safe message
// for its status. A non-empty fallback replaces the generic message of
// unexpected errors.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var verr *domain.ValidationErrors
	if errors.As(err, &verr) {
		shared.RespondWithValidationErrors(w, r, verr)
		return
	}

	if errors.Is(err, domain.ErrInvalidStatus) {
		shared.RespondWithValidationErrors(w, r, domain.NewFieldError("status", domain.MsgStatusInvalid))
		return
	}

	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}

	var opts []shared.ResponseOption
	if status == http.StatusUnauthorized {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}
