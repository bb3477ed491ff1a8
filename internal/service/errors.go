package service

import (
	"errors"
	"fmt"
)

// Common service errors.
//
// Expected conditions are returned as sentinels (or as the domain/store
// sentinels they wrap) so callers can test them with errors.Is. Unexpected
// failures are wrapped in a ServiceError that records the operation. The
// API layer maps both to HTTP status codes.
var (
	// ErrInvalidCredentials is returned when an email/password pair does not
	// match a user. The message does not say which half was wrong.
	// API layer should map this to HTTP 401 Unauthorized.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ServiceError is a custom error type for unexpected service failures.
type ServiceError struct {
	Service   string
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, operation, message string, err error) *ServiceError {
	return &ServiceError{
		Service:   service,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
