package api

import (
	"time"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service"
)

// CreateTaskRequest defines the payload for POST /tasks. Field rules live in
// the domain so that every write path reports the same messages.
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// toInput converts the request into service input. A missing status means
// pending.
func (req CreateTaskRequest) toInput() service.CreateTaskInput {
	in := service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		in.Status = *req.Status
	}
	return in
}

// UpdateTaskRequest defines the payload for PUT and PATCH /tasks/{id}.
// Absent fields are left untouched.
type UpdateTaskRequest struct {
	Title       shared.Optional[string] `json:"title"`
	Description shared.Optional[string] `json:"description"`
	Status      shared.Optional[string] `json:"status"`
}

// toInput converts the request into service input. A null description clears
// it; a null title or status is kept as an empty value and fails validation.
func (req UpdateTaskRequest) toInput() service.UpdateTaskInput {
	var in service.UpdateTaskInput
	if req.Title.Set {
		title := req.Title.Value
		in.Title = &title
	}
	if req.Description.Set {
		if req.Description.Null {
			in.ClearDescription = true
		} else {
			in.Description = req.Description.Ptr()
		}
	}
	if req.Status.Set {
		status := req.Status.Value
		in.Status = &status
	}
	return in
}

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,max=255"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func userToResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:              u.ID.String(),
		Name:            u.Name,
		Email:           u.Email,
		EmailVerifiedAt: u.EmailVerifiedAt,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	TokenType string `json:"token_type"`

	// ExpiresAt is the ISO 8601 timestamp when the access token expires
	ExpiresAt string `json:"expires_at"`

	User UserResponse `json:"user"`
}
