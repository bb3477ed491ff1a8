package service

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/phrazzld/tasks-api/internal/store"
)

// Violation messages for registration fields.
const (
	MsgNameRequired     = "The name field is required."
	MsgEmailRequired    = "The email field is required."
	MsgEmailInvalid     = "The email field must be a valid email address."
	MsgEmailTaken       = "The email has already been taken."
	MsgPasswordRequired = "The password field is required."
	MsgPasswordMin      = "The password field must be at least 8 characters."
	MsgPasswordMax      = "The password field must not be greater than 72 characters."
)

// UserService provides registration, authentication and profile lookups.
type UserService interface {
	// Register creates a user. Field problems are reported as
	// *domain.ValidationErrors; a taken email as store.ErrEmailExists.
	Register(ctx context.Context, name, email, password string) (*domain.User, error)

	// Authenticate returns the user owning email if password matches.
	// Unknown emails and wrong passwords both yield ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// GetUser retrieves a user by their ID
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	verifier  auth.PasswordVerifier
	logger    *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userStore store.UserStore, verifier auth.PasswordVerifier, logger *slog.Logger) *UserServiceImpl {
	if userStore == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("userStore cannot be nil")
	}
	if verifier == nil {
		verifier = auth.NewBcryptVerifier()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		verifier:  verifier,
		logger:    logger.With(slog.String("component", "user_service")),
	}
}

// Ensure UserServiceImpl implements UserService interface
var _ UserService = (*UserServiceImpl)(nil)

// Register implements UserService.Register
func (s *UserServiceImpl) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := registrationViolations(name, email, password).Err(); err != nil {
		return nil, err
	}

	user, err := domain.NewUser(name, email, password)
	if err != nil {
		return nil, domain.NewFieldError("email", MsgEmailInvalid)
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("attempted to register an existing email")
			return nil, err
		}
		log.Error("failed to save user", slog.String("error", err.Error()))
		return nil, NewServiceError("user", "register", "failed to save user", err)
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	return user, nil
}

// Authenticate implements UserService.Authenticate
func (s *UserServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login for unknown email")
			s.verifier.CompareMissing(password)
			return nil, ErrInvalidCredentials
		}
		log.Error("failed to load user for login", slog.String("error", err.Error()))
		return nil, NewServiceError("user", "authenticate", "failed to load user", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login with wrong password", slog.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetUser implements UserService.GetUser
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("token refers to a missing user", slog.String("user_id", userID.String()))
			return nil, err
		}
		log.Error("failed to retrieve user",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewServiceError("user", "get", "failed to retrieve user", err)
	}
	return user, nil
}

func registrationViolations(name, email, password string) *domain.ValidationErrors {
	verr := domain.NewValidationErrors()

	if strings.TrimSpace(name) == "" {
		verr.Add("name", MsgNameRequired)
	}

	email = strings.TrimSpace(email)
	if email == "" {
		verr.Add("email", MsgEmailRequired)
	} else if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		verr.Add("email", MsgEmailInvalid)
	}

	switch {
	case password == "":
		verr.Add("password", MsgPasswordRequired)
	case len(password) < domain.PasswordMinLength:
		verr.Add("password", MsgPasswordMin)
	case len(password) > domain.PasswordMaxLength:
		verr.Add("password", MsgPasswordMax)
	}

	return verr
}
