package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

var userColumns = []string{"id", "name", "email", "password_hash", "email_verified_at", "created_at", "updated_at"}

type userRow struct {
	ID              uuid.UUID  `db:"id"`
	Name            string     `db:"name"`
	Email           string     `db:"email"`
	PasswordHash    string     `db:"password_hash"`
	EmailVerifiedAt *time.Time `db:"email_verified_at"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

func (r *userRow) toDomain() *domain.User {
	return &domain.User{
		ID:              r.ID,
		Name:            r.Name,
		Email:           r.Email,
		HashedPassword:  r.PasswordHash,
		EmailVerifiedAt: r.EmailVerifiedAt,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db         store.DB
	bcryptCost int
	logger     *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// bcryptCost is used when hashing passwords on Create.
func NewPostgresUserStore(db store.DB, bcryptCost int, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}

	return &PostgresUserStore{
		db:         db,
		bcryptCost: bcryptCost,
		logger:     logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// Create implements store.UserStore.Create
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	if user.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), s.bcryptCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.HashedPassword = string(hash)
		user.Password = ""
	}

	query, args, err := psql.Insert("users").
		Columns(userColumns...).
		Values(user.ID, user.Name, strings.ToLower(user.Email), user.HashedPassword,
			user.EmailVerifiedAt, user.CreatedAt, user.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("building insert query: %w", err)
	}

	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		if IsUniqueViolation(err) {
			log.Debug("email already registered", slog.String("user_id", user.ID.String()))
			return store.ErrEmailExists
		}
		log.Error("failed to create user", slog.String("error", err.Error()))
		return store.NewStoreError("user", "create", "insert failed", MapError(err))
	}

	log.Info("user created", slog.String("user_id", user.ID.String()))
	return nil
}

// GetByID implements store.UserStore.GetByID
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.getBy(ctx, squirrel.Eq{"id": id})
}

// GetByEmail implements store.UserStore.GetByEmail
// Emails are stored lowercased, so the lookup is case-insensitive.
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getBy(ctx, squirrel.Eq{"email": strings.ToLower(strings.TrimSpace(email))})
}

func (s *PostgresUserStore) getBy(ctx context.Context, pred squirrel.Eq) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := psql.Select(userColumns...).From("users").Where(pred).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building user query: %w", err)
	}

	var row userRow
	if err := pgxscan.Get(ctx, s.db, &row, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user", slog.String("error", err.Error()))
		return nil, store.NewStoreError("user", "get", "select failed", MapError(err))
	}
	return row.toDomain(), nil
}
