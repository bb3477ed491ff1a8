package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/phrazzld/tasks-api/internal/api/middleware"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/pagination"
	"github.com/phrazzld/tasks-api/internal/platform/postgres"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/phrazzld/tasks-api/internal/service/auth"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// Service interfaces
	taskService service.TaskService
	userService service.UserService
	jwtService  auth.JWTService

	paging  pagination.Config
	metrics *middleware.Metrics

	// healthCheck reports whether the database is reachable.
	healthCheck func(ctx context.Context) error
}

// newApplication creates a new application instance with all dependencies initialized.
// The pool must already be connected; it is owned by the caller.
func newApplication(cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		paging:  pagination.NewConfig(cfg.API),
		metrics: middleware.NewMetrics(),
		healthCheck: func(ctx context.Context) error {
			return postgres.HealthCheck(ctx, pool)
		},
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	taskStore := postgres.NewPostgresTaskStore(pool, logger)
	userStore := postgres.NewPostgresUserStore(pool, cfg.Auth.BcryptCost, logger)

	app.taskService, err = service.NewTaskService(taskStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}
	app.userService = service.NewUserService(userStore, auth.NewBcryptVerifier(), logger)

	logger.Info("application initialized",
		slog.Int("default_per_page", app.paging.DefaultPerPage),
		slog.Int("max_per_page", app.paging.MaxPerPage))
	return app, nil
}

// Run starts the application server and blocks until ctx is cancelled or
// the server fails.
func (app *application) Run(ctx context.Context) error {
	router, err := app.setupRouter()
	if err != nil {
		return fmt.Errorf("failed to set up router: %w", err)
	}

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
