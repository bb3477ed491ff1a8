package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/tasks-api/internal/api"
	apiMiddleware "github.com/phrazzld/tasks-api/internal/api/middleware"
	"github.com/phrazzld/tasks-api/internal/api/shared"
)

// requestTimeout bounds every request, including its database work.
const requestTimeout = 30 * time.Second

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() (http.Handler, error) {
	rateLimit, err := apiMiddleware.NewRateLimiter(app.config.Server.RateLimit, app.logger)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(app.metrics.Instrument)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(requestTimeout))

	taskHandler := api.NewTaskHandler(app.taskService, app.paging, app.logger)
	authHandler := api.NewAuthHandler(app.userService, app.jwtService, app.logger)
	userHandler := api.NewUserHandler(app.userService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.logger)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Not found.")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Method not allowed.")
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(rateLimit)

		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", taskHandler.List)
			r.Post("/", taskHandler.Create)
			r.Get("/{id}", taskHandler.Get)
			r.Put("/{id}", taskHandler.Update)
			r.Patch("/{id}", taskHandler.Update)
			r.Delete("/{id}", taskHandler.Delete)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Get("/user", userHandler.Me)
			r.Get("/user/profile", userHandler.Profile)
		})
	})

	r.Get("/health", app.health)
	r.Handle("/metrics", app.metrics.Handler())

	return r, nil
}

// health reports whether the API and its database are usable.
func (app *application) health(w http.ResponseWriter, r *http.Request) {
	if err := app.healthCheck(r.Context()); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable, "Service unavailable.", err)
		return
	}
	shared.RespondWithSuccess(w, r, http.StatusOK, "OK", map[string]string{"database": "ok"})
}
