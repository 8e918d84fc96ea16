package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/inkline/inkline-api/internal/api"
	apiMiddleware "github.com/inkline/inkline-api/internal/api/middleware"
	"github.com/inkline/inkline-api/internal/store"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Handlers
	tokenLifetime := time.Duration(app.config.Auth.TokenLifetimeMinutes) * time.Minute
	authHandler := api.NewAuthHandler(
		app.providerStore,
		app.settingsStore,
		store.NewTxRunner(app.db),
		app.jwtService,
		app.passwordVerifier,
		tokenLifetime,
	)
	taskHandler := api.NewTaskHandler(
		app.taskEngine,
		app.settingsStore,
		app.config.Task.DefaultMaxTasks,
	)
	settingsHandler := api.NewSettingsHandler(app.settingsStore)
	draftHandler := api.NewDraftHandler(app.drafter)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Prioritized task endpoints
			r.Get("/tasks", taskHandler.ListTasks)
			r.Post("/tasks/complete", taskHandler.CompleteTask)
			r.Get("/tasks/snapshot", taskHandler.WeeklySnapshot)
			r.Post("/tasks/draft-message", draftHandler.DraftMessage)

			// Provider settings
			r.Get("/settings", settingsHandler.GetSettings)
			r.Put("/settings", settingsHandler.UpdateSettings)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
