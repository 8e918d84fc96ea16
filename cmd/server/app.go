package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/inkline/inkline-api/internal/config"
	"github.com/inkline/inkline-api/internal/events"
	"github.com/inkline/inkline-api/internal/generation"
	"github.com/inkline/inkline-api/internal/platform/gemini"
	"github.com/inkline/inkline-api/internal/platform/postgres"
	"github.com/inkline/inkline-api/internal/service/auth"
	"github.com/inkline/inkline-api/internal/service/taskengine"
	"github.com/inkline/inkline-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	providerStore     store.ProviderStore
	clientStore       store.ClientStore
	consultationStore store.ConsultationStore
	appointmentStore  store.AppointmentStore
	conversationStore store.ConversationStore
	completionStore   store.TaskCompletionStore
	settingsStore     store.SettingsStore

	// Service interfaces
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	taskEngine       taskengine.Service
	drafter          generation.MessageDrafter // nil when no LLM is configured
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	// Stores
	app.providerStore = postgres.NewPostgresProviderStore(db, cfg.Auth.BcryptCost)
	app.clientStore = postgres.NewPostgresClientStore(db)
	app.consultationStore = postgres.NewPostgresConsultationStore(db)
	app.appointmentStore = postgres.NewPostgresAppointmentStore(db)
	app.conversationStore = postgres.NewPostgresConversationStore(db)
	app.completionStore = postgres.NewPostgresTaskCompletionStore(db)
	app.settingsStore = postgres.NewPostgresSettingsStore(db)

	// Completion events: synchronous in-process dispatch, with an
	// audit-log handler registered by default.
	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(events.NewLoggingHandler(logger))

	// Task engine
	app.taskEngine = taskengine.NewService(taskengine.Deps{
		Consultations:   app.consultationStore,
		Appointments:    app.appointmentStore,
		Conversations:   app.conversationStore,
		Clients:         app.clientStore,
		Completions:     app.completionStore,
		Logger:          logger,
		Events:          emitter,
		FailSoft:        cfg.Task.FailSoft,
		DefaultMaxTasks: cfg.Task.DefaultMaxTasks,
	})
	logger.Info("Task engine initialized",
		"fail_soft", cfg.Task.FailSoft,
		"default_max_tasks", cfg.Task.DefaultMaxTasks)

	// Optional LLM drafter; the draft endpoint falls back to static
	// templates when absent.
	if cfg.LLM.GeminiAPIKey != "" {
		drafter, err := gemini.NewDrafter(ctx, logger, cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize message drafter: %w", err)
		}
		app.drafter = drafter
		logger.Info("LLM message drafter initialized", "model", cfg.LLM.ModelName)
	} else {
		logger.Info("No LLM configured, draft endpoint uses static templates")
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
