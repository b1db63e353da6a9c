package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/phrazzld/remind-api/internal/config"
	"github.com/phrazzld/remind-api/internal/notify"
	"github.com/phrazzld/remind-api/internal/platform/postgres"
	"github.com/phrazzld/remind-api/internal/service"
	"github.com/phrazzld/remind-api/internal/service/auth"
	"github.com/phrazzld/remind-api/internal/store"
)

// application holds the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core dependencies
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore  store.UserStore
	taskStore  store.TaskStore
	loginStore store.LoginStore

	// Service interfaces
	jwtService  auth.JWTService
	userService service.UserService
	taskService service.TaskService

	// Reminder delivery
	dispatcher *notify.Dispatcher
	scheduler  *sweepScheduler
}

// newApplication creates an application instance with all dependencies
// initialized. The database handle is injected, never opened here, so
// ownership and release stay with the caller.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
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

	// Stores and the shared transaction boundary
	app.userStore = postgres.NewUserStore(db)
	app.taskStore = postgres.NewTaskStore(db)
	app.loginStore = postgres.NewLoginStore(db)
	tx := store.NewSQLTransactioner(db)

	// Services
	app.userService, err = service.NewUserService(
		app.userStore,
		app.loginStore,
		auth.NewBcryptHasher(bcrypt.DefaultCost),
		auth.NewBcryptVerifier(),
		tx,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	app.taskService, err = service.NewTaskService(app.taskStore, tx, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	// Reminder channels; an unset host or token disables the channel
	timeout := time.Duration(cfg.Notify.TimeoutSeconds) * time.Second

	var emailSender notify.EmailSender
	if cfg.SMTP.Host != "" {
		emailSender, err = notify.NewSMTPSender(cfg.SMTP, timeout)
		if err != nil {
			return nil, fmt.Errorf("failed to create email sender: %w", err)
		}
		logger.Info("Email reminder channel enabled", "smtp_host", cfg.SMTP.Host)
	} else {
		logger.Info("Email reminder channel disabled")
	}

	var pushSender notify.PushSender
	if cfg.Push.AppToken != "" {
		pushSender, err = notify.NewPushoverSender(cfg.Push, timeout)
		if err != nil {
			return nil, fmt.Errorf("failed to create push sender: %w", err)
		}
		logger.Info("Push reminder channel enabled", "api_url", cfg.Push.APIURL)
	} else {
		logger.Info("Push reminder channel disabled")
	}

	app.dispatcher, err = notify.NewDispatcher(
		app.taskService,
		app.userService,
		emailSender,
		pushSender,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create reminder dispatcher: %w", err)
	}

	app.scheduler, err = newSweepScheduler(cfg.Notify.SweepTime, app.dispatcher, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create sweep scheduler: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the daily sweep scheduler and the HTTP server, handling
// lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	app.scheduler.Start()

	router, err := app.setupRouter()
	if err != nil {
		return fmt.Errorf("failed to set up router: %w", err)
	}

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.scheduler != nil {
		app.scheduler.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
