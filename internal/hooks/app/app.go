package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/promptside/hooklistener/internal/hooks/http"
	"github.com/promptside/hooklistener/internal/hooks/service"
	"github.com/promptside/hooklistener/internal/hooks/store"
	"github.com/promptside/hooklistener/internal/hooks/store/drivers/sqlite"
	"github.com/promptside/hooklistener/pkg/promptside"
	"github.com/promptside/hooklistener/pkg/promptside/core"
	"github.com/promptside/hooklistener/pkg/promptside/webhook"
	"github.com/promptside/hooklistener/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the webhook listener with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	client *promptside.Client

	saleConfirmService  *service.SaleConfirmService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	level := "info"
	if cfg.Verbose {
		level = "debug"
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "hooklistener",
			Version: BuildVersion,
			Env:     cfg.Environment,
			Level:   level,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initClient(); err != nil {
		return nil, err
	}
	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initServices(); err != nil {
		return nil, err
	}
	if err := app.initHTTP(); err != nil {
		return nil, err
	}

	return app, nil
}

// Run starts the application and blocks until shutdown is requested. The
// client authenticates before the server accepts traffic so a bad credential
// fails fast at startup.
func (app *Application) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if _, err := app.client.Authenticate(ctx); err != nil {
		return fmt.Errorf("initial authentication failed: %w", err)
	}

	app.housekeepingService.Start()

	app.logger.Info("webhook listener starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down webhook listener...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("webhook listener stopped")
	return nil
}

func (app *Application) initClient() error {
	environment, err := promptside.ParseEnv(app.cfg.Environment)
	if err != nil {
		return err
	}

	app.client = promptside.New(promptside.Config{
		ClientID:     app.cfg.ClientID,
		ClientSecret: app.cfg.ClientSecret,
		Scope:        app.cfg.Scope,
		Tenant:       app.cfg.Tenant,
		Env:          environment,
	})
	app.client.SetLogger(app.logger)
	app.client.OnAuthFailure = func(e *promptside.AuthError) {
		app.logger.Error("authentication failed", "reason", e.Reason, "error", e)
	}
	return nil
}

func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := app.db.ApplyMigrations(); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

func (app *Application) initServices() error {
	app.saleConfirmService = &service.SaleConfirmService{
		Sales: core.NewSaleService(app.client),
		Store: app.db,
	}
	app.housekeepingService = service.NewHousekeepingService(
		app.db, app.logger, app.cfg.HousekeepingInterval, app.cfg.DeliveryRetention,
	)
	return nil
}

func (app *Application) initHTTP() error {
	verifier, err := webhook.NewVerifier(app.client.WebhookPublicKey)
	if err != nil {
		return fmt.Errorf("invalid webhook public key: %w", err)
	}

	app.router = httpapi.NewRouter(verifier, app.client, BuildVersion, app.db, app.logger)
	app.router.SaleConfirmService = app.saleConfirmService
	app.router.ApplyRoutes()

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           app.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return nil
}
