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

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"wmsapi/internal/config"
	apierrors "wmsapi/internal/errors"
	"wmsapi/internal/infrastructure"
	customMiddleware "wmsapi/internal/middleware"
	"wmsapi/internal/services"
	"wmsapi/internal/store"
	handlers "wmsapi/internal/transport/http"
)

const (
	Version = "1.2.0"
	AppName = "WMS Pick List Reports"
)

// BuildTime is set at compile time via -ldflags
var BuildTime = ""

// Application is the main dependency container. It owns the pool, the
// services, the router, and the HTTP server lifecycle.
type Application struct {
	Config        *config.Config
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Pool          *pgxpool.Pool

	ReportService *services.ReportService
	HealthService *services.HealthService

	Router *chi.Mux
	Server *http.Server
}

// NewApplication wires the full application from configuration
func NewApplication(ctx context.Context) (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("name", AppName),
		slog.String("version", Version))

	otelProviders, err := infrastructure.InitializeOTel(cfg.Observability, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	pool, err := newPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
		Pool:          pool,
	}

	app.initializeServices()
	app.setupRouter()
	app.createServer()

	return app, nil
}

func newPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

	return pgxpool.NewWithConfig(ctx, poolConfig)
}

func (a *Application) initializeServices() {
	recordStore := store.NewRecordStore(a.Pool)

	metrics, err := infrastructure.CreateReportMetrics(a.OTelProviders.Meter)
	if err != nil {
		a.Logger.Warn("metric instruments unavailable", slog.String("error", err.Error()))
		metrics = nil
	}

	a.ReportService = services.NewReportService(recordStore, a.Logger, metrics)
	a.HealthService = services.NewHealthService(Version, BuildTime, recordStore, a.Logger)
}

// setupRouter configures routing and middleware ordering:
// RequestID → RealIP → OTel → Logger → Recoverer → SecurityHeaders →
// CORS → RateLimiter → Timeout.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	errorHandler := apierrors.NewErrorHandler(a.Logger, false)

	r.Group(func(r chi.Router) {
		otelMiddleware, err := customMiddleware.NewOTelMiddleware(a.OTelProviders)
		if err != nil {
			a.Logger.Error("failed to create telemetry middleware", slog.String("error", err.Error()))
		} else {
			r.Use(otelMiddleware.Handler)
		}

		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(customMiddleware.Recoverer(a.Logger))
		r.Use(customMiddleware.SecurityHeaders)

		if a.Config.Security.EnableCORS {
			r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
				AllowedOrigins: a.Config.Security.AllowedOrigins,
			}))
		}

		if a.Config.Security.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.Logger,
			).Handler)
		}

		r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout, a.Logger))

		reportHandler := handlers.NewReportHandler(a.ReportService, a.Logger, errorHandler)
		healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)

		r.Mount("/api/reports", reportHandler.Routes())
		r.Mount("/api/health", healthHandler.Routes())

		r.NotFound(errorHandler.NotFound)
		r.MethodNotAllowed(errorHandler.MethodNotAllowed)
	})

	// Scrape endpoint stays outside the middleware group
	metricsHandler := handlers.NewMetricsHandler(a.OTelProviders)
	r.Handle("/metrics", metricsHandler.Handler())

	a.Router = r
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Start begins serving. On listener failure the cancel func is invoked so
// Run can unwind.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "starting server",
		slog.Int("port", a.Config.Server.Port),
		slog.String("level", a.Config.Logging.Level))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	// Database may still be starting; report but do not fail
	pingCtx, pingCancel := context.WithTimeout(ctx, a.Config.Database.ConnectTimeout)
	defer pingCancel()
	if err := a.Pool.Ping(pingCtx); err != nil {
		a.Logger.WarnContext(ctx, "database not reachable at startup",
			slog.String("error", err.Error()))
	}

	a.Logger.InfoContext(ctx, "server started",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))
	return nil
}

// Stop gracefully shuts down the server, the pool, and telemetry
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	a.Pool.Close()

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "error shutting down telemetry",
				slog.String("error", err.Error()))
		}
	}

	infrastructure.CloseLogFile()

	a.Logger.InfoContext(ctx, "shutdown complete")
	return nil
}

// Run serves until interrupted, then shuts down gracefully
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case sig := <-sigChan:
		a.Logger.InfoContext(ctx, "received signal", slog.String("signal", sig.String()))
	case <-ctx.Done():
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer stopCancel()
	return a.Stop(stopCtx)
}
