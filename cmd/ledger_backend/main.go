package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/permissioned_ledger/internal/adapters/database/memory"
	"github.com/SscSPs/permissioned_ledger/internal/adapters/database/pgsql"
	"github.com/SscSPs/permissioned_ledger/internal/adapters/events"
	"github.com/SscSPs/permissioned_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/permissioned_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/permissioned_ledger/internal/core/ports/services"
	"github.com/SscSPs/permissioned_ledger/internal/core/services"
	"github.com/SscSPs/permissioned_ledger/internal/handlers"
	"github.com/SscSPs/permissioned_ledger/internal/middleware"
	"github.com/SscSPs/permissioned_ledger/internal/platform/config"
	"github.com/SscSPs/permissioned_ledger/pkg/database"
	"github.com/SscSPs/permissioned_ledger/pkg/metrics"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// @title Permissioned Ledger API
// @version 1.0
// @description Role-gated account registry and transaction ledger.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeStorage, err := setupStorage(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStorage()

	var collector *metrics.MetricsCollector
	if cfg.MetricsEnabled {
		collector = metrics.NewMetricsCollector(logger)
	}

	posthogPublisher := events.NewPosthogPublisher(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogPublisher.Close()

	sinks := []portssvc.EventPublisher{events.NewLogPublisher(), posthogPublisher}
	if collector != nil {
		sinks = append(sinks, events.NewMetricsPublisher(collector))
	}

	serviceContainer := services.NewServiceContainer(repos, events.NewMultiPublisher(sinks...))

	if cfg.LedgerOwner != "" {
		if err := serviceContainer.Role.Bootstrap(ctx, domain.Principal(cfg.LedgerOwner)); err != nil {
			logger.Error("Failed to bootstrap ledger owner", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), middleware.CORS(cfg.CORSAllowedOrigins))

	var metricsHandler http.Handler
	if collector != nil {
		r.Use(middleware.MetricsMiddleware(collector))
		metricsHandler = collector.GetHandler()
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer, metricsHandler); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
}

// setupStorage selects the repository backend. The returned func releases its resources.
func setupStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.StorageBackend != config.StoragePostgres {
		logger.Info("Using in-memory storage")
		return memory.NewRepositoryProvider(), func() {}, nil
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck, logger)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}

	logger.Info("Running database migrations...")
	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		database.ClosePgxPool(dbPool, logger)
		return portsrepo.RepositoryProvider{}, nil, err
	}

	return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool, logger) }, nil
}
