package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/SscSPs/settlement_ledger/internal/core/services"
	"github.com/SscSPs/settlement_ledger/internal/handlers"
	"github.com/SscSPs/settlement_ledger/internal/middleware"
	"github.com/SscSPs/settlement_ledger/internal/platform/analytics"
	"github.com/SscSPs/settlement_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/settlement_ledger/internal/scheduler"
	"github.com/SscSPs/settlement_ledger/pkg/database"
)

var skipMigrations bool

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

func init() {
	serverCmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply migrations on startup")
}

// @title Settlement Ledger API
// @version 1.0
// @description Payment intents, debt requests and the merchant/customer settlement ledger.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func runServer(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		return err
	}
	defer dbPool.Close()

	if !skipMigrations {
		logger.Info("Running database migrations...")
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, database.MigrateUp, logger); err != nil {
			logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
			return err
		}
	}

	tracker := analytics.NewPosthogTracker(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer tracker.Close()

	container := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(dbPool), tracker)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		return err
	}
	if err := handlers.RegisterRoutes(r, cfg, container, dbPool, tracker, logger); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		return err
	}

	if cfg.FinalizerEnabled {
		finalizer := scheduler.NewFinalizer(container.Finalization, cfg.FinalizerInterval, logger)
		finalizer.Start(ctx)
		defer finalizer.Stop()
	}

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		serverErr <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", slog.String("error", err.Error()))
		return err
	}
	logger.Info("Server stopped")
	return nil
}
