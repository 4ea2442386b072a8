package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/SscSPs/settlement_ledger/cmd/docs"
	portssvc "github.com/SscSPs/settlement_ledger/internal/core/ports/services"
	"github.com/SscSPs/settlement_ledger/internal/middleware"
	"github.com/SscSPs/settlement_ledger/internal/platform/analytics"
	"github.com/SscSPs/settlement_ledger/internal/platform/config"
)

// Pinger reports database reachability for the health check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	db Pinger,
	tracker analytics.Tracker,
	logger *slog.Logger,
) error {
	registerValidators()

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.CronSecretHeader},
			ExposeHeaders:    []string{NextPageTokenHeader, "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	registerHealthRoute(r, cfg, db)

	// Confirm and reject share one limiter. The scheduler gets its own so customer
	// traffic behind the same address cannot starve finalization.
	confirmLimiter, err := middleware.NewMemoryLimiter(cfg.ConfirmRateLimit)
	if err != nil {
		return err
	}
	cronLimiter, err := middleware.NewMemoryLimiter(cfg.CronRateLimit)
	if err != nil {
		return err
	}

	RegisterCronRoutes(r, services.Finalization, cfg.CronSecret, middleware.RateLimit(cronLimiter))

	setupAPIV1Routes(r, cfg, services, tracker, middleware.RateLimit(confirmLimiter))

	setupSwaggerRoutes(r, cfg)

	logger.Info("Routes registered", slog.Int("route_count", len(r.Routes())))
	return nil
}

// registerHealthRoute answers liveness and, when enabled, database reachability.
func registerHealthRoute(r *gin.Engine, cfg *config.Config, db Pinger) {
	r.GET("/health", func(c *gin.Context) {
		if cfg.EnableDBCheck && db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				middleware.GetLoggerFromCtx(c.Request.Context()).Error("Health check failed", slog.String("error", err.Error()))
				c.String(http.StatusServiceUnavailable, "DB UNAVAILABLE")
				return
			}
		}
		c.String(http.StatusOK, "OK")
	})
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	tracker analytics.Tracker,
	rateLimit gin.HandlerFunc,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret), middleware.AnalyticsMiddleware(tracker))

	RegisterPaymentIntentRoutes(v1, services.PaymentIntent, rateLimit)
	RegisterDebtRequestRoutes(v1, services.DebtRequest, rateLimit)
	RegisterLedgerRoutes(v1, services.Ledger, services.Balance)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// withGuards returns guards followed by h in a fresh slice.
func withGuards(guards []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	chain := make([]gin.HandlerFunc, 0, len(guards)+1)
	chain = append(chain, guards...)
	return append(chain, h)
}
