package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/SscSPs/permissioned_ledger/cmd/docs"
	portssvc "github.com/SscSPs/permissioned_ledger/internal/core/ports/services"
	"github.com/SscSPs/permissioned_ledger/internal/dto"
	"github.com/SscSPs/permissioned_ledger/internal/middleware"
	"github.com/SscSPs/permissioned_ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var (
	validatorsOnce sync.Once
	validatorsErr  error
)

// SetupValidators registers the custom binding tags on gin's validator engine.
// Safe to call more than once.
func SetupValidators() error {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			validatorsErr = errors.New("gin binding engine is not a go-playground validator")
			return
		}
		validatorsErr = dto.RegisterValidations(v)
	})
	return validatorsErr
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// metricsHandler may be nil when metrics are disabled.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	metricsHandler http.Handler,
) error {
	if err := SetupValidators(); err != nil {
		return err
	}

	r.GET("/health", getHealth)
	if metricsHandler != nil {
		r.GET("/metrics", gin.WrapH(metricsHandler))
	}

	if err := setupAPIV1Routes(r, cfg, services); err != nil {
		return err
	}

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) error {
	rateLimiter, err := middleware.NewMemoryRateLimiter(cfg.RateLimit)
	if err != nil {
		return fmt.Errorf("failed to create rate limiter: %w", err)
	}
	limitWrites := middleware.RateLimit(rateLimiter)

	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))

	RegisterRoleRoutes(v1, service.Role, limitWrites)
	RegisterAccountRoutes(v1, service.Account, service.Ledger, limitWrites)
	RegisterLedgerRoutes(v1, service.Ledger, limitWrites)
	return nil
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
