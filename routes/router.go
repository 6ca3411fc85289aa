package routes

import (
	"net/http"
	"time"

	"studentvoice-backend/internal/config"
	"studentvoice-backend/internal/pages"
	"studentvoice-backend/internal/telemetry"
	"studentvoice-backend/middleware"

	"github.com/gin-gonic/gin"
)

// NewRouter wires middleware and routes. Explicit routes are registered
// before the static fallback.
func NewRouter(cfg *config.Config, generator AdviceGenerator, metrics *telemetry.Metrics) (*gin.Engine, error) {
	injector, err := pages.NewInjector(cfg.Firebase)
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.AuditMiddleware())
	router.Use(middleware.TracingMiddleware())
	router.Use(middleware.EnrichTrace())
	router.Use(middleware.MetricsMiddleware(metrics))
	router.Use(middleware.CORSMiddlewareWithOrigins(cfg.CORSOrigins))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now()})
	})

	SetupAdviceRoutes(router, cfg, generator, metrics)
	SetupPageRoutes(router, cfg, injector, metrics)
	SetupStaticFallback(router, cfg.FrontendDir)

	return router, nil
}
