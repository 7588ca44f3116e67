package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"docorch/internal/config"
	"docorch/internal/handler"
	"docorch/internal/metrics"
	"docorch/internal/middleware"

	_ "docorch/docs" // registers the OpenAPI document
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	logger *zap.Logger,
	m *metrics.Metrics,
	sessionH *handler.SessionHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = cfg.Upload.MaxBytes()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics(m))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)
	r.GET("/metrics", gin.WrapH(m.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))

	sessions := v1.Group("/sessions")
	sessions.POST("", sessionH.Create)
	sessions.GET("/:id", sessionH.Get)
	sessions.POST("/:id/extract", sessionH.Extract)
	sessions.POST("/:id/alert", sessionH.Alert)
	sessions.GET("/:id/export", sessionH.Export)

	return r
}
