package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AkademiaSztuki/awa-api/internal/api/handlers"
	apimiddleware "github.com/AkademiaSztuki/awa-api/internal/api/middleware"
	"github.com/AkademiaSztuki/awa-api/internal/config"
	"github.com/AkademiaSztuki/awa-api/internal/metrics"
	"github.com/AkademiaSztuki/awa-api/internal/orchestrator"
	"github.com/AkademiaSztuki/awa-api/internal/services"
	"github.com/AkademiaSztuki/awa-api/internal/storage"
	"github.com/AkademiaSztuki/awa-api/internal/vision"
)

// Deps are the shared components the route handlers need.
type Deps struct {
	Orchestrator *orchestrator.Orchestrator
	Tagger       *vision.Tagger
	Uploader     *storage.Uploader
	Records      *services.RecordsService
	CloudWatch   *metrics.Client
}

func SetupRouter(db *gorm.DB, cfg *config.Config, version string, deps Deps) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking())

	// CORS middleware
	router.Use(apimiddleware.CORS())

	// Health check
	healthHandler := handlers.NewHealthHandler(db)
	router.GET("/health", healthHandler.HealthCheck)

	// Metrics endpoint
	metricsHandler := handlers.NewMetricsHandler(version)
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	// API routes v1
	v1 := router.Group("/api/v1")
	v1.Use(apimiddleware.AuthFor(cfg))
	{
		// Generation passes
		generationHandler := handlers.NewGenerationHandler(deps.Orchestrator, deps.Uploader, deps.Records, deps.CloudWatch)
		v1.POST("/generations", generationHandler.Generate)
		v1.POST("/generations/cancel", generationHandler.Cancel)

		// Quality gate preview, no generation
		qualityHandler := handlers.NewQualityHandler()
		v1.POST("/quality/assess", qualityHandler.Assess)

		// Vision endpoints
		inspirationHandler := handlers.NewInspirationHandler(deps.Tagger)
		v1.POST("/inspirations/tag", inspirationHandler.Tag)
		v1.POST("/rooms/analyze", inspirationHandler.AnalyzeRoom)
	}

	return router
}
