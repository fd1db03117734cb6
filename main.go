package main

import (
	"context"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/AkademiaSztuki/awa-api/internal/api"
	"github.com/AkademiaSztuki/awa-api/internal/config"
	"github.com/AkademiaSztuki/awa-api/internal/database"
	"github.com/AkademiaSztuki/awa-api/internal/imagegen"
	"github.com/AkademiaSztuki/awa-api/internal/metrics"
	"github.com/AkademiaSztuki/awa-api/internal/observability"
	"github.com/AkademiaSztuki/awa-api/internal/orchestrator"
	"github.com/AkademiaSztuki/awa-api/internal/prompt"
	"github.com/AkademiaSztuki/awa-api/internal/services"
	"github.com/AkademiaSztuki/awa-api/internal/storage"
	"github.com/AkademiaSztuki/awa-api/internal/vision"
)

const (
	sentryFlushTimeout    = 2 * time.Second
	environmentProduction = "production"
)

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

// GetVersion returns the current release version
func GetVersion() string {
	return releaseVersion
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize Sentry
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			Release:          "awa-api@" + releaseVersion,              // Use embedded release version
			EnableTracing:    true,                                     // Enable tracing for spans
			TracesSampleRate: 1.0,                                      // 100% sampling for now, adjust based on volume
			EnableLogs:       true,                                     // Enable Sentry Logs feature
			Debug:            cfg.Environment != environmentProduction, // Enable debug in non-prod
			BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
				// Filter out sensitive data
				if event.Request != nil {
					event.Request.Headers = filterSensitiveHeaders(event.Request.Headers)
				}
				return event
			},
		}); err != nil {
			log.Printf("Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s, release: %s)", cfg.Environment, releaseVersion)
			// Flush on shutdown
			defer sentry.Flush(sentryFlushTimeout)
		}
	} else {
		log.Println("⚠️  Sentry not configured (SENTRY_DSN not set)")
	}

	ctx := context.Background()

	// Initialize database (optional, pass bookkeeping only)
	var db *gorm.DB
	var records *services.RecordsService
	if cfg.DatabaseURL != "" {
		var err error
		db, err = database.Connect(cfg.DatabaseURL)
		if err != nil {
			sentry.CaptureException(err)
			log.Fatal("Failed to connect to database:", err)
		}

		if err := database.Migrate(db); err != nil {
			sentry.CaptureException(err)
			log.Fatal("Failed to run migrations:", err)
		}
		records = services.NewRecordsService(db)
	} else {
		log.Println("⚠️  Database not configured (DATABASE_URL not set), pass records disabled")
	}

	// Image generation backend
	provider, err := imagegen.NewGoogleProvider(ctx, cfg.GeminiAPIKey)
	if err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to initialize generation backend:", err)
	}

	// CloudWatch metrics
	cloudwatch, err := metrics.NewClient(ctx, cfg.Environment)
	if err != nil {
		log.Printf("⚠️  CloudWatch metrics disabled: %v", err)
	}

	// Vision tagging (optional)
	var tagger *vision.Tagger
	if cfg.OpenAIAPIKey != "" {
		tagger = vision.NewTagger(cfg.OpenAIAPIKey, prompt.NewPromptLoader(), cloudwatch)
	} else {
		log.Println("⚠️  Vision tagging not configured (OPENAI_API_KEY not set)")
	}

	// Cross-instance pass registry (optional)
	var lock orchestrator.PassLock
	if cfg.RedisURL != "" {
		passLock, lockErr := services.NewPassLock(cfg.RedisURL)
		if lockErr != nil {
			log.Printf("⚠️  Pass registry disabled: %v", lockErr)
		} else {
			lock = passLock
		}
	}

	// Langfuse pass tracing
	langfuseClient := observability.InitializeLangfuse(ctx, cfg)
	sink := observability.NewPassSink(langfuseClient)

	// S3 image storage (optional)
	uploader, err := storage.NewUploader(ctx, cfg.S3Bucket, cfg.S3Region, cfg.S3KeyGroup)
	if err != nil {
		log.Printf("⚠️  S3 uploads disabled: %v", err)
	}

	orch := orchestrator.New(orchestrator.Config{
		Provider: provider,
		Lock:     lock,
		Sink:     sink,
	})

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := api.SetupRouter(db, cfg, GetVersion(), api.Deps{
		Orchestrator: orch,
		Tagger:       tagger,
		Uploader:     uploader,
		Records:      records,
		CloudWatch:   cloudwatch,
	})

	// Start server
	log.Printf("🚀 Starting server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to start server:", err)
	}
}

func filterSensitiveHeaders(headers map[string]string) map[string]string {
	filtered := make(map[string]string)
	sensitiveKeys := map[string]bool{
		"authorization": true,
		"cookie":        true,
		"x-api-key":     true,
	}

	for k, v := range headers {
		if sensitiveKeys[k] {
			filtered[k] = "[REDACTED]"
		} else {
			filtered[k] = v
		}
	}
	return filtered
}
