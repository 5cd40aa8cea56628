package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/johnquangdev/meeting-copilot/pkg/validator"

	"github.com/johnquangdev/meeting-copilot/internal/adapter/handler"
	"github.com/johnquangdev/meeting-copilot/internal/adapter/repository"
	"github.com/johnquangdev/meeting-copilot/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-copilot/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-copilot/internal/infrastructure/storage"
	"github.com/johnquangdev/meeting-copilot/internal/summarize"
	"github.com/johnquangdev/meeting-copilot/internal/usecase/meeting"
	pkgai "github.com/johnquangdev/meeting-copilot/pkg/ai"
	"github.com/johnquangdev/meeting-copilot/pkg/config"
	"github.com/johnquangdev/meeting-copilot/pkg/jwt"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Run AutoMigrate only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		log.Println("🔄 Running GORM AutoMigrate (development only) ...")
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run AutoMigrate: %v", err)
		}
	} else {
		log.Println("🔄 Skipping GORM AutoMigrate; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Initialize summary cache. Redis is preferred; an in-process store
	// keeps the cache working when Redis is disabled or unreachable.
	var cacheStore cache.Store
	if cfg.Redis.Enabled {
		log.Println("📦 Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(cfg)
		if err != nil {
			log.Printf("⚠️  Redis unavailable, falling back to in-memory cache: %v", err)
			cacheStore = cache.NewMemoryStore()
		} else {
			defer redisClient.Close()
			cacheStore = cache.NewRedisStore(redisClient)
		}
	} else {
		log.Println("📦 Redis disabled, using in-memory cache")
		cacheStore = cache.NewMemoryStore()
	}
	summaryCache := cache.NewSummaryCache(cacheStore, 0)

	// Initialize object storage for transcript archival
	var store meeting.TranscriptStore
	if cfg.Storage.Enabled {
		log.Println("🗄️  Connecting to MinIO...")
		minioClient, err := storage.NewMinIOClient(&cfg.Storage)
		if err != nil {
			log.Printf("⚠️  MinIO unavailable, transcript archival disabled: %v", err)
		} else {
			store = minioClient
		}
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	meetingRepo := repository.NewMeetingRepository(db)
	summaryRepo := repository.NewSummaryRepository(db)
	jobRepo := repository.NewJobRepository(db)

	// Initialize extraction pipeline. The heuristic path always works;
	// the AI path is layered on top when Groq is configured.
	log.Println("🤖 Initializing extraction pipeline...")
	heuristic := summarize.NewHeuristicSummarizer()
	var summarizer summarize.Summarizer = heuristic
	var groqClient *pkgai.GroqClient
	if cfg.AIEnabled() {
		groqClient = pkgai.NewGroqClient(&cfg.Groq)
		aiSummarizer := summarize.NewAISummarizer(groqClient, cfg.Groq.MaxRetries, cfg.Groq.MaxInterval, logger)
		summarizer = summarize.NewFallbackSummarizer(aiSummarizer, heuristic, logger)
		log.Printf("✅ AI extraction enabled (model: %s)", cfg.Groq.Model)
	} else {
		log.Println("ℹ️  Groq not configured, using heuristic extraction only")
	}

	asmClient := pkgai.NewAssemblyAIClient(&cfg.Assembly)

	// Initialize meeting service
	log.Println("📋 Initializing meeting service...")
	var answerClient meeting.AnswerClient
	if groqClient != nil {
		answerClient = groqClient
	}
	meetingService := meeting.NewService(
		meetingRepo,
		summaryRepo,
		jobRepo,
		summarizer,
		answerClient,
		summaryCache,
		store,
		asmClient,
		cfg,
		logger,
	)

	// Initialize JWT manager
	log.Println("🔑 Initializing JWT manager...")
	jwtManager := jwt.NewManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize handlers
	log.Println("🚀 Initializing handlers...")
	authHandler := handler.NewAuth(&cfg.Auth, jwtManager, logger)
	meetingHandler := handler.NewMeeting(meetingService, logger)
	webhookHandler := handler.NewWebhook(meetingService, cfg.Assembly.WebhookSecret, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, jwtManager, authHandler, meetingHandler, webhookHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
