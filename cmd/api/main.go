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

	pkgvalidator "github.com/johnquangdev/boardroom-simulator/pkg/validator"

	"github.com/johnquangdev/boardroom-simulator/internal/adapter/handler"
	"github.com/johnquangdev/boardroom-simulator/internal/adapter/repository"
	"github.com/johnquangdev/boardroom-simulator/internal/infrastructure/cache"
	"github.com/johnquangdev/boardroom-simulator/internal/infrastructure/database"
	"github.com/johnquangdev/boardroom-simulator/internal/infrastructure/storage"
	"github.com/johnquangdev/boardroom-simulator/internal/usecase/assessment"
	"github.com/johnquangdev/boardroom-simulator/internal/usecase/auth"
	"github.com/johnquangdev/boardroom-simulator/internal/usecase/session"
	pkgai "github.com/johnquangdev/boardroom-simulator/pkg/ai"
	"github.com/johnquangdev/boardroom-simulator/pkg/config"
	"github.com/johnquangdev/boardroom-simulator/pkg/jwt"
)

// @title           Boardroom Simulator API
// @version         1.0
// @description     API for simulated multi-participant discussion sessions with topic progress tracking and proposal assessment

// @host      localhost:8080
// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

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
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Set-Cookie", "Cookie"},
		AllowCredentials: true,
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

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
		log.Println("🔄 Running migrations (development only) ...")
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run AutoMigrate: %v", err)
		}
	} else {
		log.Println("🔄 Skipping AutoMigrate; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Initialize Redis
	log.Println("📦 Connecting to Redis...")
	var store cache.Store
	redisStore, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Printf("⚠️ Redis unavailable, falling back to in-memory cache: %v", err)
		store = cache.NewMemoryStore()
	} else {
		defer redisStore.Close()
		store = redisStore
	}

	// Initialize object storage
	log.Println("🪣 Connecting to MinIO...")
	minioClient, err := storage.NewMinIOClient(&cfg.Storage)
	if err != nil {
		log.Printf("⚠️ MinIO unavailable, transcripts will not be exported: %v", err)
		minioClient = nil
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	sessionRepo := repository.NewSessionRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize JWT manager
	log.Println("🔑 Initializing JWT manager...")
	jwtManager := jwt.NewManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)
	authService := auth.NewService(jwtManager, cfg.JWT.OperatorKey, logger)
	authHandler := handler.NewAuth(authService, logger)

	// Initialize assessment components
	log.Println("📊 Initializing assessment service...")
	narrativeClient := pkgai.NewNarrativeClient(&cfg.Narrative)
	generator := assessment.NewLLMNarrativeGenerator(narrativeClient, logger)
	assessmentService := assessment.NewService(
		assessment.NewEngine(logger),
		generator,
		assessmentRepo,
		store,
		logger,
	)
	assessmentHandler := handler.NewAssessment(assessmentService, assessmentRepo, logger)

	// Initialize session service
	log.Println("🗣️  Initializing session service...")
	var exporter session.TranscriptExporter
	if minioClient != nil {
		exporter = minioClient
	}
	sessionService := session.NewService(sessionRepo, exporter, cfg.Simulation.Seed, cfg.Simulation.AgentCount, logger)
	sessionHandler := handler.NewSession(sessionService, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, authHandler, sessionHandler, assessmentHandler, jwtManager)
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
