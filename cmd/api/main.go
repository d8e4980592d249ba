package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "github.com/johnquangdev/polyglot-minutes/docs"
	pkgvalidator "github.com/johnquangdev/polyglot-minutes/pkg/validator"

	"github.com/johnquangdev/polyglot-minutes/internal/adapter/handler"
	"github.com/johnquangdev/polyglot-minutes/internal/adapter/repository"
	"github.com/johnquangdev/polyglot-minutes/internal/domain/repositories"
	"github.com/johnquangdev/polyglot-minutes/internal/infrastructure/cache"
	"github.com/johnquangdev/polyglot-minutes/internal/infrastructure/database"
	"github.com/johnquangdev/polyglot-minutes/internal/infrastructure/external/provider"
	"github.com/johnquangdev/polyglot-minutes/internal/infrastructure/metrics"
	"github.com/johnquangdev/polyglot-minutes/internal/infrastructure/storage"
	"github.com/johnquangdev/polyglot-minutes/internal/usecase/actions"
	"github.com/johnquangdev/polyglot-minutes/internal/usecase/notes"
	"github.com/johnquangdev/polyglot-minutes/pkg/config"
)

// @title           Polyglot Minutes API
// @version         1.0
// @description     Transcribes meeting recordings, summarizes them and extracts prioritized action items.

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Metrics registry shared by the HTTP middleware and the notes pipeline
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.RequestID())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${id} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestID},
	}))
	e.Use(m.Middleware())

	logger.Info("🔧 Initializing dependencies...", zap.String("environment", cfg.Server.Environment))

	ctx := context.Background()

	// Persistence is optional; without it the notes lookup endpoints answer 503
	var notesRepo repositories.NotesRepository
	if cfg.Database.Enabled {
		logger.Info("📦 Connecting to database...")
		db, err := database.NewPostgresDB(cfg, logger)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer database.CloseDB(db)

		// Production deployments manage schema with cmd/migrate.
		if cfg.Database.AutoMigrate {
			if cfg.IsProduction() {
				logger.Fatal("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE and run cmd/migrate instead.")
			}
			if err := database.AutoMigrate(db, cfg.Database.Migrations, logger); err != nil {
				logger.Fatal("Failed to run migrations", zap.Error(err))
			}
		}
		notesRepo = repository.NewNotesRepository(db)
	} else {
		logger.Warn("⚠️  Database disabled; generated notes will not be persisted")
	}

	// Action cache: Redis when configured, in-process otherwise
	var actionsCache notes.Cache
	if cfg.Redis.Enabled {
		logger.Info("📦 Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(&cfg.Redis, logger)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		store := cache.NewRedisStore(redisClient, "polyglot-minutes:")
		defer store.Close()
		actionsCache = store
	} else {
		store := cache.NewMemoryStore(cfg.Actions.CacheTTL)
		defer store.Close()
		actionsCache = store
	}

	// Object storage archives recordings and notes documents
	var (
		objectStore    notes.ObjectStore
		minioClient    *storage.MinIOClient
		archiveEnabled = cfg.Storage.Enabled
	)
	if archiveEnabled {
		logger.Info("🗄️  Connecting to object storage...", zap.String("endpoint", cfg.Storage.Endpoint))
		minioClient, err = storage.NewMinIOClient(ctx, &cfg.Storage, logger)
		if err != nil {
			logger.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		objectStore = minioClient
	}

	logger.Info("🤖 Initializing AI providers...",
		zap.String("transcriber", cfg.Transcriber.Provider),
		zap.String("summarizer", cfg.Summarizer.Provider),
	)
	transcriber, err := provider.NewTranscriber(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize transcriber", zap.Error(err))
	}
	summarizer, err := provider.NewSummarizer(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize summarizer", zap.Error(err))
	}

	notesService := notes.NewService(
		transcriber,
		summarizer,
		actions.NewExtractor(),
		notesRepo,
		actionsCache,
		objectStore,
		m,
		cfg.Actions.CacheTTL,
		logger,
	)

	notesHandler := handler.NewNotesHandler(notesService, cfg.Server.MaxUploadBytes, cfg.Server.RequestTimeout, logger)

	var archiveHandler *handler.Archive
	if archiveEnabled {
		archiveHandler = handler.NewArchiveHandler(minioClient, notesService, logger)
	}

	router := handler.NewRouter(cfg, notesHandler, archiveHandler, m.Handler())
	router.Setup(e)

	// Start server
	go func() {
		addr := cfg.GetServerAddr()
		logger.Info("🚀 Starting server",
			zap.String("addr", addr),
			zap.String("health", "http://"+addr+"/health"),
		)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("🛑 Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("❌ Server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("✅ Server stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
