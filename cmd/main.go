// cmd/main.go
package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"

	"go_5_study_keep/internal/cloud"
	"go_5_study_keep/internal/config"
	"go_5_study_keep/internal/handlers"
	"go_5_study_keep/internal/middleware"
	"go_5_study_keep/internal/repository"
	"go_5_study_keep/internal/service"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// playPruneInterval ごとに放置されたプレイを破棄する
const playPruneInterval = 5 * time.Minute

func main() {
	// 設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)

	if err := godotenv.Load(); err != nil {
		tempLogger.Info("No .env file loaded", slog.String("reason", err.Error()))
	}

	log.Println("Log Config Loading...")
	if err := config.LoadConfig("configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}
	cfg := &config.Cfg

	logger := newLogger(cfg, tempLogger)
	slog.SetDefault(logger)
	slog.Info("Application starting...", slog.String("app", cfg.App.Name), slog.String("version", config.AppVersion))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database
	db, err := repository.NewDB(cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	// Remote sync
	blobs, err := cloud.NewBlobStore(ctx, cfg)
	if err != nil {
		slog.Error("Error initializing remote sync store", slog.Any("error", err))
		os.Exit(1)
	}
	defer closeIfCloser("blob store", blobs)
	var cache cloud.SyncCache
	if blobs != nil {
		cache, err = cloud.NewSyncCache(ctx, cfg)
		if err != nil {
			slog.Error("Error initializing sync cache", slog.Any("error", err))
			os.Exit(1)
		}
		defer closeIfCloser("sync cache", cache)
		slog.Info("Remote sync enabled", slog.String("provider", cfg.Sync.Provider), slog.String("bucket", cfg.Sync.Bucket))
	}

	extractor, err := service.NewExtractor(cfg)
	if err != nil {
		slog.Error("Error initializing document extractor", slog.Any("error", err))
		os.Exit(1)
	}

	// Dependency Injection
	store := repository.NewGormKVStore(db)
	studySetRepo := repository.NewStudySetRepository(store)
	sessionRepo := repository.NewSessionRepository(store)

	syncService := service.NewSyncService(blobs, cache, cfg)
	studySetService := service.NewStudySetService(studySetRepo, syncService, cfg)
	sessionService := service.NewSessionService(sessionRepo, studySetService)
	analyticsService := service.NewAnalyticsService(studySetService, sessionService)
	playService := service.NewPlayService(studySetService, sessionService, cfg)
	extractionService := service.NewExtractionService(extractor)

	api := &handlers.API{
		StudySets:   handlers.NewStudySetHandler(studySetService, logger),
		Sessions:    handlers.NewSessionHandler(sessionService, logger),
		Analytics:   handlers.NewAnalyticsHandler(analyticsService, logger),
		Plays:       handlers.NewPlayHandler(playService, logger),
		Extractions: handlers.NewExtractionHandler(extractionService, cfg.App.MaxUploadBytes, logger),
	}
	healthHandler := handlers.NewHealthHandler(sqlDB, logger)

	// Router
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
		Debug:            false,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	var identity func(http.Handler) http.Handler
	if cfg.Auth.Enabled {
		slog.Info("Applying JWT identity middleware")
		identity = middleware.JWTIdentityMiddleware(cfg)
	} else {
		slog.Warn("Applying DEVELOPMENT identity middleware (X-User-ID header, no verification)")
		identity = middleware.DevIdentityMiddleware
	}
	api.Mount(r, identity)
	r.Get("/health", healthHandler.Health)

	go prunePlays(ctx, playService, logger)

	// Start Server
	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", cfg.Server.Port), slog.Any("error", err))
			stop()
		}
	}()

	// Graceful Shutdown
	<-ctx.Done()
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}

// newLogger は log.level と APP_ENV に応じた slog ロガーを作ります
func newLogger(cfg *config.Config, tempLogger *slog.Logger) *slog.Logger {
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		tempLogger.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", cfg.Log.Level))
	}

	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		})
		tempLogger.Info("Using TINT log handler", slog.String("APP_ENV", appEnv))
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})
		tempLogger.Info("Using JSON log handler", slog.String("APP_ENV", appEnv))
	}
	log.Println("Log Config Loaded...")
	return slog.New(handler)
}

// prunePlays は ctx が終わるまで定期的に期限切れのプレイを破棄します
func prunePlays(ctx context.Context, plays service.PlayService, logger *slog.Logger) {
	ticker := time.NewTicker(playPruneInterval)
	defer ticker.Stop()
	ctx = middleware.WithLogger(ctx, logger.With("job", "prune_plays"))
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			plays.PruneExpired(ctx)
		}
	}
}

func closeIfCloser(name string, v interface{}) {
	if c, ok := v.(io.Closer); ok {
		if err := c.Close(); err != nil {
			slog.Error("Error closing "+name, slog.Any("error", err))
		}
	}
}
