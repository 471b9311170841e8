package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/nielrocha96/planilha-engine/pkg/config"
	"github.com/nielrocha96/planilha-engine/pkg/handlers"
	"github.com/nielrocha96/planilha-engine/pkg/middleware"
	"github.com/nielrocha96/planilha-engine/pkg/query"
	"github.com/nielrocha96/planilha-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	synonyms, err := query.LoadSynonyms(cfg.Query.SynonymsPath)
	if err != nil {
		logger.Fatal("Failed to load synonyms",
			zap.String("path", cfg.Query.SynonymsPath),
			zap.Error(err))
	}

	store := services.NewSessionStore(cfg.Session.SessionTTL(), cfg.Session.MaxSessions, logger)
	store.StartCleanup(cfg.Session.CleanupInterval())
	defer store.Close()

	spreadsheets := services.NewSpreadsheetService(store, cfg.Upload.Sheet, cfg.Upload.MaxRows, logger)
	questions := services.NewQuestionService(store, synonyms, services.QueryOptions{
		SimilarityCutoff: cfg.Query.SimilarityCutoff,
		MaxListValues:    cfg.Query.MaxListValues,
		MaxListRows:      cfg.Query.MaxListRows,
	}, logger)

	mux := http.NewServeMux()

	// Register handlers
	handlers.NewHealthHandler(store, cfg, logger).RegisterRoutes(mux)
	handlers.NewUploadHandler(spreadsheets, cfg.Upload.MaxFileBytes, logger).RegisterRoutes(mux)
	handlers.NewAskHandler(questions, logger).RegisterRoutes(mux)
	handlers.NewSessionHandler(store, logger).RegisterRoutes(mux)

	handler := middleware.CORS(cfg.CORS.Origins())(middleware.RequestLogger(logger)(mux))

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("Starting planilha-engine",
			zap.String("addr", cfg.Addr()),
			zap.String("version", cfg.Version),
			zap.String("env", cfg.Env))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}

// newLogger builds a human-readable debug logger for local development and
// a JSON production logger everywhere else.
func newLogger(env string) (*zap.Logger, error) {
	if env == "local" {
		logConfig := zap.NewDevelopmentConfig()
		logConfig.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		return logConfig.Build()
	}
	return zap.NewProduction()
}
