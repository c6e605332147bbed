package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prepdex/prepdex-backend/internal/config"
	"github.com/prepdex/prepdex-backend/internal/content"
	"github.com/prepdex/prepdex-backend/internal/database"
	"github.com/prepdex/prepdex-backend/internal/handler"
	"github.com/prepdex/prepdex-backend/internal/logger"
	"github.com/prepdex/prepdex-backend/internal/repository"
	"github.com/prepdex/prepdex-backend/internal/router"
	"github.com/prepdex/prepdex-backend/internal/service"
	"github.com/prepdex/prepdex-backend/internal/session"
	"github.com/prepdex/prepdex-backend/internal/validator"
	"github.com/prepdex/prepdex-backend/internal/worker"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting PrepDex Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	deviceRepo := repository.NewDeviceRepository(pool)
	attemptRepo := repository.NewAttemptRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)

	// ─── Initialize Content Client and Session Engine ──────────────────
	contentClient := content.NewClient(cfg.ContentAPIURL, cfg.ContentAPITimeout, log)
	sessionManager := session.NewManager()
	attemptQueue := worker.NewAttemptQueue(rdb)

	// ─── Initialize Services ──────────────────────────────────────────
	deviceService := service.NewDeviceService(cfg, deviceRepo)
	catalogService := service.NewCatalogService(contentClient)
	sessionService := service.NewSessionService(sessionManager, contentClient, attemptQueue, log)
	attemptService := service.NewAttemptService(attemptRepo)
	notificationService := service.NewNotificationService(notificationRepo, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Device:       handler.NewDeviceHandler(deviceService),
		Catalog:      handler.NewCatalogHandler(catalogService),
		Session:      handler.NewSessionHandler(sessionService),
		Attempt:      handler.NewAttemptHandler(attemptService),
		Notification: handler.NewNotificationHandler(notificationService),
		WS:           handler.NewWSHandler(sessionService, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	attemptWorker := worker.NewAttemptWorker(attemptRepo, rdb, log)
	sessionReaper := worker.NewSessionReaper(sessionManager, cfg.SessionIdleTTL, log)

	go attemptWorker.Start(workerCtx)
	go sessionReaper.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(deviceService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and wait for the queue to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow workers to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
