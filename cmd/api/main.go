// Package main is the entry point for the Clickventure API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/clickventure/backend/internal/auth"
	"github.com/clickventure/backend/internal/config"
	"github.com/clickventure/backend/internal/database"
	"github.com/clickventure/backend/internal/handler"
	"github.com/clickventure/backend/internal/middleware"
	"github.com/clickventure/backend/internal/repo"
	"github.com/clickventure/backend/internal/service"
)

// rateLimitSweep is how often idle rate-limit buckets are dropped.
const rateLimitSweep = 10 * time.Minute

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// The default logger writes to stderr until ours is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database ---------------------------------------------------------
	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()
	logger.Info("database connection established")

	if cfg.MigrateOnStart {
		if err := database.Migrate(ctx, pool, logger); err != nil {
			return err
		}
	}

	// --- Services ---------------------------------------------------------
	gateway := auth.NewGateway(cfg.JWTSecret, cfg.TokenTTL, auth.WithBcryptCost(cfg.BcryptCost))

	tripRepo := repo.NewTripRepo(pool)
	places := service.NewPlaceService(
		repo.NewPlaceRepo(pool),
		repo.NewCommentRepo(pool),
		repo.NewPhotoRepo(pool),
		cfg.Rewards,
		cfg.StoreTimeout,
	)
	trips := service.NewTripService(tripRepo, places, cfg.StoreTimeout)
	accounts := service.NewAccountService(repo.NewUserRepo(pool), gateway, cfg.StoreTimeout)
	export := service.NewExportService(tripRepo, cfg.StoreTimeout)

	// --- Metrics ----------------------------------------------------------
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(registry)

	// --- Router -----------------------------------------------------------
	// RequestID → RealIP → Logger → Recoverer → Metrics → CORS → RateLimit → MaxBody.
	// RealIP must run before the rate limiter, which keys clients by address.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(metrics.Handler)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	if cfg.RateLimitRPM > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimitRPM, cfg.RateLimitBurst, rateLimitSweep)
		go limiter.Run(rateLimitSweep, ctx.Done())
		r.Use(limiter.Handler)
	}
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	handler.NewServer(trips, places, accounts, export, logger).
		Routes(r, middleware.Authenticate(gateway))

	// --- HTTP Server ------------------------------------------------------
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down server")

	// In-flight requests get up to 15 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
