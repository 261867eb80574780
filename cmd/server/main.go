package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voyager-server/internal/celestial"
	"voyager-server/internal/chunk"
	"voyager-server/internal/discovery"
	"voyager-server/internal/middleware"
	"voyager-server/internal/naming"
	"voyager-server/internal/server"
	"voyager-server/internal/shared/config"
	"voyager-server/internal/shared/database"
	"voyager-server/internal/shared/logger"
	"voyager-server/internal/shared/redis"
	"voyager-server/internal/universe"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.Init(); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}
	cfg := config.GlobalConfig

	logger.Init()
	log := slog.Default()
	log.Info("Starting voyager server",
		"environment", cfg.Server.Environment,
		"universe_seed", cfg.Universe.Seed,
	)

	db, err := database.Connect()
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	cache, err := redis.Connect()
	if err != nil {
		// The discovery cache is optional; the repository alone is correct.
		log.Warn("Redis unavailable, continuing without discovery cache", "error", err)
		cache = nil
	}
	defer cache.Close()

	manager, err := chunk.NewManager(chunk.Config{
		Seed:            cfg.Universe.Seed,
		LoadRadius:      cfg.Universe.LoadRadius,
		UnloadRadius:    cfg.Universe.UnloadRadius,
		MaxActiveChunks: cfg.Universe.MaxActiveChunks,
		Tuning:          celestial.DefaultTuning(),
	}, log)
	if err != nil {
		return fmt.Errorf("failed to initialize chunk manager: %w", err)
	}

	discoveryStore := discovery.NewCachedStore(discovery.NewRepository(db, log), cache, log)
	discoveryService := discovery.NewService(discoveryStore, log)
	namingService := naming.NewService(log)
	universeService := universe.NewService(manager, namingService, discoveryService, log)
	universeService.SetTimeScale(cfg.Universe.TimeScale)

	routes := server.NewRoutes(db, cache, universeService, log)
	mux := routes.Setup()

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		BurstSize:         cfg.RateLimit.BurstSize,
		Enabled:           cfg.RateLimit.Enabled,
		TrustProxy:        cfg.Server.Environment == "production",
	})
	corsMiddleware := middleware.NewCORS()

	handler := corsMiddleware.Middleware(
		middleware.RequestIDMiddleware(
			rateLimiter.Middleware(mux),
		),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Voyager server listening", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		log.Info("Shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
