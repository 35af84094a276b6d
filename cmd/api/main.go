package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jetwallet/config"
	httpHandler "jetwallet/internal/adapter/http/handler"
	memStorage "jetwallet/internal/adapter/storage/memory"
	pgStorage "jetwallet/internal/adapter/storage/postgres"
	redisStorage "jetwallet/internal/adapter/storage/redis"
	"jetwallet/internal/core/ports"
	"jetwallet/internal/service"
	"jetwallet/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Str("storage", cfg.Storage.Driver).
		Int("port", cfg.Server.Port).
		Msg("Starting JetWallet ledger service")

	ctx := context.Background()

	// Initialize the snapshot store for the configured driver
	var (
		store   ports.SnapshotStore
		health  ports.HealthChecker
		cleanup func()
	)

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		cleanup = pool.Close

		repo := pgStorage.NewSnapshotRepo(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to prepare snapshot schema")
		}
		store = repo
		health = pgStorage.NewHealthCheck(pool)
		log.Info().Msg("PostgreSQL connected")

	case config.DriverRedis:
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		cleanup = func() { _ = rdb.Close() }

		store = redisStorage.NewSnapshotStore(rdb)
		health = redisStorage.NewHealthCheck(rdb)
		log.Info().Msg("Redis connected")

	default:
		mem := memStorage.NewStore()
		store = mem
		health = mem
		cleanup = func() {}
		log.Warn().Msg("Using in-memory snapshot store, state will not survive restarts")
	}
	defer cleanup()

	// Initialize the ledger service and hydrate state
	ledger := service.NewLedgerService(store, service.Seed{
		WalletName: cfg.Seed.WalletName,
		Currency:   cfg.Seed.Currency,
		Fixtures:   cfg.Seed.Fixtures,
	}, log)
	if err := ledger.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to load wallet snapshot")
	}
	log.Info().Msg("Wallet ledger hydrated")

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Ledger:         ledger,
		HealthCheckers: []ports.HealthChecker{health},
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
