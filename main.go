// Package main is the entry point for the TradeFair API server.
// It initializes all dependencies and starts the HTTP server.
package main

import (
	"context"
	"log"
	"os"

	"tradefair/src/app/server"
	"tradefair/src/core/domain"
	"tradefair/src/core/ports"
	"tradefair/src/infra/cache"
	"tradefair/src/infra/config"
	"tradefair/src/infra/db"
	"tradefair/src/infra/logger"
	"tradefair/src/infra/paystack"
	"tradefair/src/infra/repo"
	"tradefair/src/infra/token"
)

func main() {
	if err := run(); err != nil {
		log.Printf("fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Initialize logger
	log := logger.New(cfg.Log)
	log.Info("starting application",
		"port", cfg.Server.Port,
		"log_level", cfg.Log.Level,
	)

	// Apply embedded migrations before opening the pool
	if cfg.Database.Migrate {
		if err := db.Migrate(cfg.Database, log); err != nil {
			return err
		}
	}

	// Initialize database connection
	pg, err := db.New(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer pg.Close()

	// Initialize repositories
	marketRepo := repo.NewPostgresRepository(pg, log)

	// Seed the domain registry
	capacity := cfg.Market.ShedCapacity
	if capacity <= 0 {
		capacity = domain.DefaultShedCapacity
	}
	registry, err := domain.NewRegistry(capacity)
	if err != nil {
		return err
	}
	if err := marketRepo.EnsureDomains(ctx, registry.List()); err != nil {
		return err
	}

	// Optional snapshot cache
	var snapshotCache ports.SnapshotCache
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.New(ctx, cfg.Redis, log)
		if err != nil {
			return err
		}
		defer redisCache.Close()
		snapshotCache = redisCache
	}

	// Token issuer and payment gateway
	issuer := token.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	gateway := paystack.NewClient(cfg.Paystack, log)

	// Create and run HTTP server
	srv := server.New(cfg, log, marketRepo, registry, gateway, snapshotCache, issuer)

	// Run blocks until shutdown signal is received
	return srv.Run()
}
