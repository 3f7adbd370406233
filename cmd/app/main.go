package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ganorabricks/figfinder/internal/bricklink"
	"github.com/ganorabricks/figfinder/internal/catalog"
	"github.com/ganorabricks/figfinder/internal/config"
	"github.com/ganorabricks/figfinder/internal/database"
	"github.com/ganorabricks/figfinder/internal/database/postgres"
	"github.com/ganorabricks/figfinder/internal/finder"
	"github.com/ganorabricks/figfinder/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		slog.Error("Environment validation failed", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	for _, warning := range warnings {
		slog.Warn("Configuration warning", "warning", warning)
	}

	connString := cfg.GetDBConnString()

	if err := database.Migrate(connString, database.DefaultMigrationsDir); err != nil {
		slog.Error("Failed to apply migrations", "error", err)
		os.Exit(1)
	}

	pool, err := database.NewPool(connString, 10, 5*time.Minute, 30*time.Minute)
	if err != nil {
		slog.Error("Failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Without credentials the catalog serves cached data only and the
	// refresh endpoint returns 503.
	var fetcher catalog.Fetcher
	if cfg.HasBrickLinkCredentials() {
		client, err := bricklink.NewClient(bricklink.Config{
			ConsumerKey:    cfg.BrickLinkConsumerKey,
			ConsumerSecret: cfg.BrickLinkConsumerSecret,
			Token:          cfg.BrickLinkToken,
			TokenSecret:    cfg.BrickLinkTokenSecret,
		})
		if err != nil {
			slog.Error("Failed to create BrickLink client", "error", err)
			os.Exit(1)
		}
		fetcher = client
	} else {
		slog.Warn("BrickLink credentials not configured, catalog is cache-only")
	}

	catalogRepo := postgres.NewCatalogRepository(pool)
	catalogService := catalog.NewService(catalogRepo, fetcher, catalog.Config{
		CacheSize: cfg.CatalogCacheSize,
		CacheTTL:  cfg.CatalogCacheTTL,
	})
	finderService := finder.NewService(catalogService)

	srv := server.NewServer(cfg.Port, cfg.APIKey, nil, pool, catalogService, finderService)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	case sig := <-stop:
		slog.Info("Shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped")
}
