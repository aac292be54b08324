package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/vanshika/moviedb/internal/config"
	"github.com/vanshika/moviedb/internal/graph"
	"github.com/vanshika/moviedb/internal/logging"
	"github.com/vanshika/moviedb/internal/metrics"
	"github.com/vanshika/moviedb/internal/repository"
	"github.com/vanshika/moviedb/internal/server"
	"github.com/vanshika/moviedb/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)

	var (
		observer graph.Observer
		m        *metrics.Metrics
	)
	if cfg.HTTP.MetricsEnabled {
		m = metrics.New()
		observer = m
	}

	store, err := openStore(ctx, logger, cfg, observer)
	if err != nil {
		logger.Error("failed to open graph store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			logger.Warn("closing graph store failed", "error", err)
		}
	}()

	catalog := service.NewCatalogService(repository.New(store))
	handlers, err := server.NewCatalogHandlers(logger, catalog)
	if err != nil {
		logger.Error("failed to build handlers", "error", err)
		os.Exit(1)
	}

	deps := server.RouterDependencies{
		Health:           server.GraphHealthService{Store: store},
		Catalog:          handlers,
		AllowedOrigins:   cfg.HTTP.AllowedOrigins(),
		AllowCredentials: cfg.HTTP.AllowCredentials,
		RateLimit:        cfg.HTTP.RateLimit,
	}
	if m != nil {
		deps.Metrics = m
	}
	router := server.NewRouter(logger, deps)

	srv := server.New(logger, cfg.HTTP, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("server stopped unexpectedly", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func openStore(ctx context.Context, logger *slog.Logger, cfg config.Config, observer graph.Observer) (graph.Store, error) {
	store, err := graph.Open(ctx, graph.Options{
		Driver:         cfg.Graph.Driver,
		URI:            cfg.Graph.URI,
		Database:       cfg.Graph.Database,
		Username:       cfg.Graph.Username,
		Password:       cfg.Graph.Password,
		MaxConnections: cfg.Graph.MaxConnections,
		SQLitePath:     cfg.Graph.SQLitePath,
	})
	if err != nil {
		return nil, err
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		_ = store.Close(ctx)
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}
	logger.Info("graph store ready", "driver", cfg.Graph.Driver, "database", cfg.Graph.Database)
	return graph.Observe(store, observer), nil
}
