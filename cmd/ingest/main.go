package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/vanshika/moviedb/internal/config"
	"github.com/vanshika/moviedb/internal/generator"
	"github.com/vanshika/moviedb/internal/graph"
	"github.com/vanshika/moviedb/internal/logging"
	"github.com/vanshika/moviedb/internal/repository"
	"github.com/vanshika/moviedb/internal/service"
)

func main() {
	var (
		datasetDir = flag.String("dataset-dir", "./seed-data", "Directory containing actors.json, movies.json and cast.json")
		workers    = flag.Int("workers", 4, "Number of concurrent workers for ingestion")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging).With("component", "ingest")

	dataset, err := generator.ReadDataset(*datasetDir)
	if err != nil {
		logger.Error("failed to load dataset", "error", err, "dir", *datasetDir)
		os.Exit(1)
	}
	if len(dataset.Actors) == 0 && len(dataset.Movies) == 0 {
		logger.Error("dataset empty", "dir", *datasetDir)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, err := openStore(ctx, logger, cfg)
	if err != nil {
		logger.Error("failed to open graph store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			logger.Warn("closing graph store failed", "error", err)
		}
	}()

	svc := service.NewCatalogService(repository.New(store))
	ingestor := service.NewBulkIngestor(svc, *workers)

	start := time.Now()
	logger.Info("ingesting catalog",
		"actors", len(dataset.Actors),
		"movies", len(dataset.Movies),
		"cast", len(dataset.Cast),
		"workers", *workers,
	)
	report, err := ingestor.Ingest(ctx, dataset)
	if err != nil {
		var taskErr *service.TaskError
		if errors.As(err, &taskErr) {
			logger.Error("some records failed", "failed", len(taskErr.Errors), "error", err)
		} else {
			logger.Error("ingestion failed", "error", err)
		}
		os.Exit(1)
	}

	logger.Info("ingestion complete",
		"duration", time.Since(start).String(),
		"actors", len(report.Actors),
		"movies", len(report.Movies),
		"cast", report.Linked,
	)
}

func openStore(ctx context.Context, logger *slog.Logger, cfg config.Config) (graph.Store, error) {
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
	if err := store.VerifyConnectivity(ctx); err != nil {
		_ = store.Close(ctx)
		return nil, err
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		_ = store.Close(ctx)
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}
	logger.Info("connected to graph", "driver", cfg.Graph.Driver, "uri", cfg.Graph.URI, "database", cfg.Graph.Database)
	return store, nil
}
