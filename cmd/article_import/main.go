package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/DjordjeVuckovic/pagekit/internal/ingest"
	"github.com/DjordjeVuckovic/pagekit/internal/storage/factory"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("import failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *ImportConfig) error {
	dataFile, err := os.Open(cfg.DatasetPath)
	if err != nil {
		return err
	}
	defer dataFile.Close()

	records, err := ingest.NewCSVReader(dataFile).Read()
	if err != nil {
		return err
	}

	backend, err := factory.NewBackend(ctx, &cfg.StorageConfig)
	if err != nil {
		return err
	}
	defer backend.Close()

	var mapperOpts []ingest.MapperOption
	if cfg.Strict {
		mapperOpts = append(mapperOpts, ingest.WithStrict())
	}

	slog.Info("Importing articles", "dataset", cfg.DatasetPath, "records", len(records), "storageType", cfg.Type)
	_, err = ingest.NewPipeline(ingest.NewArticleMapper(mapperOpts...), backend, ingest.WithBatchSize(cfg.BatchSize)).
		Run(ctx, records)
	return err
}
