package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/DjordjeVuckovic/pagekit/internal/ingest"
	"github.com/DjordjeVuckovic/pagekit/internal/storage/factory"
	"github.com/DjordjeVuckovic/pagekit/pkg/config/env"
)

type ImportConfig struct {
	DatasetPath string
	BatchSize   int
	Strict      bool
	factory.StorageConfig
}

func LoadConfig() (*ImportConfig, error) {
	if err := env.LoadDotEnv(os.Getenv("APP_ENV"), "cmd/article_import/.env"); err != nil {
		slog.Info("Skipping .env environment variables...", "error", err)
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		return nil, err
	}

	dsPath := os.Getenv("DATASET_PATH")
	if dsPath == "" {
		return nil, fmt.Errorf("DATASET_PATH environment variable is not set")
	}

	batchSize := ingest.DefaultBatchSize
	if v := os.Getenv("BATCH_SIZE"); v != "" {
		batchSize, err = strconv.Atoi(v)
		if err != nil || batchSize < 1 {
			return nil, fmt.Errorf("invalid BATCH_SIZE value: %s", v)
		}
	}

	return &ImportConfig{
		DatasetPath:   dsPath,
		BatchSize:     batchSize,
		Strict:        os.Getenv("STRICT_COLUMNS") == "true",
		StorageConfig: *storageCfg,
	}, nil
}
