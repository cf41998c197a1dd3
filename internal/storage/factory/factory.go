package factory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/pagekit/internal/storage"
	"github.com/DjordjeVuckovic/pagekit/internal/storage/es"
	"github.com/DjordjeVuckovic/pagekit/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/pagekit/internal/storage/pg"
	"github.com/DjordjeVuckovic/pagekit/pkg/server"
)

// Backend bundles what the API needs from one storage type.
type Backend struct {
	storage.ArticleSource
	storage.ArticleStorer
	HealthChecker server.HealthChecker
	close         func()
}

func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

// NewBackend connects the configured storage and seeds it from cfg.SeedFile when set.
func NewBackend(ctx context.Context, cfg *StorageConfig) (*Backend, error) {
	backend, err := newBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.SeedFile != "" {
		if err := seed(ctx, backend, cfg.SeedFile); err != nil {
			backend.Close()
			return nil, err
		}
	}
	return backend, nil
}

func newBackend(ctx context.Context, cfg *StorageConfig) (*Backend, error) {
	switch cfg.Type {
	case storage.PG:
		if cfg.Pg == nil {
			return nil, fmt.Errorf("missing PostgreSQL configuration")
		}
		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		repo := pg.NewArticleRepository(pool)
		return &Backend{
			ArticleSource: repo,
			ArticleStorer: repo,
			HealthChecker: pg.NewHealthChecker(pool),
			close:         pool.Close,
		}, nil

	case storage.ES:
		if cfg.Es == nil {
			return nil, fmt.Errorf("missing Elasticsearch configuration")
		}
		client, err := es.NewClient(*cfg.Es)
		if err != nil {
			return nil, err
		}
		idx, err := es.NewArticleIndex(ctx, client, cfg.Es.IndexName)
		if err != nil {
			return nil, fmt.Errorf("failed to prepare article index: %w", err)
		}
		return &Backend{
			ArticleSource: idx,
			ArticleStorer: idx,
			HealthChecker: idx,
		}, nil

	case storage.InMem:
		store := in_mem.NewStore()
		return &Backend{
			ArticleSource: store,
			ArticleStorer: store,
			HealthChecker: server.NewOkHealthChecker(),
		}, nil

	default:
		return nil, fmt.Errorf(string(storage.ErrUnsupportedStorer), cfg.Type)
	}
}

func seed(ctx context.Context, backend *Backend, path string) error {
	articles, err := in_mem.LoadFixtureFile(path)
	if err != nil {
		return err
	}
	if err := backend.SaveBulk(ctx, articles); err != nil {
		return fmt.Errorf("failed to seed articles: %w", err)
	}
	slog.Info("Seeded articles", "file", path, "count", len(articles))
	return nil
}
