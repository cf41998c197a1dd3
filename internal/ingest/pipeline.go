package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/pagekit/internal/domain"
	"github.com/DjordjeVuckovic/pagekit/internal/storage"
)

const DefaultBatchSize = 500

type Pipeline struct {
	mapper    *ArticleMapper
	storer    storage.ArticleStorer
	batchSize int
}

type PipelineOption func(*Pipeline)

func WithBatchSize(size int) PipelineOption {
	return func(p *Pipeline) {
		if size > 0 {
			p.batchSize = size
		}
	}
}

func NewPipeline(mapper *ArticleMapper, storer storage.ArticleStorer, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		mapper:    mapper,
		storer:    storer,
		batchSize: DefaultBatchSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run maps every record and saves them in batches. Records that fail to map are logged and skipped;
// a storage error stops the run.
func (p *Pipeline) Run(ctx context.Context, records []Record) (imported int, err error) {
	batch := make([]domain.Article, 0, p.batchSize)
	skipped := 0

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := p.storer.SaveBulk(ctx, batch); err != nil {
			return fmt.Errorf("failed to save batch: %w", err)
		}
		imported += len(batch)
		batch = batch[:0]
		return nil
	}

	for i, record := range records {
		if err := ctx.Err(); err != nil {
			return imported, err
		}

		article, err := p.mapper.Map(record)
		if err != nil {
			skipped++
			slog.Warn("Skipping record", "row", i+1, "error", err)
			continue
		}

		batch = append(batch, article)
		if len(batch) == p.batchSize {
			if err := flush(); err != nil {
				return imported, err
			}
		}
	}

	if err := flush(); err != nil {
		return imported, err
	}

	slog.Info("Import completed", "imported", imported, "skipped", skipped, "total", len(records))
	return imported, nil
}
