package pg

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/pagekit/internal/domain"
	"github.com/DjordjeVuckovic/pagekit/internal/storage"
	"github.com/DjordjeVuckovic/pagekit/pkg/pagination"
	"github.com/jackc/pgx/v5"
)

const articlesTable = "articles"

var articleColumns = []string{"id", "title", "author", "category", "language", "word_count", "published_at"}

type ArticleRepository struct {
	pool *ConnectionPool
}

func NewArticleRepository(pool *ConnectionPool) *ArticleRepository {
	return &ArticleRepository{pool: pool}
}

func (r *ArticleRepository) Articles(filter storage.ArticleFilter) pagination.Query[domain.Article] {
	q := From[domain.Article](r.pool.GetConn(), articlesTable)
	if filter.Language != "" {
		q = q.Where("lower(language) = lower(@language)", pgx.NamedArgs{"language": filter.Language})
	}
	if filter.Category != "" {
		q = q.Where("lower(category) = lower(@category)", pgx.NamedArgs{"category": filter.Category})
	}
	return q
}

// SaveBulk streams the articles with COPY. Existing ids fail the whole batch.
func (r *ArticleRepository) SaveBulk(ctx context.Context, articles []domain.Article) error {
	if len(articles) == 0 {
		return nil
	}

	n, err := r.pool.GetConn().CopyFrom(ctx,
		pgx.Identifier{articlesTable},
		articleColumns,
		pgx.CopyFromSlice(len(articles), func(i int) ([]any, error) {
			a := articles[i]
			a.Normalize()
			return []any{a.ID, a.Title, a.Author, a.Category, a.Language, a.WordCount, a.PublishedAt}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to copy articles: %w", err)
	}

	slog.Info("Bulk insert completed", "table", articlesTable, "rows", n)
	return nil
}

var (
	_ storage.ArticleSource = (*ArticleRepository)(nil)
	_ storage.ArticleStorer = (*ArticleRepository)(nil)
)
