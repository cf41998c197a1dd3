package pg

import (
	"testing"
	"time"

	"github.com/DjordjeVuckovic/pagekit/internal/domain"
	"github.com/DjordjeVuckovic/pagekit/internal/storage"
	"github.com/DjordjeVuckovic/pagekit/pkg/pagination"
	"github.com/DjordjeVuckovic/pagekit/pkg/pagination/paginationtest"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const contractTable = "contract_items"

func TestQuery_Contract(t *testing.T) {
	pool := requirePool(t)
	_, err := pool.GetConn().Exec(testCtx,
		`CREATE TABLE IF NOT EXISTS contract_items (id INTEGER PRIMARY KEY, name TEXT NOT NULL, rank INTEGER NOT NULL)`)
	require.NoError(t, err)

	paginationtest.RunQueryContract(t, func(t *testing.T, items []paginationtest.Item) pagination.Query[paginationtest.Item] {
		truncateTable(t, contractTable)

		rows := make([][]any, 0, len(items))
		for _, it := range items {
			rows = append(rows, []any{it.ID, it.Name, it.Rank})
		}
		_, err := pool.GetConn().CopyFrom(testCtx, pgx.Identifier{contractTable}, []string{"id", "name", "rank"}, pgx.CopyFromRows(rows))
		require.NoError(t, err)

		return From[paginationtest.Item](pool.GetConn(), contractTable)
	})
}

func TestArticleRepository_Articles(t *testing.T) {
	pool := requirePool(t)
	truncateTable(t, articlesTable)
	repo := NewArticleRepository(pool)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	articles := []domain.Article{
		{Title: "Rust in production", Category: "tech", Language: "english", WordCount: 1200, PublishedAt: base},
		{Title: "Go generics", Category: "Tech", Language: "english", WordCount: 800, PublishedAt: base.Add(48 * time.Hour)},
		{Title: "Wahlen", Category: "politics", Language: "german", WordCount: 400, PublishedAt: base.Add(24 * time.Hour)},
	}
	require.NoError(t, repo.SaveBulk(testCtx, articles))

	tests := []struct {
		name   string
		filter storage.ArticleFilter
		req    pagination.SortablePagingRequest
		titles []string
		total  int
		pages  int
	}{
		{
			name:   "category is case insensitive",
			filter: storage.ArticleFilter{Category: "TECH"},
			req:    pagination.SortablePagingRequest{SortProperty: "wordCount"},
			titles: []string{"Go generics", "Rust in production"},
			total:  2,
			pages:  1,
		},
		{
			name:   "newest first, paged",
			req:    pagination.NewSortablePagingRequest(2, 0, "publishedAt", true),
			titles: []string{"Go generics", "Wahlen"},
			total:  3,
			pages:  2,
		},
		{
			name:   "language filter",
			filter: storage.ArticleFilter{Language: "german"},
			titles: []string{"Wahlen"},
			total:  1,
			pages:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := pagination.NewSortedPage(testCtx, repo.Articles(tt.filter), &tt.req)
			require.NoError(t, err)

			assert.Equal(t, tt.total, page.TotalRecords)
			assert.Equal(t, tt.pages, page.TotalPages)
			titles := make([]string, 0, len(page.Data))
			for _, a := range page.Data {
				titles = append(titles, a.Title)
			}
			assert.Equal(t, tt.titles, titles)
		})
	}
}

func TestHealthChecker(t *testing.T) {
	pool := requirePool(t)

	assert.True(t, NewHealthChecker(pool).Healthy(testCtx))
	assert.False(t, NewHealthChecker(nil).Healthy(testCtx))
}
