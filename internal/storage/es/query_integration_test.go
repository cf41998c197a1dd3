package es

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/pagekit/internal/domain"
	"github.com/DjordjeVuckovic/pagekit/internal/storage"
	"github.com/DjordjeVuckovic/pagekit/pkg/pagination"
	"github.com/DjordjeVuckovic/pagekit/pkg/pagination/paginationtest"
	pkgtesting "github.com/DjordjeVuckovic/pagekit/pkg/testing"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contractDoc struct {
	paginationtest.Item
}

func (d contractDoc) DocumentID() string {
	return strconv.Itoa(d.ID)
}

func newTestClient(t *testing.T) *elasticsearch.TypedClient {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping elasticsearch container in short mode")
	}

	container := pkgtesting.NewESContainer(context.Background(), t)
	client, err := NewClient(ClientConfig{Addresses: []string{container.Address}})
	require.NoError(t, err)
	return client
}

func TestQuery_Contract(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	mapping := types.TypeMapping{
		Properties: map[string]types.Property{
			"id":   types.NewIntegerNumberProperty(),
			"name": types.NewKeywordProperty(),
			"rank": types.NewIntegerNumberProperty(),
		},
	}

	var seq int
	paginationtest.RunQueryContract(t, func(t *testing.T, items []paginationtest.Item) pagination.Query[paginationtest.Item] {
		seq++
		index := "contract-items-" + strconv.Itoa(seq)
		require.NoError(t, EnsureIndex(ctx, client, index, mapping))

		docs := make([]contractDoc, 0, len(items))
		for _, it := range items {
			docs = append(docs, contractDoc{Item: it})
		}
		require.NoError(t, SaveBulk(ctx, client, index, docs))

		return From[paginationtest.Item](client, index)
	})
}

func TestArticleIndex(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	idx, err := NewArticleIndex(ctx, client, "articles-test")
	require.NoError(t, err)
	assert.True(t, idx.Healthy(ctx))

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, idx.SaveBulk(ctx, []domain.Article{
		{Title: "Rust in production", Category: "tech", WordCount: 1200, PublishedAt: base},
		{Title: "Go generics", Category: "tech", WordCount: 800, PublishedAt: base.Add(48 * time.Hour)},
		{Title: "Wahlen", Category: "politics", Language: "german", WordCount: 400, PublishedAt: base.Add(24 * time.Hour)},
	}))

	req := pagination.NewSortablePagingRequest(1, 1, "wordCount", false)
	page, err := pagination.NewSortedPage(ctx, idx.Articles(storage.ArticleFilter{Category: "TECH"}), &req)

	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalRecords)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Rust in production", page.Data[0].Title)
	assert.Equal(t, domain.ArticleDefaultLanguage, page.Data[0].Language)

	req = pagination.NewSortablePagingRequest(10, 0, "publishedAt", true)
	page, err = pagination.NewSortedPage(ctx, idx.Articles(storage.ArticleFilter{}), &req)

	require.NoError(t, err)
	require.Len(t, page.Data, 3)
	assert.Equal(t, "Go generics", page.Data[0].Title)
	assert.Equal(t, "Rust in production", page.Data[2].Title)
}
