package es

import (
	"context"

	"github.com/DjordjeVuckovic/pagekit/internal/domain"
	"github.com/DjordjeVuckovic/pagekit/internal/storage"
	"github.com/DjordjeVuckovic/pagekit/pkg/pagination"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

// articleDocument is domain.Article as stored in the index.
type articleDocument struct {
	domain.Article
}

func (d articleDocument) DocumentID() string {
	return d.ID.String()
}

// ArticleMapping maps every sortable field to a doc-values type. Strings are keywords.
func ArticleMapping() types.TypeMapping {
	return types.TypeMapping{
		Properties: map[string]types.Property{
			"id":          types.NewKeywordProperty(),
			"title":       types.NewKeywordProperty(),
			"author":      types.NewKeywordProperty(),
			"category":    types.NewKeywordProperty(),
			"language":    types.NewKeywordProperty(),
			"wordCount":   types.NewIntegerNumberProperty(),
			"publishedAt": types.NewDateProperty(),
		},
	}
}

type ArticleIndex struct {
	client *elasticsearch.TypedClient
	index  string
}

// NewArticleIndex creates the index when missing.
func NewArticleIndex(ctx context.Context, client *elasticsearch.TypedClient, index string) (*ArticleIndex, error) {
	if err := EnsureIndex(ctx, client, index, ArticleMapping()); err != nil {
		return nil, err
	}
	return &ArticleIndex{client: client, index: index}, nil
}

func (a *ArticleIndex) Articles(filter storage.ArticleFilter) pagination.Query[domain.Article] {
	q := From[domain.Article](a.client, a.index)
	if filter.Language != "" {
		q = q.Filter(termInsensitive("language", filter.Language))
	}
	if filter.Category != "" {
		q = q.Filter(termInsensitive("category", filter.Category))
	}
	return q
}

func (a *ArticleIndex) SaveBulk(ctx context.Context, articles []domain.Article) error {
	docs := make([]articleDocument, 0, len(articles))
	for _, article := range articles {
		article.Normalize()
		docs = append(docs, articleDocument{Article: article})
	}
	return SaveBulk(ctx, a.client, a.index, docs)
}

// Healthy pings the cluster.
func (a *ArticleIndex) Healthy(ctx context.Context) bool {
	ok, err := a.client.Ping().Do(ctx)
	return err == nil && ok
}

func termInsensitive(field, value string) *types.Query {
	caseInsensitive := true
	return &types.Query{
		Term: map[string]types.TermQuery{
			field: {Value: value, CaseInsensitive: &caseInsensitive},
		},
	}
}

var (
	_ storage.ArticleSource = (*ArticleIndex)(nil)
	_ storage.ArticleStorer = (*ArticleIndex)(nil)
)
