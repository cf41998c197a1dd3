package ingest

import (
	"fmt"
	"reflect"

	"github.com/DjordjeVuckovic/pagekit/internal/domain"
)

type MapperOption func(*ArticleMapper)

// WithStrict rejects records that carry columns with no matching article field.
func WithStrict() MapperOption {
	return func(m *ArticleMapper) {
		m.strict = true
	}
}

// ArticleMapper turns CSV records into articles. Columns match article fields by field name,
// json tag or db tag, ignoring case and separators.
type ArticleMapper struct {
	index  map[string][]int
	strict bool
}

func NewArticleMapper(opts ...MapperOption) *ArticleMapper {
	m := &ArticleMapper{index: fieldIndex(reflect.TypeFor[domain.Article]())}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *ArticleMapper) Map(record Record) (domain.Article, error) {
	var article domain.Article
	v := reflect.ValueOf(&article).Elem()

	for column, value := range record {
		idx, ok := m.index[normalizeColumn(column)]
		if !ok {
			if m.strict {
				return domain.Article{}, fmt.Errorf("unknown column %q", column)
			}
			continue
		}
		if err := setField(v.FieldByIndex(idx), value); err != nil {
			return domain.Article{}, fmt.Errorf("column %q: %w", column, err)
		}
	}

	if article.Title == "" {
		return domain.Article{}, fmt.Errorf("article title is required")
	}
	article.Normalize()
	return article, nil
}
