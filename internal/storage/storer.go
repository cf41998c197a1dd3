package storage

import (
	"context"

	"github.com/DjordjeVuckovic/pagekit/internal/domain"
	"github.com/DjordjeVuckovic/pagekit/pkg/pagination"
)

type Type string

const (
	ES    Type = "es"
	PG    Type = "pg"
	InMem Type = "in_mem"
)

type StorerError string

const (
	ErrUnsupportedStorer StorerError = "unsupported storer type: %s"
)

func (e StorerError) Error() string {
	return string(e)
}

// ArticleFilter narrows the catalogue; empty fields match everything.
type ArticleFilter struct {
	Language string
	Category string
}

// ArticleSource hands out lazily composed article queries.
type ArticleSource interface {
	Articles(filter ArticleFilter) pagination.Query[domain.Article]
}

type ArticleStorer interface {
	SaveBulk(ctx context.Context, articles []domain.Article) error
}
