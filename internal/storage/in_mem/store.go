package in_mem

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/DjordjeVuckovic/pagekit/internal/domain"
	"github.com/DjordjeVuckovic/pagekit/internal/storage"
	"github.com/DjordjeVuckovic/pagekit/pkg/pagination"
	"github.com/google/uuid"
)

// Store keeps articles in insertion order. Queries work on a snapshot taken when Articles is called.
type Store struct {
	mu    sync.RWMutex
	order []uuid.UUID
	items map[uuid.UUID]domain.Article
}

func NewStore() *Store {
	return &Store{
		items: make(map[uuid.UUID]domain.Article),
	}
}

func (s *Store) Save(ctx context.Context, article domain.Article) (uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.put(article), nil
}

func (s *Store) SaveBulk(ctx context.Context, articles []domain.Article) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, article := range articles {
		s.put(article)
	}
	slog.Info("Saved articles to in-memory storage", "count", len(articles), "total", len(s.items))
	return nil
}

func (s *Store) put(article domain.Article) uuid.UUID {
	article.Normalize()
	if _, exists := s.items[article.ID]; !exists {
		s.order = append(s.order, article.ID)
	}
	s.items[article.ID] = article
	return article.ID
}

func (s *Store) snapshot() []domain.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Article, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}

func (s *Store) Articles(filter storage.ArticleFilter) pagination.Query[domain.Article] {
	q := pagination.FromSlice(s.snapshot())
	if filter.Language != "" {
		q = q.Where(func(a domain.Article) bool { return strings.EqualFold(a.Language, filter.Language) })
	}
	if filter.Category != "" {
		q = q.Where(func(a domain.Article) bool { return strings.EqualFold(a.Category, filter.Category) })
	}
	return q
}

var (
	_ storage.ArticleSource = (*Store)(nil)
	_ storage.ArticleStorer = (*Store)(nil)
)
