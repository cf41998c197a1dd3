package domain

import (
	"time"

	"github.com/google/uuid"
)

const ArticleDefaultLanguage = "english"

// Article is the catalogue entry served by the paging API.
// The db tags name Postgres columns, the json tags name Elasticsearch fields.
type Article struct {
	ID          uuid.UUID `json:"id" db:"id" yaml:"id"`
	Title       string    `json:"title" db:"title" yaml:"title"`
	Author      string    `json:"author,omitempty" db:"author" yaml:"author"`
	Category    string    `json:"category,omitempty" db:"category" yaml:"category"`
	Language    string    `json:"language" db:"language" yaml:"language"`
	WordCount   int       `json:"wordCount" db:"word_count" yaml:"wordCount"`
	PublishedAt time.Time `json:"publishedAt" db:"published_at" yaml:"publishedAt"`
}

// Normalize fills the defaults a stored article must carry.
func (a *Article) Normalize() {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Language == "" {
		a.Language = ArticleDefaultLanguage
	}
}
