package storage

import (
	"context"
	"time"

	"github.com/DjordjeVuckovic/news-mann/internal/domain"
	"github.com/DjordjeVuckovic/news-mann/pkg/pagination"
)

type Type string

const (
	PG    Type = "pg"
	InMem Type = "in_mem"
)

// StoreResult reports what a batch store changed. Inserted holds only new articles.
type StoreResult struct {
	NewCount int
	Inserted []domain.Article
}

type Writer interface {
	// StoreAll persists validated drafts under topic in one transaction. Drafts whose source url
	// already exists are linked to topic and not counted. An empty batch writes nothing.
	StoreAll(ctx context.Context, drafts []domain.Draft, topic string) (StoreResult, error)
}

type Reader interface {
	// LatestArticleAt returns the newest created_at linked to topic, or nil when there is none.
	LatestArticleAt(ctx context.Context, topic string) (*time.Time, error)
	// ListArticles returns articles newest first.
	ListArticles(ctx context.Context, page pagination.OffsetRequest) ([]domain.Article, error)
	// ListByCategory returns articles linked to the category newest first. Unknown categories
	// yield an empty list.
	ListByCategory(ctx context.Context, name string, page pagination.OffsetRequest) ([]domain.Article, error)
	// GetArticle returns apperr.ErrNotFound when id does not exist.
	GetArticle(ctx context.Context, id string) (*domain.Article, error)
}

type Store interface {
	Writer
	Reader
}

// NewArticle maps a validated draft to the row inserted for it.
func NewArticle(id string, draft domain.Draft, createdAt time.Time) domain.Article {
	return domain.Article{
		ID:          id,
		CreatedAt:   createdAt,
		Title:       draft.Title,
		Headline:    domain.OptionalString(draft.Headline),
		Summary:     draft.Summary,
		SourceURL:   draft.SourceURL,
		ImageURL:    domain.OptionalString(draft.ImageURL),
		PublishedAt: domain.ParsePublishedDate(draft.PublishedAt),
		SourceName:  domain.OptionalString(draft.SourceName),
	}
}
