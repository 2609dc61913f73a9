package dto

import (
	"time"

	"github.com/DjordjeVuckovic/news-mann/internal/domain"
)

// Article is the display shape served to the news feed.
type Article struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Title       string    `json:"title"`
	Headline    *string   `json:"headline"`
	Summary     string    `json:"summary"`
	SourceURL   string    `json:"source_url"`
	ImageURL    *string   `json:"image_url"`
	PublishedAt *string   `json:"published_at" swaggertype:"string" format:"date"`
	SourceName  *string   `json:"source_name"`
	Categories  []string  `json:"categories,omitempty"`
}

func FromArticle(a domain.Article) Article {
	out := Article{
		ID:         a.ID,
		CreatedAt:  a.CreatedAt,
		Title:      a.Title,
		Headline:   a.Headline,
		Summary:    a.Summary,
		SourceURL:  a.SourceURL,
		ImageURL:   a.ImageURL,
		SourceName: a.SourceName,
		Categories: a.Categories,
	}
	if a.PublishedAt != nil {
		d := a.PublishedAt.Format(domain.PublishedDateLayout)
		out.PublishedAt = &d
	}
	return out
}

func FromArticles(articles []domain.Article) []Article {
	out := make([]Article, 0, len(articles))
	for _, a := range articles {
		out = append(out, FromArticle(a))
	}
	return out
}
