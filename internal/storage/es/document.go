package es

import (
	"time"

	"github.com/DjordjeVuckovic/news-mann/internal/domain"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

// ArticleDocument is the Elasticsearch representation of a stored article.
type ArticleDocument struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Headline    string     `json:"headline,omitempty"`
	Summary     string     `json:"summary"`
	SourceURL   string     `json:"source_url"`
	SourceName  string     `json:"source_name,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	Categories  []string   `json:"categories"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	IndexedAt   time.Time  `json:"indexed_at"`
}

func toDocument(a domain.Article, indexedAt time.Time) ArticleDocument {
	return ArticleDocument{
		ID:          a.ID,
		Title:       a.Title,
		Headline:    deref(a.Headline),
		Summary:     a.Summary,
		SourceURL:   a.SourceURL,
		SourceName:  deref(a.SourceName),
		ImageURL:    deref(a.ImageURL),
		Categories:  a.Categories,
		PublishedAt: a.PublishedAt,
		CreatedAt:   a.CreatedAt,
		IndexedAt:   indexedAt,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func buildMapping() types.TypeMapping {
	return types.TypeMapping{
		Properties: map[string]types.Property{
			"id":           types.NewKeywordProperty(),
			"title":        textPropertyWithKeyword(),
			"headline":     types.NewTextProperty(),
			"summary":      types.NewTextProperty(),
			"source_url":   types.NewKeywordProperty(),
			"source_name":  textPropertyWithKeyword(),
			"image_url":    types.NewKeywordProperty(),
			"categories":   types.NewKeywordProperty(),
			"published_at": types.NewDateProperty(),
			"created_at":   types.NewDateProperty(),
			"indexed_at":   types.NewDateProperty(),
		},
	}
}

func textPropertyWithKeyword() types.Property {
	textProp := types.NewTextProperty()
	textProp.Fields = map[string]types.Property{
		"keyword": types.NewKeywordProperty(),
	}
	return textProp
}
