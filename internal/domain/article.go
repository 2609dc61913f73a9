package domain

import (
	"strings"
	"time"
)

// PublishedDateLayout is the only accepted published_at format.
const PublishedDateLayout = "2006-01-02"

// Article is a persisted, validated summary. It is never mutated after insert.
type Article struct {
	ID          string     `json:"id"`
	CreatedAt   time.Time  `json:"createdAt"`
	Title       string     `json:"title"`
	Headline    *string    `json:"headline,omitempty"`
	Summary     string     `json:"summary"`
	SourceURL   string     `json:"sourceUrl"`
	ImageURL    *string    `json:"imageUrl,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	SourceName  *string    `json:"sourceName,omitempty"`
	Categories  []string   `json:"categories,omitempty"`
}

// Category is a user-facing topic label, unique by normalized name.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ParsePublishedDate parses a YYYY-MM-DD date. Empty, "null" and malformed values
// yield nil rather than an error.
func ParsePublishedDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "null") {
		return nil
	}
	t, err := time.Parse(PublishedDateLayout, raw)
	if err != nil {
		return nil
	}
	return &t
}

// OptionalString maps "" to nil.
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
