package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/news-mann/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromArticle_FormatsPublishedDate(t *testing.T) {
	published := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	a := domain.Article{
		ID:          "a1",
		Title:       "Chip export rules",
		Summary:     "Summary",
		SourceURL:   "https://example.com/chips",
		PublishedAt: &published,
	}

	got := FromArticle(a)

	require.NotNil(t, got.PublishedAt)
	assert.Equal(t, "2024-03-01", *got.PublishedAt)
}

func TestFromArticle_NullsStayNull(t *testing.T) {
	b, err := json.Marshal(FromArticle(domain.Article{ID: "a1", SourceURL: "https://example.com"}))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Contains(t, raw, "published_at")
	assert.Nil(t, raw["published_at"])
	assert.Nil(t, raw["headline"])
	assert.NotContains(t, raw, "categories")
}

func TestFromArticles_EmptyIsNotNil(t *testing.T) {
	assert.NotNil(t, FromArticles(nil))
	assert.Len(t, FromArticles(nil), 0)
}
