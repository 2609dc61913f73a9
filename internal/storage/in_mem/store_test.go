package in_mem

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/news-mann/internal/apperr"
	"github.com/DjordjeVuckovic/news-mann/internal/domain"
	"github.com/DjordjeVuckovic/news-mann/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func draft(url string) domain.Draft {
	return domain.Draft{Title: "title " + url, Headline: "headline", Summary: "summary", SourceURL: url, PublishedAt: "2024-03-01"}
}

func TestStore_StoreAll_Idempotent(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	drafts := []domain.Draft{draft("https://a.example"), draft("https://b.example")}

	first, err := s.StoreAll(ctx, drafts, "Technology")
	require.NoError(t, err)
	second, err := s.StoreAll(ctx, drafts, "technology")
	require.NoError(t, err)

	assert.Equal(t, 2, first.NewCount)
	assert.Equal(t, 0, second.NewCount)

	all, err := s.ListArticles(ctx, pagination.OffsetRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, []string{"technology"}, all[0].Categories)
	require.NotNil(t, all[0].PublishedAt)
}

func TestStore_StoreAll_EmptyBatchCreatesNoTopic(t *testing.T) {
	s := NewStore()

	res, err := s.StoreAll(context.Background(), nil, "science")

	require.NoError(t, err)
	assert.Equal(t, 0, res.NewCount)
	assert.Empty(t, s.categories)
}

func TestStore_StoreAll_LinksExistingArticleToNewTopic(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	_, err := s.StoreAll(ctx, []domain.Draft{draft("https://a.example")}, "technology")
	require.NoError(t, err)
	res, err := s.StoreAll(ctx, []domain.Draft{draft("https://a.example")}, "science")
	require.NoError(t, err)

	assert.Equal(t, 0, res.NewCount)
	science, err := s.ListByCategory(ctx, "Science", pagination.OffsetRequest{})
	require.NoError(t, err)
	require.Len(t, science, 1)
	assert.Equal(t, []string{"science", "technology"}, science[0].Categories)
}

func TestStore_ListOrdering(t *testing.T) {
	c := &clock{t: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
	s := NewStore(WithClock(c.now))
	ctx := context.Background()

	for i, url := range []string{"https://1.example", "https://2.example", "https://3.example"} {
		c.t = c.t.Add(time.Duration(i+1) * time.Minute)
		_, err := s.StoreAll(ctx, []domain.Draft{draft(url)}, "technology")
		require.NoError(t, err)
	}

	all, err := s.ListArticles(ctx, pagination.OffsetRequest{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "https://3.example", all[0].SourceURL)
	assert.Equal(t, "https://1.example", all[2].SourceURL)

	page, err := s.ListArticles(ctx, pagination.OffsetRequest{Page: 2, Size: 2})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "https://1.example", page[0].SourceURL)

	latest, err := s.LatestArticleAt(ctx, "technology")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, c.t, *latest)
}

func TestStore_Reads(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	latest, err := s.LatestArticleAt(ctx, "nothing")
	require.NoError(t, err)
	assert.Nil(t, latest)

	none, err := s.ListByCategory(ctx, "unknown", pagination.OffsetRequest{})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	_, err = s.GetArticle(ctx, "missing")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	res, err := s.StoreAll(ctx, []domain.Draft{draft("https://a.example")}, "technology")
	require.NoError(t, err)
	a, err := s.GetArticle(ctx, res.Inserted[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "https://a.example", a.SourceURL)
}
