package storage_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/news-mann/internal/domain"
	"github.com/DjordjeVuckovic/news-mann/internal/storage"
	"github.com/DjordjeVuckovic/news-mann/internal/storage/in_mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeIndexer struct {
	got []domain.Article
	err error
}

func (f *fakeIndexer) Index(_ context.Context, articles []domain.Article) error {
	f.got = append(f.got, articles...)
	return f.err
}

func TestMirroredStore_StoreAll(t *testing.T) {
	idx := &fakeIndexer{err: errors.New("es unavailable")}
	store := storage.NewMirroredStore(in_mem.NewStore(), idx)
	drafts := []domain.Draft{
		{Title: "a", Summary: "s", SourceURL: "https://news.example/a"},
		{Title: "b", Summary: "s", SourceURL: "https://news.example/b"},
	}

	res, err := store.StoreAll(context.Background(), drafts, "technology")
	require.NoError(t, err)
	assert.Equal(t, 2, res.NewCount)
	assert.Len(t, idx.got, 2)

	res, err = store.StoreAll(context.Background(), drafts, "technology")
	require.NoError(t, err)
	assert.Equal(t, 0, res.NewCount)
	assert.Len(t, idx.got, 2)
}

func TestNewArticle(t *testing.T) {
	a := storage.NewArticle("id-1", domain.Draft{
		Title:       "t",
		Headline:    " ",
		Summary:     "s",
		SourceURL:   "https://news.example/a",
		PublishedAt: "null",
		SourceName:  "News",
	}, testTime)

	assert.Equal(t, "id-1", a.ID)
	assert.Nil(t, a.Headline)
	assert.Nil(t, a.PublishedAt)
	assert.Nil(t, a.ImageURL)
	require.NotNil(t, a.SourceName)
	assert.Equal(t, "News", *a.SourceName)
}
