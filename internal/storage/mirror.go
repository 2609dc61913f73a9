package storage

import (
	"context"
	"log/slog"

	"github.com/DjordjeVuckovic/news-mann/internal/domain"
)

// Indexer receives copies of newly stored articles, e.g. a search index.
type Indexer interface {
	Index(ctx context.Context, articles []domain.Article) error
}

// MirroredStore forwards new articles to an Indexer after a successful store.
// Indexing failures are logged and never fail the batch.
type MirroredStore struct {
	Store
	indexer Indexer
}

func NewMirroredStore(store Store, indexer Indexer) *MirroredStore {
	return &MirroredStore{Store: store, indexer: indexer}
}

func (m *MirroredStore) StoreAll(ctx context.Context, drafts []domain.Draft, topic string) (StoreResult, error) {
	res, err := m.Store.StoreAll(ctx, drafts, topic)
	if err != nil || len(res.Inserted) == 0 {
		return res, err
	}

	if err := m.indexer.Index(ctx, res.Inserted); err != nil {
		slog.Warn("Failed to mirror stored articles", "topic", topic, "count", len(res.Inserted), "error", err)
	}
	return res, nil
}
