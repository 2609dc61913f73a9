package es

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/news-mann/internal/domain"
	"github.com/DjordjeVuckovic/news-mann/internal/storage"
	"github.com/elastic/go-elasticsearch/v8"
)

// Indexer mirrors stored articles into an Elasticsearch index.
type Indexer struct {
	client    *elasticsearch.TypedClient
	indexName string
	now       func() time.Time
}

func NewIndexer(ctx context.Context, config ClientConfig) (*Indexer, error) {
	if len(config.Addresses) == 0 || config.IndexName == "" {
		return nil, errors.New("elasticsearch addresses and index name are required")
	}

	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	indexer := &Indexer{
		client:    client,
		indexName: config.IndexName,
		now:       time.Now,
	}

	if err := indexer.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}

	return indexer, nil
}

func (e *Indexer) Index(ctx context.Context, articles []domain.Article) error {
	var errs []error
	indexedAt := e.now().UTC()

	for _, a := range articles {
		doc := toDocument(a, indexedAt)
		res, err := e.client.Index(e.indexName).Id(doc.ID).Document(doc).Do(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("index %s: %w", doc.ID, err))
			continue
		}
		slog.Debug("Document indexed", "id", doc.ID, "index", e.indexName, "result", res.Result)
	}

	if len(errs) > 0 {
		return fmt.Errorf("failed to index %d out of %d articles: %w", len(errs), len(articles), errors.Join(errs...))
	}
	slog.Info("Mirrored articles", "count", len(articles), "index", e.indexName)
	return nil
}

func (e *Indexer) EnsureIndex(ctx context.Context) error {
	exists, err := e.client.Indices.Exists(e.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}

	if exists {
		slog.Info("Index already exists", "index", e.indexName)
		return nil
	}

	mappings := buildMapping()
	createRes, err := e.client.Indices.Create(e.indexName).
		Mappings(&mappings).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	if !createRes.Acknowledged {
		return fmt.Errorf("index creation was not acknowledged")
	}

	slog.Info("Index created successfully", "index", e.indexName)
	return nil
}

var _ storage.Indexer = (*Indexer)(nil)
