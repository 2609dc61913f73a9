package es

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/news-mann/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeES struct {
	mu       sync.Mutex
	exists   bool
	created  bool
	indexed  map[string]ArticleDocument
	requests []string
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodHead && r.URL.Path == "/articles":
		if f.exists {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusNotFound)
		}
	case r.Method == http.MethodPut && r.URL.Path == "/articles":
		f.created = true
		_, _ = io.WriteString(w, `{"acknowledged":true,"shards_acknowledged":true,"index":"articles"}`)
	case (r.Method == http.MethodPut || r.Method == http.MethodPost) && strings.HasPrefix(r.URL.Path, "/articles/_doc/"):
		var doc ArticleDocument
		_ = json.NewDecoder(r.Body).Decode(&doc)
		f.indexed[doc.ID] = doc
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"_index":"articles","_id":"`+doc.ID+`","_version":1,"result":"created",`+
			`"_shards":{"total":1,"successful":1,"failed":0},"_seq_no":0,"_primary_term":1}`)
	default:
		w.WriteHeader(http.StatusBadRequest)
	}
}

func TestIndexer(t *testing.T) {
	fake := &fakeES{indexed: map[string]ArticleDocument{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	idx, err := NewIndexer(context.Background(), ClientConfig{Addresses: []string{srv.URL}, IndexName: "articles"})
	require.NoError(t, err)
	assert.True(t, fake.created)

	headline := "Chips shrink"
	err = idx.Index(context.Background(), []domain.Article{
		{ID: "id-1", Title: "Chips", Headline: &headline, Summary: "s", SourceURL: "https://a.example", Categories: []string{"technology"}, CreatedAt: time.Now()},
	})

	require.NoError(t, err)
	require.Contains(t, fake.indexed, "id-1")
	assert.Equal(t, "Chips shrink", fake.indexed["id-1"].Headline)
	assert.Equal(t, []string{"technology"}, fake.indexed["id-1"].Categories)
}

func TestNewIndexer_RequiresConfig(t *testing.T) {
	_, err := NewIndexer(context.Background(), ClientConfig{})
	assert.Error(t, err)
}

func TestToDocument(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	doc := toDocument(domain.Article{ID: "id", Title: "t", Summary: "s", SourceURL: "u"}, now)

	assert.Equal(t, "id", doc.ID)
	assert.Empty(t, doc.Headline)
	assert.Empty(t, doc.SourceName)
	assert.Equal(t, now, doc.IndexedAt)
}
