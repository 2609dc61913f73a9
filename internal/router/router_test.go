package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/news-mann/internal/apperr"
	"github.com/DjordjeVuckovic/news-mann/internal/domain"
	"github.com/DjordjeVuckovic/news-mann/internal/dto"
	"github.com/DjordjeVuckovic/news-mann/internal/pipeline"
	"github.com/DjordjeVuckovic/news-mann/internal/storage/in_mem"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDigest struct {
	res *pipeline.Result
	err error
}

func (f fakeDigest) Run(_ context.Context, topic string) (*pipeline.Result, error) {
	f.res.Topic = topic
	return f.res, f.err
}

type fakeReflection struct {
	err error
}

func (f fakeReflection) Run(_ context.Context, topic string) (*pipeline.ReflectionResult, error) {
	return &pipeline.ReflectionResult{
		Status: pipeline.StatusSuccess,
		Topic:  topic,
		Items:  []pipeline.ReflectionItem{{Title: "t", SourceURL: "https://a.example", Headline: "H"}},
	}, f.err
}

type fakeFetcher struct {
	docs []domain.RawDocument
	err  error
}

func (f fakeFetcher) Fetch(context.Context, string, int) ([]domain.RawDocument, error) {
	return f.docs, f.err
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()
	return e
}

func get(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestNewsRouter_Process(t *testing.T) {
	metrics := pipeline.Metrics{InitialFetchCount: 3, SummarizedCount: 3, ValidatedCount: 2, NewlyStoredCount: 2}

	tests := []struct {
		name       string
		digest     fakeDigest
		wantStatus int
		wantBody   map[string]any
	}{
		{
			name: "success",
			digest: fakeDigest{res: &pipeline.Result{
				Status:       pipeline.StatusSuccess,
				Message:      "Stored 2 new articles out of 3 fetched.",
				Metrics:      metrics,
				SkippedItems: []pipeline.ItemError{},
			}},
			wantStatus: http.StatusOK,
			wantBody: map[string]any{
				"status":  "success",
				"topic":   "chess",
				"message": "Stored 2 new articles out of 3 fetched.",
			},
		},
		{
			name: "skipped",
			digest: fakeDigest{
				res: &pipeline.Result{Status: pipeline.StatusSkipped},
				err: &apperr.GateSkip{Topic: "chess", Message: "Topic 'chess' was updated 5 minutes ago. Please try again after 25 minutes."},
			},
			wantStatus: http.StatusTooManyRequests,
			wantBody: map[string]any{
				"status":  "skipped",
				"message": "Topic 'chess' was updated 5 minutes ago. Please try again after 25 minutes.",
			},
		},
		{
			name: "provider failure",
			digest: fakeDigest{
				res: &pipeline.Result{Status: pipeline.StatusError},
				err: apperr.NewProvider("tavily", errors.New("boom")),
			},
			wantStatus: http.StatusInternalServerError,
			wantBody: map[string]any{
				"status": "error",
				"error":  "tavily provider failed: boom",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEcho()
			NewNewsRouter(e, tt.digest, fakeReflection{}, fakeFetcher{}).Bind()

			rec := get(e, "/news/process/chess")
			require.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			for k, v := range tt.wantBody {
				assert.Equal(t, v, body[k], k)
			}
			assert.Contains(t, body, "metrics")
		})
	}
}

func TestNewsRouter_Process_ValidationError(t *testing.T) {
	e := newEcho()
	digest := fakeDigest{res: &pipeline.Result{}, err: apperr.NewValidation("topic must not be empty")}
	NewNewsRouter(e, digest, fakeReflection{}, fakeFetcher{}).Bind()

	rec := get(e, "/news/process/%20")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNewsRouter_Fetch(t *testing.T) {
	e := newEcho()
	docs := []domain.RawDocument{
		{Title: "a", URL: "https://a.example", FullText: "text"},
		{Title: "b", URL: "https://b.example", FullText: "text"},
	}
	NewNewsRouter(e, fakeDigest{}, fakeReflection{}, fakeFetcher{docs: docs}).Bind()

	rec := get(e, "/news/fetch/technology")

	require.Equal(t, http.StatusOK, rec.Code)
	var body FetchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, pipeline.StatusSuccess, body.Status)
	assert.Equal(t, 2, body.FetchedArticles)
	assert.Equal(t, docs, body.Data)
}

func TestNewsRouter_Fetch_ProviderFailure(t *testing.T) {
	e := newEcho()
	fetcher := fakeFetcher{err: apperr.NewProvider("tavily", errors.New("timeout"))}
	NewNewsRouter(e, fakeDigest{}, fakeReflection{}, fetcher).Bind()

	rec := get(e, "/news/fetch/technology")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch articles from the provider."}`, rec.Body.String())
}

func TestNewsRouter_Reflect(t *testing.T) {
	e := newEcho()
	NewNewsRouter(e, fakeDigest{}, fakeReflection{}, fakeFetcher{}).Bind()

	rec := get(e, "/news/reflect/technology")

	require.Equal(t, http.StatusOK, rec.Code)
	var body pipeline.ReflectionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "technology", body.Topic)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "H", body.Items[0].Headline)
}

func seededStore(t *testing.T) *in_mem.Store {
	t.Helper()
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := in_mem.NewStore(in_mem.WithClock(func() time.Time {
		at = at.Add(time.Minute)
		return at
	}))
	ctx := context.Background()

	_, err := s.StoreAll(ctx, []domain.Draft{
		{Title: "old", Headline: "Old", Summary: "s", SourceURL: "https://old.example", PublishedAt: "2024-02-28"},
	}, "technology")
	require.NoError(t, err)
	_, err = s.StoreAll(ctx, []domain.Draft{
		{Title: "new", Headline: "New", Summary: "s", SourceURL: "https://new.example"},
	}, "chess")
	require.NoError(t, err)
	return s
}

func listArticles(t *testing.T, e *echo.Echo, target string) []dto.Article {
	t.Helper()
	rec := get(e, target)
	require.Equal(t, http.StatusOK, rec.Code)
	var out []dto.Article
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestArticleRouter_List(t *testing.T) {
	e := newEcho()
	NewArticleRouter(e, seededStore(t)).Bind()

	all := listArticles(t, e, "/articles/")
	require.Len(t, all, 2)
	assert.Equal(t, "https://new.example", all[0].SourceURL)
	assert.Equal(t, "https://old.example", all[1].SourceURL)
	require.NotNil(t, all[1].PublishedAt)
	assert.Equal(t, "2024-02-28", *all[1].PublishedAt)
	assert.Nil(t, all[0].PublishedAt)

	paged := listArticles(t, e, "/articles/?page=2&size=1")
	require.Len(t, paged, 1)
	assert.Equal(t, "https://old.example", paged[0].SourceURL)
}

func TestArticleRouter_ByCategory(t *testing.T) {
	e := newEcho()
	NewArticleRouter(e, seededStore(t)).Bind()

	chess := listArticles(t, e, "/articles/by-category/chess")
	require.Len(t, chess, 1)
	assert.Equal(t, "https://new.example", chess[0].SourceURL)

	unknown := listArticles(t, e, "/articles/by-category/gardening")
	assert.Empty(t, unknown)
}

func TestArticleRouter_Get(t *testing.T) {
	e := newEcho()
	store := seededStore(t)
	NewArticleRouter(e, store).Bind()

	all := listArticles(t, e, "/articles/")
	require.NotEmpty(t, all)

	rec := get(e, "/articles/"+all[0].ID)
	require.Equal(t, http.StatusOK, rec.Code)
	var got dto.Article
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, all[0].ID, got.ID)

	rec = get(e, "/articles/does-not-exist")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
