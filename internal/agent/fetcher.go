package agent

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/url"
	"strings"

	"github.com/DjordjeVuckovic/news-mann/internal/apperr"
	"github.com/DjordjeVuckovic/news-mann/internal/domain"
	"github.com/DjordjeVuckovic/news-mann/internal/search"
	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

type Fetcher struct {
	client     search.Client
	maxResults int
	policy     *bluemonday.Policy
}

func NewFetcher(client search.Client, maxResults int) *Fetcher {
	if maxResults <= 0 {
		maxResults = search.DefaultMaxResults
	}
	return &Fetcher{
		client:     client,
		maxResults: maxResults,
		policy:     bluemonday.StrictPolicy().AddSpaceWhenStrippingTag(true),
	}
}

func SearchQuery(topic string, maxResults int) string {
	return fmt.Sprintf("latest top %d news articles about %s", maxResults, topic)
}

// Fetch returns up to maxResults candidate documents for topic. A maxResults of zero uses the
// fetcher default. An empty result is not an error.
func (f *Fetcher) Fetch(ctx context.Context, topic string, maxResults int) ([]domain.RawDocument, error) {
	if maxResults <= 0 {
		maxResults = f.maxResults
	}

	resp, err := f.client.Search(ctx, search.Request{
		Query:             SearchQuery(topic, maxResults),
		Depth:             search.DepthAdvanced,
		MaxResults:        maxResults,
		IncludeRawContent: true,
	})
	if err != nil {
		var pe *apperr.ProviderError
		if errors.As(err, &pe) {
			return nil, err
		}
		return nil, apperr.NewProvider(search.ProviderName, err)
	}

	docs := make([]domain.RawDocument, 0, len(resp.Results))
	for _, r := range resp.Results {
		if strings.TrimSpace(r.URL) == "" {
			slog.Warn("Dropping search result without url", "topic", topic, "title", r.Title)
			continue
		}
		docs = append(docs, f.toDocument(r))
	}

	slog.Info("Fetched articles", "topic", topic, "count", len(docs))
	return docs, nil
}

func (f *Fetcher) toDocument(r search.Result) domain.RawDocument {
	raw := r.Content
	if r.RawContent != nil && strings.TrimSpace(*r.RawContent) != "" {
		raw = *r.RawContent
	}

	doc := domain.RawDocument{
		Title:      f.plainText(r.Title),
		URL:        strings.TrimSpace(r.URL),
		SourceName: SourceName(r.URL),
	}
	if r.PublishedDate != nil {
		doc.PublishedDate = strings.TrimSpace(*r.PublishedDate)
	}

	if looksLikeHTML(raw) {
		doc.ImageURL = ExtractImage(raw)
	}
	doc.FullText = f.plainText(raw)

	return doc
}

func (f *Fetcher) plainText(s string) string {
	if !looksLikeHTML(s) {
		return strings.TrimSpace(s)
	}
	return strings.Join(strings.Fields(html.UnescapeString(f.policy.Sanitize(s))), " ")
}

func looksLikeHTML(s string) bool {
	i := strings.IndexByte(s, '<')
	return i >= 0 && strings.IndexByte(s[i:], '>') > 0
}

// ExtractImage returns the og:image (or twitter:image) of an HTML page, or "" when absent.
func ExtractImage(page string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return ""
	}
	for _, sel := range []string{`meta[property="og:image"]`, `meta[name="twitter:image"]`} {
		if content, ok := doc.Find(sel).First().Attr("content"); ok && strings.TrimSpace(content) != "" {
			return strings.TrimSpace(content)
		}
	}
	return ""
}

// SourceName derives a publication name from the article host.
func SourceName(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}
