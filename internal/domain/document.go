package domain

import "strings"

// RawDocument is a search candidate. It lives only for the duration of a pipeline run.
type RawDocument struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	FullText      string `json:"full_text"`
	PublishedDate string `json:"published_date,omitempty"`
	SourceName    string `json:"source_name,omitempty"`
	ImageURL      string `json:"image_url,omitempty"`
}

func (d RawDocument) HasText() bool {
	return strings.TrimSpace(d.FullText) != ""
}

// Draft is a summarized but not yet validated article.
// SourceURL links it back to the RawDocument it was produced from.
type Draft struct {
	Title       string `json:"title"`
	Headline    string `json:"headline"`
	Summary     string `json:"summary"`
	SourceURL   string `json:"source_url"`
	PublishedAt string `json:"published_at,omitempty"`
	SourceName  string `json:"source_name,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// Corpus indexes raw documents by URL so later stages can re-read the original text.
type Corpus map[string]RawDocument

func NewCorpus(docs []RawDocument) Corpus {
	c := make(Corpus, len(docs))
	for _, d := range docs {
		c[d.URL] = d
	}
	return c
}

// Text returns the raw text for url and whether it is retrievable.
func (c Corpus) Text(url string) (string, bool) {
	d, ok := c[url]
	if !ok || !d.HasText() {
		return "", false
	}
	return d.FullText, true
}
