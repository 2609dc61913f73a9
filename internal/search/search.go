package search

import "context"

const (
	DepthBasic    = "basic"
	DepthAdvanced = "advanced"
)

type Request struct {
	Query             string `json:"query"`
	Depth             string `json:"search_depth"`
	MaxResults        int    `json:"max_results"`
	IncludeRawContent bool   `json:"include_raw_content"`
}

type Result struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Content       string  `json:"content"`
	RawContent    *string `json:"raw_content,omitempty"`
	PublishedDate *string `json:"published_date,omitempty"`
	Score         float64 `json:"score,omitempty"`
}

type Response struct {
	Query   string   `json:"query"`
	Results []Result `json:"results"`
}

type Client interface {
	Search(ctx context.Context, req Request) (*Response, error)
}
