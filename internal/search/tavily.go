package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/DjordjeVuckovic/news-mann/internal/apperr"
)

const ProviderName = "tavily"

type TavilyOption func(client *TavilyClient)

type TavilyClient struct {
	base   url.URL
	apiKey string
	http   *http.Client
}

func NewTavilyClient(cfg Config, opts ...TavilyOption) (*TavilyClient, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := &TavilyClient{
		base:   *base,
		apiKey: cfg.APIKey,
		http: &http.Client{
			Timeout: timeout,
		},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

func WithHttpClient(httpClient *http.Client) TavilyOption {
	return func(client *TavilyClient) {
		client.http = httpClient
	}
}

type tavilyRequest struct {
	APIKey string `json:"api_key"`
	Request
}

func (tc *TavilyClient) Search(ctx context.Context, req Request) (*Response, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, apperr.NewValidation("missing search query")
	}
	if req.MaxResults <= 0 {
		req.MaxResults = DefaultMaxResults
	}
	if req.Depth == "" {
		req.Depth = DepthAdvanced
	}

	var resp Response
	if err := tc.do(ctx, http.MethodPost, "/search", tavilyRequest{APIKey: tc.apiKey, Request: req}, &resp); err != nil {
		return nil, apperr.NewProvider(ProviderName, err)
	}

	return &resp, nil
}

func (tc *TavilyClient) do(ctx context.Context, method, path string, reqData, respData any) error {
	reqDataBytes, err := json.Marshal(reqData)
	if err != nil {
		return err
	}

	reqURL := tc.base.JoinPath(path)
	request, err := http.NewRequestWithContext(ctx, method, reqURL.String(), bytes.NewReader(reqDataBytes))
	if err != nil {
		return err
	}

	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")
	request.Header.Set("Authorization", "Bearer "+tc.apiKey)

	resp, err := tc.http.Do(request)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if err := json.Unmarshal(respBody, respData); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}

var _ Client = (*TavilyClient)(nil)
