package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/aktagon/llmkit/anthropic"
	"github.com/aktagon/llmkit/anthropic/types"
)

const jsonOnlyInstruction = "Respond with a single valid JSON object and nothing else."

type promptFunc func(system, user, schema string, settings types.RequestSettings) (string, error)

// AnthropicClient runs prompts through llmkit. Structured output uses the request schema.
type AnthropicClient struct {
	model       string
	maxTokens   int
	temperature float64
	prompt      promptFunc
}

func NewAnthropicClient(cfg ModelConfig) (*AnthropicClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("missing anthropic api key")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("missing model name")
	}

	apiKey := cfg.APIKey
	return &AnthropicClient{
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		prompt: func(system, user, schema string, settings types.RequestSettings) (string, error) {
			resp, err := anthropic.PromptWithSettings(system, user, schema, apiKey, settings)
			if err != nil {
				return "", err
			}
			if len(resp.Content) == 0 {
				return "", ErrEmptyResponse
			}
			return resp.Content[0].Text, nil
		},
	}, nil
}

// Complete blocks on llmkit, which has no context support; ctx cancellation
// returns early and abandons the in-flight call.
func (c *AnthropicClient) Complete(ctx context.Context, req Request) (*Response, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, fmt.Errorf("missing prompt")
	}

	model := c.model
	if req.Model != "" {
		model = req.Model
	}

	system := req.System
	if req.JSON && req.Schema == "" {
		system = strings.TrimSpace(system + "\n\n" + jsonOnlyInstruction)
	}

	settings := types.RequestSettings{
		Model:       model,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		text, err := c.prompt(system, req.Prompt, req.Schema, settings)
		done <- result{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		if r.err != nil {
			return nil, fmt.Errorf("anthropic prompt failed: %w", r.err)
		}
		if strings.TrimSpace(r.text) == "" {
			return nil, ErrEmptyResponse
		}
		return &Response{Text: r.text, Model: model}, nil
	}
}

var _ Client = (*AnthropicClient)(nil)
