package llm

import (
	"context"
	"errors"
)

// Request is a single prompt to a language model.
type Request struct {
	// Model overrides the client default when set.
	Model  string
	System string
	Prompt string

	// JSON constrains the answer to a single JSON object.
	JSON bool
	// Schema is an optional JSON schema used by backends that support structured output.
	Schema string
}

type Response struct {
	Text  string
	Model string
}

type Client interface {
	Complete(ctx context.Context, req Request) (*Response, error)
}

var ErrEmptyResponse = errors.New("model returned an empty response")

// ClientFunc adapts a function to Client.
type ClientFunc func(ctx context.Context, req Request) (*Response, error)

func (f ClientFunc) Complete(ctx context.Context, req Request) (*Response, error) {
	return f(ctx, req)
}
