package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuarded_AppliesTimeout(t *testing.T) {
	slow := ClientFunc(func(ctx context.Context, req Request) (*Response, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	g := NewGuarded("critic", slow, WithTimeout(10*time.Millisecond))

	_, err := g.Complete(context.Background(), Request{Prompt: "p"})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGuarded_PassesThrough(t *testing.T) {
	calls := 0
	next := ClientFunc(func(ctx context.Context, req Request) (*Response, error) {
		calls++
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return &Response{Text: "ok"}, nil
	})
	g := NewGuarded("summary", next, WithLimiter(NewLimiter(0)))

	resp, err := g.Complete(context.Background(), Request{Prompt: "p"})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Equal(t, 1, calls)
}

func TestGuarded_LimiterHonoursCancelledContext(t *testing.T) {
	limiter := NewLimiter(0.001)
	require.True(t, limiter.Allow())
	g := NewGuarded("critic", ClientFunc(func(context.Context, Request) (*Response, error) {
		return nil, errors.New("must not be called")
	}), WithLimiter(limiter))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Complete(ctx, Request{Prompt: "p"})
	assert.Error(t, err)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("LLM_SUMMARY_MODEL", "gpt-json")
	t.Setenv("LLM_CRITIC_MODEL", "")
	t.Setenv("LLM_TIMEOUT", "15s")

	cfg, err := LoadConfigFromEnv()

	require.NoError(t, err)
	assert.Equal(t, "sk-env", cfg.Summary.APIKey)
	assert.Equal(t, "gpt-json", cfg.Summary.Model)
	assert.Equal(t, defaultOpenAIModel, cfg.Critic.Model)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
}

func TestLoadConfigFromEnv_Invalid(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "cohere")
	_, err := LoadConfigFromEnv()
	assert.Error(t, err)

	t.Setenv("LLM_PROVIDER", "anthropic")
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	_, err = LoadConfigFromEnv()
	assert.Error(t, err)
}
