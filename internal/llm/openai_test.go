package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpenAI(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewOpenAIClient(ModelConfig{
		Provider: ProviderOpenAI,
		APIKey:   "sk-test",
		BaseURL:  srv.URL + "/v1",
		Model:    "gpt-test",
	})
	require.NoError(t, err)
	return client
}

func TestOpenAIClient_Complete_JSONMode(t *testing.T) {
	var got chatRequest
	client := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"model":   "gpt-test",
			"choices": []map[string]any{{"message": map[string]string{"role": "assistant", "content": `{"headline":"x"}`}}},
		})
	})

	resp, err := client.Complete(context.Background(), Request{System: "sys", Prompt: "summarize", JSON: true})

	require.NoError(t, err)
	assert.Equal(t, `{"headline":"x"}`, resp.Text)
	assert.Equal(t, "gpt-test", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	require.NotNil(t, got.ResponseFormat)
	assert.Equal(t, "json_object", got.ResponseFormat.Type)
}

func TestOpenAIClient_Complete_ModelOverrideAndPlainText(t *testing.T) {
	var got chatRequest
	client := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"YES"}}]}`))
	})

	resp, err := client.Complete(context.Background(), Request{Prompt: "validate", Model: "gpt-other"})

	require.NoError(t, err)
	assert.Equal(t, "YES", resp.Text)
	assert.Equal(t, "gpt-other", got.Model)
	assert.Nil(t, got.ResponseFormat)
	assert.Len(t, got.Messages, 1)
}

func TestOpenAIClient_Complete_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "non 200", status: http.StatusTooManyRequests, body: `{"error":"rate"}`, wantErr: "unexpected status code: 429"},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`, wantErr: ErrEmptyResponse.Error()},
		{name: "bad json", status: http.StatusOK, body: `not-json`, wantErr: "unmarshal response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.Complete(context.Background(), Request{Prompt: "p"})

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestOpenAIClient_Complete_RejectsEmptyPrompt(t *testing.T) {
	client := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := client.Complete(context.Background(), Request{Prompt: "  "})
	assert.Error(t, err)
}
