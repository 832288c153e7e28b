package generation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeServer(t *testing.T, status int, body any, seen *openai.ChatCompletionRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}
		if seen != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(seen))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIGenerator_Generate(t *testing.T) {
	var seen openai.ChatCompletionRequest
	srv := newFakeServer(t, http.StatusOK, map[string]any{
		"model": "gpt-4o-mini",
		"choices": []map[string]any{
			{"index": 0, "message": map[string]any{"role": "assistant", "content": "\n  Photosynthesis turns light into sugar.  \n"}},
		},
	}, &seen)

	gen := NewOpenAIGenerator(Config{APIKey: "test", BaseURL: srv.URL}, zerolog.Nop())
	out, err := gen.Generate(context.Background(), "photosynthesis")

	require.NoError(t, err)
	assert.Equal(t, "Photosynthesis turns light into sugar.", out)
	assert.Equal(t, DefaultModel, seen.Model)
	assert.Equal(t, DefaultMaxTokens, seen.MaxTokens)
	require.Len(t, seen.Messages, 1)
	assert.Equal(t, openai.ChatMessageRoleUser, seen.Messages[0].Role)
	assert.Equal(t, "photosynthesis", seen.Messages[0].Content)
}

func TestOpenAIGenerator_APIError(t *testing.T) {
	srv := newFakeServer(t, http.StatusTooManyRequests, map[string]any{
		"error": map[string]any{"message": "rate limited", "type": "requests", "code": "rate_limit_exceeded"},
	}, nil)

	gen := NewOpenAIGenerator(Config{APIKey: "test", BaseURL: srv.URL}, zerolog.Nop())
	_, err := gen.Generate(context.Background(), "photosynthesis")

	require.Error(t, err)
	var apiErr *openai.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.HTTPStatusCode)
}

func TestOpenAIGenerator_NoChoices(t *testing.T) {
	srv := newFakeServer(t, http.StatusOK, map[string]any{"choices": []any{}}, nil)

	gen := NewOpenAIGenerator(Config{APIKey: "test", BaseURL: srv.URL}, zerolog.Nop())
	_, err := gen.Generate(context.Background(), "photosynthesis")

	assert.ErrorIs(t, err, errNoChoices)
}
