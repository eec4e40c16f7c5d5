package openrouter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-assistant/internal/core/ai/provider"
	"recipe-assistant/internal/infrastructure/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(&config.OpenRouterConfig{
		APIKey:    "sk-test",
		BaseURL:   srv.URL,
		Model:     "test/model",
		MaxTokens: 512,
		Timeout:   5 * time.Second,
	})
}

func TestGenerate_Success(t *testing.T) {
	var got chatRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"  # Soup\n"}}],"usage":{"total_tokens":42}}`))
	})

	resp, err := client.Generate(context.Background(), provider.NewRecipeRequest("make soup", 0, 0.5))
	require.NoError(t, err)

	assert.Equal(t, "# Soup", resp.Content)
	assert.Equal(t, 42, resp.Usage.TotalTokens)
	assert.Equal(t, "test/model", got.Model)
	assert.Equal(t, 512, got.MaxTokens)
	require.NotEmpty(t, got.Messages)
	assert.Equal(t, "make soup", got.Messages[len(got.Messages)-1].Content)
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		errMsg string
	}{
		{"upstream error", http.StatusTooManyRequests, `{"error":{"message":"rate limited"}}`, "rate limited"},
		{"no choices", http.StatusOK, `{"choices":[]}`, "no choices"},
		{"empty content", http.StatusOK, `{"choices":[{"message":{"content":"   "}}]}`, "empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.Generate(context.Background(), provider.NewRecipeRequest("soup", 100, 0.5))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestGetModel(t *testing.T) {
	client := NewClient(&config.OpenRouterConfig{Model: "a/b"})
	assert.Equal(t, "a/b", client.GetModel())
}
