package summarizer_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"summary-pad/internal/infra/summarizer"
)

func testOpenAIConfig(baseURL string) *summarizer.OpenAIConfig {
	return &summarizer.OpenAIConfig{
		Model:   "gpt-3.5-turbo",
		BaseURL: baseURL,
		Timeout: 10 * time.Second,
	}
}

// mockOpenAIServer creates a test HTTP server that simulates the chat
// completions endpoint.
func mockOpenAIServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/chat/completions", handler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func completionResponse(content string) string {
	return `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"choices": [{"index": 0, "message": {"role": "assistant", "content": ` + mustJSON(content) + `}, "finish_reason": "stop"}]
	}`
}

func mustJSON(s string) string {
	raw, _ := json.Marshal(s)
	return string(raw)
}

func TestOpenAI_Summarize_Success(t *testing.T) {
	var gotBody map[string]any

	server := mockOpenAIServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionResponse("Hi.")))
	})

	s := summarizer.NewOpenAI("test-key", testOpenAIConfig(server.URL+"/v1"))

	summary, err := s.Summarize(context.Background(), "Hello world")
	require.NoError(t, err)
	assert.Equal(t, "Hi.", summary)

	// The request carries the fixed instructional suffix and the fixed
	// generation parameters.
	messages := gotBody["messages"].([]any)
	require.Len(t, messages, 1)
	first := messages[0].(map[string]any)
	assert.Equal(t, "user", first["role"])
	assert.Equal(t, "Hello world\n\nTl;dr", first["content"])

	assert.Equal(t, "gpt-3.5-turbo", gotBody["model"])
	assert.InDelta(t, 0.1, gotBody["temperature"].(float64), 0.001)
	assert.InDelta(t, 50, gotBody["max_tokens"].(float64), 0.001)
	assert.InDelta(t, 1, gotBody["top_p"].(float64), 0.001)
	assert.InDelta(t, 0.5, gotBody["presence_penalty"].(float64), 0.001)
}

func TestOpenAI_Summarize_QuotaExceeded(t *testing.T) {
	server := mockOpenAIServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{
			"error": {
				"message": "You exceeded your current quota, please check your plan and billing details.",
				"type": "insufficient_quota",
				"code": "insufficient_quota"
			}
		}`))
	})

	s := summarizer.NewOpenAI("test-key", testOpenAIConfig(server.URL+"/v1"))

	_, err := s.Summarize(context.Background(), "Hello world")
	require.Error(t, err)
	assert.ErrorIs(t, err, summarizer.ErrQuotaExceeded)
}

func TestOpenAI_Summarize_GenericAPIError(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
	}{
		{
			name:       "unauthorized",
			statusCode: http.StatusUnauthorized,
			body:       `{"error": {"message": "Incorrect API key provided", "type": "invalid_request_error", "code": "invalid_api_key"}}`,
		},
		{
			name:       "server error",
			statusCode: http.StatusInternalServerError,
			body:       `{"error": {"message": "Internal server error", "type": "server_error"}}`,
		},
		{
			name:       "rate limited without quota marker",
			statusCode: http.StatusTooManyRequests,
			body:       `{"error": {"message": "Rate limit reached", "type": "rate_limit_error"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := mockOpenAIServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			})

			s := summarizer.NewOpenAI("test-key", testOpenAIConfig(server.URL+"/v1"))

			_, err := s.Summarize(context.Background(), "Hello world")
			require.Error(t, err)
			assert.NotErrorIs(t, err, summarizer.ErrQuotaExceeded,
				"generic failures must not be reported as quota exhaustion")
		})
	}
}

func TestOpenAI_Summarize_EmptyChoices(t *testing.T) {
	server := mockOpenAIServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "chatcmpl-1", "object": "chat.completion", "choices": []}`))
	})

	s := summarizer.NewOpenAI("test-key", testOpenAIConfig(server.URL+"/v1"))

	_, err := s.Summarize(context.Background(), "Hello world")
	require.Error(t, err)
	assert.ErrorIs(t, err, summarizer.ErrMalformedResponse)
}

func TestLoadOpenAIConfig_Defaults(t *testing.T) {
	cfg, err := summarizer.LoadOpenAIConfig()
	require.NoError(t, err)

	assert.Equal(t, "gpt-3.5-turbo", cfg.Model)
	assert.Equal(t, 60*time.Second, cfg.Timeout)
	assert.Empty(t, cfg.BaseURL)
}

func TestOpenAIConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     summarizer.OpenAIConfig
		wantErr bool
	}{
		{
			name:    "valid",
			cfg:     summarizer.OpenAIConfig{Model: "gpt-3.5-turbo", Timeout: time.Minute},
			wantErr: false,
		},
		{
			name:    "missing model",
			cfg:     summarizer.OpenAIConfig{Timeout: time.Minute},
			wantErr: true,
		},
		{
			name:    "non-positive timeout",
			cfg:     summarizer.OpenAIConfig{Model: "gpt-3.5-turbo"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
