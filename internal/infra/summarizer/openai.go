package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"summary-pad/internal/resilience/circuitbreaker"
	"summary-pad/pkg/config"
)

// quotaMarker is the marker the OpenAI API puts in error payloads when
// the account's usage quota is exhausted.
const quotaMarker = "insufficient_quota"

// OpenAIConfig holds configuration parameters for the OpenAI summarizer.
// Configuration is loaded from environment variables with fallback to defaults.
type OpenAIConfig struct {
	// Model is the OpenAI API model identifier to use for summarization.
	Model string

	// BaseURL overrides the API endpoint. Empty means the public API.
	// Primarily used to point tests at a local fake.
	BaseURL string

	// Timeout is the maximum duration for a single summarization API call.
	Timeout time.Duration
}

// Validate validates the configuration and returns an error if invalid.
func (c *OpenAIConfig) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("model cannot be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	return nil
}

// LoadOpenAIConfig loads configuration from environment variables.
//
// Environment variables:
//   - SUMMARIZER_MODEL: Model identifier (default: "gpt-3.5-turbo")
//   - SUMMARIZER_BASE_URL: API endpoint override (default: public API)
//   - SUMMARIZER_TIMEOUT: Per-call timeout (default: 60s)
//
// Returns an error if the configuration is invalid (fail-closed behavior).
func LoadOpenAIConfig() (*OpenAIConfig, error) {
	cfg := &OpenAIConfig{
		Model:   config.GetEnvString("SUMMARIZER_MODEL", openai.GPT3Dot5Turbo),
		BaseURL: config.GetEnvString("SUMMARIZER_BASE_URL", ""),
		Timeout: config.GetEnvDuration("SUMMARIZER_TIMEOUT", 60*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid OpenAI configuration: %w", err)
	}
	return cfg, nil
}

// OpenAI implements the Summarizer interface using OpenAI's chat
// completion API. It includes circuit breaker protection and records
// metrics for every call. No automatic retries are performed; a
// submission makes exactly one attempt.
type OpenAI struct {
	client          *openai.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	config          *OpenAIConfig
	metricsRecorder SummaryMetricsRecorder
}

// NewOpenAI creates a new OpenAI summarizer with the given API key.
func NewOpenAI(apiKey string, cfg *OpenAIConfig) *OpenAI {
	clientCfg := openai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	slog.Info("Initialized OpenAI summarizer with configuration",
		slog.String("model", cfg.Model),
		slog.Duration("timeout", cfg.Timeout))

	return &OpenAI{
		client:          openai.NewClientWithConfig(clientCfg),
		circuitBreaker:  circuitbreaker.New(circuitbreaker.OpenAIAPIConfig()),
		config:          cfg,
		metricsRecorder: NewPrometheusSummaryMetrics(),
	}
}

// Summarize generates a condensed summary of the given text.
// Quota exhaustion reported by the service is returned as a wrapped
// ErrQuotaExceeded so the caller can surface a distinct message.
func (o *OpenAI) Summarize(ctx context.Context, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.config.Timeout)
	defer cancel()

	cbResult, err := o.circuitBreaker.Execute(func() (interface{}, error) {
		return o.doSummarize(ctx, text)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("openai api circuit breaker open, request rejected",
				slog.String("service", "openai-api"),
				slog.String("state", o.circuitBreaker.State().String()))
			return "", fmt.Errorf("openai api unavailable: circuit breaker open")
		}
		return "", err
	}

	return cbResult.(string), nil
}

// doSummarize performs the actual API call without circuit breaker.
func (o *OpenAI) doSummarize(ctx context.Context, inputText string) (string, error) {
	truncated, wasTruncated := truncateInput(inputText)
	if wasTruncated {
		slog.Warn("text truncated for openai api",
			slog.Int("original_length", len(inputText)),
			slog.Int("truncated_length", len(truncated)))
	}

	prompt := buildPrompt(truncated)

	slog.InfoContext(ctx, "Starting summarization",
		slog.String("model", o.config.Model),
		slog.Int("input_length", len(truncated)))

	start := time.Now()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.config.Model,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		}},
		Temperature:      defaultTemperature,
		MaxTokens:        defaultMaxTokens,
		TopP:             defaultTopP,
		FrequencyPenalty: defaultFrequencyPenalty,
		PresencePenalty:  defaultPresencePenalty,
	})

	duration := time.Since(start)

	if err != nil {
		o.metricsRecorder.RecordFailure("api_error")
		slog.ErrorContext(ctx, "Summarization failed",
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		if isQuotaExceeded(err) {
			return "", fmt.Errorf("openai api quota exhausted: %w", ErrQuotaExceeded)
		}
		return "", fmt.Errorf("openai api error: %w", err)
	}

	// Safety check to prevent panic on array access.
	if len(resp.Choices) == 0 {
		o.metricsRecorder.RecordFailure("empty_response")
		slog.ErrorContext(ctx, "OpenAI API returned empty response",
			slog.Duration("duration", duration))
		return "", fmt.Errorf("openai api returned no choices: %w", ErrMalformedResponse)
	}

	summary := resp.Choices[0].Message.Content
	if summary == "" {
		o.metricsRecorder.RecordFailure("empty_completion")
		return "", fmt.Errorf("openai api returned empty completion: %w", ErrMalformedResponse)
	}

	slog.InfoContext(ctx, "Summarization completed",
		slog.Int("summary_length", len([]rune(summary))),
		slog.Duration("duration", duration))

	o.metricsRecorder.RecordLength(len([]rune(summary)))
	o.metricsRecorder.RecordDuration(duration)

	return summary, nil
}

// isQuotaExceeded reports whether the error carries the quota-exhaustion
// marker, either in the structured error code or the raw message.
func isQuotaExceeded(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if code, ok := apiErr.Code.(string); ok && code == quotaMarker {
			return true
		}
		if apiErr.Type == quotaMarker {
			return true
		}
		if strings.Contains(apiErr.Message, quotaMarker) {
			return true
		}
	}
	return strings.Contains(err.Error(), quotaMarker)
}
