package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sony/gobreaker"

	"summary-pad/internal/resilience/circuitbreaker"
	"summary-pad/pkg/config"
)

// ClaudeConfig holds configuration parameters for the Claude summarizer.
// Configuration is loaded from environment variables with fallback to defaults.
type ClaudeConfig struct {
	// Model is the Claude API model identifier to use for summarization.
	Model string

	// Timeout is the maximum duration for a single summarization API call.
	Timeout time.Duration
}

// LoadClaudeConfig loads configuration from environment variables.
//
// Environment variables:
//   - SUMMARIZER_CLAUDE_MODEL: Model identifier (default: claude-sonnet-4-5)
//   - SUMMARIZER_TIMEOUT: Per-call timeout (default: 60s)
func LoadClaudeConfig() ClaudeConfig {
	return ClaudeConfig{
		Model:   config.GetEnvString("SUMMARIZER_CLAUDE_MODEL", string(anthropic.ModelClaudeSonnet4_5_20250929)),
		Timeout: config.GetEnvDuration("SUMMARIZER_TIMEOUT", 60*time.Second),
	}
}

// Claude implements the Summarizer interface using Anthropic's Claude API.
// It is the drop-in alternative to the OpenAI adapter, selected by
// configuration, with the same circuit breaker protection and metrics.
type Claude struct {
	client          anthropic.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	config          ClaudeConfig
	metricsRecorder SummaryMetricsRecorder
}

// NewClaude creates a new Claude summarizer with the given API key.
func NewClaude(apiKey string) *Claude {
	cfg := LoadClaudeConfig()

	slog.Info("Initialized Claude summarizer with configuration",
		slog.String("model", cfg.Model),
		slog.Duration("timeout", cfg.Timeout))

	return &Claude{
		client:          anthropic.NewClient(option.WithAPIKey(apiKey)),
		circuitBreaker:  circuitbreaker.New(circuitbreaker.ClaudeAPIConfig()),
		config:          cfg,
		metricsRecorder: NewPrometheusSummaryMetrics(),
	}
}

// Summarize generates a condensed summary of the given text using Claude.
func (c *Claude) Summarize(ctx context.Context, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	cbResult, err := c.circuitBreaker.Execute(func() (interface{}, error) {
		return c.doSummarize(ctx, text)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("claude api circuit breaker open, request rejected",
				slog.String("service", "claude-api"),
				slog.String("state", c.circuitBreaker.State().String()))
			return "", fmt.Errorf("claude api unavailable: circuit breaker open")
		}
		return "", err
	}

	return cbResult.(string), nil
}

// doSummarize performs the actual API call without circuit breaker.
func (c *Claude) doSummarize(ctx context.Context, inputText string) (string, error) {
	truncated, wasTruncated := truncateInput(inputText)
	if wasTruncated {
		slog.Warn("text truncated for claude api",
			slog.Int("original_length", len(inputText)),
			slog.Int("truncated_length", len(truncated)))
	}

	prompt := buildPrompt(truncated)

	slog.InfoContext(ctx, "Starting summarization",
		slog.String("model", c.config.Model),
		slog.Int("input_length", len(truncated)))

	start := time.Now()

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.config.Model),
		MaxTokens:   int64(defaultMaxTokens),
		Temperature: anthropic.Float(defaultTemperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(prompt),
			),
		},
	})

	duration := time.Since(start)

	if err != nil {
		c.metricsRecorder.RecordFailure("api_error")
		slog.ErrorContext(ctx, "Summarization failed",
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		if strings.Contains(err.Error(), quotaMarker) {
			return "", fmt.Errorf("claude api quota exhausted: %w", ErrQuotaExceeded)
		}
		return "", fmt.Errorf("claude api error: %w", err)
	}

	if len(message.Content) == 0 {
		c.metricsRecorder.RecordFailure("empty_response")
		slog.ErrorContext(ctx, "Claude API returned empty response",
			slog.Duration("duration", duration))
		return "", fmt.Errorf("claude api returned no content: %w", ErrMalformedResponse)
	}

	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		c.metricsRecorder.RecordFailure("unexpected_content")
		slog.ErrorContext(ctx, "Claude API returned unexpected response type",
			slog.Duration("duration", duration))
		return "", fmt.Errorf("claude api returned unexpected content type: %w", ErrMalformedResponse)
	}

	summary := textBlock.Text
	if summary == "" {
		c.metricsRecorder.RecordFailure("empty_completion")
		return "", fmt.Errorf("claude api returned empty completion: %w", ErrMalformedResponse)
	}

	slog.InfoContext(ctx, "Summarization completed",
		slog.Int("summary_length", len([]rune(summary))),
		slog.Duration("duration", duration))

	c.metricsRecorder.RecordLength(len([]rune(summary)))
	c.metricsRecorder.RecordDuration(duration)

	return summary, nil
}
