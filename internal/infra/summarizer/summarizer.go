// Package summarizer provides AI-powered text summarization implementations.
// It includes adapters for OpenAI and Claude (Anthropic) APIs with circuit
// breaker protection and comprehensive observability through structured
// logging and Prometheus metrics.
package summarizer

import (
	"context"
	"errors"
)

// Summarizer produces a condensed summary for raw input text.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Sentinel errors the caller may branch on.
var (
	// ErrQuotaExceeded indicates the service reported usage/quota
	// exhaustion. Callers surface this with a distinct user-facing
	// message; every other failure is reported generically.
	ErrQuotaExceeded = errors.New("summarization quota exceeded")

	// ErrMalformedResponse indicates the service answered without the
	// expected completion structure.
	ErrMalformedResponse = errors.New("malformed summarization response")
)
