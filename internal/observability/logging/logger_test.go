package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	logger := NewLogger()
	require.NotNil(t, logger)
}

func TestNewTextLogger(t *testing.T) {
	logger := NewTextLogger()
	require.NotNil(t, logger)
}

func TestWithSubmissionID(t *testing.T) {
	base := NewLogger()

	withID := WithSubmissionID(base, "abc-123")
	assert.NotSame(t, base, withID)

	// Empty id keeps the logger untouched.
	assert.Same(t, base, WithSubmissionID(base, ""))
}

func TestLoggerContextRoundTrip(t *testing.T) {
	logger := slog.Default().With("component", "test")

	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
}

func TestFromContext_Missing(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))
}
