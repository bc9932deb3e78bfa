// Package docsum provides the client for the document summarization
// backend. The backend accepts a multipart document upload and returns a
// ready-to-merge summary record; this client only validates the record's
// shape, it does not assign ids or timestamps for document summaries.
package docsum

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"summary-pad/internal/domain/entity"
	"summary-pad/internal/resilience/circuitbreaker"
	"summary-pad/pkg/config"
)

// Multipart field names and the fixed display name for uploaded
// documents. These are part of the backend's wire contract.
const (
	fieldFilename     = "filename"
	fieldUploadedFile = "uploadedFile"
	uploadDisplayName = "User File"
)

// summaryPath is the backend endpoint receiving document uploads.
const summaryPath = "/summary"

// ErrInvalidRecord indicates the backend answered without a well-formed
// summary record.
var ErrInvalidRecord = errors.New("document backend returned an invalid summary record")

// Config holds configuration parameters for the document backend client.
type Config struct {
	// BaseURL is the document backend's base address.
	BaseURL string

	// Timeout is the maximum duration for a single upload round-trip.
	Timeout time.Duration
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL cannot be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	return nil
}

// LoadConfig loads configuration from environment variables.
//
// Environment variables:
//   - DOCSUM_BASE_URL: Backend base address (default: "http://localhost:8800")
//   - DOCSUM_TIMEOUT: Upload timeout (default: 120s)
func LoadConfig() (*Config, error) {
	cfg := &Config{
		BaseURL: config.GetEnvString("DOCSUM_BASE_URL", "http://localhost:8800"),
		Timeout: config.GetEnvDuration("DOCSUM_TIMEOUT", 120*time.Second),
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid document backend configuration: %w", err)
	}
	return cfg, nil
}

// Client uploads documents to the summarization backend.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewClient creates a document backend client from the given configuration.
func NewClient(cfg *Config) *Client {
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		circuitBreaker: circuitbreaker.New(circuitbreaker.DocumentAPIConfig()),
	}
}

// Summarize transmits the document as a multipart payload and returns the
// backend's summary record, validated at the boundary. Server error
// payloads are surfaced in the returned error; malformed records are
// rejected rather than merged.
func (c *Client) Summarize(ctx context.Context, document io.Reader) (entity.SummaryRecord, error) {
	cbResult, err := c.circuitBreaker.Execute(func() (interface{}, error) {
		return c.doSummarize(ctx, document)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("document api circuit breaker open, request rejected",
				slog.String("service", "document-api"),
				slog.String("state", c.circuitBreaker.State().String()))
			return entity.SummaryRecord{}, fmt.Errorf("document backend unavailable: circuit breaker open")
		}
		return entity.SummaryRecord{}, err
	}

	return cbResult.(entity.SummaryRecord), nil
}

// doSummarize performs the actual upload without circuit breaker.
func (c *Client) doSummarize(ctx context.Context, document io.Reader) (entity.SummaryRecord, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField(fieldFilename, uploadDisplayName); err != nil {
		return entity.SummaryRecord{}, fmt.Errorf("write filename field: %w", err)
	}
	part, err := writer.CreateFormFile(fieldUploadedFile, uploadDisplayName)
	if err != nil {
		return entity.SummaryRecord{}, fmt.Errorf("create upload part: %w", err)
	}
	if _, err := io.Copy(part, document); err != nil {
		return entity.SummaryRecord{}, fmt.Errorf("copy document into upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return entity.SummaryRecord{}, fmt.Errorf("finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+summaryPath, &body)
	if err != nil {
		return entity.SummaryRecord{}, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return entity.SummaryRecord{}, fmt.Errorf("document backend request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return entity.SummaryRecord{}, fmt.Errorf("read document backend response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.ErrorContext(ctx, "Document summarization failed",
			slog.Int("status", resp.StatusCode),
			slog.Duration("duration", time.Since(start)))
		if msg := strings.TrimSpace(string(payload)); msg != "" {
			return entity.SummaryRecord{}, fmt.Errorf("document backend error (status %d): %s", resp.StatusCode, msg)
		}
		return entity.SummaryRecord{}, fmt.Errorf("document backend error: status %d", resp.StatusCode)
	}

	var record entity.SummaryRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return entity.SummaryRecord{}, fmt.Errorf("decode document backend response: %w", ErrInvalidRecord)
	}
	if err := record.Validate(); err != nil {
		return entity.SummaryRecord{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	slog.InfoContext(ctx, "Document summarization completed",
		slog.Int64("record_id", record.ID),
		slog.Duration("duration", time.Since(start)))

	return record, nil
}
