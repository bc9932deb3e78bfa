// Package summary implements the request orchestration over the two
// summarization pipelines. Exactly one pipeline may be active at a time;
// the in-flight state is the sole concurrency-control mechanism, so every
// mutation of the history happens strictly after the previous request
// settled.
package summary

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"summary-pad/internal/domain/entity"
	"summary-pad/internal/history"
	"summary-pad/internal/infra/summarizer"
	"summary-pad/internal/observability/logging"
	"summary-pad/internal/observability/metrics"
	"summary-pad/internal/observability/tracing"
)

// State is the orchestrator's request state.
type State int

const (
	// StateIdle means no pipeline is active.
	StateIdle State = iota

	// StateSubmitting means a pipeline is awaiting its external service.
	StateSubmitting
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// DocumentSummarizer abstracts the document summarization backend.
type DocumentSummarizer interface {
	Summarize(ctx context.Context, document io.Reader) (entity.SummaryRecord, error)
}

// Orchestrator drives one of the two request pipelines per submission and
// hands successful results to the merger. Failures are terminal for that
// single request: no record is created and the persisted history is
// untouched.
type Orchestrator struct {
	mu    sync.Mutex
	state State

	text      summarizer.Summarizer // nil when no credential is configured
	documents DocumentSummarizer
	merger    *history.Merger
	now       func() time.Time
	logger    *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithClock overrides the wall clock used to stamp text-pipeline record ids.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// WithLogger overrides the orchestrator's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = logger }
}

// NewOrchestrator creates an orchestrator. A nil text summarizer models a
// missing credential: text submissions fail fast with ErrAPIKeyMissing
// while document submissions still work.
func NewOrchestrator(text summarizer.Summarizer, documents DocumentSummarizer, merger *history.Merger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		state:     StateIdle,
		text:      text,
		documents: documents,
		merger:    merger,
		now:       time.Now,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// State returns the current request state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// InFlight reports whether a pipeline is currently awaiting its service.
// Callers disable submission controls while this is true.
func (o *Orchestrator) InFlight() bool {
	return o.State() == StateSubmitting
}

// SubmitText runs the text pipeline: one request carrying the input text
// plus the fixed instructional suffix, merged into history on success.
// Quota exhaustion surfaces as summarizer.ErrQuotaExceeded; every other
// failure is generic.
func (o *Orchestrator) SubmitText(ctx context.Context, text string) (entity.SummaryRecord, error) {
	// Caller-side guard: empty input never starts the pipeline.
	if strings.TrimSpace(text) == "" {
		return entity.SummaryRecord{}, ErrEmptyText
	}

	if err := o.begin(); err != nil {
		return entity.SummaryRecord{}, err
	}
	defer o.end()

	logger := logging.WithSubmissionID(o.logger, uuid.NewString())

	// Credential precondition, checked before any network activity.
	if o.text == nil {
		logger.Error("text submission rejected, API key missing")
		metrics.RecordSummaryRequest("text", false)
		return entity.SummaryRecord{}, ErrAPIKeyMissing
	}

	ctx, span := tracing.GetTracer().Start(ctx, "pipeline.text")
	defer span.End()

	logger.Info("text pipeline started", slog.Int("input_length", len(text)))
	start := time.Now()

	summaryText, err := o.text.Summarize(ctx, text)

	metrics.RecordSummaryRequestDuration("text", time.Since(start))
	if err != nil {
		span.RecordError(err)
		metrics.RecordSummaryRequest("text", false)
		logger.Error("text pipeline failed", slog.String("error", err.Error()))
		return entity.SummaryRecord{}, err
	}

	record := entity.NewSummaryRecord(o.now(), summaryText)
	updated, err := o.merger.Append(record)
	if err != nil {
		span.RecordError(err)
		metrics.RecordSummaryRequest("text", false)
		logger.Error("text pipeline result could not be merged", slog.String("error", err.Error()))
		return entity.SummaryRecord{}, err
	}

	metrics.RecordSummaryRequest("text", true)
	logger.Info("text pipeline completed",
		slog.Int64("record_id", record.ID),
		slog.Int("history_size", len(updated)))
	return record, nil
}

// SubmitDocument runs the document pipeline: the document is uploaded as
// a multipart payload and the backend's ready-made record is merged
// as-is. The backend decides the record's id and text for document
// summaries.
func (o *Orchestrator) SubmitDocument(ctx context.Context, document io.Reader) (entity.SummaryRecord, error) {
	if err := o.begin(); err != nil {
		return entity.SummaryRecord{}, err
	}
	defer o.end()

	logger := logging.WithSubmissionID(o.logger, uuid.NewString())

	if document == nil {
		logger.Error("document submission rejected, no document supplied")
		metrics.RecordSummaryRequest("document", false)
		return entity.SummaryRecord{}, ErrNoDocument
	}

	ctx, span := tracing.GetTracer().Start(ctx, "pipeline.document")
	defer span.End()

	logger.Info("document pipeline started")
	start := time.Now()

	record, err := o.documents.Summarize(ctx, document)

	metrics.RecordSummaryRequestDuration("document", time.Since(start))
	if err != nil {
		span.RecordError(err)
		metrics.RecordSummaryRequest("document", false)
		logger.Error("document pipeline failed", slog.String("error", err.Error()))
		return entity.SummaryRecord{}, err
	}

	updated, err := o.merger.Append(record)
	if err != nil {
		span.RecordError(err)
		metrics.RecordSummaryRequest("document", false)
		logger.Error("document pipeline result could not be merged", slog.String("error", err.Error()))
		return entity.SummaryRecord{}, err
	}

	metrics.RecordSummaryRequest("document", true)
	logger.Info("document pipeline completed",
		slog.Int64("record_id", record.ID),
		slog.Int("history_size", len(updated)))
	return record, nil
}

// begin transitions Idle -> Submitting, rejecting a second submission
// while one is outstanding.
func (o *Orchestrator) begin() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != StateIdle {
		return ErrRequestInFlight
	}
	o.state = StateSubmitting
	return nil
}

// end transitions back to Idle. Deferred by both pipelines so the flag
// clears on every path, success or failure.
func (o *Orchestrator) end() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state = StateIdle
}
