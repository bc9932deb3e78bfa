package summary

import "errors"

// Sentinel errors callers branch on when surfacing failures.
var (
	// ErrRequestInFlight indicates a pipeline is already awaiting its
	// external service. At most one request may be outstanding.
	ErrRequestInFlight = errors.New("a summarization request is already in flight")

	// ErrAPIKeyMissing indicates the text summarization credential is not
	// configured. The text pipeline fails fast without a network call;
	// the document pipeline is unaffected.
	ErrAPIKeyMissing = errors.New("text summarization API key is not configured")

	// ErrEmptyText indicates the caller submitted empty input text.
	ErrEmptyText = errors.New("input text is empty")

	// ErrNoDocument indicates no document was supplied to the document pipeline.
	ErrNoDocument = errors.New("no document supplied")
)
