// Package entity defines the core domain entities and validation logic for the application.
// It contains the SummaryRecord entity, its validation rules and domain-specific errors.
package entity

import "time"

// SummaryRecord represents one completed summarization result.
// Records are immutable after creation: the only mutation of history is
// appending a new record or deleting an existing one.
type SummaryRecord struct {
	// ID is derived from the capture time (epoch milliseconds) for
	// text-pipeline records, or assigned by the document backend for
	// document-pipeline records.
	ID int64 `json:"id"`

	// Text is the generated summary content. Non-empty on any
	// successfully created record.
	Text string `json:"text"`
}

// NewSummaryRecord creates a record stamped with the given capture time.
// The id carries epoch-millisecond precision, matching the persisted format.
func NewSummaryRecord(capturedAt time.Time, text string) SummaryRecord {
	return SummaryRecord{
		ID:   capturedAt.UnixMilli(),
		Text: text,
	}
}

// Validate checks that the record has a well-formed shape.
// Both pipelines run this at their boundary before a record may be merged,
// so a malformed backend response never reaches the history.
func (r SummaryRecord) Validate() error {
	if r.ID <= 0 {
		return &ValidationError{Field: "id", Message: "must be a positive timestamp-derived integer"}
	}
	if r.Text == "" {
		return &ValidationError{Field: "text", Message: "must not be empty"}
	}
	return nil
}
