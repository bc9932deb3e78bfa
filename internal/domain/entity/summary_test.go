package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSummaryRecord(t *testing.T) {
	capturedAt := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	record := NewSummaryRecord(capturedAt, "Hi.")

	assert.Equal(t, capturedAt.UnixMilli(), record.ID)
	assert.Equal(t, "Hi.", record.Text)
}

func TestSummaryRecord_Validate(t *testing.T) {
	tests := []struct {
		name      string
		record    SummaryRecord
		wantErr   bool
		wantField string
	}{
		{
			name:    "valid record",
			record:  SummaryRecord{ID: 1700000000000, Text: "A short summary."},
			wantErr: false,
		},
		{
			name:      "zero id",
			record:    SummaryRecord{ID: 0, Text: "text"},
			wantErr:   true,
			wantField: "id",
		},
		{
			name:      "negative id",
			record:    SummaryRecord{ID: -5, Text: "text"},
			wantErr:   true,
			wantField: "id",
		},
		{
			name:      "empty text",
			record:    SummaryRecord{ID: 1700000000000, Text: ""},
			wantErr:   true,
			wantField: "text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}

// The persisted history is a JSON array of {id, text} objects; the wire
// field names are part of the stored format and must not drift.
func TestSummaryRecord_JSONShape(t *testing.T) {
	record := SummaryRecord{ID: 1700000000000, Text: "Hi."}

	raw, err := json.Marshal(record)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1700000000000,"text":"Hi."}`, string(raw))

	var decoded SummaryRecord
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, record, decoded)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Field: "text", Message: "must not be empty"}
	assert.Equal(t, "validation error on field 'text': must not be empty", err.Error())
}
