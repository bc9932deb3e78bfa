package metrics

import "time"

// RecordSummaryRequest records the outcome of one pipeline submission.
// Pipeline should be "text" or "document"; status is derived from success.
func RecordSummaryRequest(pipeline string, success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	SummaryRequestsTotal.WithLabelValues(pipeline, status).Inc()
}

// RecordSummaryRequestDuration records the end-to-end time of one pipeline submission.
func RecordSummaryRequestDuration(pipeline string, duration time.Duration) {
	SummaryRequestDuration.WithLabelValues(pipeline).Observe(duration.Seconds())
}

// UpdateHistoryRecords updates the gauge tracking the history size.
// Called after every load, merge, and delete so the gauge mirrors the
// persisted list.
func UpdateHistoryRecords(count int) {
	HistoryRecordsTotal.Set(float64(count))
}

// RecordHistoryDelete records a user-initiated deletion of a record.
func RecordHistoryDelete() {
	HistoryDeletesTotal.Inc()
}

// RecordClipboardCopy records a clipboard copy attempt.
func RecordClipboardCopy(success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	ClipboardCopiesTotal.WithLabelValues(result).Inc()
}
