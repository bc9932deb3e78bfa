// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Business metrics track application-specific operations
var (
	// HistoryRecordsTotal tracks the current number of records in the
	// persisted history.
	HistoryRecordsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "history_records_total",
			Help: "Current number of summary records in the persisted history",
		},
	)

	// SummaryRequestsTotal counts pipeline submissions by pipeline and status
	SummaryRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summary_requests_total",
			Help: "Total number of summary pipeline submissions",
		},
		[]string{"pipeline", "status"},
	)

	// SummaryRequestDuration measures end-to-end pipeline duration
	SummaryRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "summary_request_duration_seconds",
			Help:    "End-to-end duration of a summary pipeline submission",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
		[]string{"pipeline"},
	)

	// HistoryDeletesTotal counts user-initiated history deletions
	HistoryDeletesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "history_deletes_total",
			Help: "Total number of records removed from the history",
		},
	)

	// ClipboardCopiesTotal counts clipboard copy attempts by result
	ClipboardCopiesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clipboard_copies_total",
			Help: "Total number of clipboard copy attempts",
		},
		[]string{"result"}, // result: success, failure
	)
)
