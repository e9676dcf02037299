// Package metrics defines the Prometheus collectors for the likestats
// service. Collectors register themselves on the default registry via
// promauto; the HTTP layer exposes them at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// QueriesTotal counts finished stats queries by terminal status
	// (ok, partial, not_found, forbidden).
	QueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "likestats_queries_total",
		Help: "Total number of stats queries by terminal status",
	}, []string{"status"})

	// PagesFetchedTotal counts successfully fetched upstream pages.
	PagesFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "likestats_pages_fetched_total",
		Help: "Total number of liked-post pages fetched from the upstream API",
	})

	// RecordsDiscardedTotal counts malformed items skipped during
	// normalization.
	RecordsDiscardedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "likestats_records_discarded_total",
		Help: "Total number of malformed liked-post items skipped",
	})

	// TerminationsTotal counts pagination terminations by reason. The
	// reasons (end_of_data, window_exit, no_cursor, cursor_stalled,
	// rate_limited, retry_exhausted, upstream_denied) are kept distinct so
	// operators can tell end-of-data from window-exit from a stalled cursor.
	TerminationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "likestats_terminations_total",
		Help: "Total number of pagination terminations by reason",
	}, []string{"reason"})

	// RetriesTotal counts retry attempts against the upstream API.
	RetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "likestats_retries_total",
		Help: "Total number of retry attempts against the upstream API",
	})

	// UpstreamRequestDuration observes upstream request latency.
	UpstreamRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "likestats_upstream_request_duration_seconds",
		Help:    "Upstream API request duration in seconds",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	})
)
