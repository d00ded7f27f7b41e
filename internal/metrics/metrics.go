// Package metrics registers the service's Prometheus collectors.
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "earnings_"

var (
	registerOnce sync.Once

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	entriesCreated  prometheus.Counter
	entriesRejected *prometheus.CounterVec
	entriesExported prometheus.Counter
	exportFailures  prometheus.Counter

	rateLimited prometheus.Counter
)

// Init registers all collectors with the default registry. Safe to call more
// than once.
func Init() {
	registerOnce.Do(func() {
		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "HTTP requests by method, path and status",
			},
			[]string{"method", "path", "status"},
		)
		httpLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		)
		entriesCreated = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "entries_created_total",
				Help: "Ledger entries successfully inserted",
			},
		)
		entriesRejected = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "entries_rejected_total",
				Help: "Submissions rejected before persistence, by reason class",
			},
			[]string{"reason"},
		)
		entriesExported = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "entries_exported_total",
				Help: "Ledger entries appended to the export sink",
			},
		)
		exportFailures = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "export_failures_total",
				Help: "Export attempts that failed",
			},
		)
		rateLimited = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "rate_limited_total",
				Help: "Requests rejected by the per-client rate limiter",
			},
		)

		prometheus.MustRegister(
			httpRequests, httpLatency,
			entriesCreated, entriesRejected,
			entriesExported, exportFailures,
			rateLimited,
		)
	})
}

// ObserveRequest records one completed HTTP request.
func ObserveRequest(method, path string, status int, duration time.Duration) {
	if httpRequests == nil {
		return
	}
	httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpLatency.WithLabelValues(method, path).Observe(duration.Seconds())
}

// EntryCreated counts one successful insert.
func EntryCreated() {
	if entriesCreated == nil {
		return
	}
	entriesCreated.Inc()
}

// EntryRejected counts one rejected submission.
func EntryRejected(reason string) {
	if entriesRejected == nil {
		return
	}
	entriesRejected.WithLabelValues(reason).Inc()
}

// EntryExported counts one entry appended to the export sink.
func EntryExported() {
	if entriesExported == nil {
		return
	}
	entriesExported.Inc()
}

// ExportFailed counts one failed export attempt.
func ExportFailed() {
	if exportFailures == nil {
		return
	}
	exportFailures.Inc()
}

// RateLimited counts one request rejected by the rate limiter.
func RateLimited() {
	if rateLimited == nil {
		return
	}
	rateLimited.Inc()
}
