// Package metrics provides Prometheus metrics for the recordboard service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Manager owns all Prometheus metrics for the service on a private registry.
type Manager struct {
	registry *prometheus.Registry

	// HTTP performance
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpErrors          *prometheus.CounterVec

	// Store performance
	storeOpDuration *prometheus.HistogramVec
	storeErrors     *prometheus.CounterVec

	// Business state
	recordsTotal prometheus.Gauge
}

// NewManager creates a Manager with all metric families registered on a
// fresh registry.
func NewManager() *Manager {
	reg := prometheus.NewRegistry()
	m := &Manager{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "recordboard",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by endpoint, method, and status code.",
		}, []string{"endpoint", "method", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "recordboard",
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}, []string{"endpoint", "method", "status"}),
		httpErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "recordboard",
			Name:      "http_errors_total",
			Help:      "Total HTTP error responses by endpoint and error type.",
		}, []string{"endpoint", "method", "type"}),
		storeOpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "recordboard",
			Name:      "store_operation_duration_ms",
			Help:      "Document store operation latency in milliseconds.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}, []string{"op"}),
		storeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "recordboard",
			Name:      "store_errors_total",
			Help:      "Total document store failures by operation.",
		}, []string{"op"}),
		recordsTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "recordboard",
			Name:      "records_total",
			Help:      "Number of user records currently stored.",
		}),
	}

	reg.MustRegister(
		m.httpRequests,
		m.httpRequestDuration,
		m.httpErrors,
		m.storeOpDuration,
		m.storeErrors,
		m.recordsTotal,
	)
	return m
}

var defaultManager = NewManager()

// GetRegistry returns the registry backing the default manager, for
// exposition handlers.
func GetRegistry() *prometheus.Registry {
	return defaultManager.registry
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	defaultManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration observes the latency of one HTTP request.
func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	defaultManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
}

// RecordHTTPError counts one HTTP error response.
func RecordHTTPError(endpoint, method, errorType string) {
	defaultManager.httpErrors.WithLabelValues(endpoint, method, errorType).Inc()
}

// ObserveStoreOp observes the latency of a store operation started at start.
// Intended to be deferred at the top of the operation.
func ObserveStoreOp(op string, start time.Time) {
	ms := float64(time.Since(start).Microseconds()) / 1000.0
	defaultManager.storeOpDuration.WithLabelValues(op).Observe(ms)
}

// RecordStoreError counts one store failure.
func RecordStoreError(op string) {
	defaultManager.storeErrors.WithLabelValues(op).Inc()
}

// UpdateRecordsTotal sets the stored-records gauge.
func UpdateRecordsTotal(n int64) {
	defaultManager.recordsTotal.Set(float64(n))
}
