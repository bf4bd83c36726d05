package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds all Prometheus metrics for the API
type Metrics struct {
	// HTTP request metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight *prometheus.GaugeVec

	// Format conversion metrics
	conversionsTotal   *prometheus.CounterVec
	conversionDuration *prometheus.HistogramVec

	// Comparison metrics
	comparisonsTotal *prometheus.CounterVec

	// Archive operation metrics
	archiveOperationsTotal *prometheus.CounterVec
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics() *Metrics {
	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txfile_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "txfile_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		httpRequestsInFlight: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "txfile_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method", "endpoint"},
		),

		conversionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txfile_conversions_total",
				Help: "Total number of format conversions",
			},
			[]string{"from", "to", "status"},
		),

		conversionDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "txfile_conversion_duration_seconds",
				Help:    "Format conversion duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"from", "to"},
		),

		comparisonsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txfile_comparisons_total",
				Help: "Total number of file comparisons",
			},
			[]string{"verdict"},
		),

		archiveOperationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txfile_archive_operations_total",
				Help: "Total number of archive operations",
			},
			[]string{"operation", "status"},
		),
	}
}

// RecordConversion records one format conversion
func (m *Metrics) RecordConversion(from, to string, success bool, duration time.Duration) {
	status := statusSuccess
	if !success {
		status = statusError
	}
	m.conversionsTotal.WithLabelValues(from, to, status).Inc()
	m.conversionDuration.WithLabelValues(from, to).Observe(duration.Seconds())
}

// RecordComparison records one comparison outcome
func (m *Metrics) RecordComparison(verdict string) {
	m.comparisonsTotal.WithLabelValues(verdict).Inc()
}

// RecordArchiveOperation records an archive operation
func (m *Metrics) RecordArchiveOperation(operation string, success bool) {
	status := statusSuccess
	if !success {
		status = statusError
	}
	m.archiveOperationsTotal.WithLabelValues(operation, status).Inc()
}

// InstrumentHandler instruments an HTTP handler with metrics
func (m *Metrics) InstrumentHandler(method, endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	if m == nil {
		return handler
	}
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		gauge := m.httpRequestsInFlight.WithLabelValues(method, endpoint)
		gauge.Inc()
		defer gauge.Dec()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		handler(rw, r)

		duration := time.Since(start)
		m.httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
