// Package metrics defines Prometheus metrics for neonpress.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "neonpress_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "neonpress_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "neonpress_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	EmbeddingRequests = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "neonpress_embedding_requests_total",
			Help: "Total embedding provider requests",
		},
	)

	BackfillRuns = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "neonpress_backfill_runs_total",
			Help: "Total embedding backfill passes started",
		},
	)

	WSConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "neonpress_websocket_connections",
			Help: "Active WebSocket connections",
		},
	)

	PostCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "neonpress_posts_total",
			Help: "Total post count",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		EmbeddingRequests, BackfillRuns,
		WSConnections, PostCount,
	)
}
