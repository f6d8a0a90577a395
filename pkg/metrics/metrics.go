package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Feed ingestion metrics
	FeedFetchesTotal  *prometheus.CounterVec
	FeedFetchDuration prometheus.Histogram
	RecordsNormalized prometheus.Counter
	RecordsRejected   prometheus.Counter

	// Pipeline metrics
	PipelineQueriesTotal *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),

		FeedFetchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "feed_fetches_total",
				Help: "Total number of feed fetch attempts",
			},
			[]string{"status"},
		),

		FeedFetchDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "feed_fetch_duration_seconds",
				Help:    "Feed fetch duration in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
			},
		),

		RecordsNormalized: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "records_normalized_total",
				Help: "Total number of feed records accepted by normalization",
			},
		),

		RecordsRejected: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "records_rejected_total",
				Help: "Total number of feed records dropped for invalid dates",
			},
		),

		PipelineQueriesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pipeline_queries_total",
				Help: "Total number of pipeline view computations",
			},
			[]string{"view"},
		),
	}
}

// HTTP request metrics
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// Feed fetch outcome metrics
func (m *Metrics) RecordFeedFetch(status string, duration time.Duration) {
	m.FeedFetchesTotal.WithLabelValues(status).Inc()
	m.FeedFetchDuration.Observe(duration.Seconds())
}

// Normalization accept counter
func (m *Metrics) RecordRecordsNormalized(count int) {
	m.RecordsNormalized.Add(float64(count))
}

// Normalization reject counter
func (m *Metrics) RecordRecordsRejected(count int) {
	m.RecordsRejected.Add(float64(count))
}

// Pipeline view computation counter
func (m *Metrics) RecordPipelineQuery(view string) {
	m.PipelineQueriesTotal.WithLabelValues(view).Inc()
}

// HTTP requests in flight counter
func (m *Metrics) IncHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Inc()
}

// HTTP requests in flight counter
func (m *Metrics) DecHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Dec()
}
