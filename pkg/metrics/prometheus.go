package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	analyses         *prometheus.CounterVec
	providerRequests *prometheus.CounterVec
	retries          *prometheus.CounterVec
	fallbacks        prometheus.Counter
	latency          *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		analyses: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockanalysis_analyses_total",
				Help: "Total number of analyze requests by outcome",
			},
			[]string{"symbol", "outcome"},
		),
		providerRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockanalysis_provider_requests_total",
				Help: "Total number of fundamentals provider queries",
			},
			[]string{"function", "status"},
		),
		retries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockanalysis_aggregation_retries_total",
				Help: "Total number of aggregation sequence retries",
			},
			[]string{"reason"},
		),
		fallbacks: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "stockanalysis_narrative_fallbacks_total",
				Help: "Total number of narrative generation fallbacks",
			},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockanalysis_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordAnalysis records one analyze call by outcome.
func (r *Recorder) RecordAnalysis(symbol, outcome string) {
	r.analyses.WithLabelValues(symbol, outcome).Inc()
}

// RecordProviderRequest records one provider query.
func (r *Recorder) RecordProviderRequest(function, status string) {
	r.providerRequests.WithLabelValues(function, status).Inc()
}

// RecordRetry records one aggregation retry.
func (r *Recorder) RecordRetry(reason string) {
	r.retries.WithLabelValues(reason).Inc()
}

// RecordNarrativeFallback records one summarizer fallback.
func (r *Recorder) RecordNarrativeFallback() {
	r.fallbacks.Inc()
}

// ObserveDuration records the duration of an operation.
func (r *Recorder) ObserveDuration(operation string, d time.Duration) {
	r.latency.WithLabelValues(operation).Observe(d.Seconds())
}
