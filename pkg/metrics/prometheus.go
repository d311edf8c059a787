package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	estimations  *prometheus.CounterVec
	fallbacks    *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	shotDuration prometheus.Histogram
	batchSize    prometheus.Histogram
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		estimations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qamp_estimations_total",
				Help: "Total number of per-instrument estimations by method",
			},
			[]string{"method"},
		),
		fallbacks: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qamp_fallbacks_total",
				Help: "Total number of quantum-path failures recovered classically",
			},
			[]string{"reason"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qamp_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		shotDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "qamp_shot_simulation_duration_seconds",
				Help:    "Duration of shot simulation per instrument",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
		),
		batchSize: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "qamp_batch_instruments",
				Help:    "Instruments per estimation batch",
				Buckets: []float64{1, 2, 5, 10, 20, 50},
			},
		),
	}
}

// RecordEstimation records one completed per-instrument estimation.
func (r *Recorder) RecordEstimation(method string) {
	r.estimations.WithLabelValues(method).Inc()
}

// RecordFallback records a quantum-path failure recovered by fallback.
func (r *Recorder) RecordFallback(reason string) {
	r.fallbacks.WithLabelValues(reason).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordShotDuration records shot simulation latency in seconds.
func (r *Recorder) RecordShotDuration(seconds float64) {
	r.shotDuration.Observe(seconds)
}

// RecordBatchSize records the instrument count of one batch.
func (r *Recorder) RecordBatchSize(n int) {
	r.batchSize.Observe(float64(n))
}
