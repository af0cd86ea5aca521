package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "personrefresh"

// Batch results recorded by ObserveBatch.
const (
	BatchCompleted = "completed"
	BatchFailed    = "failed"
	BatchSkipped   = "skipped"
	BatchAborted   = "aborted"
)

// RefreshMetrics is safe to use through a nil pointer; every method is then a no-op.
type RefreshMetrics struct {
	outcomes       *prometheus.CounterVec
	updateDuration *prometheus.HistogramVec
	candidates     prometheus.Gauge
	batches        *prometheus.CounterVec
	lastBatch      prometheus.Gauge
}

func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

func NewRefreshMetrics(registerer prometheus.Registerer) *RefreshMetrics {
	m := &RefreshMetrics{
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "person_refresh_outcomes_total",
			Help:      "Per-person refresh outcomes by status.",
		}, []string{"status"}),
		updateDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "person_refresh_duration_seconds",
			Help:      "Time spent fetching, normalizing and saving one person.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"status"}),
		candidates: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "refresh_candidates",
			Help:      "Number of refresh candidates selected by the last batch.",
		}),
		batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refresh_batches_total",
			Help:      "Refresh batches by result.",
		}, []string{"result"}),
		lastBatch: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "refresh_last_batch_timestamp_seconds",
			Help:      "Unix time at which the last batch finished.",
		}),
	}

	registerer.MustRegister(m.outcomes, m.updateDuration, m.candidates, m.batches, m.lastBatch)
	return m
}

func (m *RefreshMetrics) ObserveOutcome(status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.outcomes.WithLabelValues(status).Inc()
	m.updateDuration.WithLabelValues(status).Observe(elapsed.Seconds())
}

func (m *RefreshMetrics) ObserveCandidates(count int) {
	if m == nil {
		return
	}
	m.candidates.Set(float64(count))
}

func (m *RefreshMetrics) ObserveBatch(result string) {
	if m == nil {
		return
	}
	m.batches.WithLabelValues(result).Inc()
	m.lastBatch.SetToCurrentTime()
}

// Batches and Outcomes expose the counters for assertions with testutil.
func (m *RefreshMetrics) Batches(result string) prometheus.Counter {
	return m.batches.WithLabelValues(result)
}

func (m *RefreshMetrics) Outcomes(status string) prometheus.Counter {
	return m.outcomes.WithLabelValues(status)
}
