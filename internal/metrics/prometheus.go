package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder tracks pipeline activity. Each recorder owns its registry so tests
// can build as many as they like.
type Recorder struct {
	registry        *prometheus.Registry
	analysesTotal   *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	recommendations *prometheus.CounterVec
	latency         prometheus.Histogram
}

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		analysesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "signalbot_analyses_total",
				Help: "Total number of screenshots analyzed",
			},
			[]string{"source"},
		),
		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "signalbot_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"kind"},
		),
		recommendations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "signalbot_recommendations_total",
				Help: "Recommendations handed out, by action",
			},
			[]string{"action"},
		),
		latency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "signalbot_analysis_duration_seconds",
				Help:    "Duration of decode, synthesis and rendering in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
	r.registry.MustRegister(r.analysesTotal, r.errorsTotal, r.recommendations, r.latency)
	return r
}

// Registry is what the /metrics handler gathers from.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) RecordAnalysis(source, action string) {
	if r == nil {
		return
	}
	r.analysesTotal.WithLabelValues(source).Inc()
	r.recommendations.WithLabelValues(action).Inc()
}

func (r *Recorder) RecordError(kind string) {
	if r == nil {
		return
	}
	r.errorsTotal.WithLabelValues(kind).Inc()
}

func (r *Recorder) RecordLatency(seconds float64) {
	if r == nil {
		return
	}
	r.latency.Observe(seconds)
}
