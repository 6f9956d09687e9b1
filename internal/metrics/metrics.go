// Package metrics exposes provisioning counters in Prometheus format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for resolved entities.
const (
	OutcomeCreated  = "created"
	OutcomeExisting = "existing"
)

// Recorder owns a private registry so tests and multiple servers in one
// process never collide on registration.
type Recorder struct {
	registry *prometheus.Registry

	entitiesTotal *prometheus.CounterVec
	runsTotal     *prometheus.CounterVec
	runDuration   prometheus.Histogram
	defaultSkips  prometheus.Counter
}

// NewRecorder creates a Recorder with Go runtime and process collectors
// registered alongside the provisioning metrics.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		entitiesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "storeseed",
				Subsystem: "provision",
				Name:      "entities_total",
				Help:      "Entities resolved during provisioning by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "storeseed",
				Subsystem: "provision",
				Name:      "runs_total",
				Help:      "Provisioning runs by result",
			},
			[]string{"result"},
		),
		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "storeseed",
				Subsystem: "provision",
				Name:      "run_duration_seconds",
				Help:      "Duration of provisioning runs in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
			},
		),
		defaultSkips: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "storeseed",
				Subsystem: "provision",
				Name:      "default_store_skipped_total",
				Help:      "Runs that could not resolve a default store id and skipped the assignment",
			},
		),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.entitiesTotal,
		r.runsTotal,
		r.runDuration,
		r.defaultSkips,
	)
	return r
}

// Registry returns the registry backing the recorder.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// EntityResolved counts one entity of kind found or created.
func (r *Recorder) EntityResolved(kind, outcome string) {
	r.entitiesTotal.WithLabelValues(kind, outcome).Inc()
}

// DefaultStoreSkipped counts a run that left the default store unassigned.
func (r *Recorder) DefaultStoreSkipped() {
	r.defaultSkips.Inc()
}

// RunFinished records the result and duration of one provisioning run.
func (r *Recorder) RunFinished(err error, d time.Duration) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	r.runsTotal.WithLabelValues(result).Inc()
	r.runDuration.Observe(d.Seconds())
}
