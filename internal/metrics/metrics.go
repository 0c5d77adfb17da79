// Package metrics exposes the dashboard's Prometheus collectors. It owns its
// registry so tests and multiple servers in one process never collide on the
// default one.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the set of collectors the service reports to.
type Recorder struct {
	reg *prometheus.Registry

	widgets      *prometheus.CounterVec   // dashboard_widgets_total
	loads        *prometheus.CounterVec   // dashboard_dataset_loads_total
	loadDuration *prometheus.HistogramVec // dashboard_dataset_load_seconds
	cacheHits    prometheus.Counter       // dashboard_dataset_cache_hits_total
	dropped      *prometheus.CounterVec   // dashboard_categories_dropped_total
}

// New builds a Recorder with its own registry, plus the Go and process
// collectors.
func New() (*Recorder, error) {
	reg := prometheus.NewRegistry()

	widgets := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_widgets_total",
			Help: "Rendered widgets partitioned by kind and result state.",
		},
		[]string{"kind", "state"},
	)
	loads := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_dataset_loads_total",
			Help: "Dataset loads partitioned by dataset, origin and fallback reason.",
		},
		[]string{"dataset", "origin", "reason"},
	)
	loadDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dashboard_dataset_load_seconds",
			Help:    "Time spent loading a dataset, including fallback.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"dataset", "origin"},
	)
	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_dataset_cache_hits_total",
		Help: "Dataset loads served from the in-memory cache.",
	})

	dropped := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_categories_dropped_total",
			Help: "Distinct categories left out of a widget by cardinality bounding.",
		},
		[]string{"kind"},
	)

	for name, c := range map[string]prometheus.Collector{
		"widgets":       widgets,
		"loads":         loads,
		"load duration": loadDuration,
		"cache hits":    cacheHits,
		"dropped":       dropped,
		"go":            collectors.NewGoCollector(),
		"process":       collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("metrics: register %s collector: %w", name, err)
		}
	}

	return &Recorder{
		reg:          reg,
		widgets:      widgets,
		loads:        loads,
		loadDuration: loadDuration,
		cacheHits:    cacheHits,
		dropped:      dropped,
	}, nil
}

// Widget counts one rendered widget.
func (r *Recorder) Widget(kind, state string) {
	if r == nil {
		return
	}
	r.widgets.WithLabelValues(kind, state).Inc()
}

// Load records a dataset load. reason is empty when no fallback happened.
func (r *Recorder) Load(dataset, origin, reason string, took time.Duration) {
	if r == nil {
		return
	}
	if reason == "" {
		reason = "none"
	}
	r.loads.WithLabelValues(dataset, origin, reason).Inc()
	r.loadDuration.WithLabelValues(dataset, origin).Observe(took.Seconds())
}

// CacheHit counts a dataset served from cache.
func (r *Recorder) CacheHit() {
	if r == nil {
		return
	}
	r.cacheHits.Inc()
}

// Dropped adds n categories cut from a widget of the given kind.
func (r *Recorder) Dropped(kind string, n int) {
	if r == nil || n <= 0 {
		return
	}
	r.dropped.WithLabelValues(kind).Add(float64(n))
}

// Registry returns the underlying registry, mainly for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.reg
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}
