package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder collects editor metrics. A nil *Recorder records nothing.
type Recorder struct {
	registry          *prometheus.Registry
	eventsPosted      *prometheus.CounterVec
	eventsProcessed   *prometheus.CounterVec
	eventsCoalesced   prometheus.Counter
	transformDuration *prometheus.HistogramVec
}

func New() *Recorder {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Recorder{
		registry: registry,
		eventsPosted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "imgedit_events_posted_total",
			Help: "Input events posted to the session queue by kind.",
		}, []string{"kind"}),
		eventsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "imgedit_events_processed_total",
			Help: "Input events processed by the session loop by kind.",
		}, []string{"kind"}),
		eventsCoalesced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "imgedit_events_coalesced_total",
			Help: "Motion events dropped because a newer motion was queued behind them.",
		}),
		transformDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "imgedit_transform_duration_seconds",
			Help:    "Wall time of each pixel transform.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
		}, []string{"op"}),
	}

	registry.MustRegister(
		r.eventsPosted,
		r.eventsProcessed,
		r.eventsCoalesced,
		r.transformDuration,
	)
	return r
}

func (r *Recorder) Posted(kind string) {
	if r == nil {
		return
	}
	r.eventsPosted.WithLabelValues(kind).Inc()
}

func (r *Recorder) Processed(kind string) {
	if r == nil {
		return
	}
	r.eventsProcessed.WithLabelValues(kind).Inc()
}

func (r *Recorder) Coalesced(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.eventsCoalesced.Add(float64(n))
}

func (r *Recorder) Transform(op string, cost time.Duration) {
	if r == nil {
		return
	}
	r.transformDuration.WithLabelValues(op).Observe(cost.Seconds())
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
