// Package metrics exposes request metrics in Prometheus format.
//
// A Recorder owns its own registry, so several recorders (one per test, for
// example) never collide on collector registration.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouteUnmatched labels requests that did not match any route.
const RouteUnmatched = "unmatched"

// Recorder collects per-request metrics. All methods are safe for
// concurrent use. A nil *Recorder ignores every observation.
type Recorder struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	panics   prometheus.Counter
	timeouts prometheus.Counter
}

// NewRecorder builds a Recorder registered on a fresh registry together with
// the Go runtime and process collectors. namespace prefixes every metric name.
func NewRecorder(namespace string) *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Recorder{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Number of HTTP requests by method, route pattern and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		panics: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "recovered_panics_total",
			Help:      "Number of handler panics converted into 500 responses.",
		}),
		timeouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "timeouts_total",
			Help:      "Number of requests abandoned at the deadline.",
		}),
	}

	reg.MustRegister(r.requests, r.duration, r.panics, r.timeouts)
	return r
}

// ObserveRequest records one finished request. An empty route is reported as
// [RouteUnmatched].
func (r *Recorder) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	if route == "" {
		route = RouteUnmatched
	}

	r.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (r *Recorder) IncPanics() {
	if r == nil {
		return
	}
	r.panics.Inc()
}

func (r *Recorder) IncTimeouts() {
	if r == nil {
		return
	}
	r.timeouts.Inc()
}

// Registry exposes the underlying registry, mainly for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus text exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("# metrics not available\n"))
		})
	}

	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}
