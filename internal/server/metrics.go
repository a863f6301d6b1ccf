package server

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/fetchview/internal/fetch"
)

const namespace = "fetchview"

// Metrics holds the Prometheus collectors for fetch activity and for the
// metrics endpoint itself. Each instance owns its registry so several can
// coexist in one process.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	activeRequests prometheus.Gauge
	requestsTotal  *prometheus.CounterVec

	fetchesTotal    *prometheus.CounterVec
	fetchesInFlight prometheus.Gauge
	fetchesRejected prometheus.Counter
	fetchDuration   prometheus.Histogram
	responseBytes   prometheus.Histogram
}

// Verify interface compliance.
var _ fetch.Observer = (*Metrics)(nil)

// NewMetrics creates and registers all collectors, including the Go runtime
// and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_requests",
			Help:      "Number of metrics endpoint requests being served.",
		}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Requests served by the metrics endpoint, by path and status code.",
		}, []string{"path", "code"}),
		fetchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetches_total",
			Help:      "Completed fetches by outcome and HTTP status class.",
		}, []string{"outcome", "status_class"}),
		fetchesInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "fetches_in_flight",
			Help:      "1 while a fetch is running, 0 otherwise.",
		}),
		fetchesRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetches_rejected_total",
			Help:      "Submissions dropped because a fetch was already running.",
		}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Wall time from submission to terminal outcome.",
			Buckets:   prometheus.DefBuckets,
		}),
		responseBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "response_bytes",
			Help:      "Size of fully received response bodies.",
			Buckets:   prometheus.ExponentialBuckets(256, 4, 10),
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.activeRequests,
		m.requestsTotal,
		m.fetchesTotal,
		m.fetchesInFlight,
		m.fetchesRejected,
		m.fetchDuration,
		m.responseBytes,
	)

	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	return m
}

// IncrementActiveRequests increments the active requests gauge.
func (m *Metrics) IncrementActiveRequests() { m.activeRequests.Inc() }

// DecrementActiveRequests decrements the active requests gauge.
func (m *Metrics) DecrementActiveRequests() { m.activeRequests.Dec() }

// ObserveRequest counts one served endpoint request.
func (m *Metrics) ObserveRequest(path string, code int) {
	m.requestsTotal.WithLabelValues(path, strconv.Itoa(code)).Inc()
}

// WritePrometheus writes all metrics in the Prometheus exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// FetchStarted marks a fetch as in flight.
func (m *Metrics) FetchStarted(fetch.Request) { m.fetchesInFlight.Set(1) }

// FetchRejected counts a dropped submission.
func (m *Metrics) FetchRejected(fetch.Request) { m.fetchesRejected.Inc() }

// FetchFinished records the terminal outcome of a fetch.
func (m *Metrics) FetchFinished(o fetch.Outcome) {
	m.fetchesInFlight.Set(0)
	m.fetchDuration.Observe(o.Duration.Seconds())

	if o.Kind == fetch.Failure {
		m.fetchesTotal.WithLabelValues(o.Kind.String(), "none").Inc()
		return
	}
	m.fetchesTotal.WithLabelValues(o.Kind.String(), statusClass(o.Response.StatusCode)).Inc()
	m.responseBytes.Observe(float64(len(o.Response.Body)))
}

// statusClass maps 404 to "4xx".
func statusClass(code int) string {
	if code < 100 || code > 599 {
		return "other"
	}
	return strconv.Itoa(code/100) + "xx"
}
