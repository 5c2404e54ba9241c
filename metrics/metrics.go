// Package metrics exposes Prometheus counters for the object store.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the store's collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	bytesIn         prometheus.Counter
	bytesOut        prometheus.Counter
}

// New registers the store's collectors under namespace, together with the
// standard Go runtime and process collectors.
func New(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Requests handled, by operation and result status.",
		}, []string{"op", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Time spent handling a request, by operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		bytesIn: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "object_bytes_written_total",
			Help:      "Object bytes received and stored.",
		}),
		bytesOut: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "object_bytes_read_total",
			Help:      "Object bytes sent to clients.",
		}),
	}

	m.registry.MustRegister(
		m.requests,
		m.requestDuration,
		m.bytesIn,
		m.bytesOut,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest records one handled request.
func (m *Metrics) ObserveRequest(op, status string, d time.Duration) {
	m.requests.WithLabelValues(op, status).Inc()
	m.requestDuration.WithLabelValues(op).Observe(d.Seconds())
}

// AddBytesIn counts stored object bytes.
func (m *Metrics) AddBytesIn(n int64) {
	if n > 0 {
		m.bytesIn.Add(float64(n))
	}
}

// AddBytesOut counts object bytes served.
func (m *Metrics) AddBytesOut(n int64) {
	if n > 0 {
		m.bytesOut.Add(float64(n))
	}
}
