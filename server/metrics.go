package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "oasdocs"

// metrics holds the server's collectors on a private registry, so several
// servers (and tests) never collide on the global one.
type metrics struct {
	registry *prometheus.Registry

	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	reloads   *prometheus.CounterVec
	throttled prometheus.Counter
	renders   prometheus.Counter
	endpoints prometheus.Gauge
	schemas   prometheus.Gauge
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "document_reloads_total",
			Help:      "Document loads by result (ok or error).",
		}, []string{"result"}),
		throttled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_throttled_total",
			Help:      "Requests rejected by the rate limiter.",
		}),
		renders: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "page_renders_total",
			Help:      "Documentation pages rendered.",
		}),
		endpoints: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "document_operations",
			Help:      "Operations in the currently served document.",
		}),
		schemas: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "document_schemas",
			Help:      "Component schemas in the currently served document.",
		}),
	}
	m.registry.MustRegister(
		m.requests, m.duration, m.reloads, m.throttled, m.renders, m.endpoints, m.schemas,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *metrics) observeRequest(route string, code int, d time.Duration) {
	m.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.duration.WithLabelValues(route).Observe(d.Seconds())
}

func (m *metrics) observeLoad(snap *snapshot) {
	if snap.err != nil {
		m.reloads.WithLabelValues("error").Inc()
		m.endpoints.Set(0)
		m.schemas.Set(0)
		return
	}
	m.reloads.WithLabelValues("ok").Inc()
	stats := snap.doc.Stats()
	m.endpoints.Set(float64(stats.OperationCount))
	m.schemas.Set(float64(stats.SchemaCount))
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
