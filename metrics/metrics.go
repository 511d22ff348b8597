// Package metrics exposes Prometheus collectors for the HTTP surface and the
// domain events worth counting (ships, lesson completions, generation jobs).
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "orca"

// Metrics owns a private registry so several instances can coexist in tests.
// All record methods are safe on a nil receiver.
type Metrics struct {
	Registry *prometheus.Registry

	httpInFlight   prometheus.Gauge
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	appsShipped    prometheus.Counter
	nodesCompleted prometheus.Counter
	generationJobs *prometheus.CounterVec
	notifications  *prometheus.CounterVec
}

// New creates and registers every collector
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}, []string{"method", "path"}),
		appsShipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "portfolio",
			Name:      "apps_shipped_total",
			Help:      "Apps moved to Live.",
		}),
		nodesCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "curriculum",
			Name:      "nodes_completed_total",
			Help:      "Curriculum nodes completed.",
		}),
		generationJobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "concepts",
			Name:      "generation_jobs_total",
			Help:      "Concept generation jobs by mode and final status.",
		}, []string{"mode", "status"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notify",
			Name:      "notifications_total",
			Help:      "Notifications appended to the feed by sender.",
		}, []string{"sender"}),
	}

	m.Registry.MustRegister(
		m.httpInFlight,
		m.httpRequests,
		m.httpDuration,
		m.appsShipped,
		m.nodesCompleted,
		m.generationJobs,
		m.notifications,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
	return m
}

// Handler exposes the registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RequestStarted() {
	if m == nil {
		return
	}
	m.httpInFlight.Inc()
}

// RecordHTTPRequest closes out a request started with RequestStarted
func (m *Metrics) RecordHTTPRequest(method, path, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.httpInFlight.Dec()
	m.httpRequests.WithLabelValues(method, path, status).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

func (m *Metrics) AppShipped() {
	if m == nil {
		return
	}
	m.appsShipped.Inc()
}

func (m *Metrics) NodeCompleted() {
	if m == nil {
		return
	}
	m.nodesCompleted.Inc()
}

func (m *Metrics) GenerationJob(mode, status string) {
	if m == nil {
		return
	}
	m.generationJobs.WithLabelValues(mode, status).Inc()
}

func (m *Metrics) Notification(sender string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(sender).Inc()
}
