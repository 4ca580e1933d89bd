package service

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "glomers"

// Metrics holds the Prometheus collectors of one node. Each Metrics has its
// own registry so that several nodes can live in the same process.
type Metrics struct {
	registry *prometheus.Registry

	frames       *prometheus.CounterVec
	replies      *prometheus.CounterVec
	stepDuration *prometheus.HistogramVec
	errors       *prometheus.CounterVec
	buildInfo    *prometheus.GaugeVec

	startTime time.Time
}

// NewMetrics creates and registers the collectors. version labels the
// glomers_build_info gauge.
func NewMetrics(version string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		frames: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "frames_total",
				Help:      "Total number of frames received, by body type.",
			},
			[]string{"type"},
		),
		replies: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "replies_total",
				Help:      "Total number of replies sent, by body type.",
			},
			[]string{"type"},
		),
		stepDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "step_duration_seconds",
				Help:      "Time spent handling one request.",
				// 10µs .. ~80ms
				Buckets: prometheus.ExponentialBuckets(0.00001, 2, 14),
			},
			[]string{"type"},
		),
		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "errors_total",
				Help:      "Fatal errors, by kind.",
			},
			[]string{"kind"},
		),
		buildInfo: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "build_info",
				Help:      "Build info (constant 1, labeled by version).",
			},
			[]string{"version"},
		),
		startTime: time.Now(),
	}

	uptime := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "uptime_seconds",
			Help:      "Node uptime in seconds.",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	m.registry.MustRegister(m.frames, m.replies, m.stepDuration, m.errors, m.buildInfo, uptime)
	m.buildInfo.WithLabelValues(version).Set(1)

	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveFrame counts an inbound frame.
func (m *Metrics) ObserveFrame(bodyType string) {
	m.frames.WithLabelValues(bodyType).Inc()
}

// ObserveReply counts an outbound reply.
func (m *Metrics) ObserveReply(bodyType string) {
	m.replies.WithLabelValues(bodyType).Inc()
}

// ObserveStep records how long it took to handle a request.
func (m *Metrics) ObserveStep(bodyType string, d time.Duration) {
	m.stepDuration.WithLabelValues(bodyType).Observe(d.Seconds())
}

// ObserveError counts a fatal error.
func (m *Metrics) ObserveError(kind string) {
	m.errors.WithLabelValues(kind).Inc()
}
