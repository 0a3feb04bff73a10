// Package metrics exposes toast lifecycle counters to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config configures the toast metrics.
type Config struct {
	// Namespace is the metrics namespace (default: "toastd").
	Namespace string

	// Registry receives the collectors. Default: a fresh registry.
	Registry *prometheus.Registry
}

// Option configures the toast metrics.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// ToastMetrics holds the Prometheus collectors for the toast lifecycle.
type ToastMetrics struct {
	registry *prometheus.Registry

	spawnedTotal   *prometheus.CounterVec
	pausedTotal    prometheus.Counter
	resumedTotal   prometheus.Counter
	dismissedTotal *prometheus.CounterVec
	active         prometheus.Gauge
	lifetime       prometheus.Histogram
	clients        *prometheus.GaugeVec
}

// New registers the toast collectors.
func New(opts ...Option) *ToastMetrics {
	config := Config{Namespace: "toastd"}
	for _, opt := range opts {
		opt(&config)
	}
	if config.Registry == nil {
		config.Registry = prometheus.NewRegistry()
	}

	factory := promauto.With(config.Registry)

	return &ToastMetrics{
		registry: config.Registry,

		spawnedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "toasts_spawned_total",
			Help:      "Total number of toasts spawned",
		}, []string{"variant", "position"}),

		pausedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "toasts_paused_total",
			Help:      "Total number of countdowns paused by hover",
		}),

		resumedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "toasts_resumed_total",
			Help:      "Total number of countdowns resumed",
		}),

		dismissedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "toasts_dismissed_total",
			Help:      "Total number of toasts dismissed by reason",
		}, []string{"reason"}),

		active: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: config.Namespace,
			Name:      "toasts_active",
			Help:      "Number of toasts spawned and not yet removed",
		}),

		lifetime: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Name:      "toast_lifetime_seconds",
			Help:      "Time from spawn to removal",
			Buckets:   []float64{0.5, 1, 2, 3, 5, 10, 30, 60, 300},
		}),

		clients: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: config.Namespace,
			Name:      "push_clients",
			Help:      "Connected push clients by transport",
		}, []string{"transport"}),
	}
}

func (m *ToastMetrics) ToastSpawned(variant, position string) {
	m.spawnedTotal.WithLabelValues(variant, position).Inc()
	m.active.Inc()
}

func (m *ToastMetrics) ToastPaused() {
	m.pausedTotal.Inc()
}

func (m *ToastMetrics) ToastResumed() {
	m.resumedTotal.Inc()
}

func (m *ToastMetrics) ToastDismissed(reason string) {
	m.dismissedTotal.WithLabelValues(reason).Inc()
}

func (m *ToastMetrics) ToastRemoved(lifetime time.Duration) {
	m.active.Dec()
	m.lifetime.Observe(lifetime.Seconds())
}

// ClientConnected and ClientDisconnected track push subscribers.
func (m *ToastMetrics) ClientConnected(transport string) {
	m.clients.WithLabelValues(transport).Inc()
}

func (m *ToastMetrics) ClientDisconnected(transport string) {
	m.clients.WithLabelValues(transport).Dec()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *ToastMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
