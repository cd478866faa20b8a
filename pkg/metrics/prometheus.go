// Package metrics provides Prometheus metrics for the riftwatch tracker.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the riftwatch service.
type Manager struct {
	namespace string
	subsystem string
	registry  prometheus.Registerer

	// Sweep metrics - the polling reconciliation loop.
	sweepsTotal   prometheus.Counter
	sweepDuration prometheus.Histogram
	transitions   *prometheus.CounterVec

	// External endpoint health.
	riotRequests        *prometheus.CounterVec
	riotRequestDuration *prometheus.HistogramVec
	samplerErrors       prometheus.Counter
	resolveFailures     *prometheus.CounterVec

	// Notification delivery.
	notifications      *prometheus.CounterVec
	notificationErrors prometheus.Counter

	// State gauges.
	trackedPlayers prometheus.Gauge
	activeSessions prometheus.Gauge
	digestRuns     prometheus.Counter

	// HTTP ops surface.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "riftwatch",
		subsystem: "tracker",
		registry:  prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.sweepsTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sweeps_total",
		Help:      "Total number of completed polling sweeps.",
	})

	m.sweepDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sweep_duration_ms",
		Help:      "Duration of one full sweep over all tracked players in milliseconds.",
		Buckets:   prometheus.ExponentialBuckets(10, 2, 12),
	})

	m.transitions = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "transitions_total",
		Help:      "Transition classifications per sweep observation.",
	}, []string{"kind"})

	m.riotRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "riot_requests_total",
		Help:      "Requests issued to the Riot API by endpoint and status.",
	}, []string{"endpoint", "status"})

	m.riotRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "riot_request_duration_ms",
		Help:      "Riot API request latency in milliseconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})

	m.samplerErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sampler_errors_total",
		Help:      "Per-player sampler probe failures skipped during sweeps.",
	})

	m.resolveFailures = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "resolve_failures_total",
		Help:      "Outcome resolution failures by reason.",
	}, []string{"reason"})

	m.notifications = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "notifications_total",
		Help:      "Notifications delivered to the chat surface by kind.",
	}, []string{"kind"})

	m.notificationErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "notification_errors_total",
		Help:      "Notification deliveries that failed.",
	})

	m.trackedPlayers = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tracked_players",
		Help:      "Number of registered players currently tracked.",
	})

	m.activeSessions = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "active_sessions",
		Help:      "Number of session records currently held in the directory.",
	})

	m.digestRuns = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "digest_runs_total",
		Help:      "Number of daily digest passes executed.",
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests served by the ops API.",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint", "method", "status_code"})
}

// Package-level helpers operating on the global manager.

// RecordSweep records one completed sweep and its duration.
func RecordSweep(durationMs float64) {
	globalManager.sweepsTotal.Inc()
	globalManager.sweepDuration.Observe(durationMs)
}

// RecordTransition counts one transition classification.
func RecordTransition(kind string) {
	globalManager.transitions.WithLabelValues(kind).Inc()
}

// RecordRiotRequest counts one Riot API call and its latency.
func RecordRiotRequest(endpoint, status string, durationMs float64) {
	globalManager.riotRequests.WithLabelValues(endpoint, status).Inc()
	globalManager.riotRequestDuration.WithLabelValues(endpoint).Observe(durationMs)
}

// RecordSamplerError counts one skipped sampler probe.
func RecordSamplerError() {
	globalManager.samplerErrors.Inc()
}

// RecordResolveFailure counts one outcome resolution failure.
func RecordResolveFailure(reason string) {
	globalManager.resolveFailures.WithLabelValues(reason).Inc()
}

// RecordNotification counts one delivered notification.
func RecordNotification(kind string) {
	globalManager.notifications.WithLabelValues(kind).Inc()
}

// RecordNotificationError counts one failed delivery.
func RecordNotificationError() {
	globalManager.notificationErrors.Inc()
}

// UpdateTrackedPlayers sets the registered player gauge.
func UpdateTrackedPlayers(count int) {
	globalManager.trackedPlayers.Set(float64(count))
}

// UpdateActiveSessions sets the session directory gauge.
func UpdateActiveSessions(count int) {
	globalManager.activeSessions.Set(float64(count))
}

// RecordDigestRun counts one digest pass.
func RecordDigestRun() {
	globalManager.digestRuns.Inc()
}

// RecordHTTPRequest counts one ops API request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records ops API request latency.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// GetRegistry returns the custom registry for exposition.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
