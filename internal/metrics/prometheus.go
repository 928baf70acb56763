// Package metrics provides Prometheus metrics for the chart bot.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"GiftChart/internal/model"
)

var defaultBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20}

// Manager owns every metric the bot exports.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	enabled          bool
	registry         *prometheus.Registry

	renders         *prometheus.CounterVec
	renderDuration  prometheus.Histogram
	sourceRequests  *prometheus.CounterVec
	sourceDuration  *prometheus.HistogramVec
	droppedEvents   prometheus.Counter
	seriesPoints    prometheus.Histogram
	iconFetches     *prometheus.CounterVec
	rateLimited     prometheus.Counter
	updatesReceived prometheus.Counter
}

// NewManager creates a metrics manager on its own registry unless one is given.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "giftchart",
		histogramBuckets: defaultBuckets,
		enabled:          true,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
		m.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.renders = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "renders_total",
		Help:      "Render requests by outcome",
	}, []string{"outcome"})

	m.renderDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "render_duration_seconds",
		Help:      "End-to-end card generation latency",
		Buckets:   m.histogramBuckets,
	})

	m.sourceRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "source_requests_total",
		Help:      "Outbound price source calls by source, operation and result",
	}, []string{"source", "op", "result"})

	m.sourceDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "source_request_duration_seconds",
		Help:      "Outbound price source call latency",
		Buckets:   m.histogramBuckets,
	}, []string{"source", "op"})

	m.droppedEvents = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "dropped_events_total",
		Help:      "Malformed listing events discarded during normalization",
	})

	m.seriesPoints = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "series_points",
		Help:      "Points left in a series after normalization",
		Buckets:   []float64{1, 2, 5, 10, 20, 40, 80},
	})

	m.iconFetches = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "icon_fetches_total",
		Help:      "Gift icon lookups by where the icon came from",
	}, []string{"origin"})

	m.rateLimited = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "rate_limited_total",
		Help:      "Requests rejected by the per-user rate limit",
	})

	m.updatesReceived = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "updates_received_total",
		Help:      "Chat updates received from Telegram",
	})
}

// ObserveRender records one finished generation.
func (m *Manager) ObserveRender(err error, d time.Duration) {
	if !m.enabled {
		return
	}
	m.renders.WithLabelValues(model.Outcome(err)).Inc()
	m.renderDuration.Observe(d.Seconds())
}

// ObserveSource records one outbound price source call.
func (m *Manager) ObserveSource(source, op string, d time.Duration, err error) {
	if !m.enabled {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.sourceRequests.WithLabelValues(source, op, result).Inc()
	m.sourceDuration.WithLabelValues(source, op).Observe(d.Seconds())
}

// ObserveNormalize records the size of a normalized series.
func (m *Manager) ObserveNormalize(points, dropped int) {
	if !m.enabled {
		return
	}
	m.seriesPoints.Observe(float64(points))
	m.droppedEvents.Add(float64(dropped))
}

// ObserveIcon records where a card's gift icon came from: remote, local or none.
func (m *Manager) ObserveIcon(origin string) {
	if !m.enabled {
		return
	}
	m.iconFetches.WithLabelValues(origin).Inc()
}

// IncRateLimited counts a rate-limited request.
func (m *Manager) IncRateLimited() {
	if m.enabled {
		m.rateLimited.Inc()
	}
}

// IncUpdates counts a received chat update.
func (m *Manager) IncUpdates() {
	if m.enabled {
		m.updatesReceived.Inc()
	}
}

// Registry returns the registry the metrics live on.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
