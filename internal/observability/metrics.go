package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeMatched  = "matched"
	OutcomeFallback = "fallback"
	OutcomeError    = "error"

	CaptureInserted  = "inserted"
	CaptureDuplicate = "duplicate"
	CaptureFailed    = "failed"
)

// Metrics groups all Prometheus instruments used by the service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Resolutions       *prometheus.CounterVec
	Captures          *prometheus.CounterVec
	ChatLogFailures   prometheus.Counter
	SessionsHeld      prometheus.Gauge
	SessionsEvicted   prometheus.Counter
	GenerationLatency prometheus.Histogram
	registry          prometheus.Gatherer
}

// NewMetrics registers instruments on reg. A *prometheus.Registry doubles as the gatherer for Handler.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	f := promauto.With(reg)
	m := &Metrics{
		Resolutions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolutions_total",
			Help:      "Chat turns by resolution outcome.",
		}, []string{"outcome"}),
		Captures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unanswered_captures_total",
			Help:      "Unanswered question capture attempts by result.",
		}, []string{"result"}),
		ChatLogFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_log_failures_total",
			Help:      "Chat log writes that failed after a turn completed.",
		}),
		SessionsHeld: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_held",
			Help:      "Conversation sessions currently held in memory.",
		}),
		SessionsEvicted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_evicted_total",
			Help:      "Conversation sessions dropped from memory.",
		}),
		GenerationLatency: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_latency_ms",
			Help:      "Latency of generative backend calls in milliseconds.",
			Buckets:   []float64{100, 250, 500, 1000, 2000, 4000, 8000, 16000},
		}),
	}
	if g, ok := reg.(prometheus.Gatherer); ok {
		m.registry = g
	}
	return m
}

func (m *Metrics) Resolution(outcome string) {
	if m == nil {
		return
	}
	m.Resolutions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Capture(result string) {
	if m == nil {
		return
	}
	m.Captures.WithLabelValues(result).Inc()
}

func (m *Metrics) ChatLogFailed() {
	if m == nil {
		return
	}
	m.ChatLogFailures.Inc()
}

func (m *Metrics) SetSessionsHeld(n int) {
	if m == nil {
		return
	}
	m.SessionsHeld.Set(float64(n))
}

func (m *Metrics) SessionEvicted() {
	if m == nil {
		return
	}
	m.SessionsEvicted.Inc()
}

func (m *Metrics) ObserveGenerationLatency(d time.Duration) {
	if m == nil {
		return
	}
	m.GenerationLatency.Observe(float64(d.Milliseconds()))
}

// Handler exposes the gatherer the metrics were registered on, or the default one.
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.registry == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
