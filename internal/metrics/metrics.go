package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	extractionsTotal *prometheus.CounterVec
	pdfFallbackTotal prometheus.Counter
	llmRequestsTotal *prometheus.CounterVec
	llmDuration      prometheus.Histogram
	llmParseMode     *prometheus.CounterVec
	webhookTotal     *prometheus.CounterVec
	webhookDuration  prometheus.Histogram
}

// New creates a Metrics instance with its own registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "docorch",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		}, []string{"method", "path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "docorch",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		requestInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "docorch",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
		}),
		extractionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "docorch",
			Subsystem: "extraction",
			Name:      "total",
			Help:      "Extraction actions by document kind and outcome.",
		}, []string{"kind", "outcome"}),
		pdfFallbackTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "docorch",
			Subsystem: "extractor",
			Name:      "pdf_fallback_total",
			Help:      "PDF extractions that fell back to content-stream text.",
		}),
		llmRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "docorch",
			Subsystem: "llm",
			Name:      "requests_total",
			Help:      "Chat-completion requests by outcome.",
		}, []string{"outcome"}),
		llmDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "docorch",
			Subsystem: "llm",
			Name:      "request_duration_seconds",
			Help:      "Chat-completion request duration in seconds.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 80},
		}),
		llmParseMode: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "docorch",
			Subsystem: "llm",
			Name:      "parse_mode_total",
			Help:      "Decoded completions by parse stage (strict, span, raw).",
		}, []string{"mode"}),
		webhookTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "docorch",
			Subsystem: "webhook",
			Name:      "requests_total",
			Help:      "Alert webhook calls by outcome.",
		}, []string{"outcome"}),
		webhookDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "docorch",
			Subsystem: "webhook",
			Name:      "request_duration_seconds",
			Help:      "Alert webhook call duration in seconds.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestTotal,
		m.requestDuration,
		m.requestInFlight,
		m.extractionsTotal,
		m.pdfFallbackTotal,
		m.llmRequestsTotal,
		m.llmDuration,
		m.llmParseMode,
		m.webhookTotal,
		m.webhookDuration,
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) IncInFlight() {
	if m == nil {
		return
	}
	m.requestInFlight.Inc()
}

func (m *Metrics) DecInFlight() {
	if m == nil {
		return
	}
	m.requestInFlight.Dec()
}

func (m *Metrics) ObserveRequest(method, path, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.requestTotal.WithLabelValues(method, path, status).Inc()
	m.requestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

func (m *Metrics) ObserveExtraction(kind, outcome string) {
	if m == nil {
		return
	}
	m.extractionsTotal.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) IncPDFFallback() {
	if m == nil {
		return
	}
	m.pdfFallbackTotal.Inc()
}

func (m *Metrics) ObserveLLM(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.llmRequestsTotal.WithLabelValues(outcome).Inc()
	m.llmDuration.Observe(d.Seconds())
}

func (m *Metrics) IncParseMode(mode string) {
	if m == nil {
		return
	}
	m.llmParseMode.WithLabelValues(mode).Inc()
}

func (m *Metrics) ObserveWebhook(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.webhookTotal.WithLabelValues(outcome).Inc()
	if d > 0 {
		m.webhookDuration.Observe(d.Seconds())
	}
}
