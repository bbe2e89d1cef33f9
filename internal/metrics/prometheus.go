package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics contains the Prometheus collectors of the assistant service.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP API metrics
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPErrors          *prometheus.CounterVec

	// Answer metrics
	Answers          *prometheus.CounterVec
	VoiceUploadBytes prometheus.Histogram
	TTSAudioBytes    prometheus.Histogram
}

// NewMetrics creates the collectors on a private registry, so several
// instances can coexist in one process.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "faq_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "endpoint", "status_code"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "faq_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "endpoint"}),
		HTTPErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "faq_http_errors_total",
			Help: "Total number of HTTP errors",
		}, []string{"method", "endpoint", "error_type"}),

		Answers: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "faq_answers_total",
			Help: "Answers produced, by source and category",
		}, []string{"source", "category"}),
		VoiceUploadBytes: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "faq_voice_upload_bytes",
			Help:    "Size of uploaded voice questions in bytes",
			Buckets: prometheus.ExponentialBuckets(1024, 2, 12), // 1KB to ~4MB
		}),
		TTSAudioBytes: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "faq_tts_audio_bytes",
			Help:    "Size of synthesized audio in bytes",
			Buckets: prometheus.ExponentialBuckets(1024, 2, 12),
		}),
	}
}

// Handler exposes the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, durationSeconds float64) {
	m.HTTPRequests.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(durationSeconds)

	if statusCode >= 400 {
		errorType := "client_error"
		if statusCode >= 500 {
			errorType = "server_error"
		}
		m.HTTPErrors.WithLabelValues(method, endpoint, errorType).Inc()
	}
}

// RecordAnswer counts an answer by where it came from.
func (m *Metrics) RecordAnswer(source, category string) {
	if category == "" {
		category = "none"
	}
	m.Answers.WithLabelValues(source, category).Inc()
}

// RecordVoiceUpload observes the size of a voice question.
func (m *Metrics) RecordVoiceUpload(sizeBytes int) {
	m.VoiceUploadBytes.Observe(float64(sizeBytes))
}

// RecordTTSAudio observes the size of synthesized audio.
func (m *Metrics) RecordTTSAudio(sizeBytes int) {
	m.TTSAudioBytes.Observe(float64(sizeBytes))
}

// Middleware records every request under its chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		endpoint := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				endpoint = pattern
			}
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.RecordHTTPRequest(r.Method, endpoint, status, time.Since(start).Seconds())
	})
}
