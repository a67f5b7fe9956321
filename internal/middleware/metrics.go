package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a dedicated registry with HTTP and AI generation collectors.
type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	generations     *prometheus.CounterVec
	genDuration     *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ai_generations_total",
			Help: "AI generation attempts by kind and outcome",
		}, []string{"kind", "outcome"}),
		genDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ai_generation_duration_seconds",
			Help:    "Duration of AI generation attempts in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		}, []string{"kind", "outcome"}),
	}
	m.registry.MustRegister(
		m.requests,
		m.requestDuration,
		m.generations,
		m.genDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Middleware records every request under its chi route pattern, so path
// parameters do not explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := wrapWriter(w)

		next.ServeHTTP(wrapped, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		status := strconv.Itoa(wrapped.statusCode)
		m.requests.WithLabelValues(r.Method, route, status).Inc()
		m.requestDuration.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
	})
}

// ObserveGeneration implements the AI gateway recorder.
func (m *Metrics) ObserveGeneration(kind, outcome string, d time.Duration) {
	m.generations.WithLabelValues(kind, outcome).Inc()
	m.genDuration.WithLabelValues(kind, outcome).Observe(d.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
