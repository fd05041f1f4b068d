// Package metrics expone la instrumentación Prometheus del rebalancer:
// requests a las APIs upstream, cache de documentos, composiciones y API HTTP.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// UpstreamRequestsTotal cuenta requests upstream por fuente y status final.
	// status = "error" cuando no hubo respuesta HTTP.
	UpstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rebalancer_upstream_requests_total",
		Help: "Total upstream API requests",
	}, []string{"source", "status"})

	// UpstreamRequestDuration mide la latencia de cada intento.
	UpstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rebalancer_upstream_request_duration_seconds",
		Help:    "Upstream API request duration in seconds",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"source"})

	// UpstreamRetriesTotal cuenta reintentos (429, 5xx o fallo de transporte).
	UpstreamRetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rebalancer_upstream_retries_total",
		Help: "Upstream API request retries",
	}, []string{"source"})

	// CacheLookupsTotal cuenta lookups del cache de documentos. result = hit | miss.
	CacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rebalancer_cache_lookups_total",
		Help: "Document cache lookups",
	}, []string{"backend", "result"})

	// CompositionsTotal cuenta composiciones por estrategia. result = ok | error.
	CompositionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rebalancer_compositions_total",
		Help: "Portfolio compositions computed",
	}, []string{"strategy", "result"})

	// CompositionDuration mide cuánto tarda una composición completa.
	CompositionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rebalancer_composition_duration_seconds",
		Help:    "Portfolio composition duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"strategy"})

	// CompositionTotalAPR es el APR total de la última composición exitosa.
	CompositionTotalAPR = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "rebalancer_composition_total_apr",
		Help: "Total APR of the last computed composition",
	}, []string{"strategy"})

	// HTTPRequestsTotal cuenta requests a la API por método, ruta y status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rebalancer_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration mide la duración de los requests por método y ruta.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rebalancer_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 5.0},
	}, []string{"method", "path"})
)

// Handler devuelve el handler HTTP de Prometheus.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveUpstream registra un intento contra una fuente upstream.
func ObserveUpstream(source string, status int, elapsed time.Duration) {
	label := "error"
	if status != 0 {
		label = strconv.Itoa(status)
	}
	UpstreamRequestsTotal.WithLabelValues(source, label).Inc()
	UpstreamRequestDuration.WithLabelValues(source).Observe(elapsed.Seconds())
}

// ObserveCache registra un lookup del cache.
func ObserveCache(backend string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookupsTotal.WithLabelValues(backend, result).Inc()
}

// Middleware registra métricas de cada request HTTP.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		duration := time.Since(start).Seconds()

		// Patrón de ruta de chi ("/v1/positions/{id}") para no explotar la cardinalidad
		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}
		HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// statusWriter envuelve http.ResponseWriter para capturar el status.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
