package riskapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "riskapi_runs_total",
		Help: "Total number of risk computations executed, by analytic",
	}, []string{"analytic"})

	runLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "riskapi_run_latency_seconds",
		Help:    "Latency of a risk computation, by analytic",
		Buckets: prometheus.DefBuckets,
	}, []string{"analytic"})

	pathsComputed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "riskapi_mc_paths_computed_total",
		Help: "Total Monte-Carlo paths computed across all runs",
	})

	runsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "riskapi_runs_in_flight",
		Help: "Number of risk computations currently executing",
	})

	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "riskapi_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "riskapi_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 5.0},
	}, []string{"method", "path"})

	wsClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "riskapi_websocket_clients",
		Help: "Number of connected run-progress WebSocket clients",
	})
)

// metricsHandler returns the Prometheus scrape handler for GET /metrics.
func metricsHandler() http.Handler {
	return promhttp.Handler()
}

// metricsMiddleware records request count and latency per method/path.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)
		duration := time.Since(start).Seconds()

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(wrapped.status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
