package httpapi

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "worldgen_http_requests_total",
		Help: "Total HTTP requests served by the generation API.",
	}, []string{"path", "status"})

	generationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "worldgen_generation_duration_seconds",
		Help:    "Wall-clock time to run all five pipeline stages for one request.",
		Buckets: prometheus.DefBuckets,
	})

	stageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "worldgen_stage_duration_seconds",
		Help:    "Wall-clock time per pipeline stage.",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})
)

// MetricsMiddleware records a request counter keyed by path and status.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(ww, r)
		requestsTotal.WithLabelValues(r.URL.Path, http.StatusText(ww.statusCode)).Inc()
	})
}

// ObserveGeneration records the total wall-clock time for one generation run.
func ObserveGeneration(d time.Duration) {
	generationDuration.Observe(d.Seconds())
}

// ObserveStage records the wall-clock time for a single pipeline stage.
func ObserveStage(stage string, d time.Duration) {
	stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// MetricsHandler serves the Prometheus exposition format.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
