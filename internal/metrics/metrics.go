// Package metrics provides Prometheus metrics for reshape.
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
	filesScanned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reshape_files_scanned_total",
			Help: "Total number of files returned by folder scans",
		},
	)

	planItems = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reshape_plan_items_total",
			Help: "Total number of planned rename items by status",
		},
		[]string{"status"},
	)

	renamesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reshape_renames_total",
			Help: "Total number of attempted renames",
		},
		[]string{"status"},
	)

	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reshape_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reshape_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordScan records the number of files a scan returned.
func RecordScan(files int) {
	filesScanned.Add(float64(files))
}

// RecordPlanItem records one planned item under its display status.
func RecordPlanItem(status string) {
	planItems.WithLabelValues(status).Inc()
}

// RecordRename records an attempted rename. Successful dry runs are counted
// separately from real moves.
func RecordRename(success, dryRun bool) {
	status := "success"
	switch {
	case !success:
		status = "failure"
	case dryRun:
		status = "dry_run"
	}
	renamesTotal.WithLabelValues(status).Inc()
}

// RecordHTTPRequest records an HTTP request metric.
func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware returns HTTP middleware that records request metrics. Paths are
// labelled with the matched chi route pattern so file paths in URLs do not
// create new series.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)
		RecordHTTPRequest(r.Method, routePattern(r), rw.statusCode, time.Since(start))
	})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}
