// Package metrics exposes Prometheus instrumentation for the HTTP
// surface and the schedule resolver.
package metrics

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "staffd_http_requests_total",
		Help: "Total HTTP requests by method, path pattern and status",
	}, []string{"method", "path", "status"})

	RequestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "staffd_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	})

	ResolveRuns = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "staffd_resolve_runs_total",
		Help: "Total daily window resolutions",
	})

	ResolveWindows = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "staffd_resolve_windows",
		Help:    "Windows emitted per resolution",
		Buckets: []float64{0, 1, 2, 3, 4, 6, 8},
	})
)

func init() {
	prometheus.MustRegister(RequestsTotal, RequestDuration, ResolveRuns, ResolveWindows)
}

// ObserveRequest records one completed HTTP request.
func ObserveRequest(method, path string, status int, start time.Time) {
	RequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	RequestDuration.Observe(time.Since(start).Seconds())
}

// ObserveResolve records one resolver run and the number of windows it emitted.
func ObserveResolve(windows int) {
	ResolveRuns.Inc()
	ResolveWindows.Observe(float64(windows))
}

// Handler returns the /metrics endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// StartServer serves /metrics and /health on addr. When addr is empty
// no listener is started.
func StartServer(addr string, logger *slog.Logger) {
	if addr == "" {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Warn("metrics listener stopped", slog.String("error", err.Error()))
		}
	}()
}
