package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rt1856/Manrega/metrics"
)

// MetricsMiddleware records request counts and latency for Prometheus.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrw := &responseWriter{
			ResponseWriter: w,
			status:         http.StatusOK,
		}

		next.ServeHTTP(wrw, r)

		metrics.RequestsTotal.WithLabelValues(r.Method, strconv.Itoa(wrw.status)).Inc()
		metrics.RequestDurationMs.Observe(float64(time.Since(start).Milliseconds()))
	})
}
