package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the HTTP and form-submission collectors. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	requests       *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	refusedDeletes *prometheus.CounterVec
	replays        *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gym_admin",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gym_admin",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		refusedDeletes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gym_admin",
			Name:      "refused_deletes_total",
			Help:      "Deletes refused because other records still reference the target.",
		}, []string{"entity"}),
		replays: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gym_admin",
			Name:      "form_replays_total",
			Help:      "Form submissions answered from a previous submission with the same key.",
		}, []string{"entity"}),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.duration, m.refusedDeletes, m.replays)
	}
	return m
}

// Middleware records request counts and latency under the matched chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) refusedDelete(entity string) {
	if m != nil {
		m.refusedDeletes.WithLabelValues(entity).Inc()
	}
}

func (m *Metrics) replay(entity string) {
	if m != nil {
		m.replays.WithLabelValues(entity).Inc()
	}
}
