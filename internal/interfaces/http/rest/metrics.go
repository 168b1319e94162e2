package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the API. Each server owns its
// registry so parallel test servers never collide on registration.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	ContentCreated prometheus.Counter
	LinksCreated   prometheus.Counter
	TagsAttached   prometheus.Counter
}

// NewMetrics creates and registers the API collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "worldweave",
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "worldweave",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		ContentCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "worldweave",
			Name:      "content_created_total",
			Help:      "Total number of content items created",
		}),
		LinksCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "worldweave",
			Name:      "links_created_total",
			Help:      "Total number of links created",
		}),
		TagsAttached: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "worldweave",
			Name:      "tags_attached_total",
			Help:      "Total number of tag attachments",
		}),
	}

	registry.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.ContentCreated,
		m.LinksCreated,
		m.TagsAttached,
	)
	return m
}

// Handler exposes the registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latencies per route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
		m.HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
