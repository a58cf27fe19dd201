package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "collection_points",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "collection_points",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	// Catalog backend metrics
	CatalogFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "collection_points",
		Subsystem: "catalog",
		Name:      "fetches_total",
		Help:      "Catalog fetches by source and outcome",
	}, []string{"source", "outcome"})

	CatalogFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "collection_points",
		Subsystem: "catalog",
		Name:      "fetch_duration_seconds",
		Help:      "Duration of catalog fetches",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"source"})

	MalformedRecordsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "collection_points",
		Subsystem: "catalog",
		Name:      "malformed_records_dropped_total",
		Help:      "Records rejected at the client boundary",
	}, []string{"source"})

	// Discovery engine metrics
	StaleResultsDiscarded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "collection_points",
		Subsystem: "discovery",
		Name:      "stale_results_discarded_total",
		Help:      "Point query results dropped because a newer filter state was issued",
	})

	FilterToggles = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "collection_points",
		Subsystem: "discovery",
		Name:      "filter_toggles_total",
		Help:      "Category filter toggles",
	})

	LocationOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "collection_points",
		Subsystem: "discovery",
		Name:      "location_outcomes_total",
		Help:      "Location acquisition outcomes",
	}, []string{"outcome"})

	ActiveScreens = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "collection_points",
		Subsystem: "discovery",
		Name:      "active_screens",
		Help:      "Currently mounted discovery screens",
	})

	NavigationEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "collection_points",
		Subsystem: "navigation",
		Name:      "events_total",
		Help:      "Navigation events emitted to the host router",
	}, []string{"type", "outcome"})
)

// ObserveFetch records one catalog call.
func ObserveFetch(source string, started time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	CatalogFetches.WithLabelValues(source, outcome).Inc()
	CatalogFetchDuration.WithLabelValues(source).Observe(time.Since(started).Seconds())
}

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := strconv.Itoa(c.Response().StatusCode())
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

		return err
	}
}

// Handler returns a Fiber handler serving Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c *fiber.Ctx) error {
		handler(c.Context())
		return nil
	}
}
