// Package metrics registers prometheus collectors for the HTTP surface and
// repository operations.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry = prometheus.DefaultRegisterer

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by path/method/code.",
		},
		[]string{"path", "method", "code"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests by path/method/code.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "code"},
	)

	repoOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "repo_operations_total",
			Help: "Repository operations by op and result.",
		},
		[]string{"op", "result"},
	)

	repoDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "repo_operation_duration_seconds",
			Help:    "Duration of repository operations by op and result.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op", "result"},
	)
)

func init() {
	collectors := []prometheus.Collector{
		httpRequests,
		httpDuration,
		repoOps,
		repoDuration,
	}

	for _, c := range collectors {
		_ = registry.Register(c)
	}
}

// FiberMiddleware records request counts and latency per route.
func FiberMiddleware(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	path := c.Route().Path
	if path == "" || path == "/metrics" {
		return err
	}
	code := strconv.Itoa(c.Response().StatusCode())
	method := c.Method()

	httpRequests.WithLabelValues(path, method, code).Inc()
	httpDuration.WithLabelValues(path, method, code).Observe(time.Since(start).Seconds())
	return err
}

// Handler exposes the prometheus scrape endpoint as a fiber handler.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}

// ObserveOp records outcome and duration of a repository operation.
func ObserveOp(op string, start time.Time, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	repoOps.WithLabelValues(op, result).Inc()
	repoDuration.WithLabelValues(op, result).Observe(time.Since(start).Seconds())
}
