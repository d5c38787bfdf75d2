package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "userdir_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "userdir_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// StorageFailures counts failed user writes by operation and failure kind.
	StorageFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "userdir_storage_failures_total",
			Help: "Total number of failed user writes",
		},
		[]string{"op", "kind"},
	)
)

func init() {
	prometheus.MustRegister(RequestsTotal, RequestDuration, StorageFailures)
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordRequest records one finished request.
func RecordRequest(method, route string, status int, d time.Duration) {
	RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	RequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// RecordStorageFailure counts a failed write.
func RecordStorageFailure(op, kind string) {
	StorageFailures.WithLabelValues(op, kind).Inc()
}

// Middleware records request metrics for every gin route. Unmatched paths
// are grouped under one label to keep cardinality bounded.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		RecordRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
