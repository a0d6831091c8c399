package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	reportsSubmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reports_submitted_total",
			Help: "Total number of waste reports filed",
		},
		[]string{"waste_type"},
	)

	reportStatusUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_status_updates_total",
			Help: "Total number of report status changes",
		},
		[]string{"status"},
	)

	signupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signups_total",
			Help: "Total number of sign-up attempts",
		},
		[]string{"result"},
	)

	chartRedrawsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chart_redraws_total",
			Help: "Total number of admin chart set rebuilds",
		},
	)

	storeWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_writes_total",
			Help: "Total number of collection writes",
		},
		[]string{"key", "result"},
	)
)

// MetricsMiddleware collects Prometheus metrics for every request.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpRequestsInFlight.Inc()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}

		c.Next()

		httpRequestsInFlight.Dec()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(c.Request.Method, endpoint, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(duration)
	}
}

func RecordReportSubmitted(wasteType string) {
	reportsSubmittedTotal.WithLabelValues(wasteType).Inc()
}

func RecordStatusUpdate(status string) {
	reportStatusUpdatesTotal.WithLabelValues(status).Inc()
}

// RecordSignup counts a sign-up by outcome: created, duplicate, invalid or
// error.
func RecordSignup(result string) {
	signupsTotal.WithLabelValues(result).Inc()
}

func RecordChartRedraw() {
	chartRedrawsTotal.Inc()
}

func RecordStoreWrite(key string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	storeWritesTotal.WithLabelValues(key, result).Inc()
}
