package mockapi

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	registry         *prometheus.Registry
	requests         *prometheus.CounterVec
	duration         *prometheus.HistogramVec
	activeInterviews prometheus.Gauge
	submissions      *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "careerprep_mockapi_requests_total",
				Help: "Requests served by the mock Results API",
			},
			[]string{"route", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "careerprep_mockapi_request_duration_seconds",
				Help:    "Time spent serving mock Results API requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		activeInterviews: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "careerprep_mockapi_active_interviews",
				Help: "Interviews started but not yet completed",
			},
		),
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "careerprep_mockapi_quiz_submissions_total",
				Help: "Quiz results received, by category",
			},
			[]string{"category"},
		),
	}
	m.registry.MustRegister(m.requests, m.duration, m.activeInterviews, m.submissions)
	return m
}

// observe records every request except scrapes of /metrics itself.
func (s *Server) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "/metrics" {
			return
		}
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		s.metrics.requests.WithLabelValues(route, status).Inc()
		s.metrics.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		s.logger.Debug("mock api request",
			"method", c.Request.Method, "route", route, "status", status,
			"latency_ms", time.Since(start).Milliseconds())
	}
}
