package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pulse_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// LikesApplied counts like/unlike operations that committed.
	LikesApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pulse_likes_applied_total",
		Help: "Total number of committed like state transitions",
	}, []string{"transition"})

	// LikeConflicts counts like attempts rejected because the pair already existed.
	LikeConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pulse_like_conflicts_total",
		Help: "Total number of duplicate like attempts rejected",
	})

	// CascadedRows counts dependent rows removed by post deletions.
	CascadedRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pulse_cascaded_rows_total",
		Help: "Total number of dependent rows removed by post deletions",
	}, []string{"table"})
)

// InitMetrics creates the Prometheus middleware for HTTP metrics.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wraps the fiberprometheus handler as a Fiber middleware.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
