package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis command failures by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shareit_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// BookingTransitions counts booking status transitions by resulting status.
	BookingTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shareit_booking_transitions_total",
		Help: "Total number of booking status transitions by resulting status",
	}, []string{"status"})
)

// InitMetrics creates the Prometheus HTTP metrics collector for the service.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the Fiber middleware that records per-request
// HTTP metrics into the given collector.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}
