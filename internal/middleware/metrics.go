package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command failures by operation, fed from the
// cache package's client hook.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "locallens_redis_errors_total",
	Help: "Total number of Redis errors by operation type",
}, []string{"operation"})

// ThankToggles counts thank toggle operations by outcome (thanked/unthanked).
var ThankToggles = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "locallens_thank_toggles_total",
	Help: "Total number of thank toggle operations by resulting state",
}, []string{"state"})

var (
	promOnce sync.Once
	prom     *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus HTTP middleware for the service.
// The collectors live in the default registry, so the instance is built
// once per process no matter how many apps mount it.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		prom = fiberprometheus.New(serviceName)
	})
	return prom
}

// MetricsMiddleware adapts the Prometheus middleware to a fiber.Handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
