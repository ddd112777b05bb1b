package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command failures by command name.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "inkwell_redis_errors_total",
	Help: "Total number of Redis command errors.",
}, []string{"command"})

// ModerationDecisions counts admin moderation outcomes by decision.
var ModerationDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "inkwell_moderation_decisions_total",
	Help: "Total number of moderation decisions, labelled by decision (approve, reject, hide).",
}, []string{"decision"})

// ViewsRecorded counts recorded public post views.
var ViewsRecorded = promauto.NewCounter(prometheus.CounterOpts{
	Name: "inkwell_post_views_recorded_total",
	Help: "Total number of public post views recorded.",
})

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the request-level Prometheus middleware handler.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}
