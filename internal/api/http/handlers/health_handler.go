package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/observability"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/persistence"
)

// Pinger probes one dependency for readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	postgres    *persistence.Postgres
	redis       *persistence.Redis
	upstream    Pinger
	metrics     *observability.Metrics
}

// NewHealthHandler returns a new handler instance. upstream may be nil when
// the portal runs in demo mode and never talks to the remote API.
func NewHealthHandler(serviceName, version string, postgres *persistence.Postgres, redis *persistence.Redis, upstream Pinger, metrics *observability.Metrics) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, postgres: postgres, redis: redis, upstream: upstream, metrics: metrics}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports service readiness by checking dependencies.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	depStatus := fiber.Map{}
	ready := true

	// An empty POSTGRES_DSN yields a wrapper without a pool: the audit trail
	// is deliberately off, not a dependency failure.
	if h.postgres.PoolHandle() != nil {
		if err := h.postgres.Ping(ctx); err != nil {
			depStatus["postgres"] = err.Error()
			ready = false
		} else {
			depStatus["postgres"] = "ok"
		}
	} else {
		depStatus["postgres"] = "disabled"
	}

	if err := h.redis.Ping(ctx); err != nil {
		depStatus["redis"] = err.Error()
		ready = false
	} else {
		depStatus["redis"] = "ok"
	}

	if h.upstream != nil {
		if err := h.upstream.Ping(ctx); err != nil {
			depStatus["upstream"] = err.Error()
			ready = false
		} else {
			depStatus["upstream"] = "ok"
		}
	} else {
		depStatus["upstream"] = "disabled"
	}

	if ready {
		return c.JSON(fiber.Map{
			"status":       "ready",
			"dependencies": depStatus,
		})
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "DEPENDENCY_UNAVAILABLE",
			"message": "one or more dependencies unavailable",
			"details": depStatus,
		},
	})
}

// Stats exposes the in-memory counters for operators.
func (h *HealthHandler) Stats(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.metrics.Snapshot()})
}
