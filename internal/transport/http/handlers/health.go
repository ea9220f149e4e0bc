package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ReadinessCheck probes a single dependency.
type ReadinessCheck func(ctx context.Context) error

// HealthOption customizes the health handler.
type HealthOption func(*HealthHandler)

// WithReadinessCheck registers a named dependency probe used by the readiness endpoint.
func WithReadinessCheck(name string, check ReadinessCheck) HealthOption {
	return func(h *HealthHandler) {
		if name == "" || check == nil {
			return
		}
		h.checks = append(h.checks, namedCheck{name: name, check: check})
	}
}

type namedCheck struct {
	name  string
	check ReadinessCheck
}

// HealthHandler exposes liveness and readiness information.
type HealthHandler struct {
	startedAt time.Time
	checks    []namedCheck
}

// NewHealthHandler builds a new health handler instance.
func NewHealthHandler(opts ...HealthOption) *HealthHandler {
	h := &HealthHandler{startedAt: time.Now().UTC()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Status reports liveness with the service start time.
func (h *HealthHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		StartedAt: h.startedAt,
	})
}

// Readiness probes registered dependencies and reports per-check outcomes.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status := http.StatusOK
	resp := ReadinessResponse{Status: "ready"}

	if len(h.checks) > 0 {
		resp.Checks = make(map[string]string, len(h.checks))
	}

	for _, nc := range h.checks {
		if err := nc.check(ctx); err != nil {
			resp.Checks[nc.name] = err.Error()
			resp.Status = "not ready"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[nc.name] = "ok"
	}

	c.JSON(status, resp)
}
