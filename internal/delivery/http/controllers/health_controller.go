package controllers

import (
	"context"
	"net/http"
	"time"

	"webinars/internal/delivery/http/helpers"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) PingContext(ctx context.Context) error { return f(ctx) }

type HealthController struct {
	Checks map[string]Pinger
}

func NewHealthController(checks map[string]Pinger) *HealthController {
	return &HealthController{Checks: checks}
}

// Health godoc
// @Summary Health check
// @Description Reports the status of the service and its dependencies.
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse "data.status: ok"
// @Failure 503 {object} helpers.APIResponse "data.status: degraded"
// @Router /health [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	deps := make(map[string]string, len(c.Checks))
	for name, p := range c.Checks {
		if err := p.PingContext(ctx); err != nil {
			deps[name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		deps[name] = "up"
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}
	helpers.WriteJSONSuccess(w, status, map[string]any{"status": overall, "dependencies": deps})
}
