package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	h "boothly/internal/delivery/http/helpers"
)

// HealthCheck reports whether one dependency is reachable.
type HealthCheck func(ctx context.Context) error

// HealthResponse is the data returned by GET /health.
type HealthResponse struct {
	Status string            `json:"status" example:"ok"`
	Checks map[string]string `json:"checks,omitempty"`
}

// checkUnavailable is reported for a failing check. The cause is only logged.
const checkUnavailable = "unavailable"

type HealthController struct {
	Logger  *slog.Logger
	Checks  map[string]HealthCheck
	Timeout time.Duration
}

func NewHealthController(logger *slog.Logger, checks map[string]HealthCheck, timeout time.Duration) *HealthController {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &HealthController{Logger: logger, Checks: checks, Timeout: timeout}
}

// Health godoc
// @Summary Health check
// @Tags ops
// @Produce json
// @Success 200 {object} helpers.APIResponse{data=HealthResponse}
// @Failure 503 {object} helpers.APIResponse{data=HealthResponse}
// @Router /health [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok"}
	if len(c.Checks) == 0 {
		h.WriteJSONSuccess(w, http.StatusOK, resp)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), c.Timeout)
	defer cancel()

	names := make([]string, 0, len(c.Checks))
	for name := range c.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	resp.Checks = make(map[string]string, len(names))
	for _, name := range names {
		if err := c.Checks[name](ctx); err != nil {
			c.Logger.WarnContext(r.Context(), "health check failed", "check", name, "err", err)
			resp.Checks[name] = checkUnavailable
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}
	h.WriteJSONSuccess(w, status, resp)
}
