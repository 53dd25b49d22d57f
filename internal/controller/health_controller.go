package controller

import (
	"net/http"

	"github.com/vireolabs/ticketcheck/internal/check"
)

// HealthController serves liveness and readiness probes. The service keeps
// no connections open, so readiness just reports the strategy list; asking
// for it also warms the cold-start initialization.
type HealthController struct {
	builder    *check.Builder
	instanceID string
}

// NewHealthController creates a new HealthController.
func NewHealthController(builder *check.Builder, instanceID string) *HealthController {
	return &HealthController{builder: builder, instanceID: instanceID}
}

// Health handles GET /health
func (h *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"instance": h.instanceID,
	})
}

// Liveness handles GET /health/live
func (h *HealthController) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// Readiness handles GET /health/ready
func (h *HealthController) Readiness(w http.ResponseWriter, r *http.Request) {
	strategies := h.builder.Strategies(r.Context())
	names := make([]string, 0, len(strategies))
	for _, s := range strategies {
		names = append(names, s.Name())
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ready",
		"strategies": names,
	})
}
