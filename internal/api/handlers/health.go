package handlers

import (
	"mission-feasibility-service/internal/domain"
	"net/http"
)

type HealthHandler struct {
	Reference *domain.Reference
}

// Health reports liveness and the size of the loaded reference data.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	models := 0
	for _, byName := range h.Reference.Aircraft {
		models += len(byName)
	}
	res := map[string]any{
		"status":          "ok",
		"aircraft_models": models,
		"locations":       len(h.Reference.Locations),
		"alternates":      len(h.Reference.Alternates.Global),
	}
	writeJSON(w, r, http.StatusOK, res)
}
