package handlers

import (
	"mission-feasibility-service/internal/api/dto"
	"mission-feasibility-service/internal/domain"
	"net/http"
	"slices"
)

type AircraftHandler struct {
	Reference *domain.Reference
}

// List returns the aircraft models available per category.
func (h *AircraftHandler) List(w http.ResponseWriter, r *http.Request) {
	res := dto.AircraftListResponse{Categories: make(map[string][]string, len(h.Reference.Aircraft))}
	for cat, models := range h.Reference.Aircraft {
		names := make([]string, 0, len(models))
		for name := range models {
			names = append(names, name)
		}
		slices.Sort(names)
		res.Categories[cat] = names
	}
	writeJSON(w, r, http.StatusOK, res)
}

// ScenarioCatalog lists the configured scenarios and safety policies.
type ScenarioCatalog interface {
	ScenarioIDs() []string
	Policies() map[string]domain.Thresholds
}

type ScenarioHandler struct {
	Catalog ScenarioCatalog
}

func (h *ScenarioHandler) List(w http.ResponseWriter, r *http.Request) {
	policies := h.Catalog.Policies()
	res := dto.ScenarioListResponse{
		Scenarios: h.Catalog.ScenarioIDs(),
		Policies:  make(map[string]dto.ThresholdsResponse, len(policies)),
	}
	for id, th := range policies {
		res.Policies[id] = dto.NewThresholds(th)
	}
	writeJSON(w, r, http.StatusOK, res)
}
