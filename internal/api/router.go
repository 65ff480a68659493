package api

import (
	"log/slog"
	"mission-feasibility-service/internal/api/handlers"
	"mission-feasibility-service/internal/domain"
	"mission-feasibility-service/internal/ports"
	"mission-feasibility-service/internal/services"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Reference *domain.Reference
	Scenarios handlers.ScenarioCatalog
	Planner   *services.Planner
	Repo      ports.ReportRepository
	Cache     ports.PlanCache
	Logger    *slog.Logger
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	lg := d.Logger
	if lg == nil {
		lg = slog.Default()
	}

	health := &handlers.HealthHandler{Reference: d.Reference}
	aircraft := &handlers.AircraftHandler{Reference: d.Reference}
	scenarios := &handlers.ScenarioHandler{Catalog: d.Scenarios}
	missions := &handlers.MissionHandler{
		Planner:  d.Planner,
		Repo:     d.Repo,
		Cache:    d.Cache,
		Logger:   lg,
		NewRunID: uuid.NewString,
		Now:      func() time.Time { return time.Now().UTC() },
	}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware, loggingMiddleware(lg))

	r.Get("/health", health.Health)
	r.Get("/aircraft", aircraft.List)
	r.Get("/scenarios", scenarios.List)

	r.Route("/missions", func(r chi.Router) {
		r.Post("/hard-gate", missions.HardGate)
		r.Post("/plan", missions.Plan)
		r.Get("/reports/{runID}", missions.GetReport)
	})

	return r
}
