package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"mission-feasibility-service/internal/adapters/cache"
	"mission-feasibility-service/internal/adapters/refdata"
	"mission-feasibility-service/internal/api/dto"
	"mission-feasibility-service/internal/ports"
	"mission-feasibility-service/internal/services"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

type MissionHandler struct {
	Planner *services.Planner
	Repo    ports.ReportRepository
	Cache   ports.PlanCache
	Logger  *slog.Logger

	NewRunID func() string
	Now      func() time.Time
}

// HardGate evaluates every destination from the origin for each aircraft and
// adds the safety-margin report.
func (h *MissionHandler) HardGate(w http.ResponseWriter, r *http.Request) {
	var doc refdata.MissionDocument
	if !decodeJSON(w, r, &doc) {
		return
	}
	req := doc.Mission()

	hg, err := h.Planner.HardGateReport(req)
	if err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}
	safety := h.Planner.SafetyReport(req, hg)

	writeJSON(w, r, http.StatusOK, dto.NewHardGate(hg, safety))
}

// Plan runs the full mission planning pipeline. Every request is persisted
// under a fresh run id. Reports are cached by request fingerprint, which
// ignores the mission id; a cache hit reuses the stored report with the
// caller's run and mission ids written in.
func (h *MissionHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var doc refdata.MissionDocument
	if !decodeJSON(w, r, &doc) {
		return
	}
	req := doc.Mission()
	ctx := r.Context()

	sc, err := h.Planner.ResolveScenario(req)
	if err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}

	key, err := cache.Fingerprint(req, sc)
	if err != nil {
		h.Logger.Warn("plan cache disabled for request", "err", err)
	}
	runID := h.NewRunID()

	if key != "" {
		cached, ok, err := h.Cache.Get(ctx, key)
		if err != nil {
			h.Logger.Warn("plan cache read failed", "err", err)
		}
		if ok {
			body, err := restampReport(cached, runID, req.MissionID)
			if err == nil {
				if !h.save(w, r, runID, req.MissionID, body) {
					return
				}
				w.Header().Set("X-Plan-Cache", "hit")
				writeRawJSON(w, r, http.StatusOK, body)
				return
			}
			h.Logger.Warn("plan cache entry unreadable", "err", err)
		}
	}

	rep, err := h.Planner.PlanMission(ctx, req)
	if err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}

	body, err := json.Marshal(dto.NewMissionReport(runID, rep))
	if err != nil {
		writeServiceError(w, r, h.Logger, fmt.Errorf("encode report: %w", err))
		return
	}
	if !h.save(w, r, runID, rep.MissionID, body) {
		return
	}
	if key != "" {
		if err := h.Cache.Put(ctx, key, body); err != nil {
			h.Logger.Warn("plan cache write failed", "err", err)
		}
	}

	w.Header().Set("X-Plan-Cache", "miss")
	writeRawJSON(w, r, http.StatusOK, body)
}

func (h *MissionHandler) save(w http.ResponseWriter, r *http.Request, runID, missionID string, body []byte) bool {
	stored := ports.StoredReport{
		RunID:     runID,
		MissionID: missionID,
		CreatedAt: h.Now(),
		Body:      body,
	}
	if err := h.Repo.SaveReport(r.Context(), stored); err != nil {
		writeServiceError(w, r, h.Logger, err)
		return false
	}
	return true
}

// restampReport replaces the run and mission ids of an encoded report and
// leaves every other field untouched.
func restampReport(body []byte, runID, missionID string) ([]byte, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("restamp report: %w", err)
	}
	for k, v := range map[string]string{"run_id": runID, "mission_id": missionID} {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("restamp report: %w", err)
		}
		doc[k] = b
	}
	return json.Marshal(doc)
}

// GetReport returns a persisted report by run id.
func (h *MissionHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	runID := strings.TrimSpace(chi.URLParam(r, "runID"))
	if runID == "" {
		writeError(w, r, http.StatusBadRequest, "run id is required")
		return
	}

	stored, err := h.Repo.GetReport(r.Context(), runID)
	if err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}
	writeRawJSON(w, r, http.StatusOK, stored.Body)
}
