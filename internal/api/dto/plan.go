package dto

import (
	"math"
	"mission-feasibility-service/internal/domain"
	"mission-feasibility-service/internal/services"
)

// Values are rounded only here, at the output boundary.
func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// finite rounds v, or returns nil for values JSON cannot carry.
func finite(v float64, places int) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	r := round(v, places)
	return &r
}

type ScenarioResponse struct {
	ID         string             `json:"id"`
	PolicyID   string             `json:"policy_id,omitempty"`
	Weights    map[string]float64 `json:"weights"`
	Thresholds ThresholdsResponse `json:"thresholds"`
}

type ThresholdsResponse struct {
	RunwayMin      float64 `json:"runway_min"`
	ClimbMin       float64 `json:"climb_min"`
	PowerMin       float64 `json:"power_min"`
	FuelMultiplier float64 `json:"fuel_multiplier"`
}

func NewThresholds(th domain.Thresholds) ThresholdsResponse {
	return ThresholdsResponse{
		RunwayMin:      th.RunwayMin,
		ClimbMin:       th.ClimbMin,
		PowerMin:       th.PowerMin,
		FuelMultiplier: th.FuelMultiplier,
	}
}

func NewScenario(sc domain.Scenario) ScenarioResponse {
	return ScenarioResponse{
		ID:         sc.ID,
		PolicyID:   sc.PolicyID,
		Weights:    sc.Weights,
		Thresholds: NewThresholds(sc.Thresholds),
	}
}

type CheckResponse struct {
	Status  domain.Status       `json:"status"`
	Details map[string]*float64 `json:"details"`
}

type FeasibilityResponse struct {
	Overall domain.Status            `json:"hard_gate_overall_status"`
	Checks  map[string]CheckResponse `json:"checks"`
}

func NewFeasibility(r domain.FeasibilityResult) FeasibilityResponse {
	res := FeasibilityResponse{
		Overall: r.Overall,
		Checks:  make(map[string]CheckResponse, len(r.Checks)),
	}
	for _, c := range r.Checks {
		details := make(map[string]*float64, len(c.Details))
		for k, v := range c.Details {
			details[k] = finite(v, 4)
		}
		res.Checks[c.Name] = CheckResponse{Status: c.Status, Details: details}
	}
	return res
}

type AircraftHardGateResponse struct {
	Family       domain.Family                  `json:"family,omitempty"`
	Destinations map[string]FeasibilityResponse `json:"destinations,omitempty"`
	Error        string                         `json:"error,omitempty"`
}

type MarginFindingResponse struct {
	Check          string  `json:"check"`
	Location       string  `json:"location"`
	Value          float64 `json:"value"`
	Interpretation string  `json:"interpretation"`
}

type TacticalRiskResponse struct {
	Location          string  `json:"location"`
	EnvironmentalRisk float64 `json:"environmental_risk"`
	TemporalStress    float64 `json:"temporal_stress"`
	RiskIndex         float64 `json:"risk_index"`
	ThreatLevel       string  `json:"threat_level"`
	Hotspot           bool    `json:"is_hotspot"`
}

type AircraftSafetyResponse struct {
	MinimumMargin *MarginFindingResponse `json:"minimum_margin"`
	TacticalRisk  []TacticalRiskResponse `json:"tactical_risk"`
}

// HardGateResponse is returned by the hard-gate endpoint.
type HardGateResponse struct {
	MissionID    string                              `json:"mission_id"`
	HardGate     map[string]AircraftHardGateResponse `json:"hard_gate"`
	SafetyMargin map[string]AircraftSafetyResponse   `json:"safety_margin"`
}

func NewHardGate(hg services.HardGateReport, safety services.SafetyReport) HardGateResponse {
	res := HardGateResponse{
		MissionID:    hg.MissionID,
		HardGate:     make(map[string]AircraftHardGateResponse, len(hg.Aircraft)),
		SafetyMargin: make(map[string]AircraftSafetyResponse, len(safety.Aircraft)),
	}

	for _, a := range hg.Aircraft {
		entry := AircraftHardGateResponse{Family: a.Family, Error: a.Error}
		if a.Results != nil {
			entry.Destinations = make(map[string]FeasibilityResponse, len(a.Results))
			for dest, r := range a.Results {
				entry.Destinations[dest] = NewFeasibility(r)
			}
		}
		res.HardGate[a.AircraftName] = entry
	}

	for _, s := range safety.Aircraft {
		entry := AircraftSafetyResponse{TacticalRisk: make([]TacticalRiskResponse, 0, len(s.TacticalRisk))}
		if f := s.MinimumMargin; f != nil {
			entry.MinimumMargin = &MarginFindingResponse{
				Check:          f.Check,
				Location:       f.Location,
				Value:          round(f.Value, 4),
				Interpretation: f.Interpretation,
			}
		}
		for _, tr := range s.TacticalRisk {
			entry.TacticalRisk = append(entry.TacticalRisk, TacticalRiskResponse{
				Location:          tr.Location,
				EnvironmentalRisk: round(tr.EnvironmentalRisk, 4),
				TemporalStress:    round(tr.TemporalStress, 4),
				RiskIndex:         round(tr.RiskIndex, 4),
				ThreatLevel:       tr.ThreatLevel,
				Hotspot:           tr.Hotspot,
			})
		}
		res.SafetyMargin[s.AircraftName] = entry
	}
	return res
}

type LegResponse struct {
	From            string        `json:"from"`
	To              string        `json:"to"`
	DistanceNM      float64       `json:"distance_nm"`
	FuelUsedKg      float64       `json:"fuel_used"`
	FuelRemainingKg float64       `json:"fuel_remaining"`
	TimeHours       float64       `json:"time_hr"`
	GateStatus      domain.Status `json:"hard_gate_status,omitempty"`
	ThreatLevel     string        `json:"threat_level,omitempty"`
	Hotspot         bool          `json:"is_hotspot,omitempty"`
	ReturnToBase    bool          `json:"return_to_base,omitempty"`
	DivertedTo      string        `json:"diverted_to,omitempty"`
	Aborted         bool          `json:"aborted,omitempty"`
	AbortReason     string        `json:"reason,omitempty"`
}

type OutcomeResponse struct {
	Status           domain.RouteStatus `json:"mission_status"`
	FuelUsedKg       float64            `json:"total_fuel_used"`
	TimeHours        float64            `json:"total_time_hr"`
	DistanceNM       float64            `json:"total_distance_nm"`
	PayloadDelivered float64            `json:"payload_delivered_kg"`
	FinalFuelKg      float64            `json:"final_fuel_kg"`
	WorstMargin      *float64           `json:"worst_margin"`
	Legs             []LegResponse      `json:"legs"`
}

func NewOutcome(out domain.SimulationOutcome) OutcomeResponse {
	res := OutcomeResponse{
		Status:           out.Status,
		FuelUsedKg:       round(out.FuelUsedKg, 2),
		TimeHours:        round(out.TimeHours, 2),
		DistanceNM:       round(out.DistanceNM, 2),
		PayloadDelivered: round(out.PayloadDelivered, 2),
		FinalFuelKg:      round(out.FinalFuelKg, 2),
		Legs:             make([]LegResponse, 0, len(out.Legs)),
	}
	if out.WorstMargin != nil {
		res.WorstMargin = finite(*out.WorstMargin, 4)
	}
	for _, l := range out.Legs {
		res.Legs = append(res.Legs, LegResponse{
			From:            l.From,
			To:              l.To,
			DistanceNM:      round(l.DistanceNM, 2),
			FuelUsedKg:      round(l.FuelUsedKg, 2),
			FuelRemainingKg: round(l.FuelRemainingKg, 2),
			TimeHours:       round(l.TimeHours, 2),
			GateStatus:      l.GateStatus,
			ThreatLevel:     l.ThreatLevel,
			Hotspot:         l.Hotspot,
			ReturnToBase:    l.ReturnToBase,
			DivertedTo:      l.DivertedTo,
			Aborted:         l.Aborted,
			AbortReason:     l.AbortReason,
		})
	}
	return res
}

type ScoresResponse struct {
	Delivery       float64 `json:"delivery"`
	Temporal       float64 `json:"temporal"`
	FuelEfficiency float64 `json:"fuel_efficiency"`
	Environmental  float64 `json:"environmental"`
	Safety         float64 `json:"safety"`
}

type RouteResponse struct {
	Sequence       []string        `json:"route_sequence"`
	ObjectiveScore float64         `json:"objective_score"`
	Scores         *ScoresResponse `json:"scores,omitempty"`
	OutcomeResponse
}

type AircraftPlanResponse struct {
	Category  string          `json:"category,omitempty"`
	Family    domain.Family   `json:"family,omitempty"`
	Evaluated int             `json:"evaluated"`
	Passing   int             `json:"passing"`
	Routes    []RouteResponse `json:"routes"`
	Warnings  []string        `json:"warnings,omitempty"`
	Error     string          `json:"error,omitempty"`
}

func NewAircraftPlan(p services.AircraftPlan) AircraftPlanResponse {
	res := AircraftPlanResponse{
		Category:  p.Category,
		Family:    p.Family,
		Evaluated: p.Evaluated,
		Passing:   p.Passing,
		Routes:    make([]RouteResponse, 0, len(p.Top)),
		Warnings:  p.Warnings,
		Error:     p.Error,
	}
	for _, c := range p.Top {
		r := RouteResponse{
			Sequence:        c.Destinations(),
			ObjectiveScore:  round(c.FinalScore, 4),
			OutcomeResponse: NewOutcome(c.Outcome),
		}
		if s := c.Scores; s != nil {
			r.Scores = &ScoresResponse{
				Delivery:       round(s.Delivery, 4),
				Temporal:       round(s.Temporal, 4),
				FuelEfficiency: round(s.FuelEfficiency, 4),
				Environmental:  round(s.Environmental, 4),
				Safety:         round(s.Safety, 4),
			}
		}
		res.Routes = append(res.Routes, r)
	}
	return res
}

type ExecutionResponse struct {
	Sequence    []string `json:"route_sequence"`
	FromRanking bool     `json:"from_ranking"`
	OutcomeResponse
}

type ThresholdResponse struct {
	Metric      string        `json:"metric,omitempty"`
	MarginValue float64       `json:"margin_value"`
	Required    *float64      `json:"required_threshold"`
	Status      domain.Status `json:"status"`
	Reason      string        `json:"reason,omitempty"`
}

type FleetStrategyResponse struct {
	Strategy   string            `json:"strategy"`
	Aircraft   []string          `json:"aircraft"`
	Reason     string            `json:"reason"`
	Allocation map[string]string `json:"allocation"`
}

type SummaryResponse struct {
	OperationalStatus     string  `json:"operational_status"`
	SelectedStrategy      string  `json:"selected_strategy"`
	PrimaryReason         string  `json:"primary_reason"`
	TotalPayloadDelivered float64 `json:"total_payload_delivered"`
	TotalFuelBurnKg       float64 `json:"total_fuel_burn_kg"`
	TotalDistanceNM       float64 `json:"total_distance_nm"`
	TotalMissionTimeMin   float64 `json:"total_mission_time_min"`
	TotalRiskIndex        float64 `json:"total_risk_index"`
}

// MissionReportResponse is the full planning output, also the persisted
// report document.
type MissionReportResponse struct {
	RunID              string                              `json:"run_id"`
	MissionID          string                              `json:"mission_id"`
	Scenario           ScenarioResponse                    `json:"scenario"`
	HardGate           map[string]AircraftHardGateResponse `json:"hard_gate"`
	SafetyMargin       map[string]AircraftSafetyResponse   `json:"safety_margin"`
	RoutePlanning      map[string]AircraftPlanResponse     `json:"route_planning"`
	MissionExecution   map[string]ExecutionResponse        `json:"mission_execution"`
	ObjectiveThreshold map[string]ThresholdResponse        `json:"objective_threshold"`
	FleetStrategy      FleetStrategyResponse               `json:"fleet_strategy"`
	GlobalSummary      SummaryResponse                     `json:"global_summary"`
}

func NewMissionReport(runID string, rep services.MissionReport) MissionReportResponse {
	hg := NewHardGate(rep.HardGate, rep.Safety)

	res := MissionReportResponse{
		RunID:              runID,
		MissionID:          rep.MissionID,
		Scenario:           NewScenario(rep.Scenario),
		HardGate:           hg.HardGate,
		SafetyMargin:       hg.SafetyMargin,
		RoutePlanning:      make(map[string]AircraftPlanResponse, len(rep.Plans)),
		MissionExecution:   make(map[string]ExecutionResponse, len(rep.Executions)),
		ObjectiveThreshold: make(map[string]ThresholdResponse, len(rep.Thresholds)),
		FleetStrategy: FleetStrategyResponse{
			Strategy:   rep.Strategy.Strategy,
			Aircraft:   rep.Strategy.Aircraft,
			Reason:     rep.Strategy.Reason,
			Allocation: rep.Strategy.Allocation,
		},
		GlobalSummary: SummaryResponse{
			OperationalStatus:     rep.Summary.OperationalStatus,
			SelectedStrategy:      rep.Summary.SelectedStrategy,
			PrimaryReason:         rep.Summary.PrimaryReason,
			TotalPayloadDelivered: round(rep.Summary.TotalPayloadDelivered, 2),
			TotalFuelBurnKg:       round(rep.Summary.TotalFuelBurnKg, 2),
			TotalDistanceNM:       round(rep.Summary.TotalDistanceNM, 2),
			TotalMissionTimeMin:   round(rep.Summary.TotalMissionTimeMin, 1),
			TotalRiskIndex:        round(rep.Summary.TotalRiskIndex, 4),
		},
	}

	for _, p := range rep.Plans {
		res.RoutePlanning[p.AircraftName] = NewAircraftPlan(p)
	}
	for _, e := range rep.Executions {
		res.MissionExecution[e.AircraftName] = ExecutionResponse{
			Sequence:        e.Sequence,
			FromRanking:     e.FromRanking,
			OutcomeResponse: NewOutcome(e.Outcome),
		}
	}
	for name, th := range rep.Thresholds {
		res.ObjectiveThreshold[name] = ThresholdResponse{
			Metric:      th.Metric,
			MarginValue: round(th.MarginValue, 4),
			Required:    th.Required,
			Status:      th.Status,
			Reason:      th.Reason,
		}
	}
	return res
}
