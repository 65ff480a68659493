package services

import (
	"context"
	"errors"
	"mission-feasibility-service/internal/domain"
	"mission-feasibility-service/internal/platform/obs"
	"mission-feasibility-service/internal/scenario"
	"testing"
)

func newTestPlanner() *Planner {
	return NewPlanner(testReference(), scenario.NewResolver(), EnumerateOptions{Workers: 2}, obs.Discard())
}

func testMission() domain.MissionRequest {
	return domain.MissionRequest{
		MissionID:      "M-001",
		Origin:         "BASE",
		TotalPayloadKg: 600,
		AssignedFleet: []domain.FleetAssignment{
			{AircraftName: "Test Twin", Type: "Fixed Wing", FuelKg: 1000},
			{AircraftName: "Ghost", Type: "Fixed Wing", FuelKg: 1000},
		},
		Deliveries: deliveries("A", 300.0, "b", 300.0),
	}
}

func TestPlanMission(t *testing.T) {
	p := newTestPlanner()

	rep, err := p.PlanMission(context.Background(), testMission())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rep.Scenario.ID != scenario.ScenarioBalanced {
		t.Fatalf("scenario = %q, want Balanced", rep.Scenario.ID)
	}
	if len(rep.Plans) != 2 {
		t.Fatalf("plans = %d, want 2", len(rep.Plans))
	}

	twin := rep.Plans[0]
	if twin.Error != "" {
		t.Fatalf("twin plan error: %s", twin.Error)
	}
	if twin.Evaluated != 2 || twin.Passing != 2 {
		t.Fatalf("evaluated, passing = %d, %d, want 2, 2", twin.Evaluated, twin.Passing)
	}
	if rep.Plans[1].Error == "" {
		t.Fatalf("expected an error for the unknown aircraft")
	}

	if len(rep.Executions) != 1 {
		t.Fatalf("executions = %d, want 1", len(rep.Executions))
	}
	exec := rep.Executions[0]
	if !exec.FromRanking || exec.Outcome.Status != domain.RoutePass {
		t.Fatalf("execution = %+v, want ranked PASS", exec)
	}
	if last := exec.Outcome.Legs[len(exec.Outcome.Legs)-1]; !last.ReturnToBase {
		t.Fatalf("execution should end with the return leg, got %+v", last)
	}

	if rep.Strategy.Strategy != StrategySingleFleet || rep.Strategy.Aircraft[0] != "Test Twin" {
		t.Fatalf("strategy = %+v, want single fleet Test Twin", rep.Strategy)
	}
	if rep.Summary.OperationalStatus != "GO" {
		t.Fatalf("status = %s, want GO", rep.Summary.OperationalStatus)
	}
	if rep.Summary.TotalPayloadDelivered != 600 {
		t.Fatalf("payload delivered = %v, want 600", rep.Summary.TotalPayloadDelivered)
	}
	wantClose(t, "mission minutes", rep.Summary.TotalMissionTimeMin, twin.Top[0].Outcome.TimeHours*60)

	if _, ok := rep.Thresholds["Test Twin"]; !ok {
		t.Fatalf("missing threshold evaluation for Test Twin")
	}

	hg := rep.HardGate.Aircraft
	if len(hg) != 2 || len(hg[0].Results) != 2 || hg[1].Error == "" {
		t.Fatalf("hard gate = %+v", hg)
	}
}

func TestPlanMission_NoFeasibleRoute(t *testing.T) {
	p := newTestPlanner()
	req := testMission()
	req.AssignedFleet = []domain.FleetAssignment{{AircraftName: "Test Twin", Type: "Fixed Wing", FuelKg: 150}}

	rep, err := p.PlanMission(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rep.Plans[0].Passing != 0 {
		t.Fatalf("passing = %d, want 0", rep.Plans[0].Passing)
	}
	if rep.Strategy.Strategy != StrategyMultiFleet {
		t.Fatalf("strategy = %q, want %q", rep.Strategy.Strategy, StrategyMultiFleet)
	}
	if rep.Summary.OperationalStatus != "NO-GO" {
		t.Fatalf("status = %s, want NO-GO", rep.Summary.OperationalStatus)
	}
	exec := rep.Executions[0]
	if exec.FromRanking {
		t.Fatalf("execution should replay the mission order")
	}
	if exec.Sequence[0] != "a" {
		t.Fatalf("sequence = %v, want mission order", exec.Sequence)
	}
}

func TestPlanMission_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.MissionRequest)
		want   error
	}{
		{"unknown scenario", func(r *domain.MissionRequest) { r.ScenarioID = "Joyride" }, domain.ErrConfiguration},
		{"unknown objective mode", func(r *domain.MissionRequest) { r.ObjectiveMode = "Speed" }, domain.ErrConfiguration},
		{"custom without weights", func(r *domain.MissionRequest) { r.ScenarioID = scenario.ScenarioCustom }, domain.ErrConfiguration},
		{"empty fleet", func(r *domain.MissionRequest) { r.AssignedFleet = nil }, domain.ErrConfiguration},
		{"aircraft assigned twice", func(r *domain.MissionRequest) {
			r.AssignedFleet = []domain.FleetAssignment{
				{AircraftName: "Test Twin", Type: "Fixed Wing", FuelKg: 1000},
				{AircraftName: "Test Twin", Type: "Fixed Wing", FuelKg: 400},
			}
		}, domain.ErrConfiguration},
		{"no deliveries", func(r *domain.MissionRequest) { r.Deliveries = nil }, domain.ErrConfiguration},
		{"unknown origin", func(r *domain.MissionRequest) { r.Origin = "nowhere" }, domain.ErrReferenceDataNotFound},
		{"unknown destination", func(r *domain.MissionRequest) { r.Deliveries = deliveries("atlantis", 1.0) }, domain.ErrReferenceDataNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testMission()
			tt.mutate(&req)

			_, err := newTestPlanner().PlanMission(context.Background(), req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestResolveScenario_ObjectiveModeOverridesThresholds(t *testing.T) {
	p := newTestPlanner()
	req := testMission()
	req.ScenarioID = scenario.ScenarioEmergency
	req.ObjectiveMode = "Safety"

	sc, err := p.ResolveScenario(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc.ID != scenario.ScenarioEmergency {
		t.Fatalf("id = %q, want Emergency", sc.ID)
	}
	if sc.Thresholds.RunwayMin != 0.25 {
		t.Fatalf("runway min = %v, want 0.25", sc.Thresholds.RunwayMin)
	}
}

func TestSafetyReport(t *testing.T) {
	p := newTestPlanner()
	req := testMission()

	hg, err := p.HardGateReport(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rep := p.SafetyReport(req, hg)

	if len(rep.Aircraft) != 1 {
		t.Fatalf("aircraft = %d, want 1 (unknown aircraft skipped)", len(rep.Aircraft))
	}
	s := rep.Aircraft[0]
	if s.MinimumMargin == nil {
		t.Fatalf("expected a minimum margin")
	}
	if len(s.TacticalRisk) != 2 {
		t.Fatalf("tactical risk = %d, want 2", len(s.TacticalRisk))
	}
}
