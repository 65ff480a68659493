package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mission-feasibility-service/internal/domain"
	"mission-feasibility-service/internal/platform/obs"
	"mission-feasibility-service/internal/ports"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Fleet strategy labels. Payload splitting is a recommendation only and is
// never simulated.
const (
	StrategySingleFleet = "Single Fleet"
	StrategyMultiFleet  = "Multi Fleet / Split Sortie"
)

// HardGateReport holds one verdict per aircraft per destination for the leg
// from the mission origin with the full payload and dispatch fuel.
type HardGateReport struct {
	MissionID string
	Aircraft  []AircraftHardGate
}

type AircraftHardGate struct {
	AircraftName string
	Family       domain.Family
	Results      map[string]domain.FeasibilityResult
	// Error is set when the aircraft could not be resolved.
	Error string

	profile domain.AircraftProfile
	fuelKg  float64
}

// SafetyReport summarizes the worst margin and tactical risk per aircraft.
type SafetyReport struct {
	MissionID string
	Aircraft  []AircraftSafety
}

type AircraftSafety struct {
	AircraftName  string
	MinimumMargin *MarginFinding
	TacticalRisk  []TacticalRisk
}

// AircraftPlan is the ranked route-planning result for one aircraft.
type AircraftPlan struct {
	AircraftName string
	Category     string
	Family       domain.Family
	FuelKg       float64
	Evaluated    int
	Passing      int
	Top          []domain.RouteCandidate
	Warnings     []string
	Error        string
}

// Best returns the top passing candidate, if any.
func (p AircraftPlan) Best() (domain.RouteCandidate, bool) {
	if len(p.Top) == 0 || p.Top[0].Outcome.Status != domain.RoutePass {
		return domain.RouteCandidate{}, false
	}
	return p.Top[0], true
}

// Execution is the chosen route of one aircraft replayed under the execution
// policy (return to base included).
type Execution struct {
	AircraftName string
	Sequence     []string
	// FromRanking is false when no ordering passed and the mission order was
	// replayed for diagnostics.
	FromRanking bool
	Outcome     domain.SimulationOutcome
}

type FleetStrategy struct {
	Strategy   string
	Aircraft   []string
	Reason     string
	Allocation map[string]string
}

type GlobalSummary struct {
	OperationalStatus     string
	SelectedStrategy      string
	PrimaryReason         string
	TotalPayloadDelivered float64
	TotalFuelBurnKg       float64
	TotalDistanceNM       float64
	TotalMissionTimeMin   float64
	TotalRiskIndex        float64
}

// MissionReport combines every output of a planning run.
type MissionReport struct {
	MissionID  string
	Scenario   domain.Scenario
	HardGate   HardGateReport
	Safety     SafetyReport
	Plans      []AircraftPlan
	Executions []Execution
	Thresholds map[string]ThresholdEvaluation
	Strategy   FleetStrategy
	Summary    GlobalSummary
}

// Planner orchestrates the engines for a mission request. It holds no
// per-request state and is safe for concurrent use.
type Planner struct {
	Reference *domain.Reference
	Scenarios ports.ScenarioResolver
	Options   EnumerateOptions
	Logger    *slog.Logger
}

// NewPlanner wires a planner over injected reference data.
func NewPlanner(ref *domain.Reference, scenarios ports.ScenarioResolver, opts EnumerateOptions, lg *slog.Logger) *Planner {
	if lg == nil {
		lg = slog.Default()
	}
	return &Planner{Reference: ref, Scenarios: scenarios, Options: opts, Logger: lg}
}

// ResolveScenario returns the mission's weights and thresholds. An objective
// mode, when present, replaces the policy thresholds.
func (p *Planner) ResolveScenario(req domain.MissionRequest) (domain.Scenario, error) {
	sc, err := p.Scenarios.Resolve(req.ScenarioID, req.CustomConfig)
	if err != nil {
		return domain.Scenario{}, fmt.Errorf("resolve scenario: %w", err)
	}
	if mode := strings.TrimSpace(req.ObjectiveMode); mode != "" {
		th, ok := p.Scenarios.ObjectiveThresholds(mode)
		if !ok {
			return domain.Scenario{}, fmt.Errorf("resolve scenario: %w",
				domain.NewConfigurationError("unknown objective mode %q", mode))
		}
		sc.Thresholds = th
	}
	return sc, nil
}

// ValidateRequest checks the request shape and that every referenced location
// exists. Missing keys are reported by name.
func (p *Planner) ValidateRequest(req domain.MissionRequest) error {
	if strings.TrimSpace(req.Origin) == "" {
		return domain.NewConfigurationError("mission %q has no origin", req.MissionID)
	}
	if len(req.AssignedFleet) == 0 {
		return domain.NewConfigurationError("mission %q has no assigned fleet", req.MissionID)
	}
	if len(req.Deliveries) == 0 {
		return domain.NewConfigurationError("mission %q has no deliveries", req.MissionID)
	}
	seen := make(map[string]bool, len(req.AssignedFleet))
	for _, ac := range req.AssignedFleet {
		if seen[ac.AircraftName] {
			return domain.NewConfigurationError("mission %q assigns aircraft %q more than once", req.MissionID, ac.AircraftName)
		}
		seen[ac.AircraftName] = true
	}
	if _, err := p.Reference.Location(strings.ToLower(req.Origin)); err != nil {
		return err
	}
	for _, d := range domain.MergeDeliveries(req.Deliveries) {
		if d.Destination == "" {
			return domain.NewConfigurationError("mission %q has a delivery without destination", req.MissionID)
		}
		if _, err := p.Reference.Location(d.Destination); err != nil {
			return err
		}
	}
	return nil
}

// fleetMember is one assigned aircraft with its profile, built once per request.
type fleetMember struct {
	assignment domain.FleetAssignment
	profile    domain.AircraftProfile
	err        error
}

func (p *Planner) buildFleet(req domain.MissionRequest) []fleetMember {
	fleet := make([]fleetMember, 0, len(req.AssignedFleet))
	for _, ac := range req.AssignedFleet {
		prof, err := BuildProfile(p.Reference.Aircraft, ac.AircraftName, ac.Type)
		fleet = append(fleet, fleetMember{assignment: ac, profile: prof, err: err})
	}
	return fleet
}

// HardGateReport evaluates every destination from the origin for each aircraft.
func (p *Planner) HardGateReport(req domain.MissionRequest) (HardGateReport, error) {
	if err := p.ValidateRequest(req); err != nil {
		return HardGateReport{}, fmt.Errorf("hard gate report: %w", err)
	}
	return p.hardGate(req, p.buildFleet(req)), nil
}

func (p *Planner) hardGate(req domain.MissionRequest, fleet []fleetMember) HardGateReport {
	origin, _ := p.Reference.Location(strings.ToLower(req.Origin))
	merged := domain.MergeDeliveries(req.Deliveries)

	rep := HardGateReport{MissionID: req.MissionID}
	for _, m := range fleet {
		ac := m.assignment
		entry := AircraftHardGate{AircraftName: ac.AircraftName, fuelKg: ac.FuelKg}

		if m.err != nil {
			p.Logger.Warn("aircraft skipped", "mission", req.MissionID, "aircraft", ac.AircraftName, "err", m.err)
			entry.Error = m.err.Error()
			rep.Aircraft = append(rep.Aircraft, entry)
			continue
		}
		prof := m.profile
		eval := EvaluatorFor(prof.Family)
		entry.Family = prof.Family
		entry.profile = prof
		entry.Results = make(map[string]domain.FeasibilityResult, len(merged))

		for _, d := range merged {
			dest, _ := p.Reference.Location(d.Destination)
			entry.Results[dest.Key] = eval.Evaluate(prof, domain.Leg{
				Origin:        origin,
				Destination:   dest,
				DistanceNM:    origin.Coordinates.DistanceNM(dest.Coordinates),
				PayloadKg:     req.TotalPayloadKg,
				FuelOnboardKg: ac.FuelKg,
			})
		}
		rep.Aircraft = append(rep.Aircraft, entry)
	}
	return rep
}

// SafetyReport derives the worst margin and tactical risk ranking for each
// aircraft from a hard-gate report.
func (p *Planner) SafetyReport(req domain.MissionRequest, hg HardGateReport) SafetyReport {
	rep := SafetyReport{MissionID: hg.MissionID}

	origin, err := p.Reference.Location(strings.ToLower(req.Origin))
	if err != nil {
		return rep
	}
	for _, entry := range hg.Aircraft {
		if entry.Error != "" {
			continue
		}
		s := AircraftSafety{
			AircraftName:  entry.AircraftName,
			MinimumMargin: MinimumMargin(entry.Results),
		}

		if entry.Results != nil {
			keys := make([]string, 0, len(entry.Results))
			for k := range entry.Results {
				keys = append(keys, k)
			}
			slices.Sort(keys)
			locs := make([]domain.Location, 0, len(keys))
			for _, k := range keys {
				if loc, err := p.Reference.Location(k); err == nil {
					locs = append(locs, loc)
				}
			}
			s.TacticalRisk = RankTacticalRisk(entry.profile, origin, locs, entry.fuelKg)
		}
		rep.Aircraft = append(rep.Aircraft, s)
	}
	return rep
}

// PlanMission runs every report for a mission. Configuration and missing
// reference data abort the whole mission before simulation; an aircraft that
// cannot be resolved is reported and skipped; infeasible routes are results,
// not errors.
func (p *Planner) PlanMission(ctx context.Context, req domain.MissionRequest) (rep MissionReport, err error) {
	defer obs.Time(ctx, p.Logger, "plan_mission")(&err)

	sc, err := p.ResolveScenario(req)
	if err != nil {
		return MissionReport{}, fmt.Errorf("plan mission: %w", err)
	}

	if err := p.ValidateRequest(req); err != nil {
		return MissionReport{}, fmt.Errorf("plan mission: %w", err)
	}
	fleet := p.buildFleet(req)
	hg := p.hardGate(req, fleet)
	safety := p.SafetyReport(req, hg)

	originKey := strings.ToLower(req.Origin)
	plans := make([]AircraftPlan, len(req.AssignedFleet))
	executions := make([]*Execution, len(req.AssignedFleet))

	g, gctx := errgroup.WithContext(ctx)
	for i, m := range fleet {
		g.Go(func() error {
			plan, exec, err := p.planAircraft(gctx, req, originKey, m, sc.Weights)
			if err != nil {
				return err
			}
			plans[i] = plan
			executions[i] = exec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return MissionReport{}, fmt.Errorf("plan mission: %w", err)
	}

	rep = MissionReport{
		MissionID:  req.MissionID,
		Scenario:   sc,
		HardGate:   hg,
		Safety:     safety,
		Plans:      plans,
		Thresholds: make(map[string]ThresholdEvaluation, len(safety.Aircraft)),
	}
	for _, e := range executions {
		if e != nil {
			rep.Executions = append(rep.Executions, *e)
		}
	}
	for _, s := range safety.Aircraft {
		rep.Thresholds[s.AircraftName] = EvaluateThresholds(s.MinimumMargin, sc.Thresholds)
	}
	rep.Strategy = SelectFleetStrategy(req.TotalPayloadKg, plans)
	rep.Summary = Summarize(rep.Strategy, plans)

	p.Logger.Info("mission planned",
		"mission", req.MissionID,
		"scenario", sc.ID,
		"strategy", rep.Strategy.Strategy,
		"status", rep.Summary.OperationalStatus)

	return rep, nil
}

func (p *Planner) planAircraft(
	ctx context.Context,
	req domain.MissionRequest,
	originKey string,
	m fleetMember,
	weights domain.Weights,
) (AircraftPlan, *Execution, error) {
	ac := m.assignment
	plan := AircraftPlan{AircraftName: ac.AircraftName, FuelKg: ac.FuelKg}

	if m.err != nil {
		if errors.Is(m.err, domain.ErrProfileNotFound) {
			plan.Error = m.err.Error()
			return plan, nil, nil
		}
		return plan, nil, m.err
	}
	prof := m.profile
	plan.Category = prof.Category
	plan.Family = prof.Family
	plan.Warnings = prof.Warnings
	for _, w := range prof.Warnings {
		p.Logger.Warn("aircraft profile", "aircraft", prof.Name, "warning", w)
	}

	sim := NewSimulator(prof, p.Reference, PlanningPolicy)
	eval, err := EnumerateRoutes(ctx, sim, originKey, req.Deliveries, ac.FuelKg, req.TotalPayloadKg, weights, p.Options)
	if err != nil {
		return plan, nil, fmt.Errorf("aircraft %q: %w", ac.AircraftName, err)
	}
	plan.Evaluated = eval.Evaluated
	plan.Passing = eval.Passing
	plan.Top = eval.Top

	p.Logger.Debug("routes enumerated",
		"aircraft", prof.Name, "evaluated", eval.Evaluated, "passing", eval.Passing)

	exec := &Execution{AircraftName: ac.AircraftName}
	seq := domain.MergeDeliveries(req.Deliveries)
	if best, ok := plan.Best(); ok {
		seq = best.Sequence
		exec.FromRanking = true
	}
	for _, d := range seq {
		exec.Sequence = append(exec.Sequence, d.Destination)
	}

	execSim := NewSimulator(prof, p.Reference, ExecutionPolicy)
	out, err := execSim.Simulate(originKey, seq, ac.FuelKg, req.TotalPayloadKg)
	if err != nil {
		return plan, nil, fmt.Errorf("aircraft %q: execution: %w", ac.AircraftName, err)
	}
	exec.Outcome = out

	return plan, exec, nil
}

// SelectFleetStrategy picks Single Fleet when some aircraft's best passing
// route delivers the whole payload, otherwise recommends splitting.
func SelectFleetStrategy(totalPayloadKg float64, plans []AircraftPlan) FleetStrategy {
	for _, plan := range plans {
		best, ok := plan.Best()
		if !ok || best.Outcome.PayloadDelivered < totalPayloadKg {
			continue
		}
		return FleetStrategy{
			Strategy:   StrategySingleFleet,
			Aircraft:   []string{plan.AircraftName},
			Reason:     fmt.Sprintf("%s can carry the whole payload (%.0f kg) in one sortie", plan.AircraftName, totalPayloadKg),
			Allocation: map[string]string{plan.AircraftName: "100% Payload"},
		}
	}

	names := make([]string, 0, len(plans))
	alloc := make(map[string]string, len(plans))
	for _, plan := range plans {
		names = append(names, plan.AircraftName)
		alloc[plan.AircraftName] = "Split Payload"
	}
	return FleetStrategy{
		Strategy:   StrategyMultiFleet,
		Aircraft:   names,
		Reason:     "no single aircraft can carry the whole payload in one sortie; split the payload or use multiple aircraft",
		Allocation: alloc,
	}
}

// Summarize derives the GO/NO-GO summary from the selected strategy.
func Summarize(strategy FleetStrategy, plans []AircraftPlan) GlobalSummary {
	sum := GlobalSummary{
		OperationalStatus: "NO-GO",
		SelectedStrategy:  strategy.Strategy,
		PrimaryReason:     "No feasible route found",
	}
	if strategy.Strategy != StrategySingleFleet || len(strategy.Aircraft) == 0 {
		return sum
	}

	for _, plan := range plans {
		if plan.AircraftName != strategy.Aircraft[0] {
			continue
		}
		best, ok := plan.Best()
		if !ok {
			return sum
		}
		out := best.Outcome
		sum.OperationalStatus = "GO"
		sum.PrimaryReason = "Mission feasible"
		sum.TotalPayloadDelivered = out.PayloadDelivered
		sum.TotalFuelBurnKg = out.FuelUsedKg
		sum.TotalDistanceNM = out.DistanceNM
		sum.TotalMissionTimeMin = out.TimeHours * 60
		sum.TotalRiskIndex = 1
		if best.Scores != nil {
			sum.TotalRiskIndex = 1 - best.Scores.Environmental
		}
	}
	return sum
}
