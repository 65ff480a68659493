package services

import (
	"fmt"
	"math"
	"mission-feasibility-service/internal/domain"
)

// SimulationPolicy names the operational assumptions of a simulation run.
// None of them is implied; callers pick them explicitly.
type SimulationPolicy struct {
	// RefuelAtEveryStop is the universal refueling assumption: fuel is reset
	// to the dispatch load after every successful delivery.
	RefuelAtEveryStop bool
	// ReserveAlternateFuel adds the fuel to the destination's first listed
	// alternate to each leg's requirement.
	ReserveAlternateFuel bool
	// AllowDiversion searches for an alternate when a leg cannot be flown.
	// Without it a shortfall ends the route with FAIL_FUEL.
	AllowDiversion bool
	// ReturnToBase flies back to the origin after the last delivery.
	ReturnToBase bool
}

// PlanningPolicy is used when ranking delivery orderings.
var PlanningPolicy = SimulationPolicy{RefuelAtEveryStop: true, AllowDiversion: true}

// ExecutionPolicy is used to replay the chosen route for the execution report.
var ExecutionPolicy = SimulationPolicy{RefuelAtEveryStop: true, AllowDiversion: true, ReturnToBase: true}

// Simulator replays ordered deliveries for one aircraft. It holds only
// immutable inputs and is safe for concurrent use.
type Simulator struct {
	Profile   domain.AircraftProfile
	Evaluator FeasibilityEvaluator
	Reference *domain.Reference
	Policy    SimulationPolicy
}

// NewSimulator selects the evaluator from the profile's family.
func NewSimulator(p domain.AircraftProfile, ref *domain.Reference, policy SimulationPolicy) *Simulator {
	return &Simulator{
		Profile:   p,
		Evaluator: EvaluatorFor(p.Family),
		Reference: ref,
		Policy:    policy,
	}
}

// Simulate flies the sequence leg by leg from originKey and stops at the first
// unrecoverable failure. Totals accrued before a failure are kept for
// diagnostics. Errors are returned only for missing reference data.
func (s *Simulator) Simulate(
	originKey string,
	sequence []domain.Delivery,
	initialFuelKg float64,
	totalPayloadKg float64,
) (domain.SimulationOutcome, error) {
	origin, err := s.Reference.Location(originKey)
	if err != nil {
		return domain.SimulationOutcome{}, fmt.Errorf("simulate route: origin: %w", err)
	}

	p := s.Profile
	reserve := p.ReserveFuelKg()

	r := &run{
		out:     domain.SimulationOutcome{Status: domain.RouteRunning},
		fuel:    initialFuelKg,
		payload: totalPayloadKg,
	}
	current := origin

	for _, d := range sequence {
		dest, err := s.Reference.Location(d.Destination)
		if err != nil {
			return r.finish(), fmt.Errorf("simulate route: destination: %w", err)
		}

		distance := current.Coordinates.DistanceNM(dest.Coordinates)
		legFuel := ComputeLegFuel(p, current, dest, distance)
		legTime := LegTimeHours(p, current, dest, distance)

		required := legFuel.Total
		if s.Policy.ReserveAlternateFuel {
			alt, ok, err := s.Reference.PrimaryAlternate(dest.Key)
			if err != nil {
				return r.finish(), fmt.Errorf("simulate route: alternate for %q: %w", dest.Key, err)
			}
			if ok {
				required += ComputeLegFuel(p, dest, alt, dest.Coordinates.DistanceNM(alt.Coordinates)).Total
			}
		}

		if required > r.fuel-reserve {
			if err := s.divert(r, current, dest); err != nil {
				return r.finish(), err
			}
			return r.finish(), nil
		}

		// Commit the leg, then judge the state on arrival.
		r.fuel -= legFuel.Total
		r.payload = math.Max(0, r.payload-d.WeightKg)
		r.out.FuelUsedKg += legFuel.Total
		r.out.DistanceNM += distance
		r.out.TimeHours += legTime

		verdict := s.Evaluator.Evaluate(p, domain.Leg{
			Origin:        current,
			Destination:   dest,
			DistanceNM:    distance,
			PayloadKg:     r.payload,
			FuelOnboardKg: r.fuel,
		})
		r.observe(verdict)

		trace := domain.LegTrace{
			From:            current.Key,
			To:              dest.Key,
			DistanceNM:      distance,
			FuelUsedKg:      legFuel.Total,
			FuelRemainingKg: r.fuel,
			TimeHours:       legTime,
			GateStatus:      verdict.Overall,
			ThreatLevel:     threatLevel(dest),
			Hotspot:         dest.IsHotspot,
		}

		if !verdict.Passed() {
			trace.Aborted = true
			trace.AbortReason = "hard gate failed"
			r.out.Legs = append(r.out.Legs, trace)
			r.out.Status = domain.RouteFailHardGate
			return r.finish(), nil
		}
		r.out.Legs = append(r.out.Legs, trace)

		r.out.PayloadDelivered += d.WeightKg
		current = dest

		if s.Policy.RefuelAtEveryStop {
			r.fuel = initialFuelKg
		}
	}

	if s.Policy.ReturnToBase {
		s.returnToBase(r, current, origin, reserve)
	}

	if r.out.Status == domain.RouteRunning {
		r.out.Status = domain.RoutePass
	}
	return r.finish(), nil
}

func (s *Simulator) divert(r *run, current, planned domain.Location) error {
	if !s.Policy.AllowDiversion {
		r.out.Status = domain.RouteFailFuel
		r.out.Legs = append(r.out.Legs, domain.LegTrace{
			From:            current.Key,
			To:              planned.Key,
			FuelRemainingKg: r.fuel,
			Aborted:         true,
			AbortReason:     "insufficient fuel for planned leg",
		})
		return nil
	}

	candidates, err := s.Reference.AlternateCandidates(planned.Key)
	if err != nil {
		return fmt.Errorf("simulate route: alternates for %q: %w", planned.Key, err)
	}

	div, ok := FindAlternate(s.Profile, s.Evaluator, current, r.fuel, s.Profile.ReserveFuelKg(), candidates)
	if !ok {
		r.out.Status = domain.RouteFailNoAlternate
		r.out.Legs = append(r.out.Legs, domain.LegTrace{
			From:            current.Key,
			To:              planned.Key,
			FuelRemainingKg: r.fuel,
			Aborted:         true,
			AbortReason:     "no reachable alternate",
		})
		return nil
	}

	r.fuel -= div.FuelKg
	r.out.FuelUsedKg += div.FuelKg
	r.out.DistanceNM += div.DistanceNM
	r.out.TimeHours += div.TimeHours
	r.observe(div.Verdict)
	r.out.Status = domain.RouteDiverted
	r.out.Legs = append(r.out.Legs, domain.LegTrace{
		From:            current.Key,
		To:              planned.Key,
		DistanceNM:      div.DistanceNM,
		FuelUsedKg:      div.FuelKg,
		FuelRemainingKg: r.fuel,
		TimeHours:       div.TimeHours,
		GateStatus:      div.Verdict.Overall,
		ThreatLevel:     threatLevel(div.Alternate),
		Hotspot:         div.Alternate.IsHotspot,
		DivertedTo:      div.Alternate.Key,
	})
	return nil
}

func (s *Simulator) returnToBase(r *run, current, origin domain.Location, reserve float64) {
	p := s.Profile
	distance := current.Coordinates.DistanceNM(origin.Coordinates)
	fuel := ComputeLegFuel(p, current, origin, distance)

	if fuel.Total > r.fuel-reserve {
		r.out.Status = domain.RouteFailReturnBase
		r.out.Legs = append(r.out.Legs, domain.LegTrace{
			From:            current.Key,
			To:              origin.Key,
			FuelRemainingKg: r.fuel,
			ReturnToBase:    true,
			Aborted:         true,
			AbortReason:     "insufficient fuel to return to base",
		})
		return
	}

	hours := LegTimeHours(p, current, origin, distance)
	r.fuel -= fuel.Total
	r.out.FuelUsedKg += fuel.Total
	r.out.DistanceNM += distance
	r.out.TimeHours += hours
	r.out.Legs = append(r.out.Legs, domain.LegTrace{
		From:            current.Key,
		To:              origin.Key,
		DistanceNM:      distance,
		FuelUsedKg:      fuel.Total,
		FuelRemainingKg: r.fuel,
		TimeHours:       hours,
		ThreatLevel:     threatLevel(origin),
		Hotspot:         origin.IsHotspot,
		ReturnToBase:    true,
	})
}

// run is the mutable state of one simulation. It never escapes Simulate.
type run struct {
	out     domain.SimulationOutcome
	fuel    float64
	payload float64
}

func (r *run) observe(verdict domain.FeasibilityResult) {
	m, ok := LegMinimumMargin(verdict)
	if !ok {
		return
	}
	if r.out.WorstMargin == nil || m.Value < *r.out.WorstMargin {
		v := m.Value
		r.out.WorstMargin = &v
	}
}

func (r *run) finish() domain.SimulationOutcome {
	r.out.FinalFuelKg = r.fuel
	return r.out
}

func threatLevel(loc domain.Location) string {
	if loc.SecurityThreat == "" {
		return "Low"
	}
	return loc.SecurityThreat
}
