package services

import (
	"mission-feasibility-service/internal/domain"
)

// FeasibilityEvaluator renders the hard-gate verdict for one leg.
// Implementations are pure: the same (profile, leg) always yields the same result.
type FeasibilityEvaluator interface {
	Evaluate(p domain.AircraftProfile, leg domain.Leg) domain.FeasibilityResult
}

// EvaluatorFor selects the hard gate for an aircraft family.
func EvaluatorFor(family domain.Family) FeasibilityEvaluator {
	if family == domain.FamilyFixed {
		return FixedWingGate{}
	}
	return RotaryWingGate{}
}

// legState holds the quantities every check shares.
type legState struct {
	densityAlt float64
	grossKg    float64
	lambda     float64
	windKt     float64
}

func newLegState(p domain.AircraftProfile, leg domain.Leg) legState {
	dest := leg.Destination
	s := legState{
		densityAlt: DensityAltitude(dest.ElevationFt, dest.Weather.OATC, dest.Weather.QNHHpa),
		grossKg:    p.EmptyKg + leg.PayloadKg + leg.FuelOnboardKg,
		windKt:     dest.Weather.WindKt(),
	}
	if p.MTOWKg != 0 {
		s.lambda = s.grossKg / p.MTOWKg
	}
	return s
}

func cgWithinLimits(p domain.AircraftProfile) bool {
	return p.CGMin <= p.CG && p.CG <= p.CGMax
}

func fuelCheck(p domain.AircraftProfile, leg domain.Leg) domain.CheckResult {
	req := FuelRequired(leg.DistanceNM, p.CruiseKt, p.CruiseFuelKgph, p.ReserveMin)
	margin := leg.FuelOnboardKg - req.Total

	return domain.CheckResult{
		Name:   domain.CheckFuel,
		Status: domain.StatusOf(margin >= 0),
		Details: map[string]float64{
			"trip_fuel_kg":      req.Trip,
			"reserve_fuel_kg":   req.Reserve,
			"total_required_kg": req.Total,
			"fuel_onboard_kg":   leg.FuelOnboardKg,
			"fuel_margin_kg":    margin,
		},
	}
}

func weatherCheck(p domain.AircraftProfile, leg domain.Leg, s legState) domain.CheckResult {
	w := leg.Destination.Weather
	ok := w.VisibilityKm >= p.MinVisibilityKm && s.windKt <= p.MaxCrosswindKt

	return domain.CheckResult{
		Name:   domain.CheckWeather,
		Status: domain.StatusOf(ok),
		Details: map[string]float64{
			"visibility_km":           w.VisibilityKm,
			"min_visibility_required": p.MinVisibilityKm,
			"wind_speed_kt":           s.windKt,
			"max_crosswind_kt":        p.MaxCrosswindKt,
		},
	}
}
