package services

import (
	"mission-feasibility-service/internal/domain"
)

// Diversion is the chosen alternate airport for a leg that cannot be flown.
type Diversion struct {
	Alternate  domain.Location
	DistanceNM float64
	FuelKg     float64
	TimeHours  float64
	Verdict    domain.FeasibilityResult
}

// FindAlternate picks the nearest alternate that is both reachable with the
// usable fuel (remaining minus reserve) and passes the hard gate on arrival
// with zero payload. It reports false when no candidate qualifies.
//
// Only one level of diversion is considered.
func FindAlternate(
	p domain.AircraftProfile,
	eval FeasibilityEvaluator,
	current domain.Location,
	fuelRemaining float64,
	reserveFuel float64,
	candidates []domain.Location,
) (Diversion, bool) {
	usable := fuelRemaining - reserveFuel

	var best Diversion
	found := false

	for _, alt := range candidates {
		distance := current.Coordinates.DistanceNM(alt.Coordinates)
		fuel := ComputeLegFuel(p, current, alt, distance)
		if fuel.Total > usable {
			continue
		}

		leg := domain.Leg{
			Origin:        current,
			Destination:   alt,
			DistanceNM:    distance,
			PayloadKg:     0,
			FuelOnboardKg: fuelRemaining - fuel.Total,
		}
		verdict := eval.Evaluate(p, leg)
		if !verdict.Passed() {
			continue
		}

		// Nearest wins; equal distances resolve by key for determinism.
		if !found || distance < best.DistanceNM || (distance == best.DistanceNM && alt.Key < best.Alternate.Key) {
			best = Diversion{
				Alternate:  alt,
				DistanceNM: distance,
				FuelKg:     fuel.Total,
				TimeHours:  LegTimeHours(p, current, alt, distance),
				Verdict:    verdict,
			}
			found = true
		}
	}

	return best, found
}
