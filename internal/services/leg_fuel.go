package services

import (
	"math"
	"mission-feasibility-service/internal/domain"
)

// LegFuel is the fuel burned on one leg, split by flight phase (kg).
type LegFuel struct {
	Total   float64
	Climb   float64
	Cruise  float64
	Descent float64
}

// ComputeLegFuel models climb, cruise and descent burn for one leg.
//
// Climb burn accrues only when the destination is higher than the origin.
// Descent burns half the cruise rate over |Δalt| / ROC regardless of the sign
// of Δalt. Rates are kg/h, ROC is ft/min.
func ComputeLegFuel(p domain.AircraftProfile, origin, dest domain.Location, distanceNM float64) LegFuel {
	climbHr, cruiseHr, descentHr := phaseHours(p, origin, dest, distanceNM)

	f := LegFuel{
		Climb:   p.ClimbFuelKgph * climbHr,
		Cruise:  p.CruiseFuelKgph * cruiseHr,
		Descent: p.CruiseFuelKgph * 0.5 * descentHr,
	}
	f.Total = f.Climb + f.Cruise + f.Descent
	return f
}

// LegTimeHours returns the elapsed time of a leg in hours.
func LegTimeHours(p domain.AircraftProfile, origin, dest domain.Location, distanceNM float64) float64 {
	climbHr, cruiseHr, descentHr := phaseHours(p, origin, dest, distanceNM)
	return climbHr + cruiseHr + descentHr
}

func phaseHours(p domain.AircraftProfile, origin, dest domain.Location, distanceNM float64) (climb, cruise, descent float64) {
	delta := dest.ElevationFt - origin.ElevationFt

	if delta > 0 && p.ROCFpm > 0 {
		climb = (delta / p.ROCFpm) / 60
	}
	if p.CruiseKt > 0 {
		cruise = distanceNM / p.CruiseKt
	}
	if p.ROCFpm > 0 {
		descent = math.Abs(delta/p.ROCFpm) / 60
	}
	return climb, cruise, descent
}
