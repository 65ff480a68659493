package services

import "math"

const (
	isaSeaLevelTempC = 15.0
	isaLapseCPerM    = 0.0065
	feetToMeters     = 0.3048
	standardQNH      = 1013.0
	feetPerHPa       = 30.0
	feetPerDegreeC   = 120.0

	densityRatioScaleFt = 145442.0
	densityRatioExp     = 4.255
	minDensityRatio     = 0.05

	// knots to ft/min, used to turn ROC into a climb gradient
	ktToFpm = 101.27
)

// DensityAltitude returns pressure altitude corrected for the temperature
// deviation from the ISA lapse rate at the field elevation (ft).
func DensityAltitude(elevationFt, oatC, qnhHpa float64) float64 {
	pressureAlt := elevationFt + (standardQNH-qnhHpa)*feetPerHPa
	isaTemp := isaSeaLevelTempC - isaLapseCPerM*elevationFt*feetToMeters
	return pressureAlt + feetPerDegreeC*(oatC-isaTemp)
}

// DensityRatio returns σ for a density altitude, floored at 0.05.
func DensityRatio(daFt float64) float64 {
	raw := 1 - daFt/densityRatioScaleFt
	if raw <= 0 {
		return minDensityRatio
	}
	return math.Max(minDensityRatio, math.Pow(raw, densityRatioExp))
}

// ClimbGradient converts a rate of climb at a true airspeed into a gradient.
// A zero airspeed yields 0.
func ClimbGradient(rocFpm, tasKt float64) float64 {
	if tasKt == 0 {
		return 0
	}
	return rocFpm / (tasKt * ktToFpm)
}

// FuelRequirement splits required fuel into trip and reserve (kg).
type FuelRequirement struct {
	Total   float64
	Trip    float64
	Reserve float64
}

// FuelRequired computes trip fuel at cruise plus reserve. A zero cruise speed
// makes the trip (and total) infinite.
func FuelRequired(distanceNM, cruiseKt, fuelFlowKgph, reserveMin float64) FuelRequirement {
	if cruiseKt == 0 {
		return FuelRequirement{Total: math.Inf(1)}
	}
	trip := distanceNM / cruiseKt * fuelFlowKgph
	reserve := fuelFlowKgph * (reserveMin / 60)
	return FuelRequirement{Total: trip + reserve, Trip: trip, Reserve: reserve}
}
