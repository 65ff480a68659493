package services

import (
	"math"
	"mission-feasibility-service/internal/domain"
	"testing"
)

// twinProfile is a light fixed-wing aircraft with round numbers: at 150 kt and
// 200 kg/h it burns 4/3 kg per nm and holds 100 kg of reserve.
func twinProfile() domain.AircraftProfile {
	return domain.AircraftProfile{
		Name:             "Test Twin",
		Category:         "Fixed Wing",
		Family:           domain.FamilyFixed,
		EmptyKg:          3000,
		MTOWKg:           5000,
		MLWKg:            5000,
		TakeoffBaseM:     500,
		LandingBaseM:     400,
		ROCFpm:           1000,
		CruiseKt:         150,
		CruiseFuelKgph:   200,
		ClimbFuelKgph:    200,
		ReserveMin:       30,
		ServiceCeilingFt: 20000,
		MinClimbMargin:   domain.MinClimbMargin,
		MinPowerMargin:   domain.MinPowerMargin,
		MinVisibilityKm:  domain.MinVisibilityKm,
		MaxCrosswindKt:   domain.DefaultMaxCrosswindKt,
		CGMin:            domain.CGMin,
		CGMax:            domain.CGMax,
		CG:               domain.CGCurrent,
	}
}

func heloProfile() domain.AircraftProfile {
	p := twinProfile()
	p.Name = "Test Helo"
	p.Category = "Rotary Wing"
	p.Family = domain.FamilyRotary
	p.EmptyKg = 2000
	p.MTOWKg = 3000
	p.MLWKg = 3000
	p.CruiseKt = 120
	p.CruiseFuelKgph = 150
	p.ClimbFuelKgph = 150
	p.RatedPower = 1000
	return p
}

// site is a sea-level ISA field with good weather and a 1500 m runway.
func site(key string, lat, lon float64) domain.Location {
	return domain.Location{
		Key:           key,
		Name:          key,
		Coordinates:   domain.Coordinates{Lat: lat, Lon: lon},
		RunwayLengthM: 1500,
		Weather: domain.Weather{
			QNHHpa:       1013,
			OATC:         15,
			VisibilityKm: 10,
			WindSpeedMps: 5,
		},
	}
}

// Points on the equator one degree of longitude apart (about 60 nm).
func testReference() *domain.Reference {
	locs := map[string]domain.Location{}
	for _, l := range []domain.Location{
		site("base", 0, 0),
		site("a", 0, 1),
		site("b", 0, 2),
		site("c", 1, 1),
		site("far", 0, 5),
	} {
		locs[l.Key] = l
	}

	return &domain.Reference{
		Aircraft: domain.AircraftParameterTable{
			"Fixed Wing": {
				"Test Twin": {
					"Empty Weight (OEW)":        {Value: 3000.0},
					"Max Takeoff Weight (MTOW)": {Value: 5000.0},
					"Takeoff Distance":          {Value: 500.0},
					"Landing Distance":          {Value: 400.0},
					"Rate of Climb":             {Value: 1000.0},
					"Cruise Speed":              {Value: 150.0},
					"Cruise":                    {Value: 200.0},
				},
			},
		},
		Locations: locs,
	}
}

func balancedWeights() domain.Weights {
	return domain.Weights{
		domain.ObjectiveDelivery:       0.2,
		domain.ObjectiveTemporal:       0.2,
		domain.ObjectiveFuelEfficiency: 0.2,
		domain.ObjectiveEnvironmental:  0.2,
		domain.ObjectiveSafety:         0.2,
	}
}

// legFuelNM is the cruise burn of twinProfile for a level leg.
func legFuelNM(nm float64) float64 { return nm / 150 * 200 }

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func wantClose(t *testing.T, name string, got, want float64) {
	t.Helper()
	if !almostEqual(got, want) {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}
