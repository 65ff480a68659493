package domain

import "strings"

// Family tags the aircraft performance model used by the hard gate.
type Family string

const (
	FamilyFixed  Family = "fixed"
	FamilyRotary Family = "rotary"
)

// FamilyForCategory maps a reference-table category name to a Family.
// Any category mentioning "fixed" is fixed-wing; everything else is rotary.
func FamilyForCategory(category string) Family {
	if strings.Contains(strings.ToLower(category), "fixed") {
		return FamilyFixed
	}
	return FamilyRotary
}

// Fixed safety constants applied uniformly to every profile.
const (
	MinClimbMargin  = 0.01
	MinPowerMargin  = 0.05
	MinVisibilityKm = 5.0
	CGMin           = 20.0
	CGMax           = 30.0
	CGCurrent       = 25.0

	DefaultReserveMin       = 30.0
	DefaultMaxCrosswindKt   = 20.0
	DefaultServiceCeilingFt = 20000.0
)

// Represents the normalized performance envelope of one aircraft.
// An AircraftProfile is built once per (name, category) pair and is treated
// as immutable afterwards; it is passed by value.
type AircraftProfile struct {
	Name     string
	Category string
	Family   Family

	EmptyKg float64
	MTOWKg  float64
	MLWKg   float64

	TakeoffBaseM float64
	LandingBaseM float64

	ROCFpm           float64
	ROCLossPer1000Ft float64 // fraction of ROC lost per 1000 ft DA

	CruiseKt       float64
	CruiseFuelKgph float64
	ClimbFuelKgph  float64
	ReserveMin     float64

	RatedPower           float64
	TakeoffDASensitivity float64 // fractional takeoff distance increase per 1000 ft DA
	ServiceCeilingFt     float64
	HoverCeilingOGEFt    float64

	MinClimbMargin  float64
	MinPowerMargin  float64
	MinVisibilityKm float64
	MaxCrosswindKt  float64

	CGMin float64
	CGMax float64
	CG    float64

	// Non-fatal findings from building the profile, such as an unparsable
	// power rating that was treated as zero.
	Warnings []string
}

// ReserveFuelKg is the mandated buffer: cruise burn rate over the reserve time.
func (p AircraftProfile) ReserveFuelKg() float64 {
	return p.CruiseFuelKgph * (p.ReserveMin / 60)
}

// Parameter is one cell of the aircraft parameter table.
// Value is a JSON number, a string (e.g. "2x500") or nil.
type Parameter struct {
	Value any    `json:"value"`
	Unit  string `json:"unit"`
	Type  string `json:"type"`
}

// AircraftParameterTable maps category -> aircraft name -> parameter name -> parameter.
type AircraftParameterTable map[string]map[string]map[string]Parameter
