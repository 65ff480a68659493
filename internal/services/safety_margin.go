package services

import (
	"math"
	"mission-feasibility-service/internal/domain"
	"slices"
	"strings"
)

// Margin is one check's normalized distance from its limit.
// Negative values mean the limit is violated.
type Margin struct {
	Check string
	Value float64
}

// MarginFinding is the single worst margin across a set of verdicts.
type MarginFinding struct {
	Check          string
	Location       string
	Value          float64
	Interpretation string
}

var marginInterpretations = map[string]string{
	domain.CheckTakeoff: "Takeoff distance closest to runway limit",
	domain.CheckLanding: "Landing distance closest to runway limit",
	domain.CheckClimb:   "Climb performance closest to minimum gradient",
	domain.CheckFuel:    "Fuel reserve closest to minimum legal reserve",
	domain.CheckPower:   "Engine power closest to available limit",
	domain.CheckOGE:     "Hover ceiling closest to OGE limit",
}

// InterpretMargin describes what a check's margin means operationally.
func InterpretMargin(check string) string {
	if s, ok := marginInterpretations[check]; ok {
		return s
	}
	return "Critical safety margin"
}

// NormalizedMargins converts each check's raw output into a margin ratio.
// Checks without a meaningful ratio (mass, weather, or a zero requirement)
// are omitted.
func NormalizedMargins(r domain.FeasibilityResult) []Margin {
	out := make([]Margin, 0, len(r.Checks))
	for _, c := range r.Checks {
		d := c.Details
		switch c.Name {
		case domain.CheckTakeoff:
			if req := d["required_takeoff_m"]; req != 0 {
				out = append(out, Margin{c.Name, (d["runway_length_m"] - req) / req})
			}
		case domain.CheckLanding:
			if req := d["required_landing_m"]; req != 0 {
				out = append(out, Margin{c.Name, (d["runway_length_m"] - req) / req})
			}
		case domain.CheckClimb:
			if gReq := d["G_required"]; gReq != 0 {
				out = append(out, Margin{c.Name, d["climb_margin"] / gReq})
			} else {
				out = append(out, Margin{c.Name, d["climb_margin"]})
			}
		case domain.CheckFuel:
			req := d["total_required_kg"]
			if req != 0 && !math.IsInf(req, 0) {
				out = append(out, Margin{c.Name, (d["fuel_onboard_kg"] - req) / req})
			}
		case domain.CheckPower:
			out = append(out, Margin{c.Name, d["power_margin_ratio"]})
		case domain.CheckOGE:
			out = append(out, Margin{c.Name, d["oge_margin_ratio"]})
		}
	}
	return out
}

// LegMinimumMargin returns the worst normalized margin of one verdict.
func LegMinimumMargin(r domain.FeasibilityResult) (Margin, bool) {
	margins := NormalizedMargins(r)
	if len(margins) == 0 {
		return Margin{}, false
	}
	worst := margins[0]
	for _, m := range margins[1:] {
		if m.Value < worst.Value {
			worst = m
		}
	}
	return worst, true
}

// MinimumMargin scans verdicts keyed by location and reports the single
// closest-to-limit margin, or nil when no check produced one. Locations are
// visited in key order so ties resolve deterministically.
func MinimumMargin(results map[string]domain.FeasibilityResult) *MarginFinding {
	keys := make([]string, 0, len(results))
	for k := range results {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var best *MarginFinding
	for _, loc := range keys {
		m, ok := LegMinimumMargin(results[loc])
		if !ok {
			continue
		}
		if best == nil || m.Value < best.Value {
			best = &MarginFinding{
				Check:          m.Check,
				Location:       loc,
				Value:          m.Value,
				Interpretation: InterpretMargin(m.Check),
			}
		}
	}
	return best
}

// LegEnvironmentalRisk weights density altitude against the service ceiling,
// wind against the crosswind limit and field elevation against 10,000 ft.
func LegEnvironmentalRisk(p domain.AircraftProfile, dest domain.Location) float64 {
	w := dest.Weather
	da := DensityAltitude(dest.ElevationFt, w.OATC, w.QNHHpa)

	ceiling := p.ServiceCeilingFt
	if ceiling == 0 {
		ceiling = domain.DefaultServiceCeilingFt
	}
	rDA := da / ceiling

	rWind := 0.0
	if p.MaxCrosswindKt > 0 {
		rWind = w.WindKt() / p.MaxCrosswindKt
	}
	rTerrain := dest.ElevationFt / 10000

	return 0.4*rDA + 0.4*rWind + 0.2*rTerrain
}

// TacticalRisk is one location's situational-awareness ranking entry.
type TacticalRisk struct {
	Location          string
	EnvironmentalRisk float64
	TemporalStress    float64
	RiskIndex         float64
	ThreatLevel       string
	Hotspot           bool
}

// RankTacticalRisk ranks locations by 0.6*environmental risk + 0.4*temporal
// stress, highest risk first. Temporal stress is the share of the aircraft's
// endurance (dispatch fuel over cruise burn) consumed by the direct leg from
// origin, capped at 1.
func RankTacticalRisk(p domain.AircraftProfile, origin domain.Location, locations []domain.Location, fuelKg float64) []TacticalRisk {
	endurance := 0.0
	if p.CruiseFuelKgph > 0 {
		endurance = fuelKg / p.CruiseFuelKgph
	}

	out := make([]TacticalRisk, 0, len(locations))
	for _, loc := range locations {
		env := LegEnvironmentalRisk(p, loc)

		stress := 1.0
		if endurance > 0 {
			hours := LegTimeHours(p, origin, loc, origin.Coordinates.DistanceNM(loc.Coordinates))
			stress = math.Min(1, hours/endurance)
		}

		out = append(out, TacticalRisk{
			Location:          loc.Key,
			EnvironmentalRisk: env,
			TemporalStress:    stress,
			RiskIndex:         0.6*env + 0.4*stress,
			ThreatLevel:       threatLevel(loc),
			Hotspot:           loc.IsHotspot,
		})
	}

	slices.SortFunc(out, func(a, b TacticalRisk) int {
		if a.RiskIndex != b.RiskIndex {
			if a.RiskIndex > b.RiskIndex {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Location, b.Location)
	})
	return out
}
