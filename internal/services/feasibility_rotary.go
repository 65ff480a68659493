package services

import (
	"math"
	"mission-feasibility-service/internal/domain"
)

// RotaryWingGate runs the five rotary-wing checks. There is no separate
// landing-weight limit, and power and OGE hover replace the runway checks.
type RotaryWingGate struct{}

func (RotaryWingGate) Evaluate(p domain.AircraftProfile, leg domain.Leg) domain.FeasibilityResult {
	s := newLegState(p, leg)
	sigma := DensityRatio(s.densityAlt)

	checks := make([]domain.CheckResult, 0, 5)

	massOK := s.grossKg <= p.MTOWKg && cgWithinLimits(p)
	checks = append(checks, domain.CheckResult{
		Name:   domain.CheckMass,
		Status: domain.StatusOf(massOK),
		Details: map[string]float64{
			"gross_weight": s.grossKg,
			"mtow":         p.MTOWKg,
			"lambda_w":     s.lambda,
			"cg_current":   p.CG,
			"cg_min":       p.CGMin,
			"cg_max":       p.CGMax,
		},
	})

	pAvail := p.RatedPower * sigma
	pReq := p.RatedPower * math.Pow(s.lambda, 1.5)
	powerMargin := -1.0
	if pAvail > 0 {
		powerMargin = (pAvail - pReq) / pAvail
	}
	checks = append(checks, domain.CheckResult{
		Name:   domain.CheckPower,
		Status: domain.StatusOf(powerMargin >= p.MinPowerMargin),
		Details: map[string]float64{
			"density_altitude_ft": s.densityAlt,
			"sigma":               sigma,
			"engine_power":        p.RatedPower,
			"power_available":     pAvail,
			"power_required":      pReq,
			"power_margin_ratio":  powerMargin,
		},
	})

	wMaxOGE := p.MTOWKg * sigma
	ogeMargin := -1.0
	if wMaxOGE > 0 {
		ogeMargin = (wMaxOGE - s.grossKg) / wMaxOGE
	}
	checks = append(checks, domain.CheckResult{
		Name:   domain.CheckOGE,
		Status: domain.StatusOf(wMaxOGE >= s.grossKg),
		Details: map[string]float64{
			"Wmax_OGE":         wMaxOGE,
			"Wg":               s.grossKg,
			"oge_margin_ratio": ogeMargin,
		},
	})

	checks = append(checks, fuelCheck(p, leg), weatherCheck(p, leg, s))

	return domain.NewFeasibilityResult(domain.FamilyRotary, checks)
}
