package services

import (
	"mission-feasibility-service/internal/domain"
)

// FixedWingGate runs the six fixed-wing checks: mass/CG, takeoff, landing,
// climb, fuel and weather.
type FixedWingGate struct{}

func (FixedWingGate) Evaluate(p domain.AircraftProfile, leg domain.Leg) domain.FeasibilityResult {
	s := newLegState(p, leg)
	dest := leg.Destination

	checks := make([]domain.CheckResult, 0, 6)

	// Mass and balance
	cgOK := cgWithinLimits(p)
	massOK := s.grossKg <= p.MTOWKg && s.grossKg <= p.MLWKg && cgOK
	checks = append(checks, domain.CheckResult{
		Name:   domain.CheckMass,
		Status: domain.StatusOf(massOK),
		Details: map[string]float64{
			"gross_weight": s.grossKg,
			"mtow":         p.MTOWKg,
			"mlw":          p.MLWKg,
			"lambda_w":     s.lambda,
			"cg_current":   p.CG,
			"cg_min":       p.CGMin,
			"cg_max":       p.CGMax,
		},
	})

	// Takeoff scales with λ², landing with λ; both share the DA factor.
	daFactor := s.densityAlt / 1000 * p.TakeoffDASensitivity
	requiredTO := p.TakeoffBaseM * s.lambda * s.lambda * (1 + daFactor)
	toMargin := dest.RunwayLengthM - requiredTO
	checks = append(checks, domain.CheckResult{
		Name:   domain.CheckTakeoff,
		Status: domain.StatusOf(toMargin >= 0),
		Details: map[string]float64{
			"density_altitude_ft": s.densityAlt,
			"lambda_w":            s.lambda,
			"base_takeoff_m":      p.TakeoffBaseM,
			"da_factor":           daFactor,
			"required_takeoff_m":  requiredTO,
			"runway_length_m":     dest.RunwayLengthM,
			"runway_margin_m":     toMargin,
		},
	})

	requiredLdg := p.LandingBaseM * s.lambda * (1 + daFactor)
	ldgMargin := dest.RunwayLengthM - requiredLdg
	checks = append(checks, domain.CheckResult{
		Name:   domain.CheckLanding,
		Status: domain.StatusOf(ldgMargin >= 0),
		Details: map[string]float64{
			"required_landing_m": requiredLdg,
			"runway_length_m":    dest.RunwayLengthM,
			"landing_margin_m":   ldgMargin,
		},
	})

	// Climb
	rocCorrected := p.ROCFpm * (1 - p.ROCLossPer1000Ft*(s.densityAlt/1000))
	deltaAlt := dest.ElevationFt - leg.Origin.ElevationFt
	gReq := 0.0
	if leg.DistanceNM != 0 {
		gReq = deltaAlt / (leg.DistanceNM * domain.NMToFeet)
	}
	gAvail := ClimbGradient(rocCorrected, p.CruiseKt)
	climbMargin := gAvail - gReq
	checks = append(checks, domain.CheckResult{
		Name:   domain.CheckClimb,
		Status: domain.StatusOf(climbMargin >= p.MinClimbMargin),
		Details: map[string]float64{
			"roc_corrected_fpm": rocCorrected,
			"delta_altitude_ft": deltaAlt,
			"G_required":        gReq,
			"G_available":       gAvail,
			"climb_margin":      climbMargin,
		},
	})

	checks = append(checks, fuelCheck(p, leg), weatherCheck(p, leg, s))

	return domain.NewFeasibilityResult(domain.FamilyFixed, checks)
}
