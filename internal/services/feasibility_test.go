package services

import (
	"mission-feasibility-service/internal/domain"
	"reflect"
	"testing"
)

func fixedLeg() domain.Leg {
	return domain.Leg{
		Origin:        site("base", 0, 0),
		Destination:   site("a", 0, 1),
		DistanceNM:    60,
		PayloadKg:     300,
		FuelOnboardKg: 700,
	}
}

func TestFixedWingGate_Pass(t *testing.T) {
	res := FixedWingGate{}.Evaluate(twinProfile(), fixedLeg())

	if !res.Passed() {
		t.Fatalf("expected PASS, got %+v", res.Checks)
	}
	if len(res.Checks) != 6 {
		t.Fatalf("checks = %d, want 6", len(res.Checks))
	}

	to, _ := res.Check(domain.CheckTakeoff)
	// gross 4000 of 5000 MTOW, no DA penalty: 500 m * 0.8^2
	wantClose(t, "required_takeoff_m", to.Details["required_takeoff_m"], 320)

	ldg, _ := res.Check(domain.CheckLanding)
	wantClose(t, "required_landing_m", ldg.Details["required_landing_m"], 320)

	fuel, _ := res.Check(domain.CheckFuel)
	wantClose(t, "total_required_kg", fuel.Details["total_required_kg"], 180)
}

func TestFixedWingGate_FailingChecks(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Leg)
		check  string
	}{
		{"overweight", func(l *domain.Leg) { l.PayloadKg = 1500 }, domain.CheckMass},
		{"short runway takeoff", func(l *domain.Leg) { l.Destination.RunwayLengthM = 300 }, domain.CheckTakeoff},
		{"short runway landing", func(l *domain.Leg) { l.Destination.RunwayLengthM = 300 }, domain.CheckLanding},
		{"steep climb", func(l *domain.Leg) { l.DistanceNM = 1; l.Destination.ElevationFt = 500 }, domain.CheckClimb},
		{"fuel below trip plus reserve", func(l *domain.Leg) { l.FuelOnboardKg = 150 }, domain.CheckFuel},
		{"low visibility", func(l *domain.Leg) { l.Destination.Weather.VisibilityKm = 3 }, domain.CheckWeather},
		{"crosswind", func(l *domain.Leg) { l.Destination.Weather.WindSpeedMps = 15 }, domain.CheckWeather},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			leg := fixedLeg()
			tt.mutate(&leg)

			res := FixedWingGate{}.Evaluate(twinProfile(), leg)
			if res.Passed() {
				t.Fatalf("expected overall FAIL")
			}
			c, ok := res.Check(tt.check)
			if !ok {
				t.Fatalf("missing check %q", tt.check)
			}
			if c.Status != domain.StatusFail {
				t.Fatalf("%s status = %s, want FAIL", tt.check, c.Status)
			}
		})
	}
}

func TestFixedWingGate_CGOutOfLimits(t *testing.T) {
	p := twinProfile()
	p.CG = 31

	res := FixedWingGate{}.Evaluate(p, fixedLeg())
	c, _ := res.Check(domain.CheckMass)
	if c.Status != domain.StatusFail {
		t.Fatalf("mass status = %s, want FAIL", c.Status)
	}
}

func TestFixedWingGate_ZeroDistanceClimb(t *testing.T) {
	leg := fixedLeg()
	leg.DistanceNM = 0
	leg.Destination.ElevationFt = 2000

	res := FixedWingGate{}.Evaluate(twinProfile(), leg)
	c, _ := res.Check(domain.CheckClimb)
	if c.Details["G_required"] != 0 {
		t.Fatalf("G_required = %v, want 0", c.Details["G_required"])
	}
}

func TestRotaryWingGate(t *testing.T) {
	leg := fixedLeg()
	leg.FuelOnboardKg = 400

	t.Run("sea level passes", func(t *testing.T) {
		res := RotaryWingGate{}.Evaluate(heloProfile(), leg)
		if !res.Passed() {
			t.Fatalf("expected PASS, got %+v", res.Checks)
		}
		if len(res.Checks) != 5 {
			t.Fatalf("checks = %d, want 5", len(res.Checks))
		}
		if _, ok := res.Check(domain.CheckTakeoff); ok {
			t.Fatalf("rotary verdict must not contain a takeoff check")
		}
		oge, _ := res.Check(domain.CheckOGE)
		wantClose(t, "oge_margin_ratio", oge.Details["oge_margin_ratio"], 0.1)
	})

	t.Run("hot and high fails power and hover", func(t *testing.T) {
		high := leg
		high.Destination.ElevationFt = 8000

		res := RotaryWingGate{}.Evaluate(heloProfile(), high)
		for _, name := range []string{domain.CheckPower, domain.CheckOGE} {
			c, _ := res.Check(name)
			if c.Status != domain.StatusFail {
				t.Fatalf("%s = %s, want FAIL", name, c.Status)
			}
		}
	})

	t.Run("no rated power", func(t *testing.T) {
		p := heloProfile()
		p.RatedPower = 0

		res := RotaryWingGate{}.Evaluate(p, leg)
		c, _ := res.Check(domain.CheckPower)
		if c.Details["power_margin_ratio"] != -1 || c.Status != domain.StatusFail {
			t.Fatalf("power check = %+v, want margin -1 and FAIL", c)
		}
	})
}

func TestEvaluatorsAreDeterministic(t *testing.T) {
	leg := fixedLeg()
	for _, p := range []domain.AircraftProfile{twinProfile(), heloProfile()} {
		eval := EvaluatorFor(p.Family)
		a := eval.Evaluate(p, leg)
		b := eval.Evaluate(p, leg)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("%s: verdicts differ between identical calls", p.Name)
		}
	}
}

func TestEvaluatorFor(t *testing.T) {
	if _, ok := EvaluatorFor(domain.FamilyFixed).(FixedWingGate); !ok {
		t.Fatalf("fixed family should use FixedWingGate")
	}
	if _, ok := EvaluatorFor(domain.FamilyRotary).(RotaryWingGate); !ok {
		t.Fatalf("rotary family should use RotaryWingGate")
	}
}
