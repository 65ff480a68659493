package services

import (
	"mission-feasibility-service/internal/domain"
	"testing"
)

func TestFindAlternate(t *testing.T) {
	p := twinProfile()
	current := site("base", 0, 0)

	closed := site("closed", 0, 0.5)
	closed.RunwayLengthM = 100
	open := site("open", 0, 1)
	remote := site("remote", 0, 4)

	t.Run("nearest feasible wins", func(t *testing.T) {
		div, ok := FindAlternate(p, FixedWingGate{}, current, 300, 100, []domain.Location{remote, open, closed})
		if !ok {
			t.Fatalf("expected an alternate")
		}
		if div.Alternate.Key != "open" {
			t.Fatalf("alternate = %q, want open", div.Alternate.Key)
		}
		wantClose(t, "fuel", div.FuelKg, legFuelNM(div.DistanceNM))
	})

	t.Run("unreachable only", func(t *testing.T) {
		if _, ok := FindAlternate(p, FixedWingGate{}, current, 300, 100, []domain.Location{remote}); ok {
			t.Fatalf("expected no alternate")
		}
	})

	t.Run("equal distance breaks by key", func(t *testing.T) {
		north := site("north", 1, 0)
		south := site("south", -1, 0)
		div, ok := FindAlternate(p, FixedWingGate{}, current, 300, 100, []domain.Location{south, north})
		if !ok || div.Alternate.Key != "north" {
			t.Fatalf("alternate = %q, want north", div.Alternate.Key)
		}
	})
}
