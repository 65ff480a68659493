package services

import (
	"cmp"
	"math"
	"mission-feasibility-service/internal/domain"
	"slices"
)

// RouteEnvironmentalRisk averages the per-leg environmental risk over the
// destinations of a sequence.
func RouteEnvironmentalRisk(p domain.AircraftProfile, ref *domain.Reference, sequence []domain.Delivery) (float64, error) {
	if len(sequence) == 0 {
		return 0, nil
	}
	total := 0.0
	for _, d := range sequence {
		dest, err := ref.Location(d.Destination)
		if err != nil {
			return 0, err
		}
		total += LegEnvironmentalRisk(p, dest)
	}
	return total / float64(len(sequence)), nil
}

// ScoreOutcome computes the normalized objective components of a simulated route.
func ScoreOutcome(out domain.SimulationOutcome, plannedKg, avgRisk float64) domain.ScoreBreakdown {
	var s domain.ScoreBreakdown

	if plannedKg > 0 {
		s.Delivery = math.Min(1, out.PayloadDelivered/plannedKg)
	}
	s.Temporal = 1 / (1 + out.TimeHours)
	if out.PayloadDelivered > 0 {
		s.FuelEfficiency = 1 / (1 + out.FuelUsedKg/out.PayloadDelivered)
	}
	s.Environmental = math.Max(0, 1-avgRisk)
	if out.WorstMargin != nil {
		s.Safety = math.Min(1, math.Max(0, *out.WorstMargin))
	}
	return s
}

// WeightedScore is Σ weight × component.
func WeightedScore(s domain.ScoreBreakdown, w domain.Weights) float64 {
	return w[domain.ObjectiveDelivery]*s.Delivery +
		w[domain.ObjectiveTemporal]*s.Temporal +
		w[domain.ObjectiveFuelEfficiency]*s.FuelEfficiency +
		w[domain.ObjectiveEnvironmental]*s.Environmental +
		w[domain.ObjectiveSafety]*s.Safety
}

// RankCandidates orders candidates: passing routes first, then score
// descending, fuel ascending, and enumeration index as the final tie-break.
func RankCandidates(cands []domain.RouteCandidate) {
	slices.SortStableFunc(cands, func(a, b domain.RouteCandidate) int {
		aFail := a.Outcome.Status != domain.RoutePass
		bFail := b.Outcome.Status != domain.RoutePass
		if aFail != bFail {
			if aFail {
				return 1
			}
			return -1
		}
		if c := cmp.Compare(b.FinalScore, a.FinalScore); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Outcome.FuelUsedKg, b.Outcome.FuelUsedKg); c != 0 {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	})
}
