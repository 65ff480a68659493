package services

import (
	"context"
	"fmt"
	"mission-feasibility-service/internal/domain"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Defaults for route enumeration.
const (
	DefaultTopK          = 3
	DefaultMaxDeliveries = 8
)

type EnumerateOptions struct {
	Workers       int
	TopK          int
	MaxDeliveries int
}

func (o EnumerateOptions) withDefaults() EnumerateOptions {
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.TopK <= 0 {
		o.TopK = DefaultTopK
	}
	if o.MaxDeliveries <= 0 {
		o.MaxDeliveries = DefaultMaxDeliveries
	}
	return o
}

// RouteEvaluation is the ranked result of exhaustive enumeration.
type RouteEvaluation struct {
	// Evaluated counts simulated orderings; N! for N distinct destinations.
	Evaluated int
	Passing   int
	// Top holds the best candidates, at most TopK.
	Top []domain.RouteCandidate
}

// EnumerateRoutes simulates every ordering of the deduplicated deliveries and
// ranks the results. Enumeration is exhaustive and factorial in the number of
// destinations, so it is capped by MaxDeliveries.
//
// Orderings are distributed over a bounded worker pool. Each worker writes to
// its own slot, so ranking does not depend on evaluation order. A route that
// fails never stops the others; only missing reference data or context
// cancellation aborts the enumeration.
func EnumerateRoutes(
	ctx context.Context,
	sim *Simulator,
	originKey string,
	deliveries []domain.Delivery,
	initialFuelKg float64,
	plannedPayloadKg float64,
	weights domain.Weights,
	opts EnumerateOptions,
) (RouteEvaluation, error) {
	opts = opts.withDefaults()

	if err := weights.Validate(); err != nil {
		return RouteEvaluation{}, fmt.Errorf("enumerate routes: %w", err)
	}

	merged := domain.MergeDeliveries(deliveries)
	if len(merged) > opts.MaxDeliveries {
		return RouteEvaluation{}, fmt.Errorf("enumerate routes: %w", domain.NewConfigurationError(
			"%d distinct destinations exceed the enumeration cap of %d", len(merged), opts.MaxDeliveries))
	}
	if _, err := sim.Reference.Location(originKey); err != nil {
		return RouteEvaluation{}, fmt.Errorf("enumerate routes: origin: %w", err)
	}
	for _, d := range merged {
		if _, err := sim.Reference.Location(d.Destination); err != nil {
			return RouteEvaluation{}, fmt.Errorf("enumerate routes: destination: %w", err)
		}
	}

	perms := Permutations(len(merged))
	candidates := make([]domain.RouteCandidate, len(perms))
	var evaluated atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for i, perm := range perms {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			seq := make([]domain.Delivery, len(perm))
			for j, idx := range perm {
				seq[j] = merged[idx]
			}

			out, err := sim.Simulate(originKey, seq, initialFuelKg, plannedPayloadKg)
			if err != nil {
				return fmt.Errorf("enumerate routes: ordering %d: %w", i, err)
			}
			evaluated.Add(1)

			cand := domain.RouteCandidate{Index: i, Sequence: seq, Outcome: out}
			if out.Status == domain.RoutePass {
				risk, err := RouteEnvironmentalRisk(sim.Profile, sim.Reference, seq)
				if err != nil {
					return fmt.Errorf("enumerate routes: ordering %d: %w", i, err)
				}
				scores := ScoreOutcome(out, plannedPayloadKg, risk)
				cand.Scores = &scores
				cand.FinalScore = WeightedScore(scores, weights)
			}
			candidates[i] = cand
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return RouteEvaluation{}, err
	}

	passing := 0
	for _, c := range candidates {
		if c.Outcome.Status == domain.RoutePass {
			passing++
		}
	}

	RankCandidates(candidates)
	top := candidates
	if len(top) > opts.TopK {
		top = top[:opts.TopK]
	}

	return RouteEvaluation{
		Evaluated: int(evaluated.Load()),
		Passing:   passing,
		Top:       top,
	}, nil
}

// Permutations returns every ordering of the indices 0..n-1 in lexicographic
// order. n = 0 yields a single empty ordering.
func Permutations(n int) [][]int {
	cur := make([]int, n)
	for i := range cur {
		cur[i] = i
	}

	out := [][]int{append([]int(nil), cur...)}
	for nextPermutation(cur) {
		out = append(out, append([]int(nil), cur...))
	}
	return out
}

func nextPermutation(a []int) bool {
	i := len(a) - 2
	for i >= 0 && a[i] >= a[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(a) - 1
	for a[j] <= a[i] {
		j--
	}
	a[i], a[j] = a[j], a[i]
	for l, r := i+1, len(a)-1; l < r; l, r = l+1, r-1 {
		a[l], a[r] = a[r], a[l]
	}
	return true
}
