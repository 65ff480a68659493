package services

import (
	"context"
	"errors"
	"mission-feasibility-service/internal/domain"
	"reflect"
	"testing"
)

func TestPermutations(t *testing.T) {
	got := Permutations(3)
	want := [][]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Permutations(3) = %v, want %v", got, want)
	}

	if got := Permutations(0); len(got) != 1 || len(got[0]) != 0 {
		t.Fatalf("Permutations(0) = %v, want one empty ordering", got)
	}
	if got := len(Permutations(5)); got != 120 {
		t.Fatalf("len(Permutations(5)) = %d, want 120", got)
	}
}

func TestEnumerateRoutes(t *testing.T) {
	ref := testReference()
	sim := NewSimulator(twinProfile(), ref, PlanningPolicy)
	dels := deliveries("a", 300.0, "b", 300.0, "c", 300.0)

	eval, err := EnumerateRoutes(context.Background(), sim, "base", dels, 1000, 900, balancedWeights(), EnumerateOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if eval.Evaluated != 6 {
		t.Fatalf("evaluated = %d, want 6", eval.Evaluated)
	}
	if eval.Passing != 6 {
		t.Fatalf("passing = %d, want 6", eval.Passing)
	}
	if len(eval.Top) != DefaultTopK {
		t.Fatalf("top = %d, want %d", len(eval.Top), DefaultTopK)
	}
	for i := 1; i < len(eval.Top); i++ {
		if eval.Top[i].FinalScore > eval.Top[i-1].FinalScore {
			t.Fatalf("top not sorted by score: %v then %v", eval.Top[i-1].FinalScore, eval.Top[i].FinalScore)
		}
	}
	if eval.Top[0].Scores == nil {
		t.Fatalf("passing routes must be scored")
	}
}

func TestEnumerateRoutes_IndependentOfWorkerCount(t *testing.T) {
	ref := testReference()
	sim := NewSimulator(twinProfile(), ref, PlanningPolicy)
	dels := deliveries("a", 300.0, "b", 200.0, "c", 100.0)

	var orders [][]string
	for _, workers := range []int{1, 8} {
		eval, err := EnumerateRoutes(context.Background(), sim, "base", dels, 1000, 600, balancedWeights(),
			EnumerateOptions{Workers: workers, TopK: 6})
		if err != nil {
			t.Fatalf("workers=%d: unexpected error: %v", workers, err)
		}
		var seqs []string
		for _, c := range eval.Top {
			seqs = append(seqs, c.Destinations()...)
		}
		orders = append(orders, seqs)
	}

	if !reflect.DeepEqual(orders[0], orders[1]) {
		t.Fatalf("ranking differs by worker count: %v vs %v", orders[0], orders[1])
	}
}

func TestEnumerateRoutes_MergesDuplicateDestinations(t *testing.T) {
	sim := NewSimulator(twinProfile(), testReference(), PlanningPolicy)
	dels := deliveries("a", 100.0, "B", 300.0, "A", 200.0)

	eval, err := EnumerateRoutes(context.Background(), sim, "base", dels, 1000, 600, balancedWeights(), EnumerateOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eval.Evaluated != 2 {
		t.Fatalf("evaluated = %d, want 2", eval.Evaluated)
	}
	if got := eval.Top[0].Outcome.PayloadDelivered; got != 600 {
		t.Fatalf("payload delivered = %v, want 600", got)
	}
}

func TestEnumerateRoutes_Errors(t *testing.T) {
	sim := NewSimulator(twinProfile(), testReference(), PlanningPolicy)
	ctx := context.Background()

	tests := []struct {
		name    string
		origin  string
		dels    []domain.Delivery
		weights domain.Weights
		opts    EnumerateOptions
		want    error
	}{
		{
			name:    "over the delivery cap",
			origin:  "base",
			dels:    deliveries("a", 1.0, "b", 1.0, "c", 1.0),
			weights: balancedWeights(),
			opts:    EnumerateOptions{MaxDeliveries: 2},
			want:    domain.ErrConfiguration,
		},
		{
			name:    "weights do not sum to one",
			origin:  "base",
			dels:    deliveries("a", 1.0),
			weights: domain.Weights{"delivery": 0.5, "temporal": 0.1, "fuel_efficiency": 0.1, "environmental": 0.1, "safety": 0.1},
			want:    domain.ErrConfiguration,
		},
		{
			name:    "unknown destination",
			origin:  "base",
			dels:    deliveries("atlantis", 1.0),
			weights: balancedWeights(),
			want:    domain.ErrReferenceDataNotFound,
		},
		{
			name:    "unknown origin",
			origin:  "nowhere",
			dels:    deliveries("a", 1.0),
			weights: balancedWeights(),
			want:    domain.ErrReferenceDataNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EnumerateRoutes(ctx, sim, tt.origin, tt.dels, 1000, 3, tt.weights, tt.opts)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEnumerateRoutes_Cancelled(t *testing.T) {
	sim := NewSimulator(twinProfile(), testReference(), PlanningPolicy)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := EnumerateRoutes(ctx, sim, "base", deliveries("a", 1.0, "b", 1.0), 1000, 2, balancedWeights(), EnumerateOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestRankCandidates(t *testing.T) {
	pass := func(idx int, score, fuel float64) domain.RouteCandidate {
		return domain.RouteCandidate{
			Index:      idx,
			FinalScore: score,
			Outcome:    domain.SimulationOutcome{Status: domain.RoutePass, FuelUsedKg: fuel},
		}
	}
	failed := domain.RouteCandidate{
		Index:      0,
		FinalScore: 0.99,
		Outcome:    domain.SimulationOutcome{Status: domain.RouteFailFuel},
	}

	cands := []domain.RouteCandidate{
		failed,
		pass(4, 0.5, 100),
		pass(3, 0.7, 300),
		pass(2, 0.5, 100),
		pass(1, 0.5, 90),
	}
	RankCandidates(cands)

	var got []int
	for _, c := range cands {
		got = append(got, c.Index)
	}
	want := []int{3, 1, 2, 4, 0}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestScoreOutcome(t *testing.T) {
	margin := 1.7
	out := domain.SimulationOutcome{
		Status:           domain.RoutePass,
		FuelUsedKg:       300,
		TimeHours:        1,
		PayloadDelivered: 600,
		WorstMargin:      &margin,
	}

	s := ScoreOutcome(out, 600, 0.25)
	wantClose(t, "delivery", s.Delivery, 1)
	wantClose(t, "temporal", s.Temporal, 0.5)
	wantClose(t, "fuel efficiency", s.FuelEfficiency, 1/1.5)
	wantClose(t, "environmental", s.Environmental, 0.75)
	// Margins above 1 are clamped.
	wantClose(t, "safety", s.Safety, 1)

	wantClose(t, "weighted", WeightedScore(s, balancedWeights()), 0.2*(1+0.5+1/1.5+0.75+1))

	empty := ScoreOutcome(domain.SimulationOutcome{}, 0, 2)
	if empty.Delivery != 0 || empty.FuelEfficiency != 0 || empty.Environmental != 0 || empty.Safety != 0 {
		t.Fatalf("empty outcome scores = %+v", empty)
	}
}
