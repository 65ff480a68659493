package domain

import (
	"math"
	"slices"
)

// Objective component names used as weight keys.
const (
	ObjectiveDelivery       = "delivery"
	ObjectiveTemporal       = "temporal"
	ObjectiveFuelEfficiency = "fuel_efficiency"
	ObjectiveEnvironmental  = "environmental"
	ObjectiveSafety         = "safety"
)

// Objectives lists every weight key in a stable order.
var Objectives = []string{
	ObjectiveDelivery,
	ObjectiveTemporal,
	ObjectiveFuelEfficiency,
	ObjectiveEnvironmental,
	ObjectiveSafety,
}

const weightTolerance = 1e-5

// Weights is a scenario's objective weight vector.
type Weights map[string]float64

// Validate rejects unknown or missing components, negative weights and
// vectors that do not sum to 1 within 1e-5. Nothing is normalized silently.
func (w Weights) Validate() error {
	sum := 0.0
	for k, v := range w {
		if !slices.Contains(Objectives, k) {
			return NewConfigurationError("unknown objective weight %q", k)
		}
		if v < 0 || math.IsNaN(v) {
			return NewConfigurationError("objective weight %q must be non-negative, got %v", k, v)
		}
		sum += v
	}
	for _, k := range Objectives {
		if _, ok := w[k]; !ok {
			return NewConfigurationError("missing objective weight %q", k)
		}
	}
	if math.Abs(sum-1) > weightTolerance {
		return NewConfigurationError("objective weights must sum to 1, got %.6f", sum)
	}
	return nil
}

// Scenario is a resolved weight vector plus safety thresholds.
type Scenario struct {
	ID         string
	PolicyID   string
	Weights    Weights
	Thresholds Thresholds
}
