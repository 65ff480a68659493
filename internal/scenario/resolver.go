package scenario

import (
	"fmt"
	"maps"
	"mission-feasibility-service/internal/domain"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Resolver maps scenario identifiers to weights and thresholds.
// A Resolver is read-only after construction.
type Resolver struct {
	policies   map[string]domain.Thresholds
	scenarios  map[string]scenarioDef
	objectives map[string]domain.Thresholds
}

// NewResolver returns a resolver holding only the built-in definitions.
func NewResolver() *Resolver {
	return &Resolver{
		policies:   builtinPolicies(),
		scenarios:  builtinScenarios(),
		objectives: builtinObjectiveThresholds(),
	}
}

// Resolve returns the scenario for an identifier. An empty identifier means
// Balanced. "Custom" combines the supplied weights with either a named policy
// or explicit thresholds. Unknown identifiers and malformed custom configs
// are configuration errors.
func (r *Resolver) Resolve(scenarioID string, custom *domain.CustomScenario) (domain.Scenario, error) {
	id := strings.TrimSpace(scenarioID)
	if id == "" {
		id = DefaultScenario
	}

	if id == ScenarioCustom {
		return r.resolveCustom(custom)
	}

	def, ok := r.scenarios[id]
	if !ok {
		return domain.Scenario{}, domain.NewConfigurationError("unknown scenario %q", id)
	}
	th, ok := r.policies[def.policyID]
	if !ok {
		return domain.Scenario{}, domain.NewConfigurationError("scenario %q references unknown policy %q", id, def.policyID)
	}
	sc := domain.Scenario{ID: id, PolicyID: def.policyID, Weights: maps.Clone(def.weights), Thresholds: th}
	if err := sc.Weights.Validate(); err != nil {
		return domain.Scenario{}, fmt.Errorf("scenario %q: %w", id, err)
	}
	return sc, nil
}

func (r *Resolver) resolveCustom(custom *domain.CustomScenario) (domain.Scenario, error) {
	if custom == nil || len(custom.Weights) == 0 {
		return domain.Scenario{}, domain.NewConfigurationError("custom scenario requires weights")
	}
	if err := domain.Weights(custom.Weights).Validate(); err != nil {
		return domain.Scenario{}, fmt.Errorf("custom scenario: %w", err)
	}

	sc := domain.Scenario{ID: ScenarioCustom, Weights: maps.Clone(domain.Weights(custom.Weights))}
	switch {
	case custom.PolicyID != "":
		th, ok := r.policies[custom.PolicyID]
		if !ok {
			return domain.Scenario{}, domain.NewConfigurationError("custom scenario: unknown policy %q", custom.PolicyID)
		}
		sc.PolicyID = custom.PolicyID
		sc.Thresholds = th
	case custom.Thresholds != nil:
		sc.Thresholds = *custom.Thresholds
	default:
		return domain.Scenario{}, domain.NewConfigurationError("custom scenario requires policy_id or thresholds")
	}
	return sc, nil
}

// ObjectiveThresholds returns the threshold set for an objective mode.
func (r *Resolver) ObjectiveThresholds(mode string) (domain.Thresholds, bool) {
	th, ok := r.objectives[mode]
	return th, ok
}

// ScenarioIDs lists every resolvable scenario, Custom excluded.
func (r *Resolver) ScenarioIDs() []string {
	return slices.Sorted(maps.Keys(r.scenarios))
}

// Policies returns a copy of the safety policies.
func (r *Resolver) Policies() map[string]domain.Thresholds {
	return maps.Clone(r.policies)
}

// File is the YAML layout accepted by LoadFile.
type File struct {
	Policies  map[string]ThresholdsYAML `yaml:"policies"`
	Scenarios map[string]struct {
		Weights  map[string]float64 `yaml:"weights"`
		PolicyID string             `yaml:"policy_id"`
	} `yaml:"scenarios"`
	Objectives map[string]ThresholdsYAML `yaml:"objectives"`
}

type ThresholdsYAML struct {
	RunwayMin      float64 `yaml:"runway_min"`
	ClimbMin       float64 `yaml:"climb_min"`
	PowerMin       float64 `yaml:"power_min"`
	FuelMultiplier float64 `yaml:"fuel_multiplier"`
}

func (t ThresholdsYAML) thresholds() domain.Thresholds {
	return domain.Thresholds{
		RunwayMin:      t.RunwayMin,
		ClimbMin:       t.ClimbMin,
		PowerMin:       t.PowerMin,
		FuelMultiplier: t.FuelMultiplier,
	}
}

// LoadFile reads a YAML file and merges its definitions over the built-ins.
func LoadFile(path string) (*Resolver, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scenarios: read %q: %w", path, err)
	}
	return Parse(b)
}

// Parse merges YAML scenario definitions over the built-ins and validates
// every scenario's weights.
func Parse(b []byte) (*Resolver, error) {
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("load scenarios: parse yaml: %w", err)
	}

	r := NewResolver()
	for id, t := range f.Policies {
		r.policies[id] = t.thresholds()
	}
	for id, t := range f.Objectives {
		r.objectives[id] = t.thresholds()
	}
	for id, s := range f.Scenarios {
		if id == ScenarioCustom {
			return nil, domain.NewConfigurationError("scenario id %q is reserved", id)
		}
		policyID := s.PolicyID
		if policyID == "" {
			policyID = PolicyStandard
		}
		if _, ok := r.policies[policyID]; !ok {
			return nil, domain.NewConfigurationError("scenario %q references unknown policy %q", id, policyID)
		}
		w := domain.Weights(s.Weights)
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("load scenarios: scenario %q: %w", id, err)
		}
		r.scenarios[id] = scenarioDef{weights: w, policyID: policyID}
	}
	return r, nil
}
