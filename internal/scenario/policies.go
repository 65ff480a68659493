package scenario

import "mission-feasibility-service/internal/domain"

// Built-in safety policy and scenario identifiers.
const (
	PolicyStandard   = "Standard"
	PolicyStrict     = "Strict (VVIP)"
	PolicyAggressive = "Aggressive (Minimum Legal)"

	ScenarioEmergency   = "Emergency"
	ScenarioLogistic    = "Logistic"
	ScenarioSafetyFirst = "Safety First"
	ScenarioBalanced    = "Balanced"
	ScenarioCustom      = "Custom"

	DefaultScenario = ScenarioBalanced
)

func builtinPolicies() map[string]domain.Thresholds {
	return map[string]domain.Thresholds{
		PolicyStandard:   {RunwayMin: 0.10, ClimbMin: 0.10, PowerMin: 0.10, FuelMultiplier: 1.1},
		PolicyStrict:     {RunwayMin: 0.25, ClimbMin: 0.25, PowerMin: 0.25, FuelMultiplier: 1.25},
		PolicyAggressive: {RunwayMin: 0.02, ClimbMin: 0.05, PowerMin: 0.05, FuelMultiplier: 1.0},
	}
}

type scenarioDef struct {
	weights  domain.Weights
	policyID string
}

func builtinScenarios() map[string]scenarioDef {
	return map[string]scenarioDef{
		ScenarioEmergency: {
			weights: domain.Weights{
				domain.ObjectiveSafety: 0.35, domain.ObjectiveTemporal: 0.40, domain.ObjectiveDelivery: 0.05,
				domain.ObjectiveFuelEfficiency: 0.05, domain.ObjectiveEnvironmental: 0.15,
			},
			policyID: PolicyStandard,
		},
		ScenarioLogistic: {
			weights: domain.Weights{
				domain.ObjectiveSafety: 0.20, domain.ObjectiveTemporal: 0.10, domain.ObjectiveDelivery: 0.50,
				domain.ObjectiveFuelEfficiency: 0.20, domain.ObjectiveEnvironmental: 0.00,
			},
			policyID: PolicyAggressive,
		},
		ScenarioSafetyFirst: {
			weights: domain.Weights{
				domain.ObjectiveSafety: 0.60, domain.ObjectiveTemporal: 0.10, domain.ObjectiveDelivery: 0.10,
				domain.ObjectiveFuelEfficiency: 0.10, domain.ObjectiveEnvironmental: 0.10,
			},
			policyID: PolicyStrict,
		},
		ScenarioBalanced: {
			weights: domain.Weights{
				domain.ObjectiveSafety: 0.20, domain.ObjectiveTemporal: 0.20, domain.ObjectiveDelivery: 0.20,
				domain.ObjectiveFuelEfficiency: 0.20, domain.ObjectiveEnvironmental: 0.20,
			},
			policyID: PolicyStandard,
		},
	}
}

// Objective threshold sets selected by a mission's objective mode.
func builtinObjectiveThresholds() map[string]domain.Thresholds {
	return map[string]domain.Thresholds{
		"Delivery":      {RunwayMin: 0.00, ClimbMin: 0.05, PowerMin: 0.05, FuelMultiplier: 1.0},
		"Temporal":      {RunwayMin: 0.05, ClimbMin: 0.10, PowerMin: 0.10, FuelMultiplier: 1.1},
		"Environmental": {RunwayMin: 0.10, ClimbMin: 0.20, PowerMin: 0.20, FuelMultiplier: 1.2},
		"Safety":        {RunwayMin: 0.25, ClimbMin: 0.25, PowerMin: 0.25, FuelMultiplier: 1.25},
	}
}
