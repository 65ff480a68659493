package ports

import "mission-feasibility-service/internal/domain"

// Resolves a mission's scenario selector into weights and safety thresholds.
type ScenarioResolver interface {
	// Resolve returns a configuration error for unknown or malformed scenarios.
	Resolve(scenarioID string, custom *domain.CustomScenario) (domain.Scenario, error)
	// ObjectiveThresholds returns the threshold set for an objective mode.
	ObjectiveThresholds(mode string) (domain.Thresholds, bool)
}
