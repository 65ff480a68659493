package dto

type AircraftListResponse struct {
	// Categories maps category name to sorted model names.
	Categories map[string][]string `json:"categories"`
}

type ScenarioListResponse struct {
	Scenarios []string                      `json:"scenarios"`
	Policies  map[string]ThresholdsResponse `json:"policies"`
}
