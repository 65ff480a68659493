package domain

// FleetAssignment is one aircraft assigned to the mission with its dispatch fuel.
type FleetAssignment struct {
	AircraftName string
	Type         string
	FuelKg       float64
}

// CustomScenario carries user supplied weights combined with either a named
// safety policy or explicit thresholds.
type CustomScenario struct {
	Weights    map[string]float64
	PolicyID   string
	Thresholds *Thresholds
}

// Thresholds are the scenario safety minima applied to the worst margin.
type Thresholds struct {
	RunwayMin      float64
	ClimbMin       float64
	PowerMin       float64
	FuelMultiplier float64
}

// MissionRequest is the unit of planning work.
type MissionRequest struct {
	MissionID      string
	Origin         string
	TotalPayloadKg float64
	AssignedFleet  []FleetAssignment
	Deliveries     []Delivery
	ScenarioID     string
	ObjectiveMode  string
	CustomConfig   *CustomScenario
}
