package refdata

import (
	"fmt"
	"mission-feasibility-service/internal/domain"
)

// MissionDocument is the mission request layout shared by mission files and
// the HTTP API.
type MissionDocument struct {
	MissionID      string             `json:"mission_id"`
	Origin         string             `json:"origin"`
	TotalPayloadKg float64            `json:"total_payload_kg"`
	AssignedFleet  []FleetDoc         `json:"assigned_fleet"`
	Deliveries     []DeliveryDoc      `json:"deliveries"`
	ScenarioID     string             `json:"scenario_id,omitempty"`
	ObjectiveMode  string             `json:"objective_mode,omitempty"`
	CustomConfig   *CustomScenarioDoc `json:"custom_config,omitempty"`
}

type FleetDoc struct {
	AircraftName string  `json:"aircraft_name"`
	Type         string  `json:"type"`
	FuelKg       float64 `json:"fuel_kg"`
}

type DeliveryDoc struct {
	Destination string  `json:"destination"`
	WeightKg    float64 `json:"weight_kg"`
}

type CustomScenarioDoc struct {
	Weights    map[string]float64 `json:"weights"`
	PolicyID   string             `json:"policy_id,omitempty"`
	Thresholds *ThresholdsDoc     `json:"thresholds,omitempty"`
}

type ThresholdsDoc struct {
	RunwayMin      float64 `json:"runway_min"`
	ClimbMin       float64 `json:"climb_min"`
	PowerMin       float64 `json:"power_min"`
	FuelMultiplier float64 `json:"fuel_multiplier"`
}

// Mission converts the document into a domain request.
func (d MissionDocument) Mission() domain.MissionRequest {
	req := domain.MissionRequest{
		MissionID:      d.MissionID,
		Origin:         d.Origin,
		TotalPayloadKg: d.TotalPayloadKg,
		ScenarioID:     d.ScenarioID,
		ObjectiveMode:  d.ObjectiveMode,
	}
	for _, f := range d.AssignedFleet {
		req.AssignedFleet = append(req.AssignedFleet, domain.FleetAssignment{
			AircraftName: f.AircraftName,
			Type:         f.Type,
			FuelKg:       f.FuelKg,
		})
	}
	for _, del := range d.Deliveries {
		req.Deliveries = append(req.Deliveries, domain.Delivery{
			Destination: del.Destination,
			WeightKg:    del.WeightKg,
		})
	}
	if c := d.CustomConfig; c != nil {
		custom := &domain.CustomScenario{Weights: c.Weights, PolicyID: c.PolicyID}
		if c.Thresholds != nil {
			custom.Thresholds = &domain.Thresholds{
				RunwayMin:      c.Thresholds.RunwayMin,
				ClimbMin:       c.Thresholds.ClimbMin,
				PowerMin:       c.Thresholds.PowerMin,
				FuelMultiplier: c.Thresholds.FuelMultiplier,
			}
		}
		req.CustomConfig = custom
	}
	return req
}

// ParseMission decodes a mission document.
func ParseMission(b []byte) (domain.MissionRequest, error) {
	var d MissionDocument
	if err := unmarshalJSON(b, &d); err != nil {
		return domain.MissionRequest{}, fmt.Errorf("parse mission: %w", err)
	}
	return d.Mission(), nil
}

// LoadMission reads a mission document from path.
func LoadMission(path string) (domain.MissionRequest, error) {
	var d MissionDocument
	if err := readJSON(path, &d); err != nil {
		return domain.MissionRequest{}, fmt.Errorf("load mission: %w", err)
	}
	return d.Mission(), nil
}
