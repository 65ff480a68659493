package domain

// RouteStatus is the terminal state of a simulated route.
type RouteStatus string

const (
	RouteRunning         RouteStatus = "RUNNING"
	RoutePass            RouteStatus = "PASS"
	RouteDiverted        RouteStatus = "DIVERTED"
	RouteFailFuel        RouteStatus = "FAIL_FUEL"
	RouteFailHardGate    RouteStatus = "FAIL_HARD_GATE"
	RouteFailNoAlternate RouteStatus = "FAIL_NO_ALTERNATE"
	RouteFailReturnBase  RouteStatus = "FAIL_RETURN_BASE"
)

// Represents one hop of a simulated route, including diversion and abort
// annotations.
type LegTrace struct {
	From            string
	To              string
	DistanceNM      float64
	FuelUsedKg      float64
	FuelRemainingKg float64
	TimeHours       float64
	GateStatus      Status
	ThreatLevel     string
	Hotspot         bool
	ReturnToBase    bool

	DivertedTo  string
	Aborted     bool
	AbortReason string
}

// SimulationOutcome is the full result of replaying one ordered route.
type SimulationOutcome struct {
	Status           RouteStatus
	FuelUsedKg       float64
	TimeHours        float64
	DistanceNM       float64
	PayloadDelivered float64
	FinalFuelKg      float64
	// WorstMargin is nil when no leg produced margin data.
	WorstMargin *float64
	Legs        []LegTrace
}

// ScoreBreakdown holds the normalized objective components.
type ScoreBreakdown struct {
	Delivery       float64
	Temporal       float64
	FuelEfficiency float64
	Environmental  float64
	Safety         float64
}

// Represents one candidate ordering of the mission's deliveries.
type RouteCandidate struct {
	Index      int
	Sequence   []Delivery
	Outcome    SimulationOutcome
	Scores     *ScoreBreakdown
	FinalScore float64
}

// Destinations returns the ordered destination keys of the candidate.
func (c RouteCandidate) Destinations() []string {
	out := make([]string, 0, len(c.Sequence))
	for _, d := range c.Sequence {
		out = append(out, d.Destination)
	}
	return out
}
