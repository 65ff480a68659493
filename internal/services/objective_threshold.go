package services

import (
	"mission-feasibility-service/internal/domain"
)

// ThresholdEvaluation is the verdict of a scenario's safety policy against an
// aircraft's worst margin.
type ThresholdEvaluation struct {
	Metric      string
	MarginValue float64
	// Required is nil when the metric has no policy minimum.
	Required *float64
	Status   domain.Status
	Reason   string
}

// EvaluateThresholds compares the worst margin against the policy minimum for
// its metric. Fuel findings must clear FuelMultiplier-1, the extra fraction of
// required fuel the policy demands. OGE findings carry no policy minimum.
func EvaluateThresholds(finding *MarginFinding, th domain.Thresholds) ThresholdEvaluation {
	if finding == nil {
		return ThresholdEvaluation{Status: domain.StatusFail, Reason: "no margin data available"}
	}

	var required *float64
	switch finding.Check {
	case domain.CheckTakeoff, domain.CheckLanding:
		required = &th.RunwayMin
	case domain.CheckClimb:
		required = &th.ClimbMin
	case domain.CheckPower:
		required = &th.PowerMin
	case domain.CheckFuel:
		v := th.FuelMultiplier - 1
		required = &v
	}

	ev := ThresholdEvaluation{
		Metric:      finding.Check,
		MarginValue: finding.Value,
		Required:    required,
		Status:      domain.StatusPass,
	}
	if required != nil && finding.Value < *required {
		ev.Status = domain.StatusFail
		ev.Reason = InterpretMargin(finding.Check)
	}
	return ev
}
