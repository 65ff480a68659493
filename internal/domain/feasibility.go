package domain

// Leg is one simulated hop. It is transient and built per evaluation.
type Leg struct {
	Origin        Location
	Destination   Location
	DistanceNM    float64
	PayloadKg     float64
	FuelOnboardKg float64
}

// Status of a single hard-gate check or of a whole verdict.
type Status string

const (
	StatusPass Status = "PASS"
	StatusFail Status = "FAIL"
)

// StatusOf converts a boolean outcome into a Status.
func StatusOf(ok bool) Status {
	if ok {
		return StatusPass
	}
	return StatusFail
}

// Hard-gate check names.
const (
	CheckMass    = "mass_compliance"
	CheckTakeoff = "takeoff_performance"
	CheckLanding = "runway_feasibility"
	CheckClimb   = "climb_margin"
	CheckFuel    = "fuel_compliance"
	CheckWeather = "visual_weather_rules"
	CheckPower   = "power_check"
	CheckOGE     = "oge_feasibility"
)

// CheckResult is one hard-gate check. Details hold the unrounded margin and
// its inputs.
type CheckResult struct {
	Name    string
	Status  Status
	Details map[string]float64
}

// FeasibilityResult is the verdict for one leg.
type FeasibilityResult struct {
	Family  Family
	Checks  []CheckResult
	Overall Status
}

// NewFeasibilityResult computes Overall as the AND of every check.
func NewFeasibilityResult(family Family, checks []CheckResult) FeasibilityResult {
	overall := StatusPass
	for _, c := range checks {
		if c.Status != StatusPass {
			overall = StatusFail
			break
		}
	}
	return FeasibilityResult{Family: family, Checks: checks, Overall: overall}
}

// Check returns the named check, if present.
func (r FeasibilityResult) Check(name string) (CheckResult, bool) {
	for _, c := range r.Checks {
		if c.Name == name {
			return c, true
		}
	}
	return CheckResult{}, false
}

// Passed reports whether every check passed.
func (r FeasibilityResult) Passed() bool { return r.Overall == StatusPass }
