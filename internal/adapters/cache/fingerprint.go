package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"mission-feasibility-service/internal/domain"
	"strings"
)

type fingerprintInput struct {
	Origin     string
	PayloadKg  float64
	Fleet      []domain.FleetAssignment
	Deliveries []domain.Delivery
	Scenario   domain.Scenario
}

// Fingerprint hashes the parts of a request that influence its report.
// Mission ids are excluded, and duplicate destinations are merged first, so
// equivalent requests share a key. Non-finite numbers cannot be encoded and
// are reported as an error.
func Fingerprint(req domain.MissionRequest, sc domain.Scenario) (string, error) {
	in := fingerprintInput{
		Origin:     strings.ToLower(strings.TrimSpace(req.Origin)),
		PayloadKg:  req.TotalPayloadKg,
		Fleet:      req.AssignedFleet,
		Deliveries: domain.MergeDeliveries(req.Deliveries),
		Scenario:   sc,
	}

	// Maps are encoded with sorted keys, so the encoding is stable.
	b, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
