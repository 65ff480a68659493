package refdata

import (
	"encoding/json"
	"fmt"
	"mission-feasibility-service/internal/domain"
	"strings"
)

type weatherJSON struct {
	QNHHpa       float64 `json:"qnh_hpa"`
	OATC         float64 `json:"oat_c"`
	VisibilityKm float64 `json:"visibility_km"`
	WindSpeedMps float64 `json:"wind_speed_mps"`
}

type locationJSON struct {
	Name           string      `json:"name"`
	Coords         []float64   `json:"coords"`
	ElevationFt    float64     `json:"elevation_ft"`
	RunwayLength   float64     `json:"runway_length"`
	Weather        weatherJSON `json:"weather"`
	SecurityThreat string      `json:"security_threat"`
	IsHotspot      bool        `json:"is_hotspot"`
}

func (l locationJSON) toDomain(key string) (domain.Location, error) {
	if len(l.Coords) != 2 {
		return domain.Location{}, fmt.Errorf("location %q: coords must be [lat, lon], got %d values", key, len(l.Coords))
	}
	return domain.Location{
		Key:           key,
		Name:          l.Name,
		Coordinates:   domain.Coordinates{Lat: l.Coords[0], Lon: l.Coords[1]},
		ElevationFt:   l.ElevationFt,
		RunwayLengthM: l.RunwayLength,
		Weather: domain.Weather{
			QNHHpa:       l.Weather.QNHHpa,
			OATC:         l.Weather.OATC,
			VisibilityKm: l.Weather.VisibilityKm,
			WindSpeedMps: l.Weather.WindSpeedMps,
		},
		SecurityThreat: l.SecurityThreat,
		IsHotspot:      l.IsHotspot,
	}, nil
}

type locationFile struct {
	Locations map[string]locationJSON `json:"locations"`
}

// ParseLocations decodes {"locations": {key: {...}}}. Keys are lower-cased.
func ParseLocations(b []byte) (map[string]domain.Location, error) {
	var f locationFile
	if err := unmarshalJSON(b, &f); err != nil {
		return nil, fmt.Errorf("parse locations: %w", err)
	}
	return toLocations(f.Locations)
}

// LoadLocations reads a location table from path.
func LoadLocations(path string) (map[string]domain.Location, error) {
	var f locationFile
	if err := readJSON(path, &f); err != nil {
		return nil, fmt.Errorf("load locations: %w", err)
	}
	return toLocations(f.Locations)
}

func toLocations(in map[string]locationJSON) (map[string]domain.Location, error) {
	out := make(map[string]domain.Location, len(in))
	for k, v := range in {
		key := strings.ToLower(strings.TrimSpace(k))
		loc, err := v.toDomain(key)
		if err != nil {
			return nil, err
		}
		out[key] = loc
	}
	return out, nil
}

// alternatesKey holds the flat table of alternate airports. Every other
// top-level key names a destination and lists its candidate alternate keys
// in preference order.
const alternatesKey = "alternates"

// ParseAlternates decodes an alternate-airport table.
func ParseAlternates(b []byte) (domain.AlternateTable, error) {
	var raw map[string]json.RawMessage
	if err := unmarshalJSON(b, &raw); err != nil {
		return domain.AlternateTable{}, fmt.Errorf("parse alternates: %w", err)
	}
	t, err := toAlternates(raw)
	if err != nil {
		return domain.AlternateTable{}, fmt.Errorf("parse alternates: %w", err)
	}
	return t, nil
}

// LoadAlternates reads an alternate-airport table from path.
func LoadAlternates(path string) (domain.AlternateTable, error) {
	var raw map[string]json.RawMessage
	if err := readJSON(path, &raw); err != nil {
		return domain.AlternateTable{}, fmt.Errorf("load alternates: %w", err)
	}
	t, err := toAlternates(raw)
	if err != nil {
		return domain.AlternateTable{}, fmt.Errorf("load alternates %q: %w", path, err)
	}
	return t, nil
}

func toAlternates(raw map[string]json.RawMessage) (domain.AlternateTable, error) {
	var t domain.AlternateTable

	if b, ok := raw[alternatesKey]; ok {
		var flat map[string]locationJSON
		if err := unmarshalJSON(b, &flat); err != nil {
			return domain.AlternateTable{}, fmt.Errorf("%q: %w", alternatesKey, err)
		}
		global, err := toLocations(flat)
		if err != nil {
			return domain.AlternateTable{}, fmt.Errorf("%q: %w", alternatesKey, err)
		}
		t.Global = global
	}

	for dest, b := range raw {
		if dest == alternatesKey {
			continue
		}
		var keys []string
		if err := unmarshalJSON(b, &keys); err != nil {
			return domain.AlternateTable{}, fmt.Errorf("destination %q: want a list of alternate keys: %w", dest, err)
		}
		norm := make([]string, 0, len(keys))
		for _, k := range keys {
			norm = append(norm, strings.ToLower(strings.TrimSpace(k)))
		}
		if t.ByDestination == nil {
			t.ByDestination = make(map[string][]string)
		}
		t.ByDestination[strings.ToLower(strings.TrimSpace(dest))] = norm
	}

	return t, nil
}
