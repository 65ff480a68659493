package refdata

import (
	"mission-feasibility-service/internal/domain"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const locationsJSON = `{
  "locations": {
    "Base": {
      "name": "Main Base",
      "coords": [-6.125, 106.655],
      "elevation_ft": 34,
      "runway_length": 3600,
      "weather": {"oat_c": 31, "qnh_hpa": 1009, "visibility_km": 8, "wind_speed_mps": 4},
      "security_threat": "Medium",
      "is_hotspot": true
    },
    "post": {
      "coords": [-7.379, 112.787],
      "elevation_ft": 9,
      "runway_length": 3000,
      "weather": {"oat_c": 30, "qnh_hpa": 1010, "visibility_km": 10, "wind_speed_mps": 3}
    }
  }
}`

const alternatesJSON = `{
  "alternates": {
    "ALT1": {"coords": [-6.9, 107.5], "elevation_ft": 2400, "runway_length": 2250,
             "weather": {"oat_c": 24, "qnh_hpa": 1012, "visibility_km": 9, "wind_speed_mps": 2}}
  },
  "Post": ["alt1", "base"]
}`

const aircraftJSON = `{
  "Fixed Wing": {
    "Caravan": {
      "Max Takeoff Weight (MTOW)": {"value": 3985, "unit": "kg", "type": "Weight"},
      "Cruise Speed": {"value": 186, "unit": "kt", "type": "Performance"},
      "Remarks": {"value": null, "unit": "", "type": ""}
    }
  }
}`

const aircraftCSV = `category,aircraft,param,value,unit,type
Rotary Wing,Bell 412,MTOW,5398,kg,Weight
Rotary Wing,Bell 412,Max Continuous Power,2x900,shp,Engine
Rotary Wing,Bell 412,Remarks,,,
Rotary Wing,Bell 412,"Fuel Flow, Cruise",290,kg/h,Performance
`

func TestParseLocations(t *testing.T) {
	locs, err := ParseLocations([]byte(locationsJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	base, ok := locs["base"]
	if !ok {
		t.Fatalf("keys must be lower-cased, got %v", locs)
	}
	if base.Coordinates.Lat != -6.125 || base.Coordinates.Lon != 106.655 {
		t.Fatalf("coords = %+v", base.Coordinates)
	}
	if base.Weather.QNHHpa != 1009 || base.RunwayLengthM != 3600 || !base.IsHotspot || base.SecurityThreat != "Medium" {
		t.Fatalf("base = %+v", base)
	}
}

func TestParseLocations_Errors(t *testing.T) {
	_, err := ParseLocations([]byte("{\n  \"locations\": {\n    \"x\": {\"coords\": [1]}\n  }\n}"))
	if err == nil || !strings.Contains(err.Error(), "coords") {
		t.Fatalf("err = %v, want coords error", err)
	}

	_, err = ParseLocations([]byte("{\n  \"locations\": {\n    \"x\": {\"elevation_ft\": \"high\"}\n  }\n}"))
	if err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Fatalf("err = %v, want a line number", err)
	}

	_, err = ParseLocations([]byte("{\n  \"locations\": \n}"))
	if err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Fatalf("err = %v, want a line number", err)
	}
}

func TestParseAlternates(t *testing.T) {
	alts, err := ParseAlternates([]byte(alternatesJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := alts.Global["alt1"]; !ok {
		t.Fatalf("global = %v", alts.Global)
	}
	got := alts.ByDestination["post"]
	if len(got) != 2 || got[0] != "alt1" || got[1] != "base" {
		t.Fatalf("by destination = %v", alts.ByDestination)
	}

	flat, err := ParseAlternates([]byte(`{"alternates": {}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if flat.ByDestination != nil {
		t.Fatalf("flat table should have no per-destination lists")
	}

	// Per-destination lists may also stand alone without a flat table.
	perDest, err := ParseAlternates([]byte(`{"post": ["base"], "hill": []}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := perDest.ByDestination["post"]; len(got) != 1 || got[0] != "base" {
		t.Fatalf("by destination = %v", perDest.ByDestination)
	}
	if _, ok := perDest.ByDestination["hill"]; !ok {
		t.Fatalf("empty candidate list should still be recorded")
	}

	if _, err := ParseAlternates([]byte(`{"post": {"coords": [1, 2]}}`)); err == nil {
		t.Fatalf("expected error for a destination entry that is not a key list")
	}
}

func TestParseAircraft(t *testing.T) {
	table, err := ParseAircraft([]byte(aircraftJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := table["Fixed Wing"]["Caravan"]["Max Takeoff Weight (MTOW)"]
	if p.Value != 3985.0 || p.Unit != "kg" {
		t.Fatalf("MTOW = %+v", p)
	}
	if table["Fixed Wing"]["Caravan"]["Remarks"].Value != nil {
		t.Fatalf("null value should stay nil")
	}
}

func TestParseAircraftCSV(t *testing.T) {
	table, err := ParseAircraftCSV(strings.NewReader(aircraftCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	heli := table["Rotary Wing"]["Bell 412"]
	if heli["MTOW"].Value != 5398.0 {
		t.Fatalf("MTOW = %#v, want 5398.0", heli["MTOW"].Value)
	}
	if heli["Max Continuous Power"].Value != "2x900" {
		t.Fatalf("power = %#v, want string", heli["Max Continuous Power"].Value)
	}
	if heli["Remarks"].Value != nil {
		t.Fatalf("blank cell should be nil")
	}
	if p := heli["Fuel Flow, Cruise"]; p.Value != 290.0 || p.Unit != "kg/h" {
		t.Fatalf("quoted field = %+v", p)
	}

	_, err = ParseAircraftCSV(strings.NewReader("category,aircraft,param,value\n,Bell,MTOW,1\n"))
	if err == nil {
		t.Fatalf("expected error for missing category")
	}
}

func TestParseMission(t *testing.T) {
	doc := `{
  "mission_id": "M-7",
  "origin": "Base",
  "total_payload_kg": 500,
  "assigned_fleet": [{"aircraft_name": "Caravan", "type": "Fixed Wing", "fuel_kg": 800}],
  "deliveries": [{"destination": "post", "weight_kg": 500}],
  "scenario_id": "Custom",
  "custom_config": {
    "weights": {"delivery": 1, "temporal": 0, "fuel_efficiency": 0, "environmental": 0, "safety": 0},
    "thresholds": {"runway_min": 0.1, "climb_min": 0.1, "power_min": 0.1, "fuel_multiplier": 1.2}
  }
}`

	req, err := ParseMission([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.MissionID != "M-7" || req.AssignedFleet[0].FuelKg != 800 || req.Deliveries[0].WeightKg != 500 {
		t.Fatalf("request = %+v", req)
	}
	want := &domain.Thresholds{RunwayMin: 0.1, ClimbMin: 0.1, PowerMin: 0.1, FuelMultiplier: 1.2}
	if req.CustomConfig == nil || *req.CustomConfig.Thresholds != *want {
		t.Fatalf("custom config = %+v", req.CustomConfig)
	}
}

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadReference(t *testing.T) {
	t.Run("json aircraft with alternates", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, AircraftJSONFile, aircraftJSON)
		writeFile(t, dir, LocationsFile, locationsJSON)
		writeFile(t, dir, AlternatesFile, alternatesJSON)

		ref, err := LoadReference(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := ref.Aircraft["Fixed Wing"]; !ok {
			t.Fatalf("aircraft = %v", ref.Aircraft)
		}
		if len(ref.Locations) != 2 || len(ref.Alternates.Global) != 1 {
			t.Fatalf("locations = %d, alternates = %d", len(ref.Locations), len(ref.Alternates.Global))
		}
	})

	t.Run("csv fallback without alternates", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, AircraftCSVFile, aircraftCSV)
		writeFile(t, dir, LocationsFile, locationsJSON)

		ref, err := LoadReference(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := ref.Aircraft["Rotary Wing"]; !ok {
			t.Fatalf("aircraft = %v", ref.Aircraft)
		}
		if len(ref.Alternates.Global) != 0 {
			t.Fatalf("expected no alternates")
		}
	})

	t.Run("missing locations", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, AircraftJSONFile, aircraftJSON)
		if _, err := LoadReference(dir); err == nil {
			t.Fatalf("expected error")
		}
	})
}
