package refdata

import (
	"errors"
	"fmt"
	"io/fs"
	"mission-feasibility-service/internal/domain"
	"os"
	"path/filepath"
)

// File names looked up by LoadReference.
const (
	AircraftJSONFile = "aircraft_parameters.json"
	AircraftCSVFile  = "aircraft_parameters.csv"
	LocationsFile    = "location_params.json"
	AlternatesFile   = "alternate_airports.json"
)

// LoadReference builds the reference data from dir. The aircraft table is read
// from JSON when present, otherwise from CSV. The alternate table is optional.
func LoadReference(dir string) (*domain.Reference, error) {
	aircraft, err := loadAircraftTable(dir)
	if err != nil {
		return nil, fmt.Errorf("load reference: %w", err)
	}

	locations, err := LoadLocations(filepath.Join(dir, LocationsFile))
	if err != nil {
		return nil, fmt.Errorf("load reference: %w", err)
	}

	var alternates domain.AlternateTable
	altPath := filepath.Join(dir, AlternatesFile)
	if _, err := os.Stat(altPath); err == nil {
		if alternates, err = LoadAlternates(altPath); err != nil {
			return nil, fmt.Errorf("load reference: %w", err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load reference: %w", err)
	}

	return &domain.Reference{
		Aircraft:   aircraft,
		Locations:  locations,
		Alternates: alternates,
	}, nil
}

func loadAircraftTable(dir string) (domain.AircraftParameterTable, error) {
	jsonPath := filepath.Join(dir, AircraftJSONFile)
	_, err := os.Stat(jsonPath)
	switch {
	case err == nil:
		return LoadAircraft(jsonPath)
	case errors.Is(err, fs.ErrNotExist):
		return LoadAircraftCSV(filepath.Join(dir, AircraftCSVFile))
	default:
		return nil, err
	}
}
