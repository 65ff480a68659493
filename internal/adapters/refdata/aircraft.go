package refdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"mission-feasibility-service/internal/domain"
	"os"
	"strconv"
	"strings"

	"github.com/jszwec/csvutil"
)

// ParseAircraft decodes the category -> aircraft -> parameter table.
func ParseAircraft(b []byte) (domain.AircraftParameterTable, error) {
	var t domain.AircraftParameterTable
	if err := unmarshalJSON(b, &t); err != nil {
		return nil, fmt.Errorf("parse aircraft parameters: %w", err)
	}
	return t, nil
}

// LoadAircraft reads the aircraft parameter table from a JSON file.
func LoadAircraft(path string) (domain.AircraftParameterTable, error) {
	var t domain.AircraftParameterTable
	if err := readJSON(path, &t); err != nil {
		return nil, fmt.Errorf("load aircraft parameters: %w", err)
	}
	return t, nil
}

// parameterRow is one row of an aircraft table exported as a flat CSV.
type parameterRow struct {
	Category string `csv:"category"`
	Aircraft string `csv:"aircraft"`
	Param    string `csv:"param"`
	Value    string `csv:"value"`
	Unit     string `csv:"unit,omitempty"`
	Type     string `csv:"type,omitempty"`
}

// ParseAircraftCSV reads rows with header category,aircraft,param,value,unit,type.
// Numeric values become numbers, blank values nil, anything else stays a string.
func ParseAircraftCSV(r io.Reader) (domain.AircraftParameterTable, error) {
	dec, err := csvutil.NewDecoder(csv.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("parse aircraft csv: create decoder: %w", err)
	}

	var rows []parameterRow
	if err := dec.Decode(&rows); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse aircraft csv: decode: %w", err)
	}

	t := make(domain.AircraftParameterTable)
	for i, row := range rows {
		cat := strings.TrimSpace(row.Category)
		name := strings.TrimSpace(row.Aircraft)
		param := strings.TrimSpace(row.Param)
		if cat == "" || name == "" || param == "" {
			return nil, fmt.Errorf("parse aircraft csv: row %d: category, aircraft and param are required", i+2)
		}

		if t[cat] == nil {
			t[cat] = make(map[string]map[string]domain.Parameter)
		}
		if t[cat][name] == nil {
			t[cat][name] = make(map[string]domain.Parameter)
		}
		t[cat][name][param] = domain.Parameter{
			Value: cellValue(row.Value),
			Unit:  strings.TrimSpace(row.Unit),
			Type:  strings.TrimSpace(row.Type),
		}
	}
	return t, nil
}

// LoadAircraftCSV reads the aircraft parameter table from a CSV file.
func LoadAircraftCSV(path string) (domain.AircraftParameterTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load aircraft csv: %w", err)
	}
	defer f.Close()

	return ParseAircraftCSV(f)
}

func cellValue(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	return s
}
