package services

import (
	"fmt"
	"mission-feasibility-service/internal/domain"
	"strconv"
	"strings"
)

// BuildProfile resolves an aircraft by display name within a category into a
// normalized performance profile. Category and model match case-insensitively.
//
// Several source field names describe the same quantity; the first one with a
// usable non-zero value wins, otherwise the per-field default applies.
func BuildProfile(table domain.AircraftParameterTable, name, category string) (domain.AircraftProfile, error) {
	catKey, ok := matchKey(table, category)
	if !ok {
		return domain.AircraftProfile{}, fmt.Errorf("build profile: %w",
			&domain.ReferenceDataNotFoundError{Kind: "aircraft category", Key: category})
	}
	models := table[catKey]

	modelKey, ok := matchKey(models, name)
	if !ok {
		return domain.AircraftProfile{}, fmt.Errorf("build profile: %w",
			&domain.ReferenceDataNotFoundError{Kind: "aircraft model", Key: name})
	}
	params := paramSet(models[modelKey])

	mtow := params.number("Max Takeoff Weight (MTOW)", "MTOW")
	fuelFlow := params.number("Cruise", "Phase Cruise")

	p := domain.AircraftProfile{
		Name:     modelKey,
		Category: catKey,
		Family:   domain.FamilyForCategory(catKey),

		EmptyKg: params.number("Empty Weight (OEW)", "Empty Weight"),
		MTOWKg:  mtow,
		MLWKg:   params.numberOr(mtow, "Max Landing Weight"),

		TakeoffBaseM: params.number("Takeoff Distance"),
		LandingBaseM: params.number("Landing Distance"),

		ROCFpm:           params.number("Rate of Climb", "ROC"),
		ROCLossPer1000Ft: params.number("ROC loss per 1000 ft") / 100,

		CruiseKt:       params.number("Cruise Speed", "Cruised Speed"),
		CruiseFuelKgph: fuelFlow,
		ClimbFuelKgph:  params.numberOr(fuelFlow, "Phase Climb"),
		ReserveMin:     params.numberOr(domain.DefaultReserveMin, "Reserve Policy", "Phase Reserve"),

		TakeoffDASensitivity: params.number("Takeoff Increase per 1000 ft DA") / 100,
		ServiceCeilingFt:     params.numberOr(domain.DefaultServiceCeilingFt, "Service Ceiling"),
		HoverCeilingOGEFt:    params.number("Hover Ceiling OGE"),

		MinClimbMargin:  domain.MinClimbMargin,
		MinPowerMargin:  domain.MinPowerMargin,
		MinVisibilityKm: domain.MinVisibilityKm,
		MaxCrosswindKt:  params.numberOr(domain.DefaultMaxCrosswindKt, "Max Crosswind"),

		CGMin: domain.CGMin,
		CGMax: domain.CGMax,
		CG:    domain.CGCurrent,
	}

	if raw, ok := params["Max Continuous Power"]; ok && raw.Value != nil {
		power, err := ParsePower(raw.Value)
		if err != nil {
			p.Warnings = append(p.Warnings, err.Error())
		}
		p.RatedPower = power
	}

	return p, nil
}

// ParsePower interprets a power rating given either as a number or as a
// "count x per-unit" string such as "2x500". Unparsable input returns 0 and a
// *domain.ParseError.
func ParsePower(v any) (float64, error) {
	switch val := v.(type) {
	case float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case string:
		s := strings.ToLower(strings.TrimSpace(val))
		s = strings.ReplaceAll(s, "×", "x")
		if count, unit, found := strings.Cut(s, "x"); found {
			n, errN := strconv.ParseFloat(strings.TrimSpace(count), 64)
			w, errW := strconv.ParseFloat(strings.TrimSpace(unit), 64)
			if errN != nil || errW != nil {
				return 0, &domain.ParseError{Field: "Max Continuous Power", Value: v}
			}
			return n * w, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, &domain.ParseError{Field: "Max Continuous Power", Value: v}
		}
		return f, nil
	}
	return 0, &domain.ParseError{Field: "Max Continuous Power", Value: v}
}

func matchKey[V any](m map[string]V, want string) (string, bool) {
	want = strings.TrimSpace(want)
	if _, ok := m[want]; ok {
		return want, true
	}
	for k := range m {
		if strings.EqualFold(k, want) {
			return k, true
		}
	}
	return "", false
}

type paramSet map[string]domain.Parameter

// number returns the first synonym holding a non-zero numeric value, or 0.
func (ps paramSet) number(keys ...string) float64 {
	return ps.numberOr(0, keys...)
}

func (ps paramSet) numberOr(fallback float64, keys ...string) float64 {
	for _, k := range keys {
		p, ok := ps[k]
		if !ok {
			continue
		}
		if f, ok := numeric(p.Value); ok && f != 0 {
			return f
		}
	}
	return fallback
}

func numeric(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f, err == nil
	}
	return 0, false
}
