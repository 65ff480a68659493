package domain

// Weather observed at a location.
type Weather struct {
	QNHHpa       float64
	OATC         float64
	VisibilityKm float64
	WindSpeedMps float64
}

const mpsToKt = 1.94384

// WindKt returns the wind speed in knots. The whole wind is treated as crosswind.
func (w Weather) WindKt() float64 { return w.WindSpeedMps * mpsToKt }

// Represents an airfield or landing site. Read-only reference data.
type Location struct {
	Key            string
	Name           string
	Coordinates    Coordinates
	ElevationFt    float64
	RunwayLengthM  float64
	Weather        Weather
	SecurityThreat string
	IsHotspot      bool
}

// AlternateTable holds diversion candidates either as one global list or as
// per-destination candidate keys resolved against Global or the location table.
type AlternateTable struct {
	Global        map[string]Location
	ByDestination map[string][]string
}

// Reference is the read-only data every engine component works against.
// It is constructed once and passed explicitly.
type Reference struct {
	Aircraft   AircraftParameterTable
	Locations  map[string]Location
	Alternates AlternateTable
}

// Location looks up a location by key (keys are lowercase identifiers).
func (r *Reference) Location(key string) (Location, error) {
	loc, ok := r.Locations[key]
	if !ok {
		return Location{}, &ReferenceDataNotFoundError{Kind: "location", Key: key}
	}
	return loc, nil
}

// AlternateCandidates returns the diversion candidates for a planned destination.
// Per-destination lists take precedence over the global list.
func (r *Reference) AlternateCandidates(destination string) ([]Location, error) {
	if keys, ok := r.Alternates.ByDestination[destination]; ok {
		out := make([]Location, 0, len(keys))
		for _, k := range keys {
			if loc, ok := r.Alternates.Global[k]; ok {
				out = append(out, loc)
				continue
			}
			loc, err := r.Location(k)
			if err != nil {
				return nil, &ReferenceDataNotFoundError{Kind: "alternate", Key: k}
			}
			out = append(out, loc)
		}
		return out, nil
	}

	out := make([]Location, 0, len(r.Alternates.Global))
	for _, loc := range r.Alternates.Global {
		out = append(out, loc)
	}
	return out, nil
}

// PrimaryAlternate returns the first alternate listed for a destination, if any.
func (r *Reference) PrimaryAlternate(destination string) (Location, bool, error) {
	keys := r.Alternates.ByDestination[destination]
	if len(keys) == 0 {
		return Location{}, false, nil
	}
	if loc, ok := r.Alternates.Global[keys[0]]; ok {
		return loc, true, nil
	}
	loc, err := r.Location(keys[0])
	if err != nil {
		return Location{}, false, &ReferenceDataNotFoundError{Kind: "alternate", Key: keys[0]}
	}
	return loc, true, nil
}
