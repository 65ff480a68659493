package domain

import "math"

const (
	earthRadiusKm = 6371.0
	kmToNM        = 0.539957
	// NMToFeet converts nautical miles to feet for climb gradient math.
	NMToFeet = 6076.0
)

// Immutable geographic coordinates (latitude, longitude) in decimal degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Return coordinates as [lat, lon], matching the reference data layout.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lat, c.Lon} }

// DistanceNM returns the great-circle (haversine) distance to o in nautical miles.
func (c Coordinates) DistanceNM(o Coordinates) float64 {
	return GreatCircleNM(c.Lat, c.Lon, o.Lat, o.Lon)
}

// GreatCircleNM returns the shortest surface distance between two points in
// nautical miles. It is symmetric and returns 0 for identical points.
func GreatCircleNM(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := radians(lat1)
	phi2 := radians(lat2)
	dphi := radians(lat2 - lat1)
	dlambda := radians(lon2 - lon1)

	sinPhi := math.Sin(dphi / 2)
	sinLambda := math.Sin(dlambda / 2)
	a := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c * kmToNM
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
