// Package geo holds the great-circle helpers used by the in-process radius search.
package geo

import "math"

const (
	// EarthRadiusMiles is the mean Earth radius used by Distance.
	EarthRadiusMiles = 3959.0
	// MetersPerMile converts radius input to the meters PostGIS expects for geography.
	MetersPerMile = 1609.34
)

// Coordinates is a [longitude, latitude] pair in degrees.
type Coordinates [2]float64

// Distance returns the haversine distance between a and b in miles.
func Distance(a, b Coordinates) float64 {
	lon1, lat1 := a[0], a[1]
	lon2, lat2 := b[0], b[1]

	lat1Rad := toRadians(lat1)
	lat2Rad := toRadians(lat2)
	deltaLat := toRadians(lat2 - lat1)
	deltaLon := toRadians(lon2 - lon1)

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusMiles * c
}

// MilesToMeters converts a distance in miles to meters.
func MilesToMeters(miles float64) float64 {
	return miles * MetersPerMile
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
