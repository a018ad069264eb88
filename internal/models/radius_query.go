package models

const (
	DefaultRadiusMiles = 50.0
	MaxRadiusMiles     = 100.0
)

// RadiusQuery describes a jobs-in-radius search.
type RadiusQuery struct {
	Latitude    float64
	Longitude   float64
	RadiusMiles float64
	// IncludeAll disables the status = open filter.
	IncludeAll bool
}
