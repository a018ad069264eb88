package models

import (
	"time"

	"github.com/google/uuid"
)

// Job statuses stored in jobs.status.
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// PointType is the GeoJSON geometry type used for job locations.
const PointType = "Point"

// GeoPoint is a GeoJSON point. Coordinates are ordered [longitude, latitude].
type GeoPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// NewGeoPoint builds a point from latitude and longitude.
func NewGeoPoint(lat, lon float64) *GeoPoint {
	return &GeoPoint{Type: PointType, Coordinates: [2]float64{lon, lat}}
}

// Longitude returns the first coordinate.
func (p GeoPoint) Longitude() float64 { return p.Coordinates[0] }

// Latitude returns the second coordinate.
func (p GeoPoint) Latitude() float64 { return p.Coordinates[1] }

// ContractorSummary is the subset of contractor fields exposed on a bid.
type ContractorSummary struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
}

// Bid is a contractor's offer on a job.
type Bid struct {
	ID           uuid.UUID          `json:"id"`
	Amount       float64            `json:"amount"`
	Message      string             `json:"message"`
	ContractorID *ContractorSummary `json:"contractorId"`
	CreatedAt    time.Time          `json:"createdAt"`
}

// Job is a posting on the marketplace. Location is nil when the job was posted without coordinates.
type Job struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Location    *GeoPoint `json:"location,omitempty"`
	Bids        []Bid     `json:"bids"`
	CreatedAt   time.Time `json:"createdAt"`
}
