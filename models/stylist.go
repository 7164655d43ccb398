package models

import "time"

// Service modes: where the appointment happens.
const (
	ModeSalon = "salon" // client travels to the stylist
	ModeHome  = "home"  // stylist travels to the client
)

// Stylist statuses.
const (
	StylistActive   = "active"
	StylistInactive = "inactive"
)

// GeoPoint represents a GeoJSON Point.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`               // Always "Point"
	Coordinates []float64 `bson:"coordinates" json:"coordinates"` // [longitude, latitude]
}

// Lat returns the latitude component.
func (p GeoPoint) Lat() float64 { return p.Coordinates[1] }

// Lon returns the longitude component.
func (p GeoPoint) Lon() float64 { return p.Coordinates[0] }

// PriceTable holds the published price per service mode.
type PriceTable struct {
	Salon float64 `bson:"salon" json:"salon"`
	Home  float64 `bson:"home" json:"home"`
}

// ForMode returns the price for a service mode; ok is false for unknown modes.
func (p PriceTable) ForMode(mode string) (float64, bool) {
	switch mode {
	case ModeSalon:
		return p.Salon, true
	case ModeHome:
		return p.Home, true
	}
	return 0, false
}

// Stylist is a provider profile. Exactly one exists per owning account.
// Location keeps the raw casing the stylist entered; LocationGeo is the
// geocoded point and is nil when the location text never resolved.
type Stylist struct {
	ID           string     `bson:"id" json:"id"`
	AccountID    string     `bson:"accountId" json:"accountId"`
	Name         string     `bson:"name" json:"name"`
	Styles       []string   `bson:"styles" json:"styles"`
	Prices       PriceTable `bson:"prices" json:"prices"`
	Availability string     `bson:"availability" json:"availability"`
	Location     string     `bson:"location" json:"location"`
	LocationGeo  *GeoPoint  `bson:"locationGeo,omitempty" json:"locationGeo,omitempty"`
	Rating       float64    `bson:"rating" json:"rating"`
	ReviewCount  int        `bson:"reviewCount" json:"reviewCount"`
	Portfolio    []string   `bson:"portfolio,omitempty" json:"portfolio,omitempty"`
	Status       string     `bson:"status" json:"status"`
	CreatedAt    time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// StylistProfileInput carries the editable profile fields.
type StylistProfileInput struct {
	Name         string     `json:"name"`
	Styles       []string   `json:"styles"`
	Prices       PriceTable `json:"prices"`
	Availability string     `json:"availability"`
	Location     string     `json:"location"`
}

// StylistSummary is the discovery result row. DistanceKm is only set in
// geo-mode searches.
type StylistSummary struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	Styles      []string `json:"styles,omitempty"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"reviewCount"`
	DistanceKm  *float64 `json:"distanceKm,omitempty"`
}
