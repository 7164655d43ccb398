package models

import "time"

// Review is immutable once created. At most one exists per
// (client, stylist, booking) triple.
type Review struct {
	ID        string    `bson:"id" json:"id"`
	ClientID  string    `bson:"clientId" json:"clientId"`
	StylistID string    `bson:"stylistId" json:"stylistId"`
	BookingID string    `bson:"bookingId" json:"bookingId"`
	Score     float64   `bson:"score" json:"score"`
	Comment   string    `bson:"comment" json:"comment"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
