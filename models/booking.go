package models

import (
	"fmt"
	"time"
)

// Booking statuses. Rejected, cancelled and completed are terminal.
const (
	BookingPending   = "pending"
	BookingAccepted  = "accepted"
	BookingRejected  = "rejected"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

// Slot formats. Dates and times are stored normalized so slot equality is
// exact string equality (single-provider local time, no timezone math).
const (
	SlotDateLayout = "2006-01-02"
	SlotTimeLayout = "15:04"
)

// Booking ties a client to a stylist for one fixed slot. Price is a snapshot
// of the stylist's published price at request time.
type Booking struct {
	ID        string    `bson:"id" json:"id"`
	ClientID  string    `bson:"clientId" json:"clientId"`
	StylistID string    `bson:"stylistId" json:"stylistId"`
	Date      string    `bson:"date" json:"date"`
	Time      string    `bson:"time" json:"time"`
	Style     string    `bson:"style" json:"style"`
	Mode      string    `bson:"mode" json:"mode"`
	Price     float64   `bson:"price" json:"price"`
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Terminal reports whether the booking is in a state that permits no
// further transitions.
func (b *Booking) Terminal() bool {
	switch b.Status {
	case BookingRejected, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

// SlotTime parses the booking's date and time into a local timestamp.
func (b *Booking) SlotTime() (time.Time, error) {
	t, err := time.ParseInLocation(SlotDateLayout+" "+SlotTimeLayout, b.Date+" "+b.Time, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("booking %s has malformed slot: %w", b.ID, err)
	}
	return t, nil
}

// BookingRequest is the client-facing input for creating a booking.
type BookingRequest struct {
	ClientID  string `json:"-"`
	StylistID string `json:"stylistId"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Style     string `json:"style"`
	Mode      string `json:"mode"`
}
