package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hairbook/database/repository"
	"hairbook/models"

	"github.com/google/uuid"
)

// normalizeSlot validates and canonicalizes the date and time strings so
// slot comparison is exact string equality.
func normalizeSlot(date, timeOfDay string) (string, string, error) {
	d, err := time.Parse(models.SlotDateLayout, date)
	if err != nil {
		return "", "", fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	t, err := time.Parse(models.SlotTimeLayout, timeOfDay)
	if err != nil {
		return "", "", fmt.Errorf("%w: time must be HH:MM", ErrValidation)
	}
	return d.Format(models.SlotDateLayout), t.Format(models.SlotTimeLayout), nil
}

func (s *DefaultBookingService) RequestBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	if req.ClientID == "" || req.StylistID == "" || req.Style == "" {
		return nil, fmt.Errorf("%w: client, stylist and style are required", ErrValidation)
	}
	date, timeOfDay, err := normalizeSlot(req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	stylist, err := s.Stylists.GetByID(ctx, req.StylistID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve stylist: %w", err)
	}
	if stylist == nil {
		return nil, fmt.Errorf("%w: stylist %s", ErrNotFound, req.StylistID)
	}

	price, ok := stylist.Prices.ForMode(req.Mode)
	if !ok {
		return nil, fmt.Errorf("%w: mode must be %q or %q", ErrValidation, models.ModeSalon, models.ModeHome)
	}

	held, err := s.Bookings.CountAcceptedAt(ctx, stylist.ID, date, timeOfDay)
	if err != nil {
		return nil, fmt.Errorf("failed to check slot: %w", err)
	}
	if held > 0 {
		return nil, ErrSlotUnavailable
	}

	now := s.now()
	b := &models.Booking{
		ID:        uuid.New().String(),
		ClientID:  req.ClientID,
		StylistID: stylist.ID,
		Date:      date,
		Time:      timeOfDay,
		Style:     req.Style,
		Mode:      req.Mode,
		Price:     price,
		Status:    models.BookingPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Bookings.Insert(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}
	return b, nil
}

func (s *DefaultBookingService) Accept(ctx context.Context, stylistAccountID, bookingID string) (*models.Booking, error) {
	b, err := s.ownedByStylist(ctx, stylistAccountID, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != models.BookingPending {
		return nil, fmt.Errorf("%w: cannot accept a %s booking", ErrInvalidTransition, b.Status)
	}

	// The repository re-checks the slot atomically: request-time checks do
	// not protect against two pending requests racing to be accepted.
	if err := s.Bookings.AcceptIfFree(ctx, bookingID); err != nil {
		switch {
		case errors.Is(err, repository.ErrSlotTaken):
			return nil, ErrSlotUnavailable
		case errors.Is(err, repository.ErrNoMatch):
			return nil, fmt.Errorf("%w: booking no longer pending", ErrInvalidTransition)
		}
		return nil, fmt.Errorf("failed to accept booking: %w", err)
	}

	return s.Bookings.GetByID(ctx, bookingID)
}

// ownedByStylist fetches the booking and verifies the acting account owns
// the stylist profile the booking targets.
func (s *DefaultBookingService) ownedByStylist(ctx context.Context, stylistAccountID, bookingID string) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if b == nil {
		return nil, fmt.Errorf("%w: booking %s", ErrNotFound, bookingID)
	}

	stylist, err := s.Stylists.GetByAccount(ctx, stylistAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve stylist: %w", err)
	}
	if stylist == nil || stylist.ID != b.StylistID {
		return nil, ErrNotAllowed
	}
	return b, nil
}
