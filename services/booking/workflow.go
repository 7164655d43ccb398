package booking

import (
	"context"
	"errors"
	"fmt"

	"hairbook/database/repository"
	"hairbook/models"
)

func (s *DefaultBookingService) Reject(ctx context.Context, stylistAccountID, bookingID string) (*models.Booking, error) {
	b, err := s.ownedByStylist(ctx, stylistAccountID, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != models.BookingPending {
		return nil, fmt.Errorf("%w: cannot reject a %s booking", ErrInvalidTransition, b.Status)
	}
	return s.transition(ctx, bookingID, models.BookingPending, models.BookingRejected)
}

func (s *DefaultBookingService) Cancel(ctx context.Context, clientID, bookingID string) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if b == nil {
		return nil, fmt.Errorf("%w: booking %s", ErrNotFound, bookingID)
	}
	if b.ClientID != clientID {
		return nil, ErrNotAllowed
	}
	if b.Status != models.BookingPending && b.Status != models.BookingAccepted {
		return nil, fmt.Errorf("%w: cannot cancel a %s booking", ErrInvalidTransition, b.Status)
	}
	return s.transition(ctx, bookingID, b.Status, models.BookingCancelled)
}

func (s *DefaultBookingService) Complete(ctx context.Context, stylistAccountID, bookingID string) (*models.Booking, error) {
	b, err := s.ownedByStylist(ctx, stylistAccountID, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != models.BookingAccepted {
		return nil, fmt.Errorf("%w: cannot complete a %s booking", ErrInvalidTransition, b.Status)
	}

	slot, err := b.SlotTime()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if s.now().Before(slot) {
		return nil, fmt.Errorf("%w: booking slot has not elapsed yet", ErrValidation)
	}
	return s.transition(ctx, bookingID, models.BookingAccepted, models.BookingCompleted)
}

func (s *DefaultBookingService) CompleteElapsed(ctx context.Context) (int, error) {
	elapsed, err := s.Bookings.ListElapsedAccepted(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to list elapsed bookings: %w", err)
	}

	completed := 0
	for _, b := range elapsed {
		err := s.Bookings.UpdateStatus(ctx, b.ID, models.BookingAccepted, models.BookingCompleted)
		if errors.Is(err, repository.ErrNoMatch) {
			// Transitioned out of accepted between listing and update.
			continue
		}
		if err != nil {
			return completed, fmt.Errorf("failed to complete booking %s: %w", b.ID, err)
		}
		completed++
	}
	return completed, nil
}

func (s *DefaultBookingService) ListForClient(ctx context.Context, clientID string) ([]models.Booking, error) {
	return s.Bookings.ListByClient(ctx, clientID)
}

func (s *DefaultBookingService) ListForStylist(ctx context.Context, stylistAccountID string) ([]models.Booking, error) {
	stylist, err := s.Stylists.GetByAccount(ctx, stylistAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve stylist: %w", err)
	}
	if stylist == nil {
		return nil, fmt.Errorf("%w: no stylist profile for account", ErrNotFound)
	}
	return s.Bookings.ListByStylist(ctx, stylist.ID)
}

func (s *DefaultBookingService) transition(ctx context.Context, bookingID, from, to string) (*models.Booking, error) {
	if err := s.Bookings.UpdateStatus(ctx, bookingID, from, to); err != nil {
		if errors.Is(err, repository.ErrNoMatch) {
			return nil, fmt.Errorf("%w: booking no longer %s", ErrInvalidTransition, from)
		}
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}
	return s.Bookings.GetByID(ctx, bookingID)
}
