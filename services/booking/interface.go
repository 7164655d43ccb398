package booking

import (
	"context"
	"time"

	"hairbook/database/repository"
	"hairbook/models"
)

// BookingService arbitrates booking requests against stylist calendars and
// drives the booking state machine:
//
//	pending --accept--> accepted --complete--> completed
//	pending --reject--> rejected
//	pending|accepted --cancel--> cancelled
type BookingService interface {
	// RequestBooking creates a pending booking, snapshotting the stylist's
	// published price for the requested mode. Pending requests from several
	// clients may coexist for one slot; an already accepted booking on the
	// slot rejects the request with ErrSlotUnavailable.
	RequestBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error)
	// Accept transitions pending->accepted atomically against the
	// one-accepted-per-slot invariant. Only the owning stylist's account
	// may accept. Sibling pending requests for the slot are left pending;
	// the stylist rejects them explicitly.
	Accept(ctx context.Context, stylistAccountID, bookingID string) (*models.Booking, error)
	// Reject transitions pending->rejected. Owning stylist only.
	Reject(ctx context.Context, stylistAccountID, bookingID string) (*models.Booking, error)
	// Cancel transitions pending|accepted->cancelled. Requesting client only.
	Cancel(ctx context.Context, clientID, bookingID string) (*models.Booking, error)
	// Complete transitions accepted->completed once the slot time has
	// elapsed; completing early fails with ErrValidation. Owning stylist
	// only; the background sweep completes elapsed bookings without an
	// actor via CompleteElapsed.
	Complete(ctx context.Context, stylistAccountID, bookingID string) (*models.Booking, error)
	// CompleteElapsed sweeps all accepted bookings whose slot has passed
	// and marks them completed, returning how many were transitioned.
	CompleteElapsed(ctx context.Context) (int, error)
	ListForClient(ctx context.Context, clientID string) ([]models.Booking, error)
	ListForStylist(ctx context.Context, stylistAccountID string) ([]models.Booking, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Bookings repository.BookingRepository
	Stylists repository.StylistRepository
	// Clock overrides time.Now for the time-gated complete transition.
	Clock func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}
