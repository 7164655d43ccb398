package repository

import (
	"context"
	"errors"
	"time"

	"hairbook/models"
)

// Sentinel errors surfaced by repository implementations. Services translate
// these into their own error taxonomy.
var (
	// ErrDuplicate indicates a uniqueness constraint violation.
	ErrDuplicate = errors.New("repository: duplicate key")
	// ErrSlotTaken indicates another booking already holds accepted status
	// for the same (stylist, date, time) slot.
	ErrSlotTaken = errors.New("repository: slot already accepted")
	// ErrNoMatch indicates a conditional update matched no document, for
	// example a status transition whose precondition no longer holds.
	ErrNoMatch = errors.New("repository: no matching document")
)

// AccountRepository owns login identities.
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id string) (*models.Account, error)
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	UpdateTokenHash(ctx context.Context, id, tokenHash string) error
}

// StylistRepository owns stylist profiles and the lookups discovery needs.
type StylistRepository interface {
	Upsert(ctx context.Context, stylist *models.Stylist) error
	GetByID(ctx context.Context, id string) (*models.Stylist, error)
	GetByAccount(ctx context.Context, accountID string) (*models.Stylist, error)
	UpdatePricing(ctx context.Context, accountID string, prices models.PriceTable) error
	UpdateRating(ctx context.Context, stylistID string, rating float64, count int) error
	AddPortfolioImage(ctx context.Context, accountID, url string) error
	SetStatus(ctx context.Context, accountID, status string) error
	// SearchByLocation matches active stylists whose location text contains
	// the given substring, case-insensitively.
	SearchByLocation(ctx context.Context, locationSubstring string) ([]models.Stylist, error)
	// ListGeoLocated returns active stylists that have resolved coordinates.
	ListGeoLocated(ctx context.Context) ([]models.Stylist, error)
}

// BookingRepository owns booking rows and the accept-time critical section.
type BookingRepository interface {
	Insert(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// CountAcceptedAt reports how many accepted bookings hold the slot.
	CountAcceptedAt(ctx context.Context, stylistID, date, timeOfDay string) (int64, error)
	// AcceptIfFree transitions the booking pending->accepted as an atomic
	// check-and-set against the one-accepted-per-slot invariant. It returns
	// ErrSlotTaken when the slot is already held and ErrNoMatch when the
	// booking is no longer pending.
	AcceptIfFree(ctx context.Context, bookingID string) error
	// UpdateStatus transitions from->to conditionally; ErrNoMatch when the
	// booking is not currently in the from status.
	UpdateStatus(ctx context.Context, id, from, to string) error
	ListByClient(ctx context.Context, clientID string) ([]models.Booking, error)
	ListByStylist(ctx context.Context, stylistID string) ([]models.Booking, error)
	// ListElapsedAccepted returns accepted bookings whose slot time is
	// before the given instant.
	ListElapsedAccepted(ctx context.Context, before time.Time) ([]models.Booking, error)
}

// ReviewRepository owns review rows and per-stylist aggregation.
type ReviewRepository interface {
	// Insert returns ErrDuplicate when a review already exists for the same
	// (client, stylist, booking) triple.
	Insert(ctx context.Context, review *models.Review) error
	ListByStylist(ctx context.Context, stylistID string) ([]models.Review, error)
	// AverageForStylist computes the arithmetic mean score and count over
	// all of the stylist's reviews.
	AverageForStylist(ctx context.Context, stylistID string) (float64, int, error)
}
