package booking

import "errors"

// Typed outcomes surfaced to callers. Integrity violations pass through to
// user-facing messaging verbatim.
var (
	// ErrNotFound means the referenced stylist or booking does not exist.
	ErrNotFound = errors.New("not found")
	// ErrSlotUnavailable means another booking already holds accepted
	// status for the same (stylist, date, time) slot.
	ErrSlotUnavailable = errors.New("slot unavailable")
	// ErrValidation means required fields are missing or malformed, or a
	// time-gated transition fired too early.
	ErrValidation = errors.New("invalid booking input")
	// ErrNotAllowed means the acting account is neither the owning stylist
	// nor the requesting client for the attempted transition.
	ErrNotAllowed = errors.New("actor not permitted")
	// ErrInvalidTransition means the booking's current status does not
	// permit the attempted transition; terminal states permit none.
	ErrInvalidTransition = errors.New("invalid status transition")
)
