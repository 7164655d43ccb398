package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hairbook/database/repository"
	"hairbook/models"

	"github.com/google/uuid"
)

var (
	// ErrInvalidReviewTarget means the referenced booking does not exist,
	// does not belong to this client and stylist, or is not completed.
	ErrInvalidReviewTarget = errors.New("invalid review target")
	// ErrDuplicateReview means a review already exists for this
	// (client, stylist, booking) engagement.
	ErrDuplicateReview = errors.New("duplicate review")
	// ErrValidation means the score is outside [0,5].
	ErrValidation = errors.New("invalid review input")
)

// ReviewInput carries a review submission. ClientID and BookingID come from
// the authenticated session and the route, never from the body.
type ReviewInput struct {
	ClientID  string  `json:"-"`
	StylistID string  `json:"stylistId"`
	BookingID string  `json:"-"`
	Score     float64 `json:"score"`
	Comment   string  `json:"comment"`
}

// ReviewService folds client reviews into a stylist's running rating.
type ReviewService interface {
	RecordReview(ctx context.Context, input ReviewInput) (*models.Review, error)
	ListForStylist(ctx context.Context, stylistID string) ([]models.Review, error)
}

// DefaultReviewService is the production implementation.
type DefaultReviewService struct {
	Reviews  repository.ReviewRepository
	Bookings repository.BookingRepository
	Stylists repository.StylistRepository
}

// RecordReview validates the engagement, rejects duplicates, and recomputes
// the stylist's aggregate rating as the arithmetic mean of all scores.
func (s *DefaultReviewService) RecordReview(ctx context.Context, input ReviewInput) (*models.Review, error) {
	if input.Score < 0 || input.Score > 5 {
		return nil, fmt.Errorf("%w: score must be within [0,5]", ErrValidation)
	}

	b, err := s.Bookings.GetByID(ctx, input.BookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if b == nil || b.ClientID != input.ClientID || b.StylistID != input.StylistID {
		return nil, ErrInvalidReviewTarget
	}
	if b.Status != models.BookingCompleted {
		return nil, fmt.Errorf("%w: booking is %s, not completed", ErrInvalidReviewTarget, b.Status)
	}

	r := &models.Review{
		ID:        uuid.New().String(),
		ClientID:  input.ClientID,
		StylistID: input.StylistID,
		BookingID: input.BookingID,
		Score:     input.Score,
		Comment:   input.Comment,
		CreatedAt: time.Now(),
	}
	if err := s.Reviews.Insert(ctx, r); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateReview
		}
		return nil, fmt.Errorf("failed to save review: %w", err)
	}

	avg, count, err := s.Reviews.AverageForStylist(ctx, input.StylistID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate rating: %w", err)
	}
	if err := s.Stylists.UpdateRating(ctx, input.StylistID, avg, count); err != nil {
		return nil, fmt.Errorf("failed to persist rating: %w", err)
	}
	return r, nil
}

func (s *DefaultReviewService) ListForStylist(ctx context.Context, stylistID string) ([]models.Review, error) {
	return s.Reviews.ListByStylist(ctx, stylistID)
}
