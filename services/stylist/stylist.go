package stylist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"hairbook/database/repository"
	"hairbook/models"
	"hairbook/services/geocode"
	"hairbook/services/storage"
	"hairbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrNotFound means no stylist profile exists for the reference.
	ErrNotFound = errors.New("stylist not found")
	// ErrValidation means a required profile field is missing or malformed.
	ErrValidation = errors.New("invalid profile input")
)

// StylistService owns stylist profile records: one per account, edited only
// by the owner, deactivated rather than deleted.
type StylistService interface {
	// UpsertProfile creates the account's profile on first save and
	// replaces the editable fields afterwards. The location is re-geocoded
	// best-effort when its text changes.
	UpsertProfile(ctx context.Context, accountID string, input models.StylistProfileInput) (*models.Stylist, error)
	UpdatePricing(ctx context.Context, accountID string, prices models.PriceTable) (*models.Stylist, error)
	GetByID(ctx context.Context, id string) (*models.Stylist, error)
	GetByAccount(ctx context.Context, accountID string) (*models.Stylist, error)
	Deactivate(ctx context.Context, accountID string) error
	// AddPortfolioImage uploads the image and appends its URL to the
	// profile's portfolio.
	AddPortfolioImage(ctx context.Context, accountID string, file io.Reader) (string, error)
}

// DefaultStylistService is the production implementation.
type DefaultStylistService struct {
	Repo    repository.StylistRepository
	Geo     geocode.Geocoder
	Storage storage.StorageService
}

func (s *DefaultStylistService) UpsertProfile(ctx context.Context, accountID string, input models.StylistProfileInput) (*models.Stylist, error) {
	if accountID == "" {
		return nil, fmt.Errorf("%w: account is required", ErrValidation)
	}
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Location) == "" {
		return nil, fmt.Errorf("%w: name and location are required", ErrValidation)
	}
	if input.Prices.Salon < 0 || input.Prices.Home < 0 {
		return nil, fmt.Errorf("%w: prices must be non-negative", ErrValidation)
	}

	existing, err := s.Repo.GetByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}

	now := time.Now()
	st := &models.Stylist{
		AccountID:    accountID,
		Name:         input.Name,
		Styles:       input.Styles,
		Prices:       input.Prices,
		Availability: input.Availability,
		Location:     input.Location,
		Status:       models.StylistActive,
		UpdatedAt:    now,
	}
	if existing != nil {
		st.ID = existing.ID
		st.Rating = existing.Rating
		st.ReviewCount = existing.ReviewCount
		st.Portfolio = existing.Portfolio
		st.Status = existing.Status
		st.CreatedAt = existing.CreatedAt
		st.LocationGeo = existing.LocationGeo
	} else {
		st.ID = uuid.New().String()
		st.CreatedAt = now
	}

	// Re-geocode when the location text changed. A miss leaves the profile
	// out of geo-mode discovery until the next successful resolve.
	if existing == nil || !strings.EqualFold(existing.Location, input.Location) {
		pt, err := s.Geo.Resolve(ctx, input.Location)
		if err != nil {
			utils.GetLogger().Warn("profile location did not geocode",
				zap.String("accountId", accountID), zap.Error(err))
			st.LocationGeo = nil
		} else {
			st.LocationGeo = pt
		}
	}

	if err := s.Repo.Upsert(ctx, st); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return st, nil
}

func (s *DefaultStylistService) UpdatePricing(ctx context.Context, accountID string, prices models.PriceTable) (*models.Stylist, error) {
	if prices.Salon < 0 || prices.Home < 0 {
		return nil, fmt.Errorf("%w: prices must be non-negative", ErrValidation)
	}
	if err := s.Repo.UpdatePricing(ctx, accountID, prices); err != nil {
		if errors.Is(err, repository.ErrNoMatch) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update pricing: %w", err)
	}
	return s.Repo.GetByAccount(ctx, accountID)
}

func (s *DefaultStylistService) GetByID(ctx context.Context, id string) (*models.Stylist, error) {
	st, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrNotFound
	}
	return st, nil
}

func (s *DefaultStylistService) GetByAccount(ctx context.Context, accountID string) (*models.Stylist, error) {
	st, err := s.Repo.GetByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrNotFound
	}
	return st, nil
}

func (s *DefaultStylistService) Deactivate(ctx context.Context, accountID string) error {
	if err := s.Repo.SetStatus(ctx, accountID, models.StylistInactive); err != nil {
		if errors.Is(err, repository.ErrNoMatch) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to deactivate profile: %w", err)
	}
	return nil
}

func (s *DefaultStylistService) AddPortfolioImage(ctx context.Context, accountID string, file io.Reader) (string, error) {
	url, err := s.Storage.UploadImage(ctx, file, "portfolio")
	if err != nil {
		return "", fmt.Errorf("failed to upload portfolio image: %w", err)
	}
	if err := s.Repo.AddPortfolioImage(ctx, accountID, url); err != nil {
		if errors.Is(err, repository.ErrNoMatch) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to attach portfolio image: %w", err)
	}
	return url, nil
}
