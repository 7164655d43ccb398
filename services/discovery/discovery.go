package discovery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"hairbook/database/repository"
	"hairbook/models"
	"hairbook/services/geocode"

	"github.com/go-redis/redis/v8"
)

// ErrUnresolvableLocation distinguishes "the query location could not be
// geocoded" from infrastructure failure; geo-mode searches degrade to an
// empty result rather than crashing.
var ErrUnresolvableLocation = errors.New("query location unresolvable")

// SearchQuery describes one discovery search. RadiusKm > 0 selects geo
// mode; otherwise the location is matched as a text substring. Offset and
// Limit page through the deterministic ordering.
type SearchQuery struct {
	Location string  `json:"location"`
	RadiusKm float64 `json:"radiusKm"`
	Offset   int     `json:"offset"`
	Limit    int     `json:"limit"`
}

// DiscoveryService answers "find stylists near X, ranked by Y".
type DiscoveryService interface {
	Search(ctx context.Context, query SearchQuery) ([]models.StylistSummary, error)
}

// DefaultDiscoveryService composes the stylist store, the geocoder and a
// result cache.
type DefaultDiscoveryService struct {
	Stylists    repository.StylistRepository
	Geo         geocode.Geocoder
	CacheClient *redis.Client
}

const resultCacheTTL = 5 * time.Minute

// Search retrieves a ranked page of stylists matching the query. Identical
// queries with no intervening writes return identical ordered sequences:
// ranking ties break by stylist id ascending.
func (s *DefaultDiscoveryService) Search(ctx context.Context, query SearchQuery) ([]models.StylistSummary, error) {
	query.Location = strings.TrimSpace(query.Location)
	if query.Limit <= 0 {
		query.Limit = 20
	}
	if query.Offset < 0 {
		query.Offset = 0
	}

	cacheKey, cacheable := s.cacheKey(query)
	if cacheable {
		if cached, err := s.CacheClient.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			var summaries []models.StylistSummary
			if err := json.Unmarshal([]byte(cached), &summaries); err == nil {
				return summaries, nil
			}
		}
	}

	var (
		summaries []models.StylistSummary
		err       error
	)
	if query.RadiusKm > 0 {
		summaries, err = s.searchGeo(ctx, query)
	} else {
		summaries, err = s.searchText(ctx, query)
	}
	if err != nil {
		return nil, err
	}

	summaries = page(summaries, query.Offset, query.Limit)

	if cacheable {
		if data, err := json.Marshal(summaries); err == nil {
			s.CacheClient.Set(ctx, cacheKey, data, resultCacheTTL)
		}
	}
	return summaries, nil
}

// searchText matches the stored location string case-insensitively; the raw
// casing is preserved in results for display.
func (s *DefaultDiscoveryService) searchText(ctx context.Context, query SearchQuery) ([]models.StylistSummary, error) {
	stylists, err := s.Stylists.SearchByLocation(ctx, strings.ToLower(query.Location))
	if err != nil {
		return nil, fmt.Errorf("text search failed: %w", err)
	}

	summaries := make([]models.StylistSummary, 0, len(stylists))
	for _, st := range stylists {
		summaries = append(summaries, summarize(st, nil))
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].ID < summaries[j].ID
	})
	return summaries, nil
}

// searchGeo resolves the query location, then ranks stylists by great-circle
// distance ascending within the radius. Stylists without resolved
// coordinates are excluded rather than included with an undefined distance.
func (s *DefaultDiscoveryService) searchGeo(ctx context.Context, query SearchQuery) ([]models.StylistSummary, error) {
	origin, err := s.Geo.Resolve(ctx, query.Location)
	if err != nil {
		if errors.Is(err, geocode.ErrUnresolvable) {
			return nil, ErrUnresolvableLocation
		}
		return nil, fmt.Errorf("geocode failed: %w", err)
	}

	stylists, err := s.Stylists.ListGeoLocated(ctx)
	if err != nil {
		return nil, fmt.Errorf("geo search failed: %w", err)
	}

	var summaries []models.StylistSummary
	for _, st := range stylists {
		if st.LocationGeo == nil || len(st.LocationGeo.Coordinates) != 2 {
			continue
		}
		d := Haversine(origin.Lat(), origin.Lon(), st.LocationGeo.Lat(), st.LocationGeo.Lon())
		if d > query.RadiusKm {
			continue
		}
		dist := d
		summaries = append(summaries, summarize(st, &dist))
	}

	sort.Slice(summaries, func(i, j int) bool {
		if *summaries[i].DistanceKm != *summaries[j].DistanceKm {
			return *summaries[i].DistanceKm < *summaries[j].DistanceKm
		}
		return summaries[i].ID < summaries[j].ID
	})
	return summaries, nil
}

func (s *DefaultDiscoveryService) cacheKey(query SearchQuery) (string, bool) {
	if s.CacheClient == nil {
		return "", false
	}
	normalized := query
	normalized.Location = strings.ToLower(query.Location)
	data, err := json.Marshal(normalized)
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("discover:%x", data), true
}

func summarize(st models.Stylist, distanceKm *float64) models.StylistSummary {
	return models.StylistSummary{
		ID:          st.ID,
		Name:        st.Name,
		Location:    st.Location,
		Styles:      st.Styles,
		Rating:      st.Rating,
		ReviewCount: st.ReviewCount,
		DistanceKm:  distanceKm,
	}
}

func page(summaries []models.StylistSummary, offset, limit int) []models.StylistSummary {
	if offset >= len(summaries) {
		return []models.StylistSummary{}
	}
	end := offset + limit
	if end > len(summaries) {
		end = len(summaries)
	}
	return summaries[offset:end]
}
