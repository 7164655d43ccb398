package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"hairbook/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ErrUnresolvable is returned when a location string cannot be mapped to
// coordinates. Lookup transport failures are wrapped into it as well: a
// geocoder miss is a recoverable outcome, never fatal.
var ErrUnresolvable = errors.New("location unresolvable")

// Geocoder maps free-text locations to coordinates.
type Geocoder interface {
	Resolve(ctx context.Context, location string) (*models.GeoPoint, error)
}

// NominatimGeocoder resolves locations against a Nominatim-compatible
// endpoint. Successful lookups are cached in Redis so repeated discovery
// searches for the same place skip the network round trip.
type NominatimGeocoder struct {
	Client      *http.Client
	BaseURL     string
	CacheClient *redis.Client
	Logger      *zap.Logger
}

const cacheTTL = 24 * time.Hour

// NewNominatimGeocoder builds a geocoder with a bounded request timeout.
func NewNominatimGeocoder(baseURL string, cache *redis.Client, logger *zap.Logger) *NominatimGeocoder {
	return &NominatimGeocoder{
		Client:      &http.Client{Timeout: 5 * time.Second},
		BaseURL:     baseURL,
		CacheClient: cache,
		Logger:      logger,
	}
}

func (g *NominatimGeocoder) Resolve(ctx context.Context, location string) (*models.GeoPoint, error) {
	normalized := strings.ToLower(strings.TrimSpace(location))
	if normalized == "" {
		return nil, ErrUnresolvable
	}

	cacheKey := "geocode:" + normalized
	if g.CacheClient != nil {
		if cached, err := g.CacheClient.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			var pt models.GeoPoint
			if err := json.Unmarshal([]byte(cached), &pt); err == nil {
				return &pt, nil
			}
		}
	}

	endpoint := fmt.Sprintf("%s/search?format=json&limit=1&q=%s", g.BaseURL, url.QueryEscape(normalized))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("geocode request build failed: %w", ErrUnresolvable)
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		if g.Logger != nil {
			g.Logger.Warn("geocode lookup failed", zap.String("location", normalized), zap.Error(err))
		}
		return nil, fmt.Errorf("geocode lookup failed: %w", ErrUnresolvable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode lookup returned status %d: %w", resp.StatusCode, ErrUnresolvable)
	}

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("geocode response malformed: %w", ErrUnresolvable)
	}
	if len(results) == 0 {
		return nil, ErrUnresolvable
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		return nil, fmt.Errorf("geocode coordinates malformed: %w", ErrUnresolvable)
	}

	pt := &models.GeoPoint{Type: "Point", Coordinates: []float64{lon, lat}}
	if g.CacheClient != nil {
		if data, err := json.Marshal(pt); err == nil {
			g.CacheClient.Set(ctx, cacheKey, data, cacheTTL)
		}
	}
	return pt, nil
}
