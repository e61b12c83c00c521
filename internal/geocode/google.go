package geocode

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/maypok86/otter/v2"
	"googlemaps.github.io/maps"

	"github.com/tripframe/itinerary-backend-go/internal/models"
)

// GoogleGeocoder looks up places through the Google Maps Geocoding API with a
// read-through TTL cache. Walking-scale place coordinates are stable, so a
// long TTL is safe.
type GoogleGeocoder struct {
	client *maps.Client
	cache  *otter.Cache[string, []models.PlaceMatch]
	logger *slog.Logger
}

// NewGoogleGeocoder creates a geocoder over an existing Maps client.
func NewGoogleGeocoder(client *maps.Client, ttl time.Duration, logger *slog.Logger) *GoogleGeocoder {
	cache := otter.Must(&otter.Options[string, []models.PlaceMatch]{
		MaximumSize:      50_000,
		ExpiryCalculator: otter.ExpiryWriting[string, []models.PlaceMatch](ttl),
	})

	return &GoogleGeocoder{
		client: client,
		cache:  cache,
		logger: logger,
	}
}

// Lookup geocodes a place name, optionally biased by a free-text locality.
// Results are cached; transient API errors are retried with backoff.
func (g *GoogleGeocoder) Lookup(ctx context.Context, name, locality string) ([]models.PlaceMatch, error) {
	query := name
	if locality != "" {
		query = name + ", " + locality
	}

	cacheKey := "geocode:" + query
	if matches, ok := g.cache.GetIfPresent(cacheKey); ok {
		g.logger.Debug("geocode cache hit", "query", query)
		return matches, nil
	}

	var results []maps.GeocodingResult
	err := retry.Do(
		func() error {
			var geoErr error
			results, geoErr = g.client.Geocode(ctx, &maps.GeocodingRequest{Address: query})
			if geoErr != nil {
				if isTransient(geoErr) {
					return geoErr
				}
				return retry.Unrecoverable(geoErr)
			}
			return nil
		},
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.MaxDelay(5*time.Second),
		retry.DelayType(retry.BackOffDelay),
	)
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", query, err)
	}

	matches := make([]models.PlaceMatch, 0, len(results))
	for _, r := range results {
		matches = append(matches, models.PlaceMatch{
			PlaceID: r.PlaceID,
			Name:    displayName(r, name),
			Address: r.FormattedAddress,
			Lat:     r.Geometry.Location.Lat,
			Lng:     r.Geometry.Location.Lng,
		})
	}

	g.cache.Set(cacheKey, matches)
	g.logger.Debug("geocoded", "query", query, "matches", len(matches))
	return matches, nil
}

// displayName prefers the first address component over the full formatted
// address, falling back to the queried name.
func displayName(r maps.GeocodingResult, queried string) string {
	if len(r.AddressComponents) > 0 && r.AddressComponents[0].LongName != "" {
		return r.AddressComponents[0].LongName
	}
	if queried != "" {
		return queried
	}
	return r.FormattedAddress
}

func isTransient(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, indicator := range []string{"timeout", "deadline", "unavailable", "over_query_limit", "500", "502", "503"} {
		if strings.Contains(msg, indicator) {
			return true
		}
	}
	return false
}
