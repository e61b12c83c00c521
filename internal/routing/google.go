package routing

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

// GoogleMatrixProvider retrieves pairwise walking times from the Google
// Distance Matrix API, caching per-pair legs with a long TTL (walking times
// between fixed points are stable).
type GoogleMatrixProvider struct {
	client *maps.Client
	cache  *otter.Cache[string, models.LegEstimate]
	logger *slog.Logger
}

// NewGoogleMatrixProvider creates a provider over an existing Maps client.
func NewGoogleMatrixProvider(client *maps.Client, ttl time.Duration, logger *slog.Logger) *GoogleMatrixProvider {
	cache := otter.Must(&otter.Options[string, models.LegEstimate]{
		MaximumSize:      200_000,
		ExpiryCalculator: otter.ExpiryWriting[string, models.LegEstimate](ttl),
	})

	return &GoogleMatrixProvider{
		client: client,
		cache:  cache,
		logger: logger,
	}
}

// WalkingMatrix fetches estimates for every pair not already cached. Pairs
// the API cannot route stay absent from the matrix; the sequencer's
// straight-line fallback covers them.
func (p *GoogleMatrixProvider) WalkingMatrix(ctx context.Context, stops []Stop) (*models.DistanceMatrix, error) {
	matrix := models.NewDistanceMatrix()

	var missing []int // indices of stops involved in at least one uncached pair
	cached := 0
	for i := range stops {
		uncovered := false
		for j := range stops {
			if i == j {
				continue
			}
			if leg, ok := p.cache.GetIfPresent(pairCacheKey(stops[i].PlaceID, stops[j].PlaceID)); ok {
				matrix.Set(stops[i].PlaceID, stops[j].PlaceID, leg)
				cached++
			} else {
				uncovered = true
			}
		}
		if uncovered {
			missing = append(missing, i)
		}
	}

	if len(missing) == 0 {
		p.logger.Debug("distance matrix fully cached", "stops", len(stops), "pairs", cached)
		return matrix, nil
	}

	coords := make([]string, len(missing))
	for k, i := range missing {
		coords[k] = fmt.Sprintf("%f,%f", stops[i].Lat, stops[i].Lng)
	}

	var resp *maps.DistanceMatrixResponse
	err := retry.Do(
		func() error {
			var dmErr error
			resp, dmErr = p.client.DistanceMatrix(ctx, &maps.DistanceMatrixRequest{
				Origins:      coords,
				Destinations: coords,
				Mode:         maps.TravelModeWalking,
				Units:        maps.UnitsMetric,
			})
			if dmErr != nil {
				if isTransient(dmErr) {
					return dmErr
				}
				return retry.Unrecoverable(dmErr)
			}
			return nil
		},
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.MaxDelay(5*time.Second),
		retry.DelayType(retry.BackOffDelay),
	)
	if err != nil {
		return nil, fmt.Errorf("distance matrix request: %w", err)
	}

	for ri, row := range resp.Rows {
		for ci, elem := range row.Elements {
			if ri == ci || elem.Status != "OK" {
				continue
			}
			from := stops[missing[ri]]
			to := stops[missing[ci]]
			leg := models.LegEstimate{
				DurationSeconds: int(elem.Duration.Seconds()),
				DistanceMeters:  elem.Distance.Meters,
			}
			matrix.Set(from.PlaceID, to.PlaceID, leg)
			p.cache.Set(pairCacheKey(from.PlaceID, to.PlaceID), leg)
		}
	}

	p.logger.Debug("distance matrix fetched", "stops", len(stops), "fetched_for", len(missing), "pairs", matrix.Len())
	return matrix, nil
}

func pairCacheKey(from, to string) string {
	// Walking legs are symmetric; canonicalize the key direction.
	if to < from {
		from, to = to, from
	}
	return "walk:" + from + "|" + to
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
