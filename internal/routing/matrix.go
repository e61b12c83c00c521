package routing

import (
	"context"

	"github.com/tripframe/itinerary-backend-go/internal/models"
)

// Stop is a geocoded place the matrix provider needs pairwise estimates for.
type Stop struct {
	PlaceID string
	Lat     float64
	Lng     float64
}

// MatrixProvider retrieves pairwise walking estimates for a stop set. The
// returned matrix may be sparse: the sequencer recovers any missing pair with
// its straight-line fallback, so providers never fail a whole batch over
// individual pairs.
type MatrixProvider interface {
	WalkingMatrix(ctx context.Context, stops []Stop) (*models.DistanceMatrix, error)
}

// HaversineProvider fills the matrix entirely from straight-line estimates.
// It backs tests and the offline/no-API-key configuration.
type HaversineProvider struct {
	Speed models.WalkingSpeed
}

// WalkingMatrix implements MatrixProvider.
func (p *HaversineProvider) WalkingMatrix(_ context.Context, stops []Stop) (*models.DistanceMatrix, error) {
	// Returning an empty matrix is enough: every lookup miss falls back to
	// the same straight-line estimate inside the sequencer.
	return models.NewDistanceMatrix(), nil
}
