package vision

import (
	"context"

	"github.com/tripframe/itinerary-backend-go/internal/models"
)

// StaticSource returns a fixed set of findings for every image. It backs the
// mock-backend configuration and tests.
type StaticSource struct {
	Findings []models.VisionFinding
}

// Identify implements extraction.VisionSource.
func (s *StaticSource) Identify(_ context.Context, _ []byte) ([]models.VisionFinding, error) {
	return s.Findings, nil
}
