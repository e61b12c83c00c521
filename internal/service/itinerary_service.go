package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/tripframe/itinerary-backend-go/internal/deeplink"
	"github.com/tripframe/itinerary-backend-go/internal/models"
	"github.com/tripframe/itinerary-backend-go/internal/repository"
	"github.com/tripframe/itinerary-backend-go/internal/routing"
	"github.com/tripframe/itinerary-backend-go/internal/sequencing"
)

// ItineraryService orchestrates sequencing: distance-matrix retrieval,
// ordering/scheduling, persistence.
type ItineraryService struct {
	matrix    routing.MatrixProvider
	sequencer *sequencing.Sequencer
	repo      *repository.ItineraryRepository
}

// NewItineraryService creates an itinerary service.
func NewItineraryService(matrix routing.MatrixProvider, sequencer *sequencing.Sequencer, repo *repository.ItineraryRepository) *ItineraryService {
	return &ItineraryService{matrix: matrix, sequencer: sequencer, repo: repo}
}

// Sequence orders the confirmed waypoints under the trip constraints and
// persists the resulting itinerary. The distance matrix is fetched up front
// and completely; the sequencer itself never touches the network, and missing
// pairs fall back to straight-line estimates inside it. A sequencing failure
// returns *sequencing.InfeasibleError naming the blocking stop.
func (s *ItineraryService) Sequence(ctx context.Context, title, createdBy string, constraints models.TripConstraints, waypoints []models.Waypoint) (*models.Itinerary, error) {
	matrix, err := s.matrix.WalkingMatrix(ctx, matrixStops(constraints, waypoints))
	if err != nil {
		// Degrade to straight-line estimates rather than failing the trip.
		log.Printf("Distance matrix retrieval failed, using straight-line fallback: %v", err)
		matrix = models.NewDistanceMatrix()
	}

	result, err := s.sequencer.Sequence(constraints, waypoints, matrix)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	it := &models.Itinerary{
		ID:                uuid.NewString(),
		Title:             title,
		StartLat:          constraints.StartLat,
		StartLng:          constraints.StartLng,
		StartTime:         constraints.StartTime,
		EndTime:           constraints.EndTime,
		WalkingSpeed:      constraints.WalkingSpeed,
		Waypoints:         result.Waypoints,
		TotalTimeMinutes:  result.TotalTimeMinutes,
		TotalTravelMeters: result.TotalTravelMeters,
		CreatedBy:         createdBy,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	for i := range it.Waypoints {
		it.Waypoints[i].ItineraryID = it.ID
	}

	if err := s.repo.Create(it); err != nil {
		return nil, fmt.Errorf("failed to persist itinerary: %w", err)
	}
	return it, nil
}

// GetByID retrieves an itinerary with waypoints
func (s *ItineraryService) GetByID(id string) (*models.Itinerary, error) {
	return s.repo.GetByID(id)
}

// List retrieves itineraries for a creator
func (s *ItineraryService) List(createdBy string, limit, offset int) ([]models.Itinerary, int64, error) {
	return s.repo.List(createdBy, limit, offset)
}

// Delete removes an itinerary
func (s *ItineraryService) Delete(id string) error {
	return s.repo.Delete(id)
}

// Links builds the map deep links for a stored itinerary, split when the
// stop count exceeds the host map service's per-link waypoint ceiling. A nil
// result means the itinerary does not exist; an itinerary without waypoints
// yields an empty non-nil slice.
func (s *ItineraryService) Links(id string) ([]string, error) {
	it, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, nil
	}
	links := deeplink.Build(it)
	if links == nil {
		links = []string{}
	}
	return links, nil
}

// matrixStops assembles the start location plus every waypoint for the
// matrix provider.
func matrixStops(constraints models.TripConstraints, waypoints []models.Waypoint) []routing.Stop {
	stops := make([]routing.Stop, 0, len(waypoints)+1)
	stops = append(stops, routing.Stop{
		PlaceID: sequencing.StartPlaceID,
		Lat:     constraints.StartLat,
		Lng:     constraints.StartLng,
	})
	for _, wp := range waypoints {
		stops = append(stops, routing.Stop{PlaceID: wp.PlaceID, Lat: wp.Lat, Lng: wp.Lng})
	}
	return stops
}
