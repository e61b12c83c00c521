package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/tripframe/itinerary-backend-go/internal/database"
	"github.com/tripframe/itinerary-backend-go/internal/models"
	"github.com/tripframe/itinerary-backend-go/internal/repository"
	"github.com/tripframe/itinerary-backend-go/internal/routing"
	"github.com/tripframe/itinerary-backend-go/internal/sequencing"
)

func newTestItineraryService(t *testing.T) *ItineraryService {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.RunMigrations(db))

	return NewItineraryService(
		&routing.HaversineProvider{},
		sequencing.NewSequencer(sequencing.DefaultConfig()),
		repository.NewItineraryRepository(db),
	)
}

func testTripConstraints() models.TripConstraints {
	start := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	return models.TripConstraints{
		StartLat:     37.7955,
		StartLng:     -122.3937,
		StartTime:    start,
		EndTime:      start.Add(8 * time.Hour),
		WalkingSpeed: models.WalkingSpeedModerate,
	}
}

func TestSequencePersistsAndReloads(t *testing.T) {
	s := newTestItineraryService(t)

	waypoints := []models.Waypoint{
		{PlaceID: "a", Name: "Ferry Building", Lat: 37.7955, Lng: -122.3937, StayDurationMinutes: 45},
	}

	it, err := s.Sequence(context.Background(), "Morning walk", "u1", testTripConstraints(), waypoints)
	require.NoError(t, err)
	require.NotEmpty(t, it.ID)

	stored, err := s.GetByID(it.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Morning walk", stored.Title)
	require.Len(t, stored.Waypoints, 1)
	assert.Equal(t, "Ferry Building", stored.Waypoints[0].Name)
}

func TestLinksEmptyItineraryIsNotMissing(t *testing.T) {
	s := newTestItineraryService(t)

	it, err := s.Sequence(context.Background(), "Empty day", "u1", testTripConstraints(), nil)
	require.NoError(t, err)

	links, err := s.Links(it.ID)
	require.NoError(t, err)
	assert.NotNil(t, links, "an existing itinerary must not read as missing")
	assert.Empty(t, links)
}

func TestLinksMissingItinerary(t *testing.T) {
	s := newTestItineraryService(t)

	links, err := s.Links("no-such-id")
	require.NoError(t, err)
	assert.Nil(t, links)
}
