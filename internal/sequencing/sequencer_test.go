package sequencing

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripframe/itinerary-backend-go/internal/models"
)

// tripDay is a Monday.
var tripDay = time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return tripDay.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func testConstraints() models.TripConstraints {
	return models.TripConstraints{
		StartLat:     37.7955,
		StartLng:     -122.3937,
		StartTime:    at(9, 0),
		EndTime:      at(18, 0),
		WalkingSpeed: models.WalkingSpeedModerate,
	}
}

func waypoint(placeID, name string, stayMinutes int) models.Waypoint {
	return models.Waypoint{
		PlaceID:             placeID,
		Name:                name,
		Lat:                 37.79,
		Lng:                 -122.40,
		StayDurationMinutes: stayMinutes,
	}
}

func leg(minutes, meters int) models.LegEstimate {
	return models.LegEstimate{DurationSeconds: minutes * 60, DistanceMeters: meters}
}

func TestSequenceThreeStops(t *testing.T) {
	s := NewSequencer(DefaultConfig())

	waypoints := []models.Waypoint{
		waypoint("a", "Ferry Building", 60),
		waypoint("b", "Coit Tower", 45),
		waypoint("c", "Washington Square", 30),
	}

	// The chain start->a->b->c is clearly cheapest.
	matrix := models.NewDistanceMatrix()
	matrix.Set(StartPlaceID, "a", leg(10, 800))
	matrix.Set(StartPlaceID, "b", leg(25, 2000))
	matrix.Set(StartPlaceID, "c", leg(30, 2400))
	matrix.Set("a", "b", leg(10, 800))
	matrix.Set("a", "c", leg(25, 2000))
	matrix.Set("b", "c", leg(10, 800))

	result, err := s.Sequence(testConstraints(), waypoints, matrix)
	require.NoError(t, err)
	require.Len(t, result.Waypoints, 3)

	assert.Equal(t, "Ferry Building", result.Waypoints[0].Name)
	assert.Equal(t, "Coit Tower", result.Waypoints[1].Name)
	assert.Equal(t, "Washington Square", result.Waypoints[2].Name)

	for i, wp := range result.Waypoints {
		assert.Equal(t, i, wp.Order)
	}

	// 09:00 + 10 min walk.
	assert.Equal(t, at(9, 10), result.Waypoints[0].ArrivalTime)
	assert.Equal(t, at(10, 10), result.Waypoints[0].DepartureTime)
	assert.Equal(t, at(10, 20), result.Waypoints[1].ArrivalTime)
	assert.Equal(t, at(11, 5), result.Waypoints[1].DepartureTime)
	assert.Equal(t, at(11, 15), result.Waypoints[2].ArrivalTime)
	assert.Equal(t, at(11, 45), result.Waypoints[2].DepartureTime)

	assert.Equal(t, 165, result.TotalTimeMinutes, "from trip start to final departure")
	assert.Equal(t, 2400, result.TotalTravelMeters)
}

func TestSequenceWaitsForOpening(t *testing.T) {
	s := NewSequencer(DefaultConfig())

	wp := waypoint("a", "Ferry Building", 60)
	wp.OpeningHours = []models.OpeningInterval{
		{Weekday: time.Monday, OpenMinute: 10 * 60, CloseMinute: 17 * 60},
	}

	matrix := models.NewDistanceMatrix()
	matrix.Set(StartPlaceID, "a", leg(10, 800))

	result, err := s.Sequence(testConstraints(), []models.Waypoint{wp}, matrix)
	require.NoError(t, err)
	require.Len(t, result.Waypoints, 1)

	got := result.Waypoints[0]
	assert.Equal(t, at(10, 0), got.ArrivalTime, "clamped to the opening time")
	assert.Equal(t, at(11, 0), got.DepartureTime)
	assert.Equal(t, 50, got.WaitMinutes)
}

func TestSequencePrefersFeasibleOverNearest(t *testing.T) {
	s := NewSequencer(DefaultConfig())

	early := waypoint("a", "Morning Market", 30)
	early.OpeningHours = []models.OpeningInterval{
		{Weekday: time.Monday, OpenMinute: 8 * 60, CloseMinute: 10 * 60},
	}
	late := waypoint("b", "Gallery", 60)

	// The gallery is nearer to the start, but visiting it first pushes the
	// market past closing.
	matrix := models.NewDistanceMatrix()
	matrix.Set(StartPlaceID, "a", leg(10, 800))
	matrix.Set(StartPlaceID, "b", leg(5, 400))
	matrix.Set("a", "b", leg(20, 1600))

	result, err := s.Sequence(testConstraints(), []models.Waypoint{early, late}, matrix)
	require.NoError(t, err)
	require.Len(t, result.Waypoints, 2)

	assert.Equal(t, "Morning Market", result.Waypoints[0].Name)
	assert.Equal(t, "Gallery", result.Waypoints[1].Name)
}

func TestSequenceClosedDayInfeasible(t *testing.T) {
	s := NewSequencer(DefaultConfig())

	wp := waypoint("a", "Sunday Market", 30)
	wp.OpeningHours = []models.OpeningInterval{
		{Weekday: time.Sunday, OpenMinute: 8 * 60, CloseMinute: 14 * 60},
	}

	_, err := s.Sequence(testConstraints(), []models.Waypoint{wp}, models.NewDistanceMatrix())
	require.Error(t, err)

	var infeasible *InfeasibleError
	require.ErrorAs(t, err, &infeasible)
	assert.Equal(t, "Sunday Market", infeasible.StopName)
	assert.Equal(t, "closed on Monday", infeasible.Reason)
}

func TestSequenceArrivesAfterClosing(t *testing.T) {
	s := NewSequencer(DefaultConfig())

	wp := waypoint("a", "Early Bakery", 30)
	wp.OpeningHours = []models.OpeningInterval{
		{Weekday: time.Monday, OpenMinute: 6 * 60, CloseMinute: 9 * 60},
	}

	matrix := models.NewDistanceMatrix()
	matrix.Set(StartPlaceID, "a", leg(15, 1200))

	_, err := s.Sequence(testConstraints(), []models.Waypoint{wp}, matrix)

	var infeasible *InfeasibleError
	require.ErrorAs(t, err, &infeasible)
	assert.Equal(t, "Early Bakery", infeasible.StopName)
	assert.Equal(t, "arrives after closing", infeasible.Reason)
}

func TestSequenceExceedsTripEnd(t *testing.T) {
	s := NewSequencer(DefaultConfig())

	constraints := testConstraints()
	constraints.EndTime = at(9, 30)

	matrix := models.NewDistanceMatrix()
	matrix.Set(StartPlaceID, "a", leg(10, 800))

	_, err := s.Sequence(constraints, []models.Waypoint{waypoint("a", "Ferry Building", 60)}, matrix)

	var infeasible *InfeasibleError
	require.ErrorAs(t, err, &infeasible)
	assert.Equal(t, "Ferry Building", infeasible.StopName)
	assert.Equal(t, "exceeds trip end time", infeasible.Reason)
}

func TestSequenceZeroWaypoints(t *testing.T) {
	s := NewSequencer(DefaultConfig())

	result, err := s.Sequence(testConstraints(), nil, models.NewDistanceMatrix())
	require.NoError(t, err)
	assert.Empty(t, result.Waypoints)
	assert.Zero(t, result.TotalTimeMinutes)
	assert.Zero(t, result.TotalTravelMeters)
}

func TestSequenceRejectsInvertedWindow(t *testing.T) {
	s := NewSequencer(DefaultConfig())

	constraints := testConstraints()
	constraints.EndTime = constraints.StartTime

	_, err := s.Sequence(constraints, nil, models.NewDistanceMatrix())
	assert.Error(t, err)
}

func TestSequenceRejectsNonPositiveStay(t *testing.T) {
	s := NewSequencer(DefaultConfig())

	_, err := s.Sequence(testConstraints(), []models.Waypoint{waypoint("a", "Ferry Building", 0)}, models.NewDistanceMatrix())
	assert.Error(t, err)

	var infeasible *InfeasibleError
	assert.False(t, errors.As(err, &infeasible), "input validation is not an infeasibility")
}

func TestSequenceGreedyFallbackAboveSolverCeiling(t *testing.T) {
	s := NewSequencer(Config{SolverBudget: time.Second, MaxSolverStops: 1})

	waypoints := []models.Waypoint{
		waypoint("a", "Ferry Building", 30),
		waypoint("b", "Coit Tower", 30),
	}

	matrix := models.NewDistanceMatrix()
	matrix.Set(StartPlaceID, "a", leg(20, 1600))
	matrix.Set(StartPlaceID, "b", leg(5, 400))
	matrix.Set("a", "b", leg(10, 800))

	result, err := s.Sequence(testConstraints(), waypoints, matrix)
	require.NoError(t, err)
	require.Len(t, result.Waypoints, 2)

	// Nearest-feasible-next goes to the tower first.
	assert.Equal(t, "Coit Tower", result.Waypoints[0].Name)
	assert.Equal(t, "Ferry Building", result.Waypoints[1].Name)
}

func TestSequenceStraightLineFallbackForMissingPairs(t *testing.T) {
	s := NewSequencer(DefaultConfig())

	wp := waypoint("a", "Ferry Building", 30)
	wp.Lat = 37.7955
	wp.Lng = -122.3937 // same coordinates as the start

	result, err := s.Sequence(testConstraints(), []models.Waypoint{wp}, models.NewDistanceMatrix())
	require.NoError(t, err)
	require.Len(t, result.Waypoints, 1)

	assert.Equal(t, at(9, 0), result.Waypoints[0].ArrivalTime, "zero distance walks in zero time")
	assert.Zero(t, result.TotalTravelMeters)
}

func TestDistanceMatrixSymmetricLookup(t *testing.T) {
	m := models.NewDistanceMatrix()
	m.Set("a", "b", leg(10, 800))

	got, ok := m.Get("b", "a")
	require.True(t, ok)
	assert.Equal(t, 800, got.DistanceMeters)

	_, ok = m.Get("a", "c")
	assert.False(t, ok)
}
