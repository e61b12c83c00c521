package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tripframe/itinerary-backend-go/internal/models"
)

func TestHaversineDistance(t *testing.T) {
	// Ferry Building to Coit Tower, about 1.45 km.
	d := HaversineDistance(37.7955, -122.3937, 37.8024, -122.4058)
	assert.InDelta(t, 1310, d, 60)

	assert.Zero(t, HaversineDistance(37.7955, -122.3937, 37.7955, -122.3937))

	// One degree of latitude is about 111 km.
	d = HaversineDistance(0, 0, 1, 0)
	assert.InDelta(t, 111195, d, 100)
}

func TestSpeedMPS(t *testing.T) {
	assert.Equal(t, WalkSpeedSlowMPS, SpeedMPS(models.WalkingSpeedSlow))
	assert.Equal(t, WalkSpeedModerateMPS, SpeedMPS(models.WalkingSpeedModerate))
	assert.Equal(t, WalkSpeedFastMPS, SpeedMPS(models.WalkingSpeedFast))
	assert.Equal(t, WalkSpeedModerateMPS, SpeedMPS(models.WalkingSpeed("")), "unknown pace defaults to moderate")
}

func TestWalkingDuration(t *testing.T) {
	// 111195 m at 1.4 m/s.
	d := WalkingDuration(0, 0, 1, 0, models.WalkingSpeedModerate)
	assert.InDelta(t, (111195 / 1.4), d.Seconds(), 120)

	assert.Zero(t, WalkingDuration(10, 10, 10, 10, models.WalkingSpeedFast))
}

func TestCentroid(t *testing.T) {
	c := Centroid([]Point{
		{Lat: 37.0, Lng: -122.0},
		{Lat: 38.0, Lng: -121.0},
	})
	assert.InDelta(t, 37.5, c.Lat, 1e-9)
	assert.InDelta(t, -121.5, c.Lng, 1e-9)
}
