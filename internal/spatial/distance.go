package spatial

import (
	"time"

	"github.com/golang/geo/s2"

	"github.com/tripframe/itinerary-backend-go/internal/models"
)

// Constants
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
)

// Walking speeds in meters/second.
const (
	WalkSpeedSlowMPS     = 1.0
	WalkSpeedModerateMPS = 1.4
	WalkSpeedFastMPS     = 1.8
)

// HaversineDistance calculates the great-circle distance between two points
// in meters using the Haversine formula
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// SpeedMPS maps a walking-speed setting to meters/second. Unknown values get
// the moderate pace.
func SpeedMPS(speed models.WalkingSpeed) float64 {
	switch speed {
	case models.WalkingSpeedSlow:
		return WalkSpeedSlowMPS
	case models.WalkingSpeedFast:
		return WalkSpeedFastMPS
	default:
		return WalkSpeedModerateMPS
	}
}

// WalkingDuration estimates the straight-line walking time between two
// points. Used as the deterministic fallback when a pair is absent from the
// distance matrix.
func WalkingDuration(lat1, lon1, lat2, lon2 float64, speed models.WalkingSpeed) time.Duration {
	meters := HaversineDistance(lat1, lon1, lat2, lon2)
	seconds := meters / SpeedMPS(speed)
	return time.Duration(seconds * float64(time.Second))
}
