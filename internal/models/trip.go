package models

import "time"

// WalkingSpeed is the traveler's pace, mapped to a meters/second constant in
// the spatial package.
type WalkingSpeed string

const (
	WalkingSpeedSlow     WalkingSpeed = "slow"
	WalkingSpeedModerate WalkingSpeed = "moderate"
	WalkingSpeedFast     WalkingSpeed = "fast"
)

// TripConstraints bound a single-day walking itinerary.
type TripConstraints struct {
	StartLat     float64      `json:"start_lat"`
	StartLng     float64      `json:"start_lng"`
	StartTime    time.Time    `json:"start_time"`
	EndTime      time.Time    `json:"end_time"` // must be after StartTime
	WalkingSpeed WalkingSpeed `json:"walking_speed"`
}

// Itinerary is a sequenced trip: waypoints ordered and scheduled within the
// trip window.
type Itinerary struct {
	ID    string `json:"id" db:"id"`
	Title string `json:"title,omitempty" db:"title"`

	StartLat     float64      `json:"start_lat" db:"start_lat"`
	StartLng     float64      `json:"start_lng" db:"start_lng"`
	StartTime    time.Time    `json:"start_time" db:"start_time"`
	EndTime      time.Time    `json:"end_time" db:"end_time"`
	WalkingSpeed WalkingSpeed `json:"walking_speed" db:"walking_speed"`

	Waypoints []Waypoint `json:"waypoints" db:"-"`

	TotalTimeMinutes  int `json:"total_time_minutes" db:"total_time_minutes"`
	TotalTravelMeters int `json:"total_travel_meters" db:"total_travel_meters"`

	CreatedBy string    `json:"created_by,omitempty" db:"created_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Constraints returns the trip constraints embedded in the itinerary.
func (i *Itinerary) Constraints() TripConstraints {
	return TripConstraints{
		StartLat:     i.StartLat,
		StartLng:     i.StartLng,
		StartTime:    i.StartTime,
		EndTime:      i.EndTime,
		WalkingSpeed: i.WalkingSpeed,
	}
}
