package models

import "time"

// OpeningInterval is one weekday's open/close window, minutes from midnight
// local time. A place open 09:00-17:30 on Monday is
// {Weekday: time.Monday, OpenMinute: 540, CloseMinute: 1050}.
type OpeningInterval struct {
	Weekday     time.Weekday `json:"weekday"`
	OpenMinute  int          `json:"open_minute"`
	CloseMinute int          `json:"close_minute"`
}

// Waypoint is a confirmed, geocoded stop. Order, ArrivalTime and
// DepartureTime are unset on sequencer input and populated on output.
type Waypoint struct {
	ID          int64  `json:"id,omitempty" db:"id"`
	ItineraryID string `json:"itinerary_id,omitempty" db:"itinerary_id"`

	PlaceID string  `json:"place_id" db:"place_id"`
	Name    string  `json:"name" db:"name"`
	Lat     float64 `json:"lat" db:"lat"`
	Lng     float64 `json:"lng" db:"lng"`

	// Schedule, populated by the sequencer. Order is a dense 0-based
	// permutation once sequencing completes.
	Order                int       `json:"order" db:"visit_order"`
	StayDurationMinutes  int       `json:"estimated_stay_duration_minutes" db:"stay_duration_minutes"`
	ArrivalTime          time.Time `json:"arrival_time,omitzero" db:"arrival_time"`
	DepartureTime        time.Time `json:"departure_time,omitzero" db:"departure_time"`
	WaitMinutes          int       `json:"wait_minutes,omitempty" db:"wait_minutes"` // pre-opening wait included in the schedule
	OpeningHours         []OpeningInterval `json:"opening_hours,omitempty" db:"-"`
	OpeningHoursJSON     string            `json:"-" db:"opening_hours_json"`
}

// OpenWindowOn returns the opening interval for the given weekday, if any.
func (w *Waypoint) OpenWindowOn(day time.Weekday) (OpeningInterval, bool) {
	for _, iv := range w.OpeningHours {
		if iv.Weekday == day {
			return iv, true
		}
	}
	return OpeningInterval{}, false
}
