package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tripframe/itinerary-backend-go/internal/database"
	"github.com/tripframe/itinerary-backend-go/internal/models"
)

// ItineraryRepository handles database operations for itineraries
type ItineraryRepository struct {
	db *sql.DB
}

// NewItineraryRepository creates a new itinerary repository
func NewItineraryRepository(db *sql.DB) *ItineraryRepository {
	return &ItineraryRepository{db: db}
}

// Create stores an itinerary with its waypoints in one transaction
func (r *ItineraryRepository) Create(it *models.Itinerary) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO itineraries (id, title, start_lat, start_lng, start_time, end_time,
				walking_speed, total_time_minutes, total_travel_meters, created_by)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			it.ID, it.Title, it.StartLat, it.StartLng, it.StartTime, it.EndTime,
			string(it.WalkingSpeed), it.TotalTimeMinutes, it.TotalTravelMeters, it.CreatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to insert itinerary: %w", err)
		}

		for i := range it.Waypoints {
			wp := &it.Waypoints[i]
			hoursJSON := ""
			if len(wp.OpeningHours) > 0 {
				raw, jErr := json.Marshal(wp.OpeningHours)
				if jErr != nil {
					return fmt.Errorf("failed to encode opening hours: %w", jErr)
				}
				hoursJSON = string(raw)
			}

			_, err = tx.Exec(`
				INSERT INTO waypoints (itinerary_id, place_id, name, lat, lng, visit_order,
					stay_duration_minutes, arrival_time, departure_time, wait_minutes, opening_hours_json)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				it.ID, wp.PlaceID, wp.Name, wp.Lat, wp.Lng, wp.Order,
				wp.StayDurationMinutes, wp.ArrivalTime, wp.DepartureTime, wp.WaitMinutes, hoursJSON,
			)
			if err != nil {
				return fmt.Errorf("failed to insert waypoint: %w", err)
			}
		}

		return nil
	})
}

// GetByID retrieves an itinerary with its waypoints in visit order
func (r *ItineraryRepository) GetByID(id string) (*models.Itinerary, error) {
	var it models.Itinerary
	var speed string
	err := r.db.QueryRow(`
		SELECT id, title, start_lat, start_lng, start_time, end_time, walking_speed,
			total_time_minutes, total_travel_meters, created_by, created_at, updated_at
		FROM itineraries WHERE id = ?`, id).Scan(
		&it.ID, &it.Title, &it.StartLat, &it.StartLng, &it.StartTime, &it.EndTime, &speed,
		&it.TotalTimeMinutes, &it.TotalTravelMeters, &it.CreatedBy, &it.CreatedAt, &it.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get itinerary: %w", err)
	}
	it.WalkingSpeed = models.WalkingSpeed(speed)

	rows, err := r.db.Query(`
		SELECT id, itinerary_id, place_id, name, lat, lng, visit_order,
			stay_duration_minutes, arrival_time, departure_time, wait_minutes, opening_hours_json
		FROM waypoints WHERE itinerary_id = ? ORDER BY visit_order`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query waypoints: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var wp models.Waypoint
		err := rows.Scan(
			&wp.ID, &wp.ItineraryID, &wp.PlaceID, &wp.Name, &wp.Lat, &wp.Lng, &wp.Order,
			&wp.StayDurationMinutes, &wp.ArrivalTime, &wp.DepartureTime, &wp.WaitMinutes, &wp.OpeningHoursJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan waypoint: %w", err)
		}
		if wp.OpeningHoursJSON != "" {
			if err := json.Unmarshal([]byte(wp.OpeningHoursJSON), &wp.OpeningHours); err != nil {
				return nil, fmt.Errorf("failed to decode opening hours: %w", err)
			}
		}
		it.Waypoints = append(it.Waypoints, wp)
	}

	return &it, nil
}

// List retrieves itineraries with optional creator filter and pagination,
// newest first. Waypoints are not loaded.
func (r *ItineraryRepository) List(createdBy string, limit, offset int) ([]models.Itinerary, int64, error) {
	var conditions []string
	var args []interface{}
	if createdBy != "" {
		conditions = append(conditions, "created_by = ?")
		args = append(args, createdBy)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM itineraries"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count itineraries: %w", err)
	}

	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)

	rows, err := r.db.Query(`
		SELECT id, title, start_lat, start_lng, start_time, end_time, walking_speed,
			total_time_minutes, total_travel_meters, created_by, created_at, updated_at
		FROM itineraries`+where+` ORDER BY created_at DESC LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query itineraries: %w", err)
	}
	defer rows.Close()

	var out []models.Itinerary
	for rows.Next() {
		var it models.Itinerary
		var speed string
		err := rows.Scan(
			&it.ID, &it.Title, &it.StartLat, &it.StartLng, &it.StartTime, &it.EndTime, &speed,
			&it.TotalTimeMinutes, &it.TotalTravelMeters, &it.CreatedBy, &it.CreatedAt, &it.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan itinerary: %w", err)
		}
		it.WalkingSpeed = models.WalkingSpeed(speed)
		out = append(out, it)
	}

	return out, total, nil
}

// Delete removes an itinerary; waypoints cascade.
func (r *ItineraryRepository) Delete(id string) error {
	_, err := r.db.Exec("DELETE FROM itineraries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete itinerary: %w", err)
	}
	return nil
}
