package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations are embedded in the binary, applied in version order. Append
// only; never edit an applied migration.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_itineraries",
		SQL: `
			CREATE TABLE IF NOT EXISTS itineraries (
				id TEXT PRIMARY KEY,
				title TEXT NOT NULL DEFAULT '',
				start_lat REAL NOT NULL,
				start_lng REAL NOT NULL,
				start_time TIMESTAMP NOT NULL,
				end_time TIMESTAMP NOT NULL,
				walking_speed TEXT NOT NULL DEFAULT 'moderate',
				total_time_minutes INTEGER NOT NULL DEFAULT 0,
				total_travel_meters INTEGER NOT NULL DEFAULT 0,
				created_by TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
		`,
	},
	{
		Version: 2,
		Name:    "create_waypoints",
		SQL: `
			CREATE TABLE IF NOT EXISTS waypoints (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				itinerary_id TEXT NOT NULL REFERENCES itineraries(id) ON DELETE CASCADE,
				place_id TEXT NOT NULL,
				name TEXT NOT NULL,
				lat REAL NOT NULL,
				lng REAL NOT NULL,
				visit_order INTEGER NOT NULL,
				stay_duration_minutes INTEGER NOT NULL,
				arrival_time TIMESTAMP,
				departure_time TIMESTAMP,
				wait_minutes INTEGER NOT NULL DEFAULT 0,
				opening_hours_json TEXT NOT NULL DEFAULT ''
			);
			CREATE INDEX IF NOT EXISTS idx_waypoints_itinerary ON waypoints(itinerary_id, visit_order);
		`,
	},
	{
		Version: 3,
		Name:    "create_extraction_jobs",
		SQL: `
			CREATE TABLE IF NOT EXISTS extraction_jobs (
				id TEXT PRIMARY KEY,
				status TEXT NOT NULL DEFAULT 'pending',
				total_images INTEGER NOT NULL DEFAULT 0,
				processed_images INTEGER NOT NULL DEFAULT 0,
				failed_images INTEGER NOT NULL DEFAULT 0,
				result_json TEXT NOT NULL DEFAULT '',
				error_message TEXT NOT NULL DEFAULT '',
				created_by TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				started_at TIMESTAMP,
				completed_at TIMESTAMP
			);
		`,
	},
}

// InitMigrationsTable creates the migrations tracking table
func InitMigrationsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

// appliedMigrations returns the set of applied migration versions
func appliedMigrations(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}

	return applied, nil
}

// applyMigration applies a single migration inside a transaction
func applyMigration(db *sql.DB, migration Migration) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.Exec(migration.SQL); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to execute migration %d: %w", migration.Version, err)
	}

	if _, err := tx.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", migration.Version, migration.Name); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
	}

	log.Printf("Applied migration %d: %s", migration.Version, migration.Name)
	return nil
}

// RunMigrations runs all pending migrations
func RunMigrations(db *sql.DB) error {
	if err := InitMigrationsTable(db); err != nil {
		return err
	}

	applied, err := appliedMigrations(db)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if applied[migration.Version] {
			continue
		}
		if err := applyMigration(db, migration); err != nil {
			return err
		}
	}

	return nil
}
