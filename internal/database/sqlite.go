package database

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"
)

var (
	db   *sql.DB
	once sync.Once
)

// Config holds the sqlite connection settings. Zero pool sizes take the
// defaults.
type Config struct {
	Path         string
	MaxOpenConns int
	MaxIdleConns int
}

// Init opens the database once. WAL keeps readers from blocking the
// background extraction jobs' writes; foreign keys enforce the
// itinerary-to-waypoint cascade.
func Init(cfg Config) error {
	var err error
	once.Do(func() {
		db, err = sql.Open("sqlite", cfg.Path)
		if err != nil {
			return
		}

		if cfg.MaxOpenConns <= 0 {
			cfg.MaxOpenConns = 10
		}
		if cfg.MaxIdleConns <= 0 {
			cfg.MaxIdleConns = 5
		}
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)

		for _, pragma := range []string{
			"PRAGMA journal_mode=WAL",
			"PRAGMA foreign_keys=ON",
			"PRAGMA busy_timeout=5000",
		} {
			if _, err = db.Exec(pragma); err != nil {
				return
			}
		}

		if err = db.Ping(); err != nil {
			return
		}

		log.Printf("Database ready at %s", cfg.Path)
	})

	return err
}

// GetDB returns the shared connection handle.
func GetDB() *sql.DB {
	if db == nil {
		log.Fatal("Database not initialized. Call Init() first.")
	}
	return db
}

// Close closes the shared connection handle.
func Close() error {
	if db != nil {
		return db.Close()
	}
	return nil
}

// Transaction runs fn inside a transaction on the given handle, rolling back
// when fn returns an error or panics.
func Transaction(handle *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := handle.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
