package database

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRunMigrationsIdempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, RunMigrations(db))
	require.NoError(t, RunMigrations(db))

	var applied int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&applied))
	assert.Equal(t, len(migrations), applied)
}

func TestTransactionRollsBackOnError(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, RunMigrations(db))

	wantErr := errors.New("boom")
	err := Transaction(db, func(tx *sql.Tx) error {
		if _, execErr := tx.Exec("INSERT INTO extraction_jobs (id) VALUES ('j1')"); execErr != nil {
			return execErr
		}
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM extraction_jobs").Scan(&count))
	assert.Zero(t, count, "the insert must roll back with the failing function")
}

func TestTransactionCommits(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, RunMigrations(db))

	err := Transaction(db, func(tx *sql.Tx) error {
		_, execErr := tx.Exec("INSERT INTO extraction_jobs (id) VALUES ('j1')")
		return execErr
	})
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM extraction_jobs").Scan(&count))
	assert.Equal(t, 1, count)
}
