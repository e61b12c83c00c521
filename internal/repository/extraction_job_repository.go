package repository

import (
	"database/sql"
	"fmt"

	"github.com/tripframe/itinerary-backend-go/internal/models"
)

// ExtractionJobRepository handles database operations for extraction jobs
type ExtractionJobRepository struct {
	db *sql.DB
}

// NewExtractionJobRepository creates a new extraction job repository
func NewExtractionJobRepository(db *sql.DB) *ExtractionJobRepository {
	return &ExtractionJobRepository{db: db}
}

// Create inserts a new job record
func (r *ExtractionJobRepository) Create(job *models.ExtractionJob) error {
	_, err := r.db.Exec(`
		INSERT INTO extraction_jobs (id, status, total_images, processed_images, failed_images, created_by)
		VALUES (?, ?, ?, ?, ?, ?)`,
		job.ID, job.Status, job.TotalImages, job.ProcessedImages, job.FailedImages, job.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to create extraction job: %w", err)
	}
	return nil
}

// GetByID retrieves a job by ID
func (r *ExtractionJobRepository) GetByID(id string) (*models.ExtractionJob, error) {
	var job models.ExtractionJob
	var startedAt, completedAt sql.NullTime

	err := r.db.QueryRow(`
		SELECT id, status, total_images, processed_images, failed_images,
			result_json, error_message, created_by, created_at, started_at, completed_at
		FROM extraction_jobs WHERE id = ?`, id).Scan(
		&job.ID, &job.Status, &job.TotalImages, &job.ProcessedImages, &job.FailedImages,
		&job.ResultJSON, &job.ErrorMessage, &job.CreatedBy, &job.CreatedAt, &startedAt, &completedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get extraction job: %w", err)
	}

	if startedAt.Valid {
		job.StartedAt = &startedAt.Time
	}
	if completedAt.Valid {
		job.CompletedAt = &completedAt.Time
	}
	return &job, nil
}

// MarkAsRunning marks a job as running
func (r *ExtractionJobRepository) MarkAsRunning(id string) error {
	_, err := r.db.Exec(`
		UPDATE extraction_jobs
		SET status = 'running', started_at = CURRENT_TIMESTAMP
		WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to mark job as running: %w", err)
	}
	return nil
}

// UpdateProgress updates the per-image counters of a running job
func (r *ExtractionJobRepository) UpdateProgress(id string, processed, failed int) error {
	_, err := r.db.Exec(`
		UPDATE extraction_jobs
		SET processed_images = ?, failed_images = ?
		WHERE id = ?`, processed, failed, id)
	if err != nil {
		return fmt.Errorf("failed to update job progress: %w", err)
	}
	return nil
}

// MarkAsCompleted stores the result payload and completes the job
func (r *ExtractionJobRepository) MarkAsCompleted(id string, resultJSON string) error {
	_, err := r.db.Exec(`
		UPDATE extraction_jobs
		SET status = 'completed', result_json = ?, completed_at = CURRENT_TIMESTAMP
		WHERE id = ?`, resultJSON, id)
	if err != nil {
		return fmt.Errorf("failed to mark job as completed: %w", err)
	}
	return nil
}

// MarkAsFailed records the failure reason and completes the job
func (r *ExtractionJobRepository) MarkAsFailed(id string, errorMsg string) error {
	_, err := r.db.Exec(`
		UPDATE extraction_jobs
		SET status = 'failed', error_message = ?, completed_at = CURRENT_TIMESTAMP
		WHERE id = ?`, errorMsg, id)
	if err != nil {
		return fmt.Errorf("failed to mark job as failed: %w", err)
	}
	return nil
}
