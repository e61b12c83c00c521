package models

import "time"

// ExtractionJob tracks an asynchronous batch extraction run: one job per
// uploaded image batch, fanned out image-by-image.
type ExtractionJob struct {
	ID string `json:"id" db:"id"`

	// Status
	Status          string `json:"status" db:"status"` // pending, running, completed, failed
	TotalImages     int    `json:"total_images" db:"total_images"`
	ProcessedImages int    `json:"processed_images" db:"processed_images"`
	FailedImages    int    `json:"failed_images" db:"failed_images"`

	// Results
	ResultJSON   string `json:"-" db:"result_json"` // serialized resolved candidates + diagnostics
	ErrorMessage string `json:"error_message,omitempty" db:"error_message"`

	// Metadata
	CreatedBy   string     `json:"created_by,omitempty" db:"created_by"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty" db:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
}

// JobStatus constants
const (
	JobStatusPending   = "pending"
	JobStatusRunning   = "running"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
)

// IsTerminal reports whether the job has finished, successfully or not.
func (j *ExtractionJob) IsTerminal() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusFailed
}

// ExtractionResult is the payload stored on a completed job.
type ExtractionResult struct {
	Candidates  []ResolvedCandidate `json:"candidates"`
	Merges      []MergeRecord       `json:"merges,omitempty"`
	Diagnostics []ImageDiagnostic   `json:"diagnostics,omitempty"`
}
