package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/tripframe/itinerary-backend-go/internal/extraction"
	"github.com/tripframe/itinerary-backend-go/internal/geocode"
	"github.com/tripframe/itinerary-backend-go/internal/models"
	"github.com/tripframe/itinerary-backend-go/internal/repository"
	"github.com/tripframe/itinerary-backend-go/internal/resolution"
)

// ImageInput is one image's extraction input: recognized text regions from
// the OCR collaborator plus either precomputed vision findings or raw bytes
// for the configured vision source.
type ImageInput struct {
	Index     int                    `json:"index"`
	Regions   []models.TextRegion    `json:"regions"`
	Findings  []models.VisionFinding `json:"findings,omitempty"`
	ImageData []byte                 `json:"image_data,omitempty"`
}

// ExtractionService orchestrates batch extraction: per-image fan-out, one
// resolution pass over the merged candidate list, optional geocoding.
type ExtractionService struct {
	extractor *extraction.Extractor
	vision    extraction.VisionSource // nil when no vision backend is configured
	resolver  *resolution.Resolver
	geocoder  geocode.Geocoder // nil when no geocoding backend is configured
	repo      *repository.ExtractionJobRepository
}

// NewExtractionService creates an extraction service. vision and geocoder
// may be nil; the pipeline then runs on text regions alone, ungeocoded.
func NewExtractionService(vision extraction.VisionSource, resolver *resolution.Resolver, geocoder geocode.Geocoder, repo *repository.ExtractionJobRepository) *ExtractionService {
	return &ExtractionService{
		extractor: extraction.NewExtractor(),
		vision:    vision,
		resolver:  resolver,
		geocoder:  geocoder,
		repo:      repo,
	}
}

// ExtractBatch extracts every image in parallel, then resolves the full
// merged candidate list once. Resolution must not run on partial batches:
// cross-image duplicate detection needs the complete set. An all-filtered
// batch is not an error; the diagnostics tell the caller why it is empty.
func (s *ExtractionService) ExtractBatch(ctx context.Context, images []ImageInput, locality string) (*models.ExtractionResult, error) {
	perImage := make([][]models.Candidate, len(images))
	diagnostics := make([]*models.ImageDiagnostic, len(images))

	var wg sync.WaitGroup
	for i := range images {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			perImage[i], diagnostics[i] = s.extractImage(ctx, images[i])
		}(i)
	}
	wg.Wait()

	var candidates []models.Candidate
	result := &models.ExtractionResult{}
	for i := range images {
		candidates = append(candidates, perImage[i]...)
		if diagnostics[i] != nil {
			result.Diagnostics = append(result.Diagnostics, *diagnostics[i])
		}
	}
	sort.Slice(result.Diagnostics, func(a, b int) bool {
		return result.Diagnostics[a].ImageIndex < result.Diagnostics[b].ImageIndex
	})

	result.Candidates, result.Merges = s.resolver.Resolve(candidates)

	if s.geocoder != nil && len(result.Candidates) > 0 {
		result.Candidates = geocode.Enrich(ctx, s.geocoder, result.Candidates, locality)
	}

	return result, nil
}

// Resolve runs the resolver alone, for callers that already hold candidates.
func (s *ExtractionService) Resolve(candidates []models.Candidate) *models.ExtractionResult {
	resolved, merges := s.resolver.Resolve(candidates)
	return &models.ExtractionResult{Candidates: resolved, Merges: merges}
}

// extractImage handles one image: vision inference (when configured and the
// request carried raw bytes instead of findings) followed by pattern
// extraction. Vision failures degrade to text-only extraction.
func (s *ExtractionService) extractImage(ctx context.Context, input ImageInput) ([]models.Candidate, *models.ImageDiagnostic) {
	findings := input.Findings
	if len(findings) == 0 && len(input.ImageData) > 0 && s.vision != nil {
		identified, err := s.vision.Identify(ctx, input.ImageData)
		if err != nil {
			log.Printf("Vision identification failed for image %d: %v", input.Index, err)
		} else {
			findings = identified
		}
	}

	return s.extractor.ExtractImage(input.Index, input.Regions, findings)
}

// StartJob creates a pending extraction job and runs the batch in the
// background. The caller polls GetJob for progress and results.
func (s *ExtractionService) StartJob(createdBy, locality string, images []ImageInput) (*models.ExtractionJob, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("no images in batch")
	}

	job := &models.ExtractionJob{
		ID:          uuid.NewString(),
		Status:      models.JobStatusPending,
		TotalImages: len(images),
		CreatedBy:   createdBy,
	}
	if err := s.repo.Create(job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	go s.runJob(job.ID, locality, images)

	return job, nil
}

// runJob executes a batch job to completion. It runs detached from the
// request: once started, the job finishes or fails on its own.
func (s *ExtractionService) runJob(jobID, locality string, images []ImageInput) {
	if err := s.repo.MarkAsRunning(jobID); err != nil {
		log.Printf("Failed to mark job %s running: %v", jobID, err)
		return
	}

	ctx := context.Background()
	result, err := s.ExtractBatch(ctx, images, locality)
	if err != nil {
		log.Printf("Extraction job %s failed: %v", jobID, err)
		s.repo.MarkAsFailed(jobID, err.Error())
		return
	}

	if err := s.repo.UpdateProgress(jobID, len(images), len(result.Diagnostics)); err != nil {
		log.Printf("Failed to update job %s progress: %v", jobID, err)
	}

	payload, err := json.Marshal(result)
	if err != nil {
		s.repo.MarkAsFailed(jobID, fmt.Sprintf("failed to encode result: %v", err))
		return
	}
	if err := s.repo.MarkAsCompleted(jobID, string(payload)); err != nil {
		log.Printf("Failed to complete job %s: %v", jobID, err)
	}
}

// GetJob retrieves a job by ID
func (s *ExtractionService) GetJob(id string) (*models.ExtractionJob, error) {
	return s.repo.GetByID(id)
}

// JobResult decodes a completed job's result payload.
func (s *ExtractionService) JobResult(job *models.ExtractionJob) (*models.ExtractionResult, error) {
	if job.Status != models.JobStatusCompleted {
		return nil, fmt.Errorf("job %s is not completed (status: %s)", job.ID, job.Status)
	}
	var result models.ExtractionResult
	if err := json.Unmarshal([]byte(job.ResultJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to decode job result: %w", err)
	}
	return &result, nil
}
