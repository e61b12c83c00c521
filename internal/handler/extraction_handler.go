package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripframe/itinerary-backend-go/internal/models"
	"github.com/tripframe/itinerary-backend-go/internal/service"
	"github.com/tripframe/itinerary-backend-go/pkg/response"
)

// ExtractionHandler handles HTTP requests for extraction jobs
type ExtractionHandler struct {
	service *service.ExtractionService
}

// NewExtractionHandler creates a new extraction handler
func NewExtractionHandler(service *service.ExtractionService) *ExtractionHandler {
	return &ExtractionHandler{service: service}
}

// StartExtractionRequest is the POST /extractions body
type StartExtractionRequest struct {
	Locality string               `json:"locality"`
	Images   []service.ImageInput `json:"images" binding:"required"`
}

// StartExtraction handles POST /api/v1/extractions
func (h *ExtractionHandler) StartExtraction(c *gin.Context) {
	var req StartExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	job, err := h.service.StartJob(c.GetString("user_id"), req.Locality, req.Images)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Failed to start extraction", err)
		return
	}

	c.JSON(http.StatusAccepted, response.Response{Code: 0, Message: "accepted", Data: job})
}

// GetExtraction handles GET /api/v1/extractions/:id
func (h *ExtractionHandler) GetExtraction(c *gin.Context) {
	job, err := h.service.GetJob(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get extraction job", err)
		return
	}
	if job == nil {
		response.Error(c, http.StatusNotFound, "Extraction job not found", nil)
		return
	}

	payload := gin.H{"job": job}
	if job.Status == models.JobStatusCompleted {
		result, err := h.service.JobResult(job)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to decode job result", err)
			return
		}
		payload["result"] = result
		if len(result.Candidates) == 0 {
			// All candidates fell below the confidence floor; the per-image
			// diagnostics explain why.
			payload["message"] = "no locations found"
		}
	}

	response.Success(c, payload)
}

// ResolveRequest is the POST /resolve body
type ResolveRequest struct {
	Candidates []models.Candidate `json:"candidates" binding:"required"`
}

// Resolve handles POST /api/v1/resolve, the synchronous path for callers
// that already hold extracted candidates.
func (h *ExtractionHandler) Resolve(c *gin.Context) {
	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	response.Success(c, h.service.Resolve(req.Candidates))
}
