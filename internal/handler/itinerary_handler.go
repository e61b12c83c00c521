package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tripframe/itinerary-backend-go/internal/models"
	"github.com/tripframe/itinerary-backend-go/internal/sequencing"
	"github.com/tripframe/itinerary-backend-go/internal/service"
	"github.com/tripframe/itinerary-backend-go/pkg/response"
)

// ItineraryHandler handles HTTP requests for itineraries
type ItineraryHandler struct {
	service *service.ItineraryService
}

// NewItineraryHandler creates a new itinerary handler
func NewItineraryHandler(service *service.ItineraryService) *ItineraryHandler {
	return &ItineraryHandler{service: service}
}

// SequenceRequest is the POST /itineraries/sequence body
type SequenceRequest struct {
	Title       string                 `json:"title"`
	Constraints models.TripConstraints `json:"constraints" binding:"required"`
	Waypoints   []models.Waypoint      `json:"waypoints" binding:"required"`
}

// Sequence handles POST /api/v1/itineraries/sequence
func (h *ItineraryHandler) Sequence(c *gin.Context) {
	var req SequenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	it, err := h.service.Sequence(c.Request.Context(), req.Title, c.GetString("user_id"), req.Constraints, req.Waypoints)
	if err != nil {
		var infeasible *sequencing.InfeasibleError
		if errors.As(err, &infeasible) {
			c.JSON(http.StatusUnprocessableEntity, response.Response{
				Code:    http.StatusUnprocessableEntity,
				Message: "No feasible route within the trip window",
				Error:   infeasible.Error(),
				Data: gin.H{
					"blocking_stop": infeasible.StopName,
					"reason":        infeasible.Reason,
				},
			})
			return
		}
		response.Error(c, http.StatusBadRequest, "Failed to sequence itinerary", err)
		return
	}

	response.Success(c, it)
}

// GetItinerary handles GET /api/v1/itineraries/:id
func (h *ItineraryHandler) GetItinerary(c *gin.Context) {
	it, err := h.service.GetByID(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get itinerary", err)
		return
	}
	if it == nil {
		response.Error(c, http.StatusNotFound, "Itinerary not found", nil)
		return
	}

	response.Success(c, it)
}

// ListItineraries handles GET /api/v1/itineraries
func (h *ItineraryHandler) ListItineraries(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, total, err := h.service.List(c.GetString("user_id"), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list itineraries", err)
		return
	}

	response.Success(c, gin.H{
		"data":  items,
		"total": total,
	})
}

// DeleteItinerary handles DELETE /api/v1/itineraries/:id
func (h *ItineraryHandler) DeleteItinerary(c *gin.Context) {
	if err := h.service.Delete(c.Param("id")); err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to delete itinerary", err)
		return
	}
	response.Success(c, nil)
}

// GetLinks handles GET /api/v1/itineraries/:id/links
func (h *ItineraryHandler) GetLinks(c *gin.Context) {
	links, err := h.service.Links(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to build links", err)
		return
	}
	if links == nil {
		response.Error(c, http.StatusNotFound, "Itinerary not found", nil)
		return
	}

	response.Success(c, gin.H{"links": links})
}
