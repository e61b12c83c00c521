package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripframe/itinerary-backend-go/internal/config"
	"github.com/tripframe/itinerary-backend-go/internal/handler"
	"github.com/tripframe/itinerary-backend-go/internal/middleware"
)

// Handlers groups the HTTP handlers wired into the router.
type Handlers struct {
	Extraction *handler.ExtractionHandler
	Itinerary  *handler.ItineraryHandler
}

// SetupRouter builds the gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, logger *slog.Logger, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(logger))

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Itinerary Backend API is running",
		})
	})

	// API route group
	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(cfg.RateLimit, cfg.RateWindow))
	api.Use(middleware.Auth(cfg.JWTSecret))
	{
		extractions := api.Group("/extractions")
		{
			extractions.POST("", h.Extraction.StartExtraction)
			extractions.GET("/:id", h.Extraction.GetExtraction)
		}

		api.POST("/resolve", h.Extraction.Resolve)

		itineraries := api.Group("/itineraries")
		{
			itineraries.POST("/sequence", h.Itinerary.Sequence)
			itineraries.GET("", h.Itinerary.ListItineraries)
			itineraries.GET("/:id", h.Itinerary.GetItinerary)
			itineraries.GET("/:id/links", h.Itinerary.GetLinks)
			itineraries.DELETE("/:id", h.Itinerary.DeleteItinerary)
		}
	}

	return r
}
