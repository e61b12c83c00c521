package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"googlemaps.github.io/maps"

	"github.com/tripframe/itinerary-backend-go/internal/api"
	"github.com/tripframe/itinerary-backend-go/internal/config"
	"github.com/tripframe/itinerary-backend-go/internal/database"
	"github.com/tripframe/itinerary-backend-go/internal/extraction"
	"github.com/tripframe/itinerary-backend-go/internal/geocode"
	"github.com/tripframe/itinerary-backend-go/internal/handler"
	"github.com/tripframe/itinerary-backend-go/internal/repository"
	"github.com/tripframe/itinerary-backend-go/internal/resolution"
	"github.com/tripframe/itinerary-backend-go/internal/routing"
	"github.com/tripframe/itinerary-backend-go/internal/sequencing"
	"github.com/tripframe/itinerary-backend-go/internal/service"
	"github.com/tripframe/itinerary-backend-go/internal/vision"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	if err := database.RunMigrations(database.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	var (
		geocoder geocode.Geocoder
		matrix   routing.MatrixProvider = &routing.HaversineProvider{}
	)
	if cfg.GoogleMapsAPIKey != "" {
		mapsClient, err := maps.NewClient(maps.WithAPIKey(cfg.GoogleMapsAPIKey))
		if err != nil {
			log.Fatal("Failed to create maps client:", err)
		}
		geocoder = geocode.NewGoogleGeocoder(mapsClient, cfg.CacheTTL, logger)
		matrix = routing.NewGoogleMatrixProvider(mapsClient, cfg.CacheTTL, logger)
	} else {
		log.Println("GOOGLE_MAPS_API_KEY not set, geocoding disabled and distances estimated straight-line")
	}

	var visionSource extraction.VisionSource
	switch {
	case cfg.UseMockVision:
		visionSource = &vision.StaticSource{}
	case cfg.GeminiAPIKey != "":
		source, err := vision.NewGeminiSource(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, logger)
		if err != nil {
			log.Fatal("Failed to create vision source:", err)
		}
		visionSource = source
	default:
		log.Println("GEMINI_API_KEY not set, vision identification disabled")
	}

	resolver := resolution.NewResolver(resolution.Config{
		SimilarityThreshold:  cfg.SimilarityThreshold,
		GeoMergeRadiusMeters: cfg.GeoMergeRadiusMeters,
		ConfidenceFloor:      cfg.ConfidenceFloor,
		DuplicateBoost:       cfg.DuplicateBoost,
	})
	sequencer := sequencing.NewSequencer(sequencing.Config{
		SolverBudget:   cfg.SolverBudget,
		MaxSolverStops: cfg.MaxSolverStops,
	})

	jobRepo := repository.NewExtractionJobRepository(database.GetDB())
	itineraryRepo := repository.NewItineraryRepository(database.GetDB())

	extractionService := service.NewExtractionService(visionSource, resolver, geocoder, jobRepo)
	itineraryService := service.NewItineraryService(matrix, sequencer, itineraryRepo)

	router := api.SetupRouter(cfg, logger, api.Handlers{
		Extraction: handler.NewExtractionHandler(extractionService),
		Itinerary:  handler.NewItineraryHandler(itineraryService),
	})

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
