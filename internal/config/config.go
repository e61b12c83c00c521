package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string

	// External collaborators
	GoogleMapsAPIKey string
	GeminiAPIKey     string
	GeminiModel      string
	UseMockVision    bool
	CacheTTL         time.Duration

	// Resolver thresholds
	SimilarityThreshold  float64
	GeoMergeRadiusMeters float64
	ConfidenceFloor      float64
	DuplicateBoost       float64

	// Sequencer bounds
	SolverBudget   time.Duration
	MaxSolverStops int

	// API rate limiting
	RateLimit  int
	RateWindow time.Duration
}

// Load reads configuration from the environment, with .env as a fallback for
// local development. Unparseable values fall back to the documented defaults
// rather than zero, so a typo cannot silently disable a threshold.
func Load() *Config {
	envFile, _ := godotenv.Read(".env")
	get := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		if v := envFile[key]; v != "" {
			return v
		}
		return fallback
	}
	getFloat := func(key string, fallback float64) float64 {
		if v := get(key, ""); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
			log.Printf("Invalid %s=%q, using default %v", key, v, fallback)
		}
		return fallback
	}
	getInt := func(key string, fallback int) int {
		if v := get(key, ""); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Printf("Invalid %s=%q, using default %d", key, v, fallback)
		}
		return fallback
	}
	getDuration := func(key string, fallback time.Duration) time.Duration {
		if v := get(key, ""); v != "" {
			if d, err := time.ParseDuration(v); err == nil {
				return d
			}
			log.Printf("Invalid %s=%q, using default %s", key, v, fallback)
		}
		return fallback
	}

	return &Config{
		Port:      get("PORT", ":8080"),
		DBPath:    get("DB_PATH", "./data/itineraries.db"),
		JWTSecret: get("JWT_SECRET", "change-me-in-production"),

		GoogleMapsAPIKey: get("GOOGLE_MAPS_API_KEY", ""),
		GeminiAPIKey:     get("GEMINI_API_KEY", ""),
		GeminiModel:      get("GEMINI_MODEL", "gemini-2.5-flash-lite"),
		UseMockVision:    get("USE_MOCK_VISION", "false") == "true",
		CacheTTL:         getDuration("CACHE_TTL", 720*time.Hour),

		SimilarityThreshold:  getFloat("SIMILARITY_THRESHOLD", 0.85),
		GeoMergeRadiusMeters: getFloat("GEO_MERGE_RADIUS_METERS", 50),
		ConfidenceFloor:      getFloat("CONFIDENCE_FLOOR", 0.50),
		DuplicateBoost:       getFloat("DUPLICATE_BOOST", 0.10),

		SolverBudget:   getDuration("SOLVER_BUDGET", 2*time.Second),
		MaxSolverStops: getInt("MAX_SOLVER_STOPS", 12),

		RateLimit:  getInt("RATE_LIMIT", 120),
		RateWindow: getDuration("RATE_WINDOW", time.Minute),
	}
}
