package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port            string
	Environment     string        // ENV: production, development, etc.
	AllowedOrigins  []string      // CORS: from ALLOWED_ORIGINS or FRONTEND_URL(s)
	DataDir         string        // Root directory for all local state
	JournalFile     string        // Flat JSON document holding the entry collection
	ImagesDir       string        // Flat directory of stored photos
	ProfileDB       string        // Embedded key-value store for the profile record
	SearchDebounce  time.Duration // Idle delay before a live search runs
	GeocoderBaseURL string
	SeedLat         string // Optional GPS seed for headless runs (no device bridge)
	SeedLng         string
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))
	dataDir := getEnv("DATA_DIR", "data")

	// CORS: allow multiple origins so the app shell and a browser dev UI
	// can both reach the backend.
	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		for _, u := range []string{getEnv("FRONTEND_URL", "http://localhost:3000"), getEnv("FRONTEND_URL_2", "")} {
			u = strings.TrimSpace(u)
			if u != "" {
				allowedOrigins = append(allowedOrigins, u)
			}
		}
	}
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}

	debounce := 300 * time.Millisecond
	if ms, err := strconv.Atoi(getEnv("SEARCH_DEBOUNCE_MS", "")); err == nil && ms > 0 {
		debounce = time.Duration(ms) * time.Millisecond
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     env,
		AllowedOrigins:  allowedOrigins,
		DataDir:         dataDir,
		JournalFile:     getEnv("JOURNAL_FILE", filepath.Join(dataDir, "journal.json")),
		ImagesDir:       getEnv("IMAGES_DIR", filepath.Join(dataDir, "images")),
		ProfileDB:       getEnv("PROFILE_DB", filepath.Join(dataDir, "profile.db")),
		SearchDebounce:  debounce,
		GeocoderBaseURL: getEnv("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org"),
		SeedLat:         getEnv("LOCATION_LAT", ""),
		SeedLng:         getEnv("LOCATION_LNG", ""),
	}
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
