package main

import (
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/everlog-app/everlog-backend/internal/config"
	"github.com/everlog-app/everlog-backend/internal/handlers"
	"github.com/everlog-app/everlog-backend/internal/middleware"
	"github.com/everlog-app/everlog-backend/internal/routes"
	"github.com/everlog-app/everlog-backend/internal/services"
	"github.com/everlog-app/everlog-backend/internal/storage"
)

func main() {
	// Load env
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found")
	}
	// Load configuration
	cfg := config.Load()

	// Open local stores
	journalStore := storage.NewJournalStore(cfg.JournalFile)
	imageStore := storage.NewImageStore(cfg.ImagesDir)
	log.Printf("✅ Journal store: %s", cfg.JournalFile)
	log.Printf("✅ Image store: %s", cfg.ImagesDir)

	profileStore, err := storage.NewProfileStore(cfg.ProfileDB)
	if err != nil {
		log.Fatal("Failed to open profile store:", err)
	}
	defer profileStore.Close()
	log.Printf("✅ Profile store: %s", cfg.ProfileDB)

	// Geocoder + location acquisition
	geocoder := services.NewNominatimClient(cfg.GeocoderBaseURL)
	bridge := services.NewDeviceBridge()
	locationService := services.NewLocationService(bridge, geocoder)

	// Optional GPS seed for headless runs without a device bridge
	if cfg.SeedLat != "" && cfg.SeedLng != "" {
		lat, latErr := strconv.ParseFloat(cfg.SeedLat, 64)
		lng, lngErr := strconv.ParseFloat(cfg.SeedLng, 64)
		if latErr != nil || lngErr != nil {
			log.Println("⚠️  WARNING: LOCATION_LAT/LOCATION_LNG are not valid numbers; seed ignored")
		} else {
			bridge.Report(true, &services.Coordinate{Lat: lat, Lng: lng})
			log.Printf("✅ Location bridge seeded from env (%s, %s)", cfg.SeedLat, cfg.SeedLng)
		}
	}

	h := &handlers.Handlers{
		Entries:        journalStore,
		Images:         imageStore,
		Profile:        profileStore,
		Location:       locationService,
		Bridge:         bridge,
		Geocoder:       geocoder,
		SearchDebounce: cfg.SearchDebounce,
	}

	// Setup router
	r := chi.NewRouter()

	// CORS: the app shell and a browser dev UI both reach the backend
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Production: security headers + per-IP rate limiting
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity() {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, per-IP rate limiting)")
	}

	// Health check (no rate limit)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Setup routes
	routes.SetupRoutes(r, h)

	// Log registered routes for debugging
	log.Println("📋 Registered routes:")
	log.Println("  GET  /health")
	log.Println("  GET  /api/entries")
	log.Println("  POST /api/entries")
	log.Println("  GET  /api/entries/{id}")
	log.Println("  PUT  /api/entries/{id}")
	log.Println("  DELETE /api/entries/{id}")
	log.Println("  POST /api/images")
	log.Println("  GET  /api/images/{filename}")
	log.Println("  DELETE /api/images/{filename}")
	log.Println("  GET  /api/profile")
	log.Println("  PUT  /api/profile")
	log.Println("  POST /api/profile/image")
	log.Println("  GET  /api/profile/image")
	log.Println("  DELETE /api/profile/image")
	log.Println("  POST /api/location/request")
	log.Println("  POST /api/location/report")
	log.Println("  GET  /api/location")
	log.Println("  GET  /api/geocode/reverse")
	log.Println("  GET  /api/geocode/forward")
	log.Println("  GET  /ws/search")

	log.Printf("🚀 Everlog backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
