package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/everlog-app/everlog-backend/internal/handlers"
)

func SetupRoutes(r *chi.Mux, h *handlers.Handlers) {
	// Journal entry routes (dashboard list/search/sort, editor, detail)
	r.Get("/api/entries", h.ListEntries)
	r.Post("/api/entries", h.CreateEntry)
	r.Get("/api/entries/{id}", h.GetEntry)
	r.Put("/api/entries/{id}", h.UpdateEntry)
	r.Delete("/api/entries/{id}", h.DeleteEntry)

	// Image store routes
	r.Post("/api/images", h.UploadImage)
	r.Get("/api/images/{filename}", h.GetImage)
	r.Delete("/api/images/{filename}", h.DeleteImage)

	// Profile routes
	r.Get("/api/profile", h.GetProfile)
	r.Put("/api/profile", h.UpdateProfile)
	r.Post("/api/profile/image", h.UploadProfileImage)
	r.Get("/api/profile/image", h.GetProfileImage)
	r.Delete("/api/profile/image", h.DeleteProfileImage)

	// Location acquisition routes (device bridge + state machine)
	r.Post("/api/location/request", h.RequestLocation)
	r.Post("/api/location/report", h.ReportLocation)
	r.Get("/api/location", h.GetLocation)

	// Geocoding routes (map view pin placement)
	r.Get("/api/geocode/reverse", h.ReverseGeocode)
	r.Get("/api/geocode/forward", h.ForwardGeocode)

	// WebSocket endpoint for debounced live search
	r.Get("/ws/search", h.SearchSocket)
}
