package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/everlog-app/everlog-backend/internal/services"
)

type ReverseGeocodeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Place   string `json:"place,omitempty"`
}

type ForwardGeocodeResponse struct {
	Success    bool                 `json:"success"`
	Message    string               `json:"message,omitempty"`
	Coordinate *services.Coordinate `json:"coordinate,omitempty"`
}

// ReverseGeocode maps ?lat=&lng= to a formatted place string.
func (h *Handlers) ReverseGeocode(w http.ResponseWriter, r *http.Request) {
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if latErr != nil || lngErr != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ReverseGeocodeResponse{
			Success: false,
			Message: "lat and lng are required",
		})
		return
	}

	place, err := h.Geocoder.Reverse(r.Context(), services.Coordinate{Lat: lat, Lng: lng})
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(ReverseGeocodeResponse{
			Success: false,
			Message: "Could not resolve a place name",
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ReverseGeocodeResponse{
		Success: true,
		Place:   services.FormatPlace(place),
	})
}

// ForwardGeocode maps a free-text place name to a coordinate for the map
// view's pin.
func (h *Handlers) ForwardGeocode(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ForwardGeocodeResponse{
			Success: false,
			Message: "q is required",
		})
		return
	}

	coord, err := h.Geocoder.Forward(r.Context(), query)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(ForwardGeocodeResponse{
			Success: false,
			Message: "Could not locate that place",
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ForwardGeocodeResponse{
		Success:    true,
		Coordinate: &coord,
	})
}
