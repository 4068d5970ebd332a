package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/everlog-app/everlog-backend/internal/services"
)

type LocationReportRequest struct {
	Status string   `json:"status"` // "granted" or "denied"
	Lat    *float64 `json:"lat,omitempty"`
	Lng    *float64 `json:"lng,omitempty"`
}

type LocationStateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Status  string `json:"status,omitempty"`
	Place   string `json:"place,omitempty"`
}

type LocationRequestResponse struct {
	Success bool                     `json:"success"`
	Result  *services.LocationResult `json:"result,omitempty"`
	Message string                   `json:"message,omitempty"`
}

// RequestLocation runs one pass of the acquisition state machine. The
// call blocks until the shell has reported an authorization decision (or
// the request is canceled) and returns the terminal outcome.
func (h *Handlers) RequestLocation(w http.ResponseWriter, r *http.Request) {
	result := h.Location.Request(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(LocationRequestResponse{
		Success: result.Outcome == services.OutcomeGranted,
		Result:  &result,
	})
}

// ReportLocation is the device bridge: the mobile shell posts the
// platform permission outcome and, when granted, the GPS fix. Any request
// pending in RequestLocation wakes up.
func (h *Handlers) ReportLocation(w http.ResponseWriter, r *http.Request) {
	var req LocationReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(LocationStateResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	switch req.Status {
	case "granted", "denied":
	default:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(LocationStateResponse{
			Success: false,
			Message: "Status must be granted or denied",
		})
		return
	}

	var coord *services.Coordinate
	if req.Lat != nil && req.Lng != nil {
		coord = &services.Coordinate{Lat: *req.Lat, Lng: *req.Lng}
	}
	h.Bridge.Report(req.Status == "granted", coord)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(LocationStateResponse{
		Success: true,
		Message: "Location report accepted",
	})
}

// GetLocation returns the observable state machine status and the last
// resolved place string.
func (h *Handlers) GetLocation(w http.ResponseWriter, r *http.Request) {
	status, place := h.Location.Snapshot()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(LocationStateResponse{
		Success: true,
		Status:  string(status),
		Place:   place,
	})
}
