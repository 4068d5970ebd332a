package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/everlog-app/everlog-backend/internal/models"
	"github.com/everlog-app/everlog-backend/internal/services"
)

type EntryRequest struct {
	Title    string   `json:"title"`
	Location string   `json:"location"`
	Content  string   `json:"content"`
	Images   []string `json:"images"`
}

type EntryResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message,omitempty"`
	Entry   map[string]interface{} `json:"entry,omitempty"`
}

type ListEntriesResponse struct {
	Success bool                     `json:"success"`
	Message string                   `json:"message,omitempty"`
	Query   string                   `json:"query"`
	Sort    string                   `json:"sort"`
	Entries []map[string]interface{} `json:"entries"`
	Total   int                      `json:"total"`
}

// entryMap is the wire shape of one entry as the dashboard consumes it.
func entryMap(e models.Journal) map[string]interface{} {
	return map[string]interface{}{
		"id":           e.ID,
		"title":        e.Title,
		"location":     e.Location,
		"content":      e.Content,
		"images":       e.Images,
		"created_at":   e.CreatedAt,
		"updated_at":   e.UpdatedAt,
		"display_date": e.DisplayDate(),
	}
}

// ListEntries returns the full collection filtered by ?q= and ordered by
// ?sort=. Filter and sort are recomputed from a fresh load on every call.
func (h *Handlers) ListEntries(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	mode := services.ParseSortMode(r.URL.Query().Get("sort"))

	entries := services.FilterEntries(h.Entries.Load(), query)
	services.SortEntries(entries, mode)

	result := make([]map[string]interface{}, 0, len(entries))
	for _, e := range entries {
		result = append(result, entryMap(e))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListEntriesResponse{
		Success: true,
		Query:   query,
		Sort:    string(mode),
		Entries: result,
		Total:   len(result),
	})
}

// CreateEntry appends a new entry with a fresh id and timestamps.
func (h *Handlers) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(EntryResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	if req.Title == "" && req.Content == "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(EntryResponse{
			Success: false,
			Message: "Title or content is required",
		})
		return
	}

	now := time.Now()
	entry := models.Journal{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		Title:     req.Title,
		Location:  req.Location,
		Content:   req.Content,
		Images:    req.Images,
	}

	stored, err := h.Entries.Upsert(entry)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(EntryResponse{
			Success: false,
			Message: "Failed to save entry",
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(EntryResponse{
		Success: true,
		Message: "Entry created successfully",
		Entry:   entryMap(stored),
	})
}

// GetEntry returns one entry by id for the detail view.
func (h *Handlers) GetEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	entry, ok := h.Entries.Get(id)
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(EntryResponse{
			Success: false,
			Message: "Entry not found",
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(EntryResponse{
		Success: true,
		Entry:   entryMap(*entry),
	})
}

// UpdateEntry replaces an existing entry's content. The stored created_at
// is preserved and updated_at is refreshed by the store.
func (h *Handlers) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	existing, ok := h.Entries.Get(id)
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(EntryResponse{
			Success: false,
			Message: "Entry not found",
		})
		return
	}

	var req EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(EntryResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	if req.Title == "" && req.Content == "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(EntryResponse{
			Success: false,
			Message: "Title or content is required",
		})
		return
	}

	entry := models.Journal{
		ID:        id,
		CreatedAt: existing.CreatedAt,
		Title:     req.Title,
		Location:  req.Location,
		Content:   req.Content,
		Images:    req.Images,
	}

	stored, err := h.Entries.Upsert(entry)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(EntryResponse{
			Success: false,
			Message: "Failed to save entry",
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(EntryResponse{
		Success: true,
		Message: "Entry updated successfully",
		Entry:   entryMap(stored),
	})
}

// DeleteEntry removes an entry and cascade-deletes its locally stored
// image files. Remote image URLs are left alone.
func (h *Handlers) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	removed, err := h.Entries.DeleteByID(id)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(EntryResponse{
			Success: false,
			Message: "Failed to delete entry",
		})
		return
	}
	if removed == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(EntryResponse{
			Success: false,
			Message: "Entry not found",
		})
		return
	}

	h.Images.DeleteMany(removed.LocalImages())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(EntryResponse{
		Success: true,
		Message: "Entry deleted successfully",
	})
}
