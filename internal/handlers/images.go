package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/everlog-app/everlog-backend/internal/storage"
	"github.com/everlog-app/everlog-backend/pkg/utils"
)

type UploadResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	Filename string `json:"filename,omitempty"`
	URL      string `json:"url,omitempty"`
}

// UploadImage stores a photo from a multipart form and returns the
// generated filename the entry record should reference.
func (h *Handlers) UploadImage(w http.ResponseWriter, r *http.Request) {
	// Parse multipart form (max 10MB)
	err := r.ParseMultipartForm(10 << 20)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(UploadResponse{
			Success: false,
			Message: "Failed to parse form",
		})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(UploadResponse{
			Success: false,
			Message: "No file provided",
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(UploadResponse{
			Success: false,
			Message: "Failed to read file",
		})
		return
	}

	filename, err := h.Images.Save(data, header.Filename)
	if err != nil {
		status := http.StatusInternalServerError
		message := "Failed to store image"
		if errors.Is(err, storage.ErrUnsupportedImage) {
			status = http.StatusBadRequest
			message = "File is not a supported image"
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(UploadResponse{
			Success: false,
			Message: message,
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(UploadResponse{
		Success:  true,
		Message:  "Image stored successfully",
		Filename: filename,
		URL:      "/api/images/" + filename,
	})
}

// GetImage serves stored image bytes. A missing file is a plain 404; the
// shell shows its placeholder.
func (h *Handlers) GetImage(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	data, err := h.Images.Load(filename)
	if err != nil {
		http.Error(w, "image not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", utils.ImageMIME(data))
	w.Write(data)
}

// DeleteImage removes a stored image, best-effort. Always reports
// success; a file that is already gone is not an error.
func (h *Handlers) DeleteImage(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	h.Images.Delete(filename)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(UploadResponse{
		Success: true,
		Message: "Image deleted",
	})
}
