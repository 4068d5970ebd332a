package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/everlog-app/everlog-backend/internal/models"
	"github.com/everlog-app/everlog-backend/pkg/utils"
)

type ProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Bio   string `json:"bio"`
}

type ProfileResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message,omitempty"`
	Profile map[string]interface{} `json:"profile,omitempty"`
}

func profileMap(p models.ProfileInfo) map[string]interface{} {
	m := map[string]interface{}{
		"name":  p.Name,
		"email": p.Email,
		"bio":   p.Bio,
	}
	if p.ImageFilename != "" {
		m["image_filename"] = p.ImageFilename
		m["image_url"] = "/api/profile/image"
	}
	return m
}

// GetProfile returns the singleton profile record, zero-valued when none
// has been saved yet.
func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	p := h.Profile.Get(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ProfileResponse{
		Success: true,
		Profile: profileMap(p),
	})
}

// UpdateProfile saves name, email and bio. The image reference is managed
// by the dedicated image endpoints and is left untouched here.
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ProfileResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	p := h.Profile.Get(r.Context())
	p.Name = req.Name
	p.Email = req.Email
	p.Bio = req.Bio

	if err := h.Profile.Save(r.Context(), p); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(ProfileResponse{
			Success: false,
			Message: "Failed to save profile",
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ProfileResponse{
		Success: true,
		Message: "Profile saved successfully",
		Profile: profileMap(p),
	})
}

// UploadProfileImage replaces the profile photo. The new file is written
// and the record persisted before the previous file is deleted, so the
// record never points at a missing file.
func (h *Handlers) UploadProfileImage(w http.ResponseWriter, r *http.Request) {
	err := r.ParseMultipartForm(10 << 20)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ProfileResponse{
			Success: false,
			Message: "Failed to parse form",
		})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ProfileResponse{
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
		json.NewEncoder(w).Encode(ProfileResponse{
			Success: false,
			Message: "Failed to read file",
		})
		return
	}

	filename, err := h.Images.Save(data, header.Filename)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ProfileResponse{
			Success: false,
			Message: "File is not a supported image",
		})
		return
	}

	p := h.Profile.Get(r.Context())
	previous := p.ImageFilename
	p.ImageFilename = filename

	if err := h.Profile.Save(r.Context(), p); err != nil {
		h.Images.Delete(filename)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(ProfileResponse{
			Success: false,
			Message: "Failed to save profile",
		})
		return
	}

	if previous != "" && previous != filename {
		h.Images.Delete(previous)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(ProfileResponse{
		Success: true,
		Message: "Profile image updated",
		Profile: profileMap(p),
	})
}

// GetProfileImage serves the profile photo bytes or 404 when unset or
// missing on disk.
func (h *Handlers) GetProfileImage(w http.ResponseWriter, r *http.Request) {
	p := h.Profile.Get(r.Context())
	if p.ImageFilename == "" {
		http.Error(w, "no profile image", http.StatusNotFound)
		return
	}

	data, err := h.Images.Load(p.ImageFilename)
	if err != nil {
		http.Error(w, "image not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", utils.ImageMIME(data))
	w.Write(data)
}

// DeleteProfileImage removes the profile photo file and clears the record
// reference.
func (h *Handlers) DeleteProfileImage(w http.ResponseWriter, r *http.Request) {
	p := h.Profile.Get(r.Context())
	if p.ImageFilename != "" {
		h.Images.Delete(p.ImageFilename)
		p.ImageFilename = ""
		if err := h.Profile.Save(r.Context(), p); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ProfileResponse{
				Success: false,
				Message: "Failed to save profile",
			})
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ProfileResponse{
		Success: true,
		Message: "Profile image removed",
	})
}
