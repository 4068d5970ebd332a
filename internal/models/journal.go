package models

import (
	"strings"
	"time"
)

// Journal represents a single journal entry: free text plus an optional
// photo set and place string. ID is generated once at creation and is the
// sole join key between the record and its files in the image store.
type Journal struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Title     string    `json:"title,omitempty"`
	Location  string    `json:"location,omitempty"`
	Content   string    `json:"content,omitempty"`
	Images    []string  `json:"images,omitempty"`
}

// DisplayDate is the human-readable creation date shown on the dashboard.
func (j Journal) DisplayDate() string {
	return j.CreatedAt.Format("Jan 2, 2006")
}

// LocalImages returns the entry's image references that live in the local
// image store. Remote URLs are never touched by cascade deletion.
func (j Journal) LocalImages() []string {
	var local []string
	for _, ref := range j.Images {
		if !IsRemoteImage(ref) {
			local = append(local, ref)
		}
	}
	return local
}

// IsRemoteImage reports whether an image reference points outside the
// local image store.
func IsRemoteImage(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}
