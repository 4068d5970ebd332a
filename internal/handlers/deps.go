package handlers

import (
	"context"
	"time"

	"github.com/everlog-app/everlog-backend/internal/models"
	"github.com/everlog-app/everlog-backend/internal/services"
)

// EntryStore is the journal collection surface the handlers depend on.
// *storage.JournalStore implements it.
type EntryStore interface {
	Load() []models.Journal
	Get(id string) (*models.Journal, bool)
	Upsert(entry models.Journal) (models.Journal, error)
	DeleteByID(id string) (*models.Journal, error)
}

// ImageStore is the photo persistence surface. *storage.ImageStore
// implements it.
type ImageStore interface {
	Save(data []byte, originalName string) (string, error)
	Load(name string) ([]byte, error)
	Delete(name string)
	DeleteMany(names []string)
}

// ProfileStore is the profile record surface. *storage.ProfileStore
// implements it.
type ProfileStore interface {
	Get(ctx context.Context) models.ProfileInfo
	Save(ctx context.Context, p models.ProfileInfo) error
}

// Handlers carries the injected stores and services for every route.
type Handlers struct {
	Entries  EntryStore
	Images   ImageStore
	Profile  ProfileStore
	Location *services.LocationService
	Bridge   *services.DeviceBridge
	Geocoder services.Geocoder

	// SearchDebounce is the idle delay before a live search runs.
	SearchDebounce time.Duration
}
