package storage

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/everlog-app/everlog-backend/internal/models"
)

// JournalStore persists the full entry collection as one JSON document.
// Every mutation is a whole-file read-modify-write; the mutex keeps those
// cycles from interleaving within the process.
type JournalStore struct {
	path string
	mu   sync.RWMutex
}

func NewJournalStore(path string) *JournalStore {
	os.MkdirAll(filepath.Dir(path), 0o755)
	return &JournalStore{path: path}
}

// Load returns the full ordered collection. A missing file or invalid
// JSON yields an empty collection — the file is treated as a best-effort
// local cache.
func (s *JournalStore) Load() []models.Journal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read()
}

// Save overwrites the collection file with the given entries.
func (s *JournalStore) Save(entries []models.Journal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(entries)
}

// Get returns the entry with the given id, or false when absent.
func (s *JournalStore) Get(id string) (*models.Journal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.read() {
		if e.ID == id {
			entry := e
			return &entry, true
		}
	}
	return nil, false
}

// Upsert replaces the entry with a matching id or appends a new one at
// the tail. The stored created_at survives replacement; updated_at is
// refreshed. Returns the record as persisted.
func (s *JournalStore) Upsert(entry models.Journal) (models.Journal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.read()
	now := time.Now()
	entry.UpdatedAt = now

	replaced := false
	for i, e := range entries {
		if e.ID == entry.ID {
			if !e.CreatedAt.IsZero() {
				entry.CreatedAt = e.CreatedAt
			}
			entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		if entry.CreatedAt.IsZero() {
			entry.CreatedAt = now
		}
		entries = append(entries, entry)
	}

	if err := s.write(entries); err != nil {
		return models.Journal{}, err
	}
	return entry, nil
}

// DeleteByID removes the matching entry and returns it so callers can
// cascade-delete its image files. Returns nil when no entry matches.
func (s *JournalStore) DeleteByID(id string) (*models.Journal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.read()
	var removed *models.Journal
	kept := make([]models.Journal, 0, len(entries))
	for _, e := range entries {
		if e.ID == id {
			if removed == nil {
				entry := e
				removed = &entry
			}
			continue
		}
		kept = append(kept, e)
	}
	if removed == nil {
		return nil, nil
	}
	if err := s.write(kept); err != nil {
		return nil, err
	}
	return removed, nil
}

func (s *JournalStore) read() []models.Journal {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: could not read journal file: %v", err)
		}
		return []models.Journal{}
	}
	var entries []models.Journal
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Printf("Warning: invalid journal JSON, starting empty: %v", err)
		return []models.Journal{}
	}
	return entries
}

func (s *JournalStore) write(entries []models.Journal) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
