package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/everlog-app/everlog-backend/internal/models"
)

const profileKey = "profile"

// ProfileStore keeps the singleton profile record as a JSON value in an
// embedded SQLite key-value table, mirroring the platform settings store
// the record originally lived in.
type ProfileStore struct {
	db *sql.DB
}

func NewProfileStore(path string) (*ProfileStore, error) {
	os.MkdirAll(filepath.Dir(path), 0o755)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open profile database: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init profile database: %w", err)
	}
	return &ProfileStore{db: db}, nil
}

// Get returns the stored profile. A missing row or an undecodable value
// yields a zero profile.
func (s *ProfileStore) Get(ctx context.Context) models.ProfileInfo {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, profileKey).Scan(&raw)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Printf("Warning: could not read profile: %v", err)
		}
		return models.ProfileInfo{}
	}

	var p models.ProfileInfo
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		log.Printf("Warning: invalid profile JSON: %v", err)
		return models.ProfileInfo{}
	}
	return p
}

// Save upserts the profile record.
func (s *ProfileStore) Save(ctx context.Context, p models.ProfileInfo) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, profileKey, string(raw))
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

func (s *ProfileStore) Close() error {
	return s.db.Close()
}
