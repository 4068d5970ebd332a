package storage

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/everlog-app/everlog-backend/pkg/utils"
)

// ErrUnsupportedImage is returned by Save for payloads that are not a
// recognizable image format.
var ErrUnsupportedImage = errors.New("unsupported image type")

// ImageStore writes journal photos into a flat directory under generated
// names. Entry records reference the files by filename only.
type ImageStore struct {
	dir string
}

func NewImageStore(dir string) *ImageStore {
	os.MkdirAll(dir, 0o755)
	return &ImageStore{dir: dir}
}

// Save writes the image bytes under a fresh unique filename and returns
// the name. Non-image payloads are rejected.
func (s *ImageStore) Save(data []byte, originalName string) (string, error) {
	if len(data) == 0 {
		return "", ErrUnsupportedImage
	}
	ext, ok := utils.ImageExt(data, originalName)
	if !ok {
		return "", ErrUnsupportedImage
	}
	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return name, nil
}

// Load returns the stored image bytes. Missing or unreadable files are an
// error; callers fall back to a placeholder.
func (s *ImageStore) Load(name string) ([]byte, error) {
	if !ValidImageName(name) {
		return nil, fmt.Errorf("invalid image name %q", name)
	}
	return os.ReadFile(filepath.Join(s.dir, name))
}

// Delete removes one stored image, best-effort. Failures are logged and
// never returned.
func (s *ImageStore) Delete(name string) {
	if !ValidImageName(name) {
		return
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not delete image %s: %v", name, err)
	}
}

// DeleteMany removes a batch of stored images, best-effort.
func (s *ImageStore) DeleteMany(names []string) {
	for _, name := range names {
		s.Delete(name)
	}
}

// ValidImageName rejects anything that could escape the image directory.
func ValidImageName(name string) bool {
	return name != "" && name == filepath.Base(name) && !strings.HasPrefix(name, ".")
}
