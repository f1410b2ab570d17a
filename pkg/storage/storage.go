package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"jobboard-service/pkg/config"

	"github.com/google/uuid"
)

// ErrTooLarge is returned when an upload exceeds the configured limit
var ErrTooLarge = errors.New("upload exceeds maximum allowed size")

// Store persists uploaded binaries on local disk under a configured
// directory. Writes block until the bytes are on disk; a failure surfaces
// immediately with no retry.
type Store struct {
	dir      string
	maxBytes int64
}

// New creates a store rooted at the configured directory
func New(cfg *config.StorageConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Store{dir: cfg.Dir, maxBytes: cfg.MaxUploadBytes}, nil
}

// Save writes src to a new file named by a fresh UUID plus the given
// extension and returns the relative path and byte count.
func (s *Store) Save(src io.Reader, extension string) (string, int64, error) {
	name := uuid.New().String() + "." + extension
	full := filepath.Join(s.dir, name)

	dst, err := os.Create(full)
	if err != nil {
		return "", 0, err
	}
	defer dst.Close()

	limit := src
	if s.maxBytes > 0 {
		limit = io.LimitReader(src, s.maxBytes+1)
	}

	size, err := io.Copy(dst, limit)
	if err != nil {
		os.Remove(full)
		return "", 0, err
	}
	if s.maxBytes > 0 && size > s.maxBytes {
		os.Remove(full)
		return "", 0, ErrTooLarge
	}

	return name, size, nil
}

// Open returns a reader over a stored file
func (s *Store) Open(path string) (*os.File, error) {
	return os.Open(filepath.Join(s.dir, path))
}

// Remove deletes the stored bytes. Missing files are not an error; the
// database row is the source of truth.
func (s *Store) Remove(path string) error {
	err := os.Remove(filepath.Join(s.dir, path))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// FullPath returns the absolute location of a stored file, used for
// download responses.
func (s *Store) FullPath(path string) string {
	return filepath.Join(s.dir, path)
}
