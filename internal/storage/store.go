// AngelaMos | 2026
// store.go

package storage

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/carterperez-dev/bookhive/internal/config"
)

var (
	ErrFileTooLarge    = errors.New("file exceeds maximum upload size")
	ErrUnsupportedType = errors.New("unsupported file type")
)

var allowedCoverTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// Store writes uploaded files under a per-owner directory and hands back
// the relative path that gets persisted on the entity.
type Store struct {
	root    string
	maxSize int64

	now func() time.Time
}

func NewStore(cfg config.StorageConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Root, 0o750); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}

	return &Store{
		root:    cfg.Root,
		maxSize: cfg.MaxUploadSize,
		now:     time.Now,
	}, nil
}

// SaveCover sniffs the upload, rejects anything that is not an image and
// writes it to users/<ownerID>/<millis>-<id>.<ext>. The extension comes
// from the detected content type, never from the client.
func (s *Store) SaveCover(ownerID string, r io.Reader) (string, error) {
	// +1 so an upload at exactly the limit still passes.
	data, err := io.ReadAll(io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	if int64(len(data)) > s.maxSize {
		return "", ErrFileTooLarge
	}

	mtype := mimetype.Detect(data)
	ext, ok := allowedCoverTypes[mtype.String()]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mtype.String())
	}

	dir := filepath.Join(s.root, "users", ownerID)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("create owner directory: %w", err)
	}

	name := strconv.FormatInt(s.now().UnixMilli(), 10) +
		"-" + uuid.New().String()[:8] + ext
	fullPath := filepath.Join(dir, name)

	if err := os.WriteFile(fullPath, data, 0o640); err != nil {
		return "", fmt.Errorf("write cover file: %w", err)
	}

	return filepath.Join("users", ownerID, name), nil
}

// ReadCover loads a previously stored cover. A missing or unreadable
// file degrades to nil so a broken cover never fails the book lookup.
func (s *Store) ReadCover(path string) []byte {
	if path == "" {
		return nil
	}

	fullPath, err := s.resolve(path)
	if err != nil {
		slog.Warn("rejected cover path", "path", path, "error", err)
		return nil
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("read cover", "path", path, "error", err)
		}
		return nil
	}

	return data
}

// Remove deletes a stored cover. Missing files are not an error.
func (s *Store) Remove(path string) error {
	if path == "" {
		return nil
	}

	fullPath, err := s.resolve(path)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil &&
		!errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove cover file: %w", err)
	}

	return nil
}

// resolve joins a stored relative path against the root and refuses
// anything that escapes it.
func (s *Store) resolve(path string) (string, error) {
	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid storage path: %q", path)
	}

	return filepath.Join(s.root, clean), nil
}
