package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// FileStore owns the upload directory. Documents reference files by
// the relative key returned from Save; keys resolve to public URLs
// only at the response boundary.
type FileStore struct {
	root      string
	publicURL string
	logger    zerolog.Logger
}

// NewFileStore creates the upload directory if missing. publicBase is
// prefixed to generated URLs; empty means site-relative URLs.
func NewFileStore(root, publicBase string, logger zerolog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &FileStore{
		root:      root,
		publicURL: strings.TrimRight(publicBase, "/") + "/public/photos",
		logger:    logger,
	}, nil
}

// NewKey generates a collision-free storage key keeping the original
// extension, mirroring the timestamp-plus-random-suffix convention.
func (s *FileStore) NewKey(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), suffix, ext)
}

// Save writes an uploaded file under the upload directory and returns
// its storage key.
func (s *FileStore) Save(file *multipart.FileHeader) (string, error) {
	key := s.NewKey(file.Filename)

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.root, key))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return key, nil
}

// Remove deletes a stored file by key. Best-effort: failures are
// logged and reported, never fatal to the caller's request.
func (s *FileStore) Remove(key string) error {
	if key == "" || isAbsoluteURL(key) {
		return nil
	}
	// Keys never contain path separators; reject anything that does.
	if filepath.Base(key) != key {
		s.logger.Warn().Str("key", key).Msg("refusing to remove suspicious file key")
		return fmt.Errorf("invalid file key: %q", key)
	}
	if err := os.Remove(filepath.Join(s.root, key)); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to remove stored file")
		return err
	}
	return nil
}

// URL resolves a storage key to the public URL it is served under.
// Values that are already absolute URLs pass through untouched.
func (s *FileStore) URL(key string) string {
	if key == "" || isAbsoluteURL(key) {
		return key
	}
	return s.publicURL + "/" + key
}

// Path returns the on-disk location for a key.
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.root, key)
}

func (s *FileStore) Root() string {
	return s.root
}

func isAbsoluteURL(v string) bool {
	return strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://")
}
