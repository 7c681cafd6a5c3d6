package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"skincare-backend/internal/shared/storage/object"
)

// MediaPath is the URL path prefix the HTTP server serves the store under.
const MediaPath = "/media"

// Store implements ImageStore using the local filesystem.
type Store struct {
	baseDir string
	baseURL string
}

// New creates a new local image store rooted at baseDir. Public URLs are
// built as baseURL + MediaPath + "/" + escaped key.
func New(baseDir, baseURL string) *Store {
	return &Store{baseDir: baseDir, baseURL: strings.TrimRight(baseURL, "/")}
}

// BaseDir returns the directory objects are written to.
func (s *Store) BaseDir() string {
	return s.baseDir
}

// Upload writes the reader to disk under the caller's namespace.
func (s *Store) Upload(ctx context.Context, callerID string, fileName string, r io.Reader) (object.Object, error) {
	key, err := object.NewKey(callerID, fileName)
	if err != nil {
		return object.Object{}, err
	}

	if err := ctx.Err(); err != nil {
		return object.Object{}, err
	}

	fullPath := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return object.Object{}, fmt.Errorf("mkdir: %w", err)
	}

	mimeType, body, err := object.Sniff(r)
	if err != nil {
		return object.Object{}, err
	}

	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return object.Object{}, fmt.Errorf("open file: %w", err)
	}
	written, err := io.Copy(f, body)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(fullPath)
		return object.Object{}, fmt.Errorf("write body: %w", err)
	}

	return object.Object{
		Key:       key,
		URL:       s.baseURL + MediaPath + "/" + object.EscapeKey(key),
		SizeBytes: written,
		MimeType:  mimeType,
	}, nil
}

var _ object.ImageStore = (*Store)(nil)
