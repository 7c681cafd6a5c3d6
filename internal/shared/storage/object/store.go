package object

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"

	"skincare-backend/internal/shared/util"
)

// Object describes a stored blob and where it can be fetched from.
type Object struct {
	Key       string `json:"key"`
	URL       string `json:"url"`
	SizeBytes int64  `json:"sizeBytes"`
	MimeType  string `json:"mimeType"`
}

// ImageStore uploads binary images and returns a publicly resolvable URL.
type ImageStore interface {
	Upload(ctx context.Context, callerID string, fileName string, r io.Reader) (Object, error)
}

// NewKey builds a collision-free storage key namespaced by the hashed caller.
func NewKey(callerID, fileName string) (string, error) {
	sanitized, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", fmt.Errorf("sanitize file name: %w", err)
	}
	return path.Join(util.HashCallerKey(callerID), uuid.NewString()+"_"+sanitized), nil
}

// EscapeKey percent-encodes each segment of key so it can be appended to a
// base URL as a path. Slashes between segments are kept.
func EscapeKey(key string) string {
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}
