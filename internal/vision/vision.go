package vision

import (
	"context"
	"errors"
	"fmt"
)

// Document is the decoded JSON body returned by a facial-attribute API.
type Document map[string]any

// Client abstracts facial-attribute providers.
type Client interface {
	AnalyzeFace(ctx context.Context, image []byte) (Document, error)
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("vision provider not configured")

// PlaceholderClient is used when no provider credentials are set.
type PlaceholderClient struct{}

// AnalyzeFace returns ErrNotConfigured.
func (PlaceholderClient) AnalyzeFace(ctx context.Context, image []byte) (Document, error) {
	_ = ctx
	_ = image
	return nil, ErrNotConfigured
}

// StatusError reports a non-2xx response or a provider error body.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("vision http status %d", e.StatusCode)
	}
	return fmt.Sprintf("vision http status %d: %s", e.StatusCode, e.Message)
}
