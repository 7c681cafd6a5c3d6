package vision

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"skincare-backend/internal/shared/telemetry"
)

// DefaultRetryBaseDelay is the wait before the first retry; each further
// retry doubles it.
const DefaultRetryBaseDelay = 300 * time.Millisecond

type retryingClient struct {
	base       Client
	maxRetries int
	baseDelay  time.Duration
	sleep      func(ctx context.Context, d time.Duration) error
}

// NewRetrying wraps base so that transient failures (timeouts, 5xx and
// connection errors) are retried up to maxRetries times. With maxRetries <= 0
// base is returned as is.
func NewRetrying(base Client, maxRetries int, baseDelay time.Duration) Client {
	if base == nil || maxRetries <= 0 {
		return base
	}
	if baseDelay <= 0 {
		baseDelay = DefaultRetryBaseDelay
	}
	return &retryingClient{
		base:       base,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		sleep:      sleepCtx,
	}
}

func (r *retryingClient) AnalyzeFace(ctx context.Context, image []byte) (Document, error) {
	doc, err := r.base.AnalyzeFace(ctx, image)
	delay := r.baseDelay
	for attempt := 1; attempt <= r.maxRetries; attempt++ {
		if err == nil || ctx.Err() != nil || !ShouldRetry(err) {
			return doc, err
		}
		telemetry.Warn("vision.retry", map[string]any{
			"attempt": attempt,
			"delayMs": delay.Milliseconds(),
			"error":   err.Error(),
		})
		if serr := r.sleep(ctx, delay); serr != nil {
			return nil, serr
		}
		delay *= 2
		doc, err = r.base.AnalyzeFace(ctx, image)
	}
	return doc, err
}

// ShouldRetry reports whether err looks transient.
func ShouldRetry(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNotConfigured) || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= 500 || statusErr.StatusCode == 429
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "tls handshake timeout") ||
		strings.Contains(msg, "unexpected eof")
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
