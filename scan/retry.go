package scan

import (
	"context"
	"time"

	"github.com/fwojciec/pagewatch"
)

// NavigateFunc is the signature for a navigation function that returns the
// anchor list of a target page.
type NavigateFunc func(ctx context.Context, url string) ([]pagewatch.Anchor, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for navigation retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// NavigateWithRetryDelays attempts navigation with backoff retries, one
// attempt plus one retry per delay. The logger function, if provided, is
// called for each retry attempt. After exhaustion the last error is
// returned and the caller skips the target for this cycle.
func NavigateWithRetryDelays(ctx context.Context, url string, nav NavigateFunc, logger LogFunc, delays []time.Duration) ([]pagewatch.Anchor, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		anchors, err := nav(ctx, url)
		if err == nil {
			return anchors, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		if logger != nil {
			logger("  retry %s (attempt %d): %v", url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}
