package fetch

import (
	"context"
	"time"
)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// doWithRetry runs op with backoff retries. len(delays) retries follow the
// initial attempt. The logger, if provided, is called before each retry.
func doWithRetry(ctx context.Context, delays []time.Duration, logf LogFunc, url string, op func() error) error {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err := op()
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		if logf != nil {
			logf("  retry %s (attempt %d): %v", url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return lastErr
}
