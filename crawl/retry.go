package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cannibal"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (*cannibal.Response, error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s.
func DefaultRetryDelays() []time.Duration {
	return BackoffDelays(2, time.Second)
}

// BackoffDelays returns n exponentially growing delays starting at base.
func BackoffDelays(n int, base time.Duration) []time.Duration {
	delays := make([]time.Duration, 0, max(n, 0))
	for i := range n {
		delays = append(delays, base<<i)
	}
	return delays
}

// FetchWithRetryDelays fetches url, retrying transient failures (5xx,
// 429, timeouts) once per entry in delays. Permanent failures such as a
// 404 return immediately. The logger, if non-nil, records each retry.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger *slog.Logger, delays []time.Duration) (*cannibal.Response, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		resp, err := fetch(ctx, url)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		// Don't retry after the last attempt or on permanent errors
		if attempt >= maxAttempts-1 || !cannibal.IsTransient(err) {
			break
		}

		// Check context before sleeping
		if ctx.Err() != nil {
			return nil, lastErr
		}

		if logger != nil {
			logger.Debug("retry fetch", "url", url, "attempt", attempt+2, "err", err)
		}

		// Wait before next attempt
		select {
		case <-ctx.Done():
			return nil, lastErr
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}
