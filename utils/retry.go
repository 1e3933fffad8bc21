package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/raushankrgupta/multisite-product-viewer/logx"
)

// RetryWithBackoff calls fn up to maxRetries times, sleeping baseDelay*2^i
// after the i-th failure. The last error is returned wrapped. Cancelling ctx
// stops waiting between attempts.
func RetryWithBackoff[T any](ctx context.Context, fn func(context.Context) (T, error), maxRetries int, baseDelay time.Duration) (T, error) {
	var zero T
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	delay := baseDelay
	for attempt := 1; attempt <= maxRetries; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == maxRetries {
			break
		}
		logx.Warn().Err(err).Int("attempt", attempt).Int("max", maxRetries).Dur("delay", delay).Msg("retrying")

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
	return zero, fmt.Errorf("failed after %d attempts: %w", maxRetries, lastErr)
}
