package openai

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const baseRetryDelay = time.Second

// withRetries runs fn up to maxRetries times with exponential backoff,
// retrying only transient failures. Context cancellation aborts the loop.
func withRetries(ctx context.Context, logger *zap.Logger, maxRetries int, fn func(context.Context) error) error {
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	delay := baseRetryDelay

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			logger.Warn("retrying provider request",
				zap.Int("attempt", attempt+1),
				zap.Int("max_retries", maxRetries),
				zap.Duration("delay", delay),
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if !isRetryable(lastErr) {
			return lastErr
		}
	}

	return lastErr
}
