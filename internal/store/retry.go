package store

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"labor-dashboard/internal/model"
)

// backoff returns the wait before retry attempt n (1-based), capped at
// MaxDelay.
func backoff(cfg model.RetryConfig, attempt int) time.Duration {
	factor := cfg.BackoffFactor
	if factor < 1 {
		factor = 1
	}
	delay := time.Duration(float64(cfg.InitialDelay) * math.Pow(factor, float64(attempt-1)))
	if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
		delay = cfg.MaxDelay
	}
	return delay
}

// withRetry runs op until it succeeds, the retries run out or ctx ends.
func withRetry(ctx context.Context, cfg model.RetryConfig, logger *zap.Logger, what string, op func(context.Context) error) error {
	var err error
	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := backoff(cfg, attempt)
			logger.Warn("retrying",
				zap.String("operation", what),
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
				zap.Error(err))
			select {
			case <-ctx.Done():
				return fmt.Errorf("%s: %w", what, ctx.Err())
			case <-time.After(delay):
			}
		}
		if err = op(ctx); err == nil {
			return nil
		}
	}
	return fmt.Errorf("%s failed after %d attempts: %w", what, cfg.MaxRetries+1, err)
}
