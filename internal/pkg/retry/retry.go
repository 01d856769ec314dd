// Package retry runs idempotent reads again when the store reports itself unavailable.
// Mutations must never go through this package.
package retry

import (
	"context"
	"log/slog"
	"time"

	"brokerage/internal/pkg/errs"
)

type counter interface {
	Inc()
}

// Config describes the bounded exponential backoff.
type Config struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultConfig is used when no configuration is supplied.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 3,
		BaseDelay:   50 * time.Millisecond,
		MaxDelay:    time.Second,
	}
}

// Reader retries read operations whose error is classified as StoreUnavailable.
type Reader struct {
	cfg     Config
	logger  *slog.Logger
	retries counter
	sleep   func(context.Context, time.Duration) bool
}

// NewReader creates a Reader. retries may be nil.
func NewReader(cfg Config, logger *slog.Logger, retries counter) *Reader {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{
		cfg:     cfg,
		logger:  logger.With("component", "read_retry"),
		retries: retries,
		sleep:   sleepWithContext,
	}
}

// Do calls fn until it succeeds, returns a non-retryable error, the context
// ends or the attempt budget is spent. The last error is returned.
func Do[T any](ctx context.Context, r *Reader, operation string, fn func(context.Context) (T, error)) (T, error) {
	var (
		zero    T
		lastErr error
	)
	if r == nil {
		return fn(ctx)
	}

	for attempt := 1; attempt <= r.cfg.MaxAttempts; attempt++ {
		res, err := fn(ctx)
		if err == nil {
			return res, nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == r.cfg.MaxAttempts || !errs.IsRetryable(err) {
			break
		}

		delay := backoff(r.cfg.BaseDelay, r.cfg.MaxDelay, attempt)
		if r.retries != nil {
			r.retries.Inc()
		}
		r.logger.WarnContext(ctx, "store read retry",
			"operation", operation,
			"attempt", attempt,
			"delay", delay,
			"error", err,
		)
		if !r.sleep(ctx, delay) {
			break
		}
	}
	return zero, lastErr
}

func backoff(base, maxDelay time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > maxDelay || d <= 0 {
		return maxDelay
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
