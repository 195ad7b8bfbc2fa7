package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RetryPolicy bounds how often a single step is attempted and how long the
// pipeline waits between attempts.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// RetryConfig holds the per-step retry policies.
type RetryConfig struct {
	Extract RetryPolicy
	Fetch   RetryPolicy
	Analyze RetryPolicy
}

// DefaultRetryConfig grants each step one automatic retry: extraction after
// 5s, fetching and analysis after 10s.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		Extract: RetryPolicy{MaxAttempts: 2, Delay: 5 * time.Second},
		Fetch:   RetryPolicy{MaxAttempts: 2, Delay: 10 * time.Second},
		Analyze: RetryPolicy{MaxAttempts: 2, Delay: 10 * time.Second},
	}
}

// orDefault substitutes the fallback policy when the receiver is unset.
func (p RetryPolicy) orDefault(fallback RetryPolicy) RetryPolicy {
	if p.MaxAttempts < 1 {
		return fallback
	}
	return p
}

// runWithRetry invokes fn up to policy.MaxAttempts times, waiting
// policy.Delay between failed attempts. Context cancellation aborts the
// wait. The last attempt's error is returned.
func runWithRetry(ctx context.Context, policy RetryPolicy, logger *zap.Logger, step string, fn func(context.Context) error) error {
	attempts := policy.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if attempt == attempts {
			break
		}

		logger.Warn("step failed, retrying",
			zap.String("step", step),
			zap.Int("attempt", attempt),
			zap.Duration("delay", policy.Delay),
			zap.Error(err),
		)
		select {
		case <-time.After(policy.Delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}
