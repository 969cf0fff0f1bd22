package twitter

import (
	"context"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
)

// RetryConfig bounds the retry behavior around API calls.
type RetryConfig struct {
	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries int

	// BaseDelay is the first backoff delay; each subsequent retry
	// doubles it.
	BaseDelay time.Duration
}

// DefaultRetryConfig returns the documented retry defaults.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{MaxRetries: 3, BaseDelay: 5 * time.Second}
}

func (cfg RetryConfig) normalize() RetryConfig {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = time.Second
	}
	return cfg
}

// newRetryPolicy builds the bounded exponential-backoff policy. Only
// rate-limit and transient errors are retried; everything else fails the
// call immediately.
func newRetryPolicy[T any](cfg RetryConfig) retrypolicy.RetryPolicy[T] {
	cfg = cfg.normalize()
	maxDelay := cfg.BaseDelay << uint(cfg.MaxRetries)
	return retrypolicy.NewBuilder[T]().
		WithBackoff(cfg.BaseDelay, maxDelay).
		WithMaxRetries(cfg.MaxRetries).
		HandleIf(func(_ T, err error) bool {
			return err != nil && IsTransient(err)
		}).
		Build()
}

// withRetry runs fn under the retry policy, honoring ctx cancellation
// between attempts.
func withRetry[T any](ctx context.Context, cfg RetryConfig, fn func() (T, error)) (T, error) {
	policy := newRetryPolicy[T](cfg)
	return failsafe.With(policy).WithContext(ctx).Get(fn)
}
