package upstream

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/config"
)

// RetryPolicy tunes the retry-with-backoff primitive.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64
	JitterRatio float64
	MaxDelay    time.Duration
}

// PolicyFromConfig converts env configuration into a RetryPolicy.
func PolicyFromConfig(cfg config.RetryConfig) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: cfg.MaxAttempts,
		BaseDelay:   cfg.BaseDelay(),
		Multiplier:  cfg.Multiplier,
		JitterRatio: cfg.JitterRatio,
		MaxDelay:    cfg.MaxDelay(),
	}
}

func (p RetryPolicy) normalized() RetryPolicy {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	if p.Multiplier <= 1 {
		p.Multiplier = 2
	}
	return p
}

// backoff returns the wait before the given retry attempt (attempt >= 2).
func (p RetryPolicy) backoff(attempt int) time.Duration {
	delay := float64(p.BaseDelay) * math.Pow(p.Multiplier, float64(attempt-2))
	if p.MaxDelay > 0 && delay > float64(p.MaxDelay) {
		delay = float64(p.MaxDelay)
	}
	if p.JitterRatio > 0 {
		delay += delay * p.JitterRatio * (rand.Float64()*2 - 1)
	}
	return time.Duration(delay)
}

// Retry executes op, re-issuing it on retryable failures only. The first
// attempt runs immediately; attempt n waits BaseDelay*Multiplier^(n-2) first.
// Terminal application failures propagate without another attempt, and a
// context cancelled during the wait aborts with a cancellation error.
func Retry[T any](ctx context.Context, policy RetryPolicy, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	policy = policy.normalized()

	var lastErr error
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return zero, &Error{Kind: KindCanceled, Message: "canceled while waiting to retry", Err: ctx.Err()}
			case <-time.After(policy.backoff(attempt)):
			}
		}

		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if ue, ok := AsError(err); !ok || !ue.Retryable() {
			return zero, err
		}
	}

	return zero, lastErr
}
