package service

import (
	"context"
	"cryptofolio/internal/domain"
	"cryptofolio/internal/logger"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy retries transient failures with exponential backoff. Errors
// that domain.IsRetryable rejects (401/403, missing credentials) stop
// immediately.
type RetryPolicy struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration

	// NewBackOff replaces the exponential schedule when set.
	NewBackOff func() backoff.BackOff
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:      3,
		InitialInterval: 1 * time.Second,
		MaxInterval:     30 * time.Second,
	}
}

func (p RetryPolicy) exponential() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.InitialInterval
	b.MaxInterval = p.MaxInterval
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// Schedule lists the waits before each retry.
func (p RetryPolicy) Schedule() []time.Duration {
	b := p.exponential()
	out := make([]time.Duration, 0, p.MaxRetries)
	for i := uint64(0); i < p.MaxRetries; i++ {
		out = append(out, b.NextBackOff())
	}
	return out
}

// Do runs op once and then up to MaxRetries more times while it keeps
// failing with a retryable error. The last error is returned.
func (p RetryPolicy) Do(ctx context.Context, name string, op func(ctx context.Context) error) error {
	log := logger.FromContext(ctx)

	var base backoff.BackOff
	if p.NewBackOff != nil {
		base = p.NewBackOff()
	} else {
		base = p.exponential()
	}
	b := backoff.WithContext(backoff.WithMaxRetries(base, p.MaxRetries), ctx)

	attempt := 0
	return backoff.RetryNotify(
		func() error {
			attempt++
			err := op(ctx)
			if err != nil && !domain.IsRetryable(err) {
				return backoff.Permanent(err)
			}
			return err
		},
		b,
		func(err error, wait time.Duration) {
			log.Warnf("%s attempt %d failed, retrying in %s: %s", name, attempt, wait, err.Error())
		},
	)
}
