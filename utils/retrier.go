package utils

import (
	"context"
	"log"
	"math/rand"
	"time"
)

// Backoff hands out exponentially growing delays with jitter, capped at maxDelay.
// NOT THREAD SAFE
type Backoff struct {
	initialDelay     time.Duration
	maxDelay         time.Duration
	jitterPercentage float64

	nextDelay    time.Duration
	rndGenerator *rand.Rand
}

func NewBackoff(initialDelay time.Duration, maxDelay time.Duration, jitterPercentage float64) *Backoff {
	return &Backoff{
		initialDelay:     initialDelay,
		maxDelay:         maxDelay,
		jitterPercentage: jitterPercentage,
		nextDelay:        initialDelay,
		rndGenerator:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (b *Backoff) Next() time.Duration {
	currentDelay := b.nextDelay
	b.nextDelay = min(b.nextDelay*2, b.maxDelay)
	return b.withJitter(currentDelay)
}

func (b *Backoff) Reset() {
	b.nextDelay = b.initialDelay
}

func (b *Backoff) withJitter(duration time.Duration) time.Duration {
	maxJitter := int64(float64(duration) * b.jitterPercentage)
	if maxJitter <= 0 {
		return duration
	}
	return duration + time.Duration(b.rndGenerator.Int63n(maxJitter)-maxJitter/2)
}

// Retrier runs an action until it succeeds, fails with a non-retryable error, runs out of
// attempts or the context is done. maxAttempts = -1 retries forever.
type Retrier[T any] struct {
	maxAttempts int
	newBackoff  func() *Backoff
	isRetryable func(err error) bool
}

func NewRetrier[T any](maxAttempts int, initialDelay time.Duration, maxDelay time.Duration) *Retrier[T] {
	return &Retrier[T]{
		maxAttempts: maxAttempts,
		newBackoff: func() *Backoff {
			return NewBackoff(initialDelay, maxDelay, 0.1)
		},
		isRetryable: func(error) bool { return true },
	}
}

func NewDefaultRetrier[T any]() *Retrier[T] {
	return NewRetrier[T](10, 100*time.Millisecond, 2*time.Second)
}

func (r *Retrier[T]) RetryingOnly(isRetryable func(err error) bool) *Retrier[T] {
	return &Retrier[T]{maxAttempts: r.maxAttempts, newBackoff: r.newBackoff, isRetryable: isRetryable}
}

func (r *Retrier[T]) Do(ctx context.Context, action func(ctx context.Context) (T, error)) (T, error) {
	var defaultT T
	backoff := r.newBackoff()
	for attempt := 1; ; attempt++ {
		result, err := action(ctx)
		if err == nil {
			return result, nil
		}
		if !r.isRetryable(err) || (r.maxAttempts != -1 && attempt >= r.maxAttempts) {
			return defaultT, err
		}

		timeToWait := backoff.Next()
		log.Printf("Attempt %v failed: %v. Retrying in %v\n", attempt, err, timeToWait)
		timer := time.NewTimer(timeToWait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return defaultT, ctx.Err()
		case <-timer.C:
		}
	}
}
