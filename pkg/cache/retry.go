package cache

import (
	"context"
	"errors"
	"time"
)

// Backoff retries an operation with exponentially growing delays.
type Backoff struct {
	Attempts int           // total calls, including the first
	Delay    time.Duration // wait before the second call
	MaxDelay time.Duration // cap on any single wait; zero means no cap
}

// DefaultBackoff is used by RetryWithBackoff: three calls, waiting one and
// then two seconds.
var DefaultBackoff = Backoff{Attempts: 3, Delay: time.Second, MaxDelay: 5 * time.Second}

// RetryableError marks a failure worth another attempt, such as a refused
// connection while a server starts.
type RetryableError struct{ Err error }

// Retryable wraps err so that Backoff retries it. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err, or anything it wraps, was marked with
// Retryable.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Retry calls fn until it succeeds, returns an error not marked Retryable,
// runs out of attempts or ctx is done. The last error from fn is returned.
func (b Backoff) Retry(ctx context.Context, fn func() error) error {
	attempts := max(b.Attempts, 1)

	var err error
	for i := range attempts {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}

		timer := time.NewTimer(b.wait(i))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return err
}

// wait returns the delay after the i-th failed call (counting from zero).
func (b Backoff) wait(i int) time.Duration {
	d := b.Delay << i
	if b.MaxDelay > 0 && (d > b.MaxDelay || d <= 0) {
		return b.MaxDelay
	}
	return d
}

// RetryWithBackoff retries fn with DefaultBackoff.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return DefaultBackoff.Retry(ctx, fn)
}
