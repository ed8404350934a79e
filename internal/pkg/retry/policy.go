// Package retry provides a backoff policy value object and a small combinator
// for running an operation with bounded, sequential retries.
package retry

import (
	"context"
	"time"

	"storefront/internal/pkg/errs"
)

// ErrPolicyIsInvalid is returned when a Policy is constructed with
// non-positive delays or a cap below the initial delay.
var ErrPolicyIsInvalid = errs.NewValueIsInvalidError("retry policy")

// Policy is an exponential backoff policy with a capped delay.
// The delay before retry n (1-based attempt numbering) is
// min(Initial * 2^(n-1), Max). Policy is immutable and safe to share.
type Policy struct {
	initial time.Duration
	max     time.Duration
}

// NewPolicy creates a backoff policy with the given initial delay and cap.
// Both must be positive and max must not be below initial.
func NewPolicy(initial, maxDelay time.Duration) (Policy, error) {
	if initial <= 0 || maxDelay <= 0 || maxDelay < initial {
		return Policy{}, ErrPolicyIsInvalid
	}
	return Policy{initial: initial, max: maxDelay}, nil
}

// NextDelay returns the delay to wait after the given failed attempt.
// Attempts are numbered from 1. Attempt values below 1 are treated as 1.
func (p Policy) NextDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	delay := p.initial
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= p.max {
			return p.max
		}
	}

	if delay > p.max {
		return p.max
	}
	return delay
}

// SleepFunc suspends the calling goroutine for the given duration.
// Injected so tests can record delays instead of waiting them out.
type SleepFunc func(time.Duration)

// Do runs fn up to maxAttempts times, sleeping policy.NextDelay(attempt)
// between failed attempts. Attempts are strictly sequential: each retry
// decision observes the previous attempt's outcome.
//
// Do returns nil as soon as fn succeeds. If all attempts fail, the error of
// the final attempt is returned together with the attempt count. If ctx is
// cancelled between attempts, no new attempt is started and the last observed
// error is returned with the number of attempts actually made.
func Do(ctx context.Context, maxAttempts int, policy Policy, sleep SleepFunc, fn func(attempt int) error) (int, error) {
	if sleep == nil {
		sleep = time.Sleep
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		lastErr = fn(attempt)
		if lastErr == nil {
			return attempt, nil
		}

		if attempt == maxAttempts {
			return attempt, lastErr
		}

		if ctx.Err() != nil {
			return attempt, lastErr
		}
		sleep(policy.NextDelay(attempt))
	}

	return maxAttempts, lastErr
}
