package publish

import (
	"context"
	"errors"
	"log"
	"net"
	"time"

	"github.com/toothbrush/blogger-sync/blogger"
)

// RetryPolicy bounds how hard we hammer the remote end on transient
// failures.  Injectable so tests can run with zero delays.
type RetryPolicy struct {
	MaxAttempts int

	// first delay, doubled (well, multiplied by Factor) per attempt
	BaseDelay time.Duration
	Factor    int

	// per-attempt deadline; exceeding it counts as a transient failure
	AttemptTimeout time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:    3,
		BaseDelay:      1 * time.Second,
		Factor:         2,
		AttemptTimeout: 30 * time.Second,
	}
}

func (p RetryPolicy) backoff(attempt int) time.Duration {
	delay := p.BaseDelay
	for i := 0; i < attempt; i++ {
		delay *= time.Duration(p.Factor)
	}
	return delay
}

// transient reports whether retrying could plausibly help.  Auth failures
// never get retried: the same bad credentials cannot start working.
func transient(err error) bool {
	if errors.Is(err, blogger.ErrAuth) || errors.Is(err, blogger.ErrNotFound) {
		return false
	}
	if errors.Is(err, blogger.ErrRateLimited) || errors.Is(err, blogger.ErrServer) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}

// retryCall runs one remote call under the policy: per-attempt timeout,
// exponential backoff between attempts, transient errors only.  The last
// error comes back unwrapped so callers can still classify it.
func retryCall[T any](ctx context.Context, policy RetryPolicy, logger *log.Logger, name string, call func(context.Context) (T, error)) (T, error) {
	var zero T

	attempts := policy.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 0; ; attempt++ {
		attemptCtx := ctx
		cancel := func() {}
		if policy.AttemptTimeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, policy.AttemptTimeout)
		}
		result, err := call(attemptCtx)
		cancel()

		if err == nil {
			return result, nil
		}

		// if the caller's own context died, stop regardless of class
		if ctx.Err() != nil {
			return zero, context.Cause(ctx)
		}

		if !transient(err) || attempt >= attempts-1 {
			return zero, err
		}

		delay := policy.backoff(attempt)
		logger.Printf("Transient error on %s (attempt %d/%d), retrying in %s: %v\n",
			name, attempt+1, attempts, delay, err)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return zero, context.Cause(ctx)
		}
	}
}
