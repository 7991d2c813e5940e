package cache

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"
)

// backoff retries an operation a fixed number of times, doubling the delay
// after each failed attempt.
type backoff struct {
	attempts int
	delay    time.Duration
}

// connectBackoff is used for the initial PING of a Redis cache. A server that
// was started alongside the process may refuse connections for a moment.
var connectBackoff = backoff{attempts: 3, delay: 500 * time.Millisecond}

// do calls fn until it succeeds, returns an error retry rejects, or the
// attempts run out. The last error is returned.
func (b backoff) do(ctx context.Context, fn func() error, retry func(error) bool) error {
	delay := b.delay
	var err error
	for i := 0; i < b.attempts; i++ {
		if err = fn(); err == nil || !retry(err) {
			return err
		}
		if i == b.attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return err
}

// transientRedisError reports whether a failed PING may succeed later:
// network failures and a server still loading its dataset. Authentication
// and protocol errors are final.
func transientRedisError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return strings.HasPrefix(err.Error(), "LOADING")
}
