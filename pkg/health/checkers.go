package health

import (
	"context"
	"runtime"
	"time"

	"github.com/go-faster/errors"
)

// GoroutineCountCheck fails when the goroutine count exceeds the threshold,
// a cheap proxy for goroutine leaks. Suitable as a liveness check.
func GoroutineCountCheck(threshold int) CheckFunc {
	return func(_ context.Context) error {
		count := runtime.NumGoroutine()
		if count > threshold {
			return errors.Errorf("too many goroutines: %d > %d", count, threshold)
		}
		return nil
	}
}

// PingCheck wraps a connectivity probe, such as a remote document store
// ping. Suitable as a readiness check.
func PingCheck(ping func(ctx context.Context) error) CheckFunc {
	return func(ctx context.Context) error {
		if err := ping(ctx); err != nil {
			return errors.Wrap(err, "ping")
		}
		return nil
	}
}

// FreshnessCheck fails when the timestamp reported by last is older than
// maxAge. A zero timestamp means no data has arrived yet and also fails.
// Used to detect a stalled catalog feed.
func FreshnessCheck(last func() time.Time, maxAge time.Duration) CheckFunc {
	return func(_ context.Context) error {
		at := last()
		if at.IsZero() {
			return errors.New("no snapshot received yet")
		}
		if age := time.Since(at); age > maxAge {
			return errors.Errorf("last snapshot is stale: %s old", age.Truncate(time.Second))
		}
		return nil
	}
}
