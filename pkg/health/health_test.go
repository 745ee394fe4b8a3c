package health

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/require"
)

func TestHealthReadiness(t *testing.T) {
	h := New()

	require.False(t, h.IsReady(), "service starts not ready")

	h.SetReady(true)
	require.True(t, h.IsReady())

	h.SetReady(false)
	require.False(t, h.IsReady())
}

func TestHealthFailureThreshold(t *testing.T) {
	h := New()
	h.SetReady(true)

	var fails atomic.Bool
	h.AddReadinessCheck("flaky", time.Second, func(_ context.Context) error {
		if fails.Load() {
			return errors.New("down")
		}
		return nil
	})

	c := h.readiness[0]
	ctx := context.Background()

	c.run(ctx)
	require.True(t, h.IsReady())

	// Two failures stay under the default threshold of three.
	fails.Store(true)
	c.run(ctx)
	c.run(ctx)
	require.True(t, h.IsReady())

	c.run(ctx)
	require.False(t, h.IsReady())

	// A single success recovers.
	fails.Store(false)
	c.run(ctx)
	require.True(t, h.IsReady())
}

func TestHealthEndpoints(t *testing.T) {
	h := New()
	h.AddLivenessCheck("always-down", time.Second, func(_ context.Context) error {
		return errors.New("broken")
	})
	h.liveness[0].run(context.Background())
	h.liveness[0].run(context.Background())
	h.liveness[0].run(context.Background())

	rec := httptest.NewRecorder()
	h.LiveEndpoint(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, rec.Body.String(), "always-down")
	require.Contains(t, rec.Body.String(), "broken")

	rec = httptest.NewRecorder()
	h.ReadyEndpoint(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	h.SetReady(true)
	rec = httptest.NewRecorder()
	h.ReadyEndpoint(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestFreshnessCheck(t *testing.T) {
	var at time.Time
	fn := FreshnessCheck(func() time.Time { return at }, time.Minute)

	require.Error(t, fn(context.Background()), "zero timestamp fails")

	at = time.Now()
	require.NoError(t, fn(context.Background()))

	at = time.Now().Add(-2 * time.Minute)
	require.Error(t, fn(context.Background()))
}

func TestGoroutineCountCheck(t *testing.T) {
	require.NoError(t, GoroutineCountCheck(100000)(context.Background()))
	require.Error(t, GoroutineCountCheck(0)(context.Background()))
}
