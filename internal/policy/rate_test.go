package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests move time without sleeping.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestGuard(minInterval time.Duration, maxPerWindow int, window time.Duration) (*Guard, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	g := NewGuard(minInterval, maxPerWindow, window)
	g.now = clock.now
	return g, clock
}

func TestGuard_MinInterval(t *testing.T) {
	g, clock := newTestGuard(30*time.Second, 0, time.Hour)

	require.NoError(t, g.CheckAndConsume())

	clock.advance(10 * time.Second)
	err := g.CheckAndConsume()

	var denied *DeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, "too soon", denied.Reason)
	assert.Equal(t, 20*time.Second, denied.RetryAfter)
}

func TestGuard_IntervalElapsed(t *testing.T) {
	g, clock := newTestGuard(30*time.Second, 0, time.Hour)

	require.NoError(t, g.CheckAndConsume())
	clock.advance(31 * time.Second)
	require.NoError(t, g.CheckAndConsume())
}

func TestGuard_QuotaExhausted(t *testing.T) {
	g, clock := newTestGuard(0, 10, time.Hour)

	for i := 0; i < 10; i++ {
		require.NoError(t, g.CheckAndConsume(), "call %d should pass", i+1)
		clock.advance(time.Minute)
	}

	err := g.CheckAndConsume()
	var denied *DeniedError
	require.ErrorAs(t, err, &denied, "11th call within the window must be denied")
	assert.Zero(t, denied.RetryAfter)
}

func TestGuard_ResetReopensQuota(t *testing.T) {
	g, clock := newTestGuard(0, 2, time.Hour)

	require.NoError(t, g.CheckAndConsume())
	clock.advance(time.Second)
	require.NoError(t, g.CheckAndConsume())
	clock.advance(time.Second)
	require.Error(t, g.CheckAndConsume())

	g.Reset()
	require.NoError(t, g.CheckAndConsume(), "first call after reset must pass")
}

func TestGuard_LazyWindowReset(t *testing.T) {
	g, clock := newTestGuard(0, 2, time.Hour)

	require.NoError(t, g.CheckAndConsume())
	clock.advance(time.Second)
	require.NoError(t, g.CheckAndConsume())
	clock.advance(time.Second)
	require.Error(t, g.CheckAndConsume())

	// Window elapses without the background timer firing.
	clock.advance(2 * time.Hour)
	require.NoError(t, g.CheckAndConsume())
}

func TestGuard_UnlimitedFamily(t *testing.T) {
	g, _ := newTestGuard(0, 0, 0)
	for i := 0; i < 100; i++ {
		require.NoError(t, g.CheckAndConsume())
	}
}

func TestGuardSet(t *testing.T) {
	s := NewGuardSet()
	s.Add("profile", NewGuard(time.Second, 5, time.Hour))

	assert.NotNil(t, s.Get("profile"))
	assert.Nil(t, s.Get("unlimited-family"))
}
