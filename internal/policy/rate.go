package policy

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DeniedError is returned when a guard rejects an invocation. RetryAfter is
// zero when the quota (not the interval) is the limiting factor.
type DeniedError struct {
	Reason     string
	RetryAfter time.Duration
}

func (e *DeniedError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s, retry in %s", e.Reason, e.RetryAfter.Round(time.Second))
	}
	return e.Reason
}

// Guard is the quota bookkeeping for one rate-limited command family: a minimum
// spacing between requests plus a fixed-window request cap. State is in-memory
// only and resets on restart, which is accepted.
type Guard struct {
	minInterval  time.Duration
	maxPerWindow int
	window       time.Duration

	mu          sync.Mutex
	lastRequest time.Time
	windowStart time.Time
	count       int

	now func() time.Time // test hook
}

func NewGuard(minInterval time.Duration, maxPerWindow int, window time.Duration) *Guard {
	return &Guard{
		minInterval:  minInterval,
		maxPerWindow: maxPerWindow,
		window:       window,
		now:          time.Now,
	}
}

// CheckAndConsume admits or rejects one request. Check and bookkeeping update
// are a single step under the mutex; admitting without counting (or counting
// without admitting) is not possible.
func (g *Guard) CheckAndConsume() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()

	// Lazy window reset in case the background timer has not fired yet.
	if g.window > 0 && !g.windowStart.IsZero() && now.Sub(g.windowStart) >= g.window {
		g.windowStart = now
		g.count = 0
	}

	if g.minInterval > 0 && !g.lastRequest.IsZero() {
		if since := now.Sub(g.lastRequest); since < g.minInterval {
			return &DeniedError{
				Reason:     "too soon",
				RetryAfter: g.minInterval - since,
			}
		}
	}

	if g.maxPerWindow > 0 && g.count >= g.maxPerWindow {
		return &DeniedError{Reason: fmt.Sprintf("quota of %d per window exhausted", g.maxPerWindow)}
	}

	if g.windowStart.IsZero() {
		g.windowStart = now
	}
	g.lastRequest = now
	g.count++
	return nil
}

// Reset zeroes the window counter.
func (g *Guard) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.windowStart = g.now()
	g.count = 0
}

// Start runs the periodic window reset until ctx is cancelled. The ticker is
// the only live timer in the policy layer and must not leak in tests.
func (g *Guard) Start(ctx context.Context) {
	if g.window <= 0 {
		return
	}
	ticker := time.NewTicker(g.window)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.Reset()
		}
	}
}

// GuardSet is a named collection of guards, one per command family.
type GuardSet struct {
	guards map[string]*Guard
}

func NewGuardSet() *GuardSet {
	return &GuardSet{guards: make(map[string]*Guard)}
}

// Add registers a guard under a family name. Called once at startup.
func (s *GuardSet) Add(family string, g *Guard) {
	s.guards[family] = g
}

// Get returns the guard for a family, or nil when the family is unlimited.
func (s *GuardSet) Get(family string) *Guard {
	return s.guards[family]
}

// StartAll launches every guard's reset loop on its own goroutine.
func (s *GuardSet) StartAll(ctx context.Context) {
	for _, g := range s.guards {
		go g.Start(ctx)
	}
}
