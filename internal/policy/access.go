// Package policy holds the process-wide gating state: the public/private access
// mode and the per-command-family rate guards. Both are shared across all
// concurrent invocations, so every read-modify step happens under one mutex
// hold with no I/O inside.
package policy

import (
	"sync"

	"cypherbot/internal/platform"
)

// Mode is the bot-wide access mode.
type Mode string

const (
	ModePublic  Mode = "public"
	ModePrivate Mode = "private"
)

// Access gates command dispatch. In private mode only the owner and explicitly
// allowed senders may invoke commands; in public mode everyone may.
type Access struct {
	mu      sync.RWMutex
	mode    Mode
	owner   string // bare number
	allowed map[string]struct{}
}

func NewAccess(mode Mode, ownerJID string) *Access {
	return &Access{
		mode:    mode,
		owner:   platform.BareNumber(ownerJID),
		allowed: make(map[string]struct{}),
	}
}

// Permit reports whether the sender may invoke commands at all.
func (a *Access) Permit(senderJID string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.mode == ModePublic {
		return true
	}
	num := platform.BareNumber(senderJID)
	if num != "" && num == a.owner {
		return true
	}
	_, ok := a.allowed[num]
	return ok
}

// IsOwner reports whether the sender is the configured owner.
func (a *Access) IsOwner(senderJID string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.owner != "" && platform.BareNumber(senderJID) == a.owner
}

func (a *Access) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *Access) SetMode(m Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.mode = m
}

// Allow whitelists a bare number for private mode.
func (a *Access) Allow(number string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.allowed[platform.BareNumber(number)] = struct{}{}
}

// Deny removes a number from the whitelist.
func (a *Access) Deny(number string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.allowed, platform.BareNumber(number))
}

// Allowed returns the whitelisted numbers, in no particular order.
func (a *Access) Allowed() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	list := make([]string, 0, len(a.allowed))
	for n := range a.allowed {
		list = append(list, n)
	}
	return list
}
