package leaderboard

import "sync/atomic"

// Breaker is the session-lifetime availability latch for the remote store.
// It starts available and, once tripped, stays tripped: every later sync
// call short-circuits to the local fallback without touching the network.
// The sync adapter runs on every habit toggle, so an unguarded retry storm
// against a dead backend would be visible in the UI.
//
// The breaker is injected (not package-global) so tests can reset it.
type Breaker struct {
	tripped atomic.Bool
}

func NewBreaker() *Breaker {
	return &Breaker{}
}

func (b *Breaker) Available() bool {
	return !b.tripped.Load()
}

func (b *Breaker) Trip() {
	b.tripped.Store(true)
}

// Reset re-arms the breaker. Only tests use this; within a running session
// the unavailable state is terminal.
func (b *Breaker) Reset() {
	b.tripped.Store(false)
}
