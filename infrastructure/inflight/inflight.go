package inflight

import (
	"context"
	"sync"
)

// Tracker hands out one generation ticket per key. Starting a new ticket
// supersedes the previous one: its context is cancelled and it can no longer
// commit.
type Tracker struct {
	mu      sync.Mutex
	seq     uint64
	current map[string]*Ticket
}

func NewTracker() *Tracker {
	return &Tracker{current: make(map[string]*Ticket)}
}

// Ticket is one submission on one key.
type Ticket struct {
	tracker *Tracker
	key     string
	gen     uint64
	ctx     context.Context
	cancel  context.CancelFunc
}

// Begin starts a submission for key derived from parent.
func (t *Tracker) Begin(parent context.Context, key string) *Ticket {
	ctx, cancel := context.WithCancel(parent)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	tk := &Ticket{tracker: t, key: key, gen: t.seq, ctx: ctx, cancel: cancel}
	if prev, ok := t.current[key]; ok {
		prev.cancel()
	}
	t.current[key] = tk
	return tk
}

// InFlight reports whether a submission is running for key.
func (t *Tracker) InFlight(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.current[key]
	return ok
}

func (k *Ticket) Context() context.Context {
	return k.ctx
}

func (k *Ticket) Generation() uint64 {
	return k.gen
}

// Current reports whether no newer ticket has been issued for the key.
func (k *Ticket) Current() bool {
	k.tracker.mu.Lock()
	defer k.tracker.mu.Unlock()
	return k.tracker.current[k.key] == k
}

// Commit runs fn only while the ticket is current. The tracker lock is held
// during fn so a newer ticket cannot begin in between.
func (k *Ticket) Commit(fn func()) bool {
	k.tracker.mu.Lock()
	defer k.tracker.mu.Unlock()
	if k.tracker.current[k.key] != k {
		return false
	}
	fn()
	return true
}

// Done releases the ticket. Always call it, usually deferred.
func (k *Ticket) Done() {
	k.cancel()
	k.tracker.mu.Lock()
	defer k.tracker.mu.Unlock()
	if k.tracker.current[k.key] == k {
		delete(k.tracker.current, k.key)
	}
}
