package cache

import (
	"strings"
	"sync"
	"time"
)

// ScreenStatus is the per-screen submission state.
type ScreenStatus int

const (
	ScreenIdle ScreenStatus = iota
	ScreenSubmitting
	ScreenSuccess
	ScreenFailed
)

func (s ScreenStatus) String() string {
	switch s {
	case ScreenSubmitting:
		return "submitting"
	case ScreenSuccess:
		return "success"
	case ScreenFailed:
		return "failed"
	default:
		return "idle"
	}
}

// ScreenState is the outcome of the latest submission on one screen.
// It is rendered once and then dropped.
type ScreenState struct {
	Status  ScreenStatus
	Message string
	Result  any
	Draft   any
	At      time.Time
}

// ScreenStateTTL bounds how long an unrendered outcome is kept.
var ScreenStateTTL = 10 * time.Minute

// ScreenStateCache holds outcomes keyed by "<client>|<screen>".
type ScreenStateCache struct {
	mu     sync.Mutex
	states map[string]ScreenState
	now    func() time.Time
}

func NewScreenStateCache() *ScreenStateCache {
	return &ScreenStateCache{states: make(map[string]ScreenState), now: time.Now}
}

func ScreenKey(client, screen string) string {
	return client + "|" + screen
}

func (c *ScreenStateCache) Put(key string, st ScreenState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	if st.At.IsZero() {
		st.At = now
	}
	for k, v := range c.states {
		if now.Sub(v.At) > ScreenStateTTL {
			delete(c.states, k)
		}
	}
	c.states[key] = st
}

// Take returns the stored outcome and forgets it.
func (c *ScreenStateCache) Take(key string) (ScreenState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.states[key]
	if !ok {
		return ScreenState{}, false
	}
	delete(c.states, key)
	if c.now().Sub(st.At) > ScreenStateTTL {
		return ScreenState{}, false
	}
	return st, true
}

// ClearClient drops every screen outcome belonging to client.
func (c *ScreenStateCache) ClearClient(client string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := client + "|"
	for k := range c.states {
		if strings.HasPrefix(k, prefix) {
			delete(c.states, k)
		}
	}
}
