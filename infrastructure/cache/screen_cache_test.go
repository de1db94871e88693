package cache

import (
	"testing"
	"time"
)

func TestScreenStateCacheTakeIsOneShot(t *testing.T) {
	c := NewScreenStateCache()
	key := ScreenKey("client-1", "find-item")
	c.Put(key, ScreenState{Status: ScreenFailed, Message: "nope"})

	st, ok := c.Take(key)
	if !ok || st.Status != ScreenFailed || st.Message != "nope" {
		t.Fatalf("unexpected state: %+v ok=%v", st, ok)
	}
	if _, ok := c.Take(key); ok {
		t.Fatalf("expected state to be consumed")
	}
}

func TestScreenStateCacheDropsExpired(t *testing.T) {
	c := NewScreenStateCache()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Put("a|x", ScreenState{Status: ScreenSuccess})
	now = now.Add(ScreenStateTTL + time.Second)

	if _, ok := c.Take("a|x"); ok {
		t.Fatalf("expected expired state to be dropped")
	}
}

func TestScreenStateCacheClearClient(t *testing.T) {
	c := NewScreenStateCache()
	c.Put(ScreenKey("a", "login"), ScreenState{Status: ScreenFailed})
	c.Put(ScreenKey("a", "donate"), ScreenState{Status: ScreenSuccess})
	c.Put(ScreenKey("b", "login"), ScreenState{Status: ScreenFailed})

	c.ClearClient("a")

	if _, ok := c.Take(ScreenKey("a", "login")); ok {
		t.Fatalf("expected a|login cleared")
	}
	if _, ok := c.Take(ScreenKey("a", "donate")); ok {
		t.Fatalf("expected a|donate cleared")
	}
	if _, ok := c.Take(ScreenKey("b", "login")); !ok {
		t.Fatalf("expected b|login kept")
	}
}
