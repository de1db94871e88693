package cache

import (
	"sync"

	"welcomehome/models"
)

// UserSessionCache stores resolved sessions by lookup key.
type UserSessionCache struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

func NewUserSessionCache() *UserSessionCache {
	return &UserSessionCache{sessions: make(map[string]models.Session)}
}

func (c *UserSessionCache) AddSession(s models.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions[s.LookupKey] = s
}

func (c *UserSessionCache) FindSession(lookupKey string) (models.Session, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.sessions[lookupKey]
	return s, ok
}

func (c *UserSessionCache) DeleteSession(lookupKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, lookupKey)
}
