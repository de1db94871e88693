package cache

import (
	"sync"

	"welcomehome/models"
)

// UserCache keeps the last user info fetched at login, by session ID.
// It only feeds the navigation; screens that authorize re-fetch.
type UserCache struct {
	mu    sync.RWMutex
	users map[string]models.UserInfo
}

func NewUserCache() *UserCache {
	return &UserCache{users: make(map[string]models.UserInfo)}
}

func (c *UserCache) Add(sessionID string, info models.UserInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users[sessionID] = info
}

func (c *UserCache) Get(sessionID string) (models.UserInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	u, ok := c.users[sessionID]
	return u, ok
}

func (c *UserCache) Delete(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.users, sessionID)
}
