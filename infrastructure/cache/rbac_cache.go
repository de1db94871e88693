package cache

import "sync"

// Resource maps a role to a screen action it may use.
type Resource struct {
	UserResourceCode string
	Path             string
	Method           string
	Role             string
}

// RbacRolesCache stores role to resources map.
type RbacRolesCache struct {
	mu        sync.RWMutex
	resources map[string][]Resource
}

func NewRbacRolesCache() *RbacRolesCache {
	return &RbacRolesCache{
		resources: make(map[string][]Resource),
	}
}

func (c *RbacRolesCache) Add(role string, r Resource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resources[role] = append(c.resources[role], r)
}

func (c *RbacRolesCache) GetRoleResources(role string) []Resource {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Resource, len(c.resources[role]))
	copy(out, c.resources[role])
	return out
}
