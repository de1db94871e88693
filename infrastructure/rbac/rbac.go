package rbac

import (
	"net/http"
	"strings"

	"welcomehome/infrastructure/cache"
)

// Roles accepted by the backend at registration.
const (
	RoleStaff     = "staff"
	RoleVolunteer = "volunteer"
	RoleClient    = "client"
	RoleDonor     = "donor"
)

var Roles = []string{RoleStaff, RoleVolunteer, RoleClient, RoleDonor}

func ValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Rbac stores route resources in cache.
//
// The checks made with it decide what a screen renders. The backend makes
// the real authorization decision on every request.
type Rbac struct {
	cache *cache.RbacRolesCache
}

func New(c *cache.RbacRolesCache) *Rbac {
	return &Rbac{cache: c}
}

func (r *Rbac) Add(role, code, method, path string) {
	if r == nil || r.cache == nil {
		return
	}
	r.cache.Add(role, cache.Resource{
		Role:             role,
		UserResourceCode: code,
		Method:           strings.ToUpper(method),
		Path:             path,
	})
}

// AddDonationRules lets staff use the donation screen and its labels.
func (r *Rbac) AddDonationRules() {
	r.Add(RoleStaff, "DONATE_VIEW", http.MethodGet, "/donate")
	r.Add(RoleStaff, "DONATE_SUBMIT", http.MethodPost, "/donate")
	r.Add(RoleStaff, "DONATE_LABEL", http.MethodGet, "/donate/*/label")
}

// Allows reports whether role may use method on urlPath.
func (r *Rbac) Allows(role, method, urlPath string) bool {
	if r == nil || r.cache == nil || role == "" {
		return false
	}
	return ValidateResourceAccess(r.cache.GetRoleResources(role), urlPath, method)
}

func ValidateResourceAccess(resources []cache.Resource, urlPath, method string) bool {
	method = strings.ToUpper(method)
	for _, res := range resources {
		if res.Method != method {
			continue
		}
		if matchPath(res.Path, urlPath) {
			return true
		}
	}
	return false
}

func matchPath(pattern, path string) bool {
	if pattern == path {
		return true
	}

	pattern = strings.Trim(pattern, "/")
	path = strings.Trim(path, "/")

	patternSeg := strings.Split(pattern, "/")
	pathSeg := strings.Split(path, "/")

	// Segment wildcard matching: /a/*/c and /a/*/*/d.
	if len(patternSeg) == len(pathSeg) {
		for i := range patternSeg {
			if patternSeg[i] == "*" {
				continue
			}
			if patternSeg[i] != pathSeg[i] {
				return false
			}
		}
		return true
	}

	// Prefix wildcard matching: /a/b/* should match any deeper suffix.
	if len(patternSeg) > 0 && patternSeg[len(patternSeg)-1] == "*" {
		prefix := "/" + strings.Join(patternSeg[:len(patternSeg)-1], "/")
		return strings.HasPrefix("/"+path, prefix+"/") || "/"+path == prefix
	}

	return false
}
