package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Session ties a browser session cookie to the backend bearer token it holds.
//
// Only the lookup key and the sealed token are persisted. ID and AccessToken
// are filled in when a session is resolved for a request.
type Session struct {
	bun.BaseModel `bun:"table:sessions,alias:s"`

	LookupKey   string    `bun:"lookup_key,pk"`
	SealedToken []byte    `bun:"sealed_token,notnull"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp"`

	ID          string `bun:"-"`
	AccessToken string `bun:"-"`
}

// LoggedIn reports whether the session currently holds a bearer token.
// It is the only source of the "logged in" flag.
func (s Session) LoggedIn() bool {
	return s.AccessToken != ""
}

// UserInfo is the backend's description of the user behind a token.
type UserInfo struct {
	Username string         `json:"username,omitempty"`
	Role     string         `json:"role"`
	Extra    map[string]any `json:"-"`
}
