package session

import (
	"net/http"

	"github.com/google/uuid"
)

const CookieName = "X-Session-Token"

// DefaultMaxAge keeps the cookie across browser restarts, like local storage.
const DefaultMaxAge = 30 * 24 * 60 * 60

func SessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   false,
	}
}

// NewID returns a fresh random session ID.
func NewID() string {
	return uuid.NewString()
}
