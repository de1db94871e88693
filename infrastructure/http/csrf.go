package http

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"net/url"
	"strings"

	sessioncontext "welcomehome/frontend/shared/context"
)

const csrfCookieName = "X-CSRF-Token"

// CSRFMiddleware checks the double-submit token on unsafe methods. Forms
// posted without the token are accepted only from the same origin. The token
// also keys the browser's screen state.
func (s *Server) CSRFMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, fresh := ensureCSRFToken(w, r)
		r = r.WithContext(sessioncontext.NewContextWithClientKey(r.Context(), token))
		if isSafeMethod(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		provided := strings.TrimSpace(r.Header.Get("X-CSRF-Token"))
		if provided == "" {
			provided = strings.TrimSpace(r.FormValue("_csrf"))
		}

		switch {
		case provided != "":
			if subtle.ConstantTimeCompare([]byte(token), []byte(provided)) != 1 {
				http.Error(w, "invalid csrf token", http.StatusForbidden)
				return
			}
		case fresh || !sameOrigin(r):
			http.Error(w, "invalid csrf token", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}

// sameOrigin reports whether Origin, or failing that Referer, names this host.
func sameOrigin(r *http.Request) bool {
	source := r.Header.Get("Origin")
	if source == "" || source == "null" {
		source = r.Header.Get("Referer")
	}
	if source == "" {
		return false
	}
	u, err := url.Parse(source)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

func ensureCSRFToken(w http.ResponseWriter, r *http.Request) (string, bool) {
	if c, err := r.Cookie(csrfCookieName); err == nil && strings.TrimSpace(c.Value) != "" {
		return c.Value, false
	}
	token := randomToken(32)
	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: false,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
	})
	return token, true
}

func randomToken(n int) string {
	buf := make([]byte, n)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
