// Package shelltest builds a Shell wired to in-memory stores for handler tests.
package shelltest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	sessioncontext "welcomehome/frontend/shared/context"
	"welcomehome/frontend/shared/shell"
	"welcomehome/infrastructure/backend"
	"welcomehome/infrastructure/cache"
	"welcomehome/infrastructure/inflight"
	"welcomehome/infrastructure/rbac"
	"welcomehome/infrastructure/seal"
	"welcomehome/infrastructure/session"
	"welcomehome/models"
)

const ClientKey = "test-client"

var sealParams = &seal.Params{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, Salt: "shelltest"}

// New returns a Shell talking to the backend at backendURL. Staff may use the
// donation screen.
func New(t *testing.T, backendURL string) *shell.Shell {
	t.Helper()

	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rc.Close() })

	sealer, err := seal.New("shelltest-secret", sealParams)
	if err != nil {
		t.Fatalf("new sealer: %v", err)
	}
	client, err := backend.New(backendURL,
		backend.WithHTTPClient(&http.Client{}),
		backend.WithTimeout(5*time.Second),
	)
	if err != nil {
		t.Fatalf("new backend client: %v", err)
	}

	r := rbac.New(cache.NewRbacRolesCache())
	r.AddDonationRules()

	return &shell.Shell{
		Sessions:     session.NewStore(session.NewRedisBackend(rc), sealer, nil),
		Users:        cache.NewUserCache(),
		Screens:      cache.NewScreenStateCache(),
		Tracker:      inflight.NewTracker(),
		Backend:      client,
		Rbac:         r,
		CookieMaxAge: session.DefaultMaxAge,
	}
}

// NewRequest builds a request carrying the test client key. A non-nil form is
// sent url-encoded.
func NewRequest(method, target string, form url.Values) *http.Request {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return req.WithContext(sessioncontext.NewContextWithClientKey(req.Context(), ClientKey))
}

// LogIn stores token in a new session and attaches it to req. A non-empty
// role is cached as the user's role.
func LogIn(t *testing.T, sh *shell.Shell, req *http.Request, token, role string) *http.Request {
	t.Helper()
	sess, err := sh.Sessions.Set(context.Background(), session.NewID(), token)
	if err != nil {
		t.Fatalf("set session: %v", err)
	}
	if role != "" {
		sh.Users.Add(sess.ID, models.UserInfo{Username: "tester", Role: role})
	}
	return req.WithContext(sessioncontext.NewContextWithSession(req.Context(), sess))
}

// Follow renders the GET side of a post/redirect/get round trip.
func Follow(h http.Handler, post *http.Request, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil).WithContext(post.Context())
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}
