package http

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"welcomehome/frontend/shared/shell/shelltest"
	sessioncookie "welcomehome/infrastructure/session"
)

type integrationEnv struct {
	server   *httptest.Server
	backend  *httptest.Server
	requests atomic.Int32
}

// fakeInventoryBackend answers like the inventory API for users ann (staff)
// and dee (donor), both with password "pw".
func (env *integrationEnv) fakeInventoryBackend(w http.ResponseWriter, r *http.Request) {
	env.requests.Add(1)
	w.Header().Set("Content-Type", "application/json")
	auth := r.Header.Get("Authorization")
	switch r.URL.Path {
	case "/login":
		_ = r.ParseForm()
		if r.PostForm.Get("password") != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Incorrect username or password"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"tok-` + r.PostForm.Get("username") + `"}`))
	case "/user-info":
		switch auth {
		case "Bearer tok-ann":
			_, _ = w.Write([]byte(`{"username":"ann","role":"staff"}`))
		case "Bearer tok-dee":
			_, _ = w.Write([]byte(`{"username":"dee","role":"donor"}`))
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	case "/donate":
		_, _ = w.Write([]byte(`{"item_id":"88"}`))
	case "/item/42":
		_, _ = w.Write([]byte(`{"pieces":[{"pieceNum":1,"pDescription":"leg","length":10,"width":2,"height":2,"roomNum":"A","shelfNum":"3","shelfDescription":"top"}]}`))
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Not found"}`))
	}
}

func setupIntegrationServer(t *testing.T) (*integrationEnv, *http.Client) {
	t.Helper()
	env := &integrationEnv{}
	env.backend = httptest.NewServer(http.HandlerFunc(env.fakeInventoryBackend))

	s := NewServer("127.0.0.1:0", shelltest.New(t, env.backend.URL))
	env.server = httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		env.server.Close()
		env.backend.Close()
	})

	return env, newHTTPClient(t)
}

func newHTTPClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func postForm(t *testing.T, client *http.Client, baseURL, path string, data url.Values) *http.Response {
	t.Helper()
	if data == nil {
		data = url.Values{}
	}
	if token := csrfToken(t, client, baseURL); token != "" {
		data.Set("_csrf", token)
	}
	resp, err := client.PostForm(baseURL+path, data)
	if err != nil {
		t.Fatalf("POST %s failed: %v", path, err)
	}
	return resp
}

func get(t *testing.T, client *http.Client, baseURL, path string) *http.Response {
	t.Helper()
	resp, err := client.Get(baseURL + path)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	return resp
}

func getBody(t *testing.T, client *http.Client, baseURL, path string) (int, string) {
	t.Helper()
	resp := get(t, client, baseURL, path)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read %s body: %v", path, err)
	}
	return resp.StatusCode, string(body)
}

func csrfToken(t *testing.T, client *http.Client, baseURL string) string {
	t.Helper()
	u, err := url.Parse(baseURL)
	if err != nil {
		t.Fatalf("parse base url: %v", err)
	}
	for _, c := range client.Jar.Cookies(u) {
		if c.Name == "X-CSRF-Token" {
			return c.Value
		}
	}
	return ""
}

func sessionCookie(t *testing.T, client *http.Client, baseURL string) string {
	t.Helper()
	u, _ := url.Parse(baseURL)
	for _, c := range client.Jar.Cookies(u) {
		if c.Name == sessioncookie.CookieName {
			return c.Value
		}
	}
	return ""
}

func loginAs(t *testing.T, client *http.Client, baseURL, username, password string) {
	t.Helper()

	resp := get(t, client, baseURL, "/login")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected login page 200, got %d", resp.StatusCode)
	}
	_ = resp.Body.Close()

	resp = postForm(t, client, baseURL, "/login", url.Values{
		"username": {username},
		"password": {password},
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/" {
		t.Fatalf("expected login redirect to /, got %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}
}

func TestCSRFPostWithoutTokenRejected(t *testing.T) {
	env, client := setupIntegrationServer(t)

	// No GET first: no CSRF token available in cookie or form.
	resp, err := client.PostForm(env.server.URL+"/login", url.Values{
		"username": {"ann"},
		"password": {"pw"},
	})
	if err != nil {
		t.Fatalf("post login: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for missing csrf, got %d", resp.StatusCode)
	}
	if env.requests.Load() != 0 {
		t.Fatalf("rejected post must not reach the backend")
	}
}

func TestCSRFPostWithTokenAccepted(t *testing.T) {
	env, client := setupIntegrationServer(t)
	loginAs(t, client, env.server.URL, "ann", "pw")
}

func TestCSRFPostWithoutToken_SameOriginRefererAccepted(t *testing.T) {
	env, client := setupIntegrationServer(t)
	_ = get(t, client, env.server.URL, "/find-item").Body.Close()

	req, err := http.NewRequest(http.MethodPost, env.server.URL+"/find-item", strings.NewReader("id=42"))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", env.server.URL+"/find-item")

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("post find item without csrf token: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected same-origin csrf fallback 303, got %d", resp.StatusCode)
	}
}

func TestCSRFPostWithoutToken_CrossOriginRejected(t *testing.T) {
	env, client := setupIntegrationServer(t)
	loginAs(t, client, env.server.URL, "ann", "pw")

	req, err := http.NewRequest(http.MethodPost, env.server.URL+"/logout", strings.NewReader(""))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Referer", "https://evil.example/attack")

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("post cross-origin request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for cross-origin missing csrf token, got %d", resp.StatusCode)
	}
}

func TestHealthAndNotFound(t *testing.T) {
	env, client := setupIntegrationServer(t)

	code, body := getBody(t, client, env.server.URL, "/health")
	if code != http.StatusOK || body != "ok" {
		t.Fatalf("unexpected health response %d %q", code, body)
	}

	code, body = getBody(t, client, env.server.URL, "/no/such/screen")
	if code != http.StatusNotFound || !strings.Contains(body, "404 - Page Not Found") {
		t.Fatalf("unexpected not found response %d %q", code, body)
	}

	code, body = getBody(t, client, env.server.URL, "/assets/app.js")
	if code != http.StatusOK || !strings.Contains(body, "data-toggles") {
		t.Fatalf("expected embedded app.js, got %d", code)
	}
}

func TestHomeFollowsLoggedInFlag(t *testing.T) {
	env, client := setupIntegrationServer(t)

	_, body := getBody(t, client, env.server.URL, "/")
	if !strings.Contains(body, `href="/register"`) || !strings.Contains(body, `href="/login"`) {
		t.Fatalf("expected register and login links, got %q", body)
	}
	if strings.Contains(body, "Logout") {
		t.Fatalf("logged-out home must not offer logout")
	}

	loginAs(t, client, env.server.URL, "ann", "pw")
	_, body = getBody(t, client, env.server.URL, "/")
	for _, want := range []string{`href="/donate"`, `href="/find-item"`, `href="/find-order"`, "Logout", "ann"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q on logged-in home, got %q", want, body)
		}
	}
}

func TestDonorDoesNotSeeDonateAction(t *testing.T) {
	env, client := setupIntegrationServer(t)
	loginAs(t, client, env.server.URL, "dee", "pw")

	_, body := getBody(t, client, env.server.URL, "/")
	if strings.Contains(body, `href="/donate"`) {
		t.Fatalf("donor must not be offered the donate action")
	}
	code, body := getBody(t, client, env.server.URL, "/donate")
	if code != http.StatusForbidden || !strings.Contains(body, "Go Home") {
		t.Fatalf("expected unauthorized screen, got %d", code)
	}
}

func TestStaleSessionCookieIsExpired(t *testing.T) {
	env, client := setupIntegrationServer(t)
	u, _ := url.Parse(env.server.URL)
	client.Jar.SetCookies(u, []*http.Cookie{{Name: sessioncookie.CookieName, Value: "gone", Path: "/"}})

	code, body := getBody(t, client, env.server.URL, "/")
	if code != http.StatusOK || !strings.Contains(body, `href="/login"`) {
		t.Fatalf("expected logged-out home, got %d", code)
	}
	if sessionCookie(t, client, env.server.URL) != "" {
		t.Fatalf("expected stale session cookie expired")
	}
}

func TestServerEndToEndCoreFlow(t *testing.T) {
	env, client := setupIntegrationServer(t)

	// Lookup before login stays local.
	_ = get(t, client, env.server.URL, "/find-item").Body.Close()
	before := env.requests.Load()
	resp := postForm(t, client, env.server.URL, "/find-item", url.Values{"id": {"42"}})
	_ = resp.Body.Close()
	_, body := getBody(t, client, env.server.URL, "/find-item")
	if !strings.Contains(body, "You must be logged in to access this feature.") {
		t.Fatalf("expected no-token message, got %q", body)
	}
	if env.requests.Load() != before {
		t.Fatalf("lookup without token reached the backend")
	}

	// Wrong password shows the backend detail.
	resp = postForm(t, client, env.server.URL, "/login", url.Values{"username": {"ann"}, "password": {"nope"}})
	_ = resp.Body.Close()
	_, body = getBody(t, client, env.server.URL, "/login")
	if !strings.Contains(body, "Incorrect username or password") {
		t.Fatalf("expected login failure detail, got %q", body)
	}

	loginAs(t, client, env.server.URL, "ann", "pw")
	if sessionCookie(t, client, env.server.URL) == "" {
		t.Fatalf("expected session cookie after login")
	}

	resp = postForm(t, client, env.server.URL, "/find-item", url.Values{"id": {"42"}})
	_ = resp.Body.Close()
	_, body = getBody(t, client, env.server.URL, "/find-item")
	if !strings.Contains(body, "Piece 1: leg (Dimensions: 10x2x2) - Room: A, Shelf: 3 (top)") {
		t.Fatalf("expected piece line, got %q", body)
	}

	resp = postForm(t, client, env.server.URL, "/donate", url.Values{
		"donor_username":   {"dee"},
		"item_description": {"Lamp"},
		"main_category":    {"Lighting"},
		"sub_category":     {"Floor"},
		"piece_count":      {"0"},
	})
	_ = resp.Body.Close()
	_, body = getBody(t, client, env.server.URL, "/donate")
	if !strings.Contains(body, "Donation accepted! Item ID: 88") {
		t.Fatalf("expected donation accepted, got %q", body)
	}

	resp = postForm(t, client, env.server.URL, "/logout", nil)
	_ = resp.Body.Close()
	if resp.Header.Get("Location") != "/" {
		t.Fatalf("expected logout redirect to /, got %q", resp.Header.Get("Location"))
	}
	if sessionCookie(t, client, env.server.URL) != "" {
		t.Fatalf("expected session cookie cleared")
	}
	_, body = getBody(t, client, env.server.URL, "/")
	if strings.Contains(body, "Logout") {
		t.Fatalf("expected logged-out home after logout")
	}
}
