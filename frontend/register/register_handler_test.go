package register

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"welcomehome/frontend/shared/shell/shelltest"
)

func registerForm() url.Values {
	return url.Values{
		"first_name": {"Ann"},
		"last_name":  {"Lee"},
		"username":   {"ann"},
		"password":   {"s3cret-pass"},
		"role":       {"donor"},
		"billAddr":   {"1 Main St"},
	}
}

func TestRegisterSuccessShowsMessageAndRedirectsHome(t *testing.T) {
	var got url.Values
	fake := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/register" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = r.ParseForm()
		got = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	}))
	t.Cleanup(fake.Close)

	sh := shelltest.New(t, fake.URL)
	sh.RegisterRedirectDelay = 2 * time.Second

	req := shelltest.NewRequest(http.MethodPost, "/register", registerForm())
	rr := httptest.NewRecorder()
	RegisterCommandHandler(sh).ServeHTTP(rr, req)

	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/register" {
		t.Fatalf("expected 303 to /register, got %d %q", rr.Code, rr.Header().Get("Location"))
	}
	if got.Get("first_name") != "Ann" || got.Get("billAddr") != "1 Main St" || got.Get("role") != "donor" {
		t.Fatalf("unexpected form sent to backend: %v", got)
	}

	page := shelltest.Follow(RegisterPageQueryHandler(sh), req, "/register")
	body := page.Body.String()
	if !strings.Contains(body, SuccessMessage) {
		t.Fatalf("expected success message, got %q", body)
	}
	if !strings.Contains(body, `content="2;url=/"`) {
		t.Fatalf("expected delayed redirect home, got %q", body)
	}
	if strings.Contains(body, `<form method="post" action="/register">`) {
		t.Fatalf("expected form hidden after success")
	}
}

func TestRegisterFailureShowsDetailAndKeepsDraft(t *testing.T) {
	fake := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"Username already registered"}`))
	}))
	t.Cleanup(fake.Close)
	sh := shelltest.New(t, fake.URL)

	req := shelltest.NewRequest(http.MethodPost, "/register", registerForm())
	RegisterCommandHandler(sh).ServeHTTP(httptest.NewRecorder(), req)

	body := shelltest.Follow(RegisterPageQueryHandler(sh), req, "/register").Body.String()
	if !strings.Contains(body, "Username already registered") {
		t.Fatalf("expected backend detail, got %q", body)
	}
	if !strings.Contains(body, `name="username" value="ann"`) {
		t.Fatalf("expected username kept, got %q", body)
	}
	if strings.Contains(body, "s3cret-pass") {
		t.Fatalf("password must not be echoed back")
	}
	if strings.Contains(body, "http-equiv=\"refresh\"") {
		t.Fatalf("failure must not redirect")
	}
}

func TestRegisterUnreachableBackendShowsGenericMessage(t *testing.T) {
	fake := httptest.NewServer(http.NotFoundHandler())
	addr := fake.URL
	fake.Close()
	sh := shelltest.New(t, addr)

	req := shelltest.NewRequest(http.MethodPost, "/register", registerForm())
	RegisterCommandHandler(sh).ServeHTTP(httptest.NewRecorder(), req)

	body := shelltest.Follow(RegisterPageQueryHandler(sh), req, "/register").Body.String()
	if !strings.Contains(body, "An unexpected error occurred. Please try again.") {
		t.Fatalf("expected transport message, got %q", body)
	}
}

func TestRegisterPageOffersEveryRole(t *testing.T) {
	var calls atomic.Int32
	fake := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	t.Cleanup(fake.Close)
	sh := shelltest.New(t, fake.URL)

	rr := httptest.NewRecorder()
	RegisterPageQueryHandler(sh).ServeHTTP(rr, shelltest.NewRequest(http.MethodGet, "/register", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	for _, role := range []string{"staff", "volunteer", "client", "donor"} {
		if !strings.Contains(rr.Body.String(), `<option value="`+role+`"`) {
			t.Fatalf("expected role option %q", role)
		}
	}
	if calls.Load() != 0 {
		t.Fatalf("rendering the screen must not call the backend")
	}
}

func TestRegisterSendsFieldsVerbatim(t *testing.T) {
	var got url.Values
	fake := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		got = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	}))
	t.Cleanup(fake.Close)
	sh := shelltest.New(t, fake.URL)

	form := registerForm()
	form.Set("first_name", " Ann ")
	form.Set("username", "ann ")
	form.Set("billAddr", "  1 Main St\n")
	req := shelltest.NewRequest(http.MethodPost, "/register", form)
	RegisterCommandHandler(sh).ServeHTTP(httptest.NewRecorder(), req)

	for _, field := range []string{"first_name", "username", "billAddr"} {
		if got.Get(field) != form.Get(field) {
			t.Fatalf("%s: expected %q sent unchanged, got %q", field, form.Get(field), got.Get(field))
		}
	}
}
