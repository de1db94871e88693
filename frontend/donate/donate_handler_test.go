package donate

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"

	"welcomehome/frontend/shared/shell/shelltest"
	"welcomehome/infrastructure/backend"
)

type fakeBackend struct {
	srv     *httptest.Server
	donated atomic.Pointer[url.Values]
	donates atomic.Int32
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	f := &fakeBackend{}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/user-info":
			switch r.Header.Get("Authorization") {
			case "Bearer staff-token":
				_, _ = w.Write([]byte(`{"username":"sam","role":"staff"}`))
			case "Bearer donor-token":
				_, _ = w.Write([]byte(`{"username":"dee","role":"donor"}`))
			default:
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"detail":"Could not validate credentials"}`))
			}
		case r.URL.Path == "/donate":
			f.donates.Add(1)
			_ = r.ParseForm()
			form := r.PostForm
			f.donated.Store(&form)
			if form.Get("item_description") == "reject me" {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"detail":"Invalid category"}`))
				return
			}
			_, _ = w.Write([]byte(`{"item_id":57}`))
		case r.URL.Path == "/item/57":
			_, _ = w.Write([]byte(`{"pieces":[{"pieceNum":1,"pDescription":"Frame","roomNum":2,"shelfNum":4}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func validDonationForm() url.Values {
	return url.Values{
		"donor_username":    {"dee"},
		"item_description":  {"Oak table"},
		"color":             {"brown"},
		"is_new":            {"true"},
		"material":          {"wood"},
		"main_category":     {"Furniture"},
		"sub_category":      {"Table"},
		"piece_count":       {"1"},
		"pieces.0.pieceNum": {"1"},
		"pieces.0.length":   {"120"},
		"action":            {"submit"},
	}
}

func TestGetDonateScreenHandler_RoleGate(t *testing.T) {
	f := newFakeBackend(t)
	sh := shelltest.New(t, f.srv.URL)

	tests := []struct {
		name       string
		token      string
		wantStatus int
		wantText   string
	}{
		{name: "logged out", token: "", wantStatus: http.StatusForbidden, wantText: "Go Home"},
		{name: "donor", token: "donor-token", wantStatus: http.StatusForbidden, wantText: "Go Home"},
		{name: "user info rejected", token: "expired-token", wantStatus: http.StatusForbidden, wantText: "Go Home"},
		{name: "staff", token: "staff-token", wantStatus: http.StatusOK, wantText: `name="donor_username"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := shelltest.NewRequest(http.MethodGet, "/donate", nil)
			if tt.token != "" {
				req = shelltest.LogIn(t, sh, req, tt.token, "")
			}
			rr := httptest.NewRecorder()
			GetDonateScreenHandler(sh).ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rr.Code)
			}
			if !strings.Contains(rr.Body.String(), tt.wantText) {
				t.Fatalf("expected %q in body", tt.wantText)
			}
			if tt.wantStatus == http.StatusForbidden && strings.Contains(rr.Body.String(), "<form") {
				t.Fatalf("unauthorized screen must not render the form")
			}
		})
	}
}

func TestCreateDonationHandler_AddPieceDoesNotSubmit(t *testing.T) {
	f := newFakeBackend(t)
	sh := shelltest.New(t, f.srv.URL)

	form := validDonationForm()
	form.Set("action", "add_piece")
	req := shelltest.LogIn(t, sh, shelltest.NewRequest(http.MethodPost, "/donate", form), "staff-token", "")
	rr := httptest.NewRecorder()
	CreateDonationHandler(sh).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if f.donates.Load() != 0 {
		t.Fatalf("adding a piece must not submit the donation")
	}
	body := rr.Body.String()
	if !strings.Contains(body, `name="piece_count" value="2"`) {
		t.Fatalf("expected two pieces in draft, got %q", body)
	}
	if !strings.Contains(body, `name="pieces.0.length" value="120"`) {
		t.Fatalf("expected first piece kept")
	}
	if !strings.Contains(body, `value="Oak table"`) {
		t.Fatalf("expected flat fields kept")
	}
}

func TestCreateDonationHandler_SubmitSuccess(t *testing.T) {
	f := newFakeBackend(t)
	sh := shelltest.New(t, f.srv.URL)

	req := shelltest.LogIn(t, sh, shelltest.NewRequest(http.MethodPost, "/donate", validDonationForm()), "staff-token", "")
	rr := httptest.NewRecorder()
	CreateDonationHandler(sh).ServeHTTP(rr, req)

	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/donate" {
		t.Fatalf("expected 303 to /donate, got %d", rr.Code)
	}
	sent := f.donated.Load()
	if sent == nil {
		t.Fatalf("expected donation sent")
	}
	if sent.Get("has_pieces") != "false" || sent.Get("is_new") != "true" {
		t.Fatalf("unexpected flags: %v", *sent)
	}
	var pieces []backend.DonationPiece
	if err := json.Unmarshal([]byte(sent.Get("piece_data")), &pieces); err != nil {
		t.Fatalf("decode piece_data: %v", err)
	}
	if len(pieces) != 1 || pieces[0].Length != "120" {
		t.Fatalf("expected hidden piece still sent, got %+v", pieces)
	}

	page := shelltest.Follow(GetDonateScreenHandler(sh), req, "/donate")
	body := page.Body.String()
	if !strings.Contains(body, "Donation accepted! Item ID: 57") {
		t.Fatalf("expected success message, got %q", body)
	}
	if !strings.Contains(body, `href="/donate/57/label"`) {
		t.Fatalf("expected label link")
	}
}

func TestCreateDonationHandler_RejectedKeepsDraft(t *testing.T) {
	f := newFakeBackend(t)
	sh := shelltest.New(t, f.srv.URL)

	form := validDonationForm()
	form.Set("item_description", "reject me")
	req := shelltest.LogIn(t, sh, shelltest.NewRequest(http.MethodPost, "/donate", form), "staff-token", "")
	CreateDonationHandler(sh).ServeHTTP(httptest.NewRecorder(), req)

	body := shelltest.Follow(GetDonateScreenHandler(sh), req, "/donate").Body.String()
	if !strings.Contains(body, "Invalid category") {
		t.Fatalf("expected backend detail, got %q", body)
	}
	if !strings.Contains(body, `name="pieces.0.length" value="120"`) {
		t.Fatalf("expected draft kept after failure")
	}
}

func TestCreateDonationHandler_NonStaffCannotSubmit(t *testing.T) {
	f := newFakeBackend(t)
	sh := shelltest.New(t, f.srv.URL)

	req := shelltest.LogIn(t, sh, shelltest.NewRequest(http.MethodPost, "/donate", validDonationForm()), "donor-token", "")
	rr := httptest.NewRecorder()
	CreateDonationHandler(sh).ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}
	if f.donates.Load() != 0 {
		t.Fatalf("donation must not be sent")
	}
}

func TestDonationLabelHandler_ServesPDF(t *testing.T) {
	f := newFakeBackend(t)
	sh := shelltest.New(t, f.srv.URL)

	r := chi.NewRouter()
	r.Get("/donate/{id}/label", DonationLabelHandler(sh))

	req := shelltest.LogIn(t, sh, shelltest.NewRequest(http.MethodGet, "/donate/57/label", nil), "staff-token", "")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if rr.Header().Get("Content-Type") != "application/pdf" {
		t.Fatalf("expected pdf, got %q", rr.Header().Get("Content-Type"))
	}
	if !bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("expected pdf body")
	}
	if !strings.Contains(rr.Header().Get("Content-Disposition"), "I00000057") {
		t.Fatalf("unexpected disposition %q", rr.Header().Get("Content-Disposition"))
	}
}

func TestDonationLabelHandler_RejectsNonNumericID(t *testing.T) {
	f := newFakeBackend(t)
	sh := shelltest.New(t, f.srv.URL)

	r := chi.NewRouter()
	r.Get("/donate/{id}/label", DonationLabelHandler(sh))

	for _, id := range []string{"abc", "%C3%A9", "-3", "12x"} {
		req := shelltest.LogIn(t, sh, shelltest.NewRequest(http.MethodGet, "/donate/"+id+"/label", nil), "staff-token", "")
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Fatalf("id %q: expected 400, got %d", id, rr.Code)
		}
		if rr.Header().Get("Content-Disposition") != "" {
			t.Fatalf("id %q: no label expected", id)
		}
	}
}
