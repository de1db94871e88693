package donate

import (
	"context"
	"log/slog"
	"net/http"

	"welcomehome/frontend/shared/shell"
	"welcomehome/infrastructure/cache"
)

// authorize fetches the caller's role and checks it against the role table
// for this request. Any failure means no access.
func authorize(sh *shell.Shell, r *http.Request) bool {
	sess := shell.Session(r)
	if !sess.LoggedIn() {
		return false
	}
	info, err := sh.Backend.UserInfo(r.Context(), sess.AccessToken)
	if err != nil {
		slog.Warn("user info for authorization failed", slog.Any("err", err))
		return false
	}
	sh.Users.Add(sess.ID, info)
	return sh.Rbac.Allows(info.Role, r.Method, r.URL.Path)
}

// GetDonateScreenHandler renders the donation form for staff, otherwise the
// unauthorized screen.
func GetDonateScreenHandler(sh *shell.Shell) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authorize(sh, r) {
			renderUnauthorized(w, r, sh)
			return
		}

		st := sh.TakeScreen(r, shell.ScreenDonate)
		data := PageData{Nav: sh.Nav(r), Authorized: true, State: st, Draft: NewDraft()}
		if d, ok := st.Draft.(Draft); ok {
			data.Draft = d
		}
		if id, ok := st.Result.(string); ok && st.Status == cache.ScreenSuccess {
			data.ItemID = id
		}
		render(w, r, data)
	}
}

// CreateDonationHandler either adds a blank piece to the posted draft or
// submits the draft to the backend.
func CreateDonationHandler(sh *shell.Shell) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form data", http.StatusBadRequest)
			return
		}
		if !authorize(sh, r) {
			renderUnauthorized(w, r, sh)
			return
		}

		draft := ParseDraft(r.PostForm)
		if r.PostForm.Get("action") == "add_piece" {
			draft.AddPiece()
			render(w, r, PageData{
				Nav:        sh.Nav(r),
				Authorized: true,
				State:      cache.ScreenState{Status: cache.ScreenIdle},
				Draft:      draft,
			})
			return
		}

		token := shell.Session(r).AccessToken
		sh.Submit(r, shell.ScreenDonate, func(ctx context.Context) cache.ScreenState {
			itemID, err := sh.Backend.Donate(ctx, token, draft.Donation)
			if err != nil {
				st := shell.Failed(err)
				st.Draft = draft
				return st
			}
			return cache.ScreenState{Status: cache.ScreenSuccess, Message: SuccessPrefix + itemID, Result: itemID}
		})
		http.Redirect(w, r, "/donate", http.StatusSeeOther)
	}
}

func render(w http.ResponseWriter, r *http.Request, data PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := DonatePage(data).Render(r.Context(), w); err != nil {
		http.Error(w, "failed to render donate screen", http.StatusInternalServerError)
		return
	}
}

func renderUnauthorized(w http.ResponseWriter, r *http.Request, sh *shell.Shell) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)
	_ = UnauthorizedPage(sh.Nav(r)).Render(r.Context(), w)
}
