package login

import (
	"context"
	"log/slog"
	"net/http"

	"welcomehome/frontend/shared/shell"
	"welcomehome/infrastructure/backend"
	"welcomehome/infrastructure/cache"
)

// CreateLoginHandler exchanges the credentials for a token and, when this is
// the newest attempt, starts the session and sends the browser home.
func CreateLoginHandler(sh *shell.Shell) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form data", http.StatusBadRequest)
			return
		}
		username := r.FormValue("username")
		password := r.FormValue("password")

		var token string
		st, kept := sh.Submit(r, shell.ScreenLogin, func(ctx context.Context) cache.ScreenState {
			var err error
			token, err = sh.Backend.Login(ctx, username, password)
			if err != nil {
				st := shell.Failed(err)
				st.Draft = username
				return st
			}
			return cache.ScreenState{Status: cache.ScreenSuccess}
		})
		if !kept || st.Status != cache.ScreenSuccess {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		// The outcome is shown by navigating away, not on this screen.
		sh.TakeScreen(r, shell.ScreenLogin)
		if _, err := sh.Login(w, r, token); err != nil {
			slog.Error("store session failed", slog.Any("err", err))
			sh.PutScreen(r, shell.ScreenLogin, cache.ScreenState{
				Status:  cache.ScreenFailed,
				Message: backend.TransportMessage,
				Draft:   username,
			})
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
