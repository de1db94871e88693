package login

import (
	"net/http"

	"welcomehome/frontend/shared/shell"
)

// GetLoginScreenHandler renders the login screen. A browser that already
// holds a token is sent home.
func GetLoginScreenHandler(sh *shell.Shell) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if shell.LoggedIn(r) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		st := sh.TakeScreen(r, shell.ScreenLogin)
		data := PageData{Nav: sh.Nav(r), State: st}
		if username, ok := st.Draft.(string); ok {
			data.Username = username
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := GetLoginScreen(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render login screen", http.StatusInternalServerError)
			return
		}
	}
}
