package login

import (
	"net/http"

	"welcomehome/frontend/shared/shell"
)

// LogoutHandler forgets the token and returns to the home screen.
func LogoutHandler(sh *shell.Shell) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sh.Logout(w, r)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
