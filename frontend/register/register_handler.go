package register

import (
	"context"
	"net/http"

	"welcomehome/frontend/shared/shell"
	"welcomehome/infrastructure/backend"
	"welcomehome/infrastructure/cache"
	"welcomehome/infrastructure/rbac"
)

// RegisterPageQueryHandler renders the register screen with the outcome of
// the last submission, if any.
func RegisterPageQueryHandler(sh *shell.Shell) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st := sh.TakeScreen(r, shell.ScreenRegister)
		data := PageData{
			Nav:           sh.Nav(r),
			State:         st,
			Draft:         FormDraft{Role: rbac.RoleDonor},
			Roles:         rbac.Roles,
			RedirectDelay: sh.RegisterRedirectDelay,
		}
		if d, ok := st.Draft.(FormDraft); ok {
			data.Draft = d
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := RegisterPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render register screen", http.StatusInternalServerError)
			return
		}
	}
}

// RegisterCommandHandler submits the registration to the backend and
// redirects back to the screen.
func RegisterCommandHandler(sh *shell.Shell) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form data", http.StatusBadRequest)
			return
		}

		reg := backend.Registration{
			FirstName: r.FormValue("first_name"),
			LastName:  r.FormValue("last_name"),
			Username:  r.FormValue("username"),
			Password:  r.FormValue("password"),
			Role:      r.FormValue("role"),
			BillAddr:  r.FormValue("billAddr"),
		}
		draft := FormDraft{
			FirstName: reg.FirstName,
			LastName:  reg.LastName,
			Username:  reg.Username,
			Role:      reg.Role,
			BillAddr:  reg.BillAddr,
		}

		sh.Submit(r, shell.ScreenRegister, func(ctx context.Context) cache.ScreenState {
			if err := sh.Backend.Register(ctx, reg); err != nil {
				st := shell.Failed(err)
				st.Draft = draft
				return st
			}
			return cache.ScreenState{Status: cache.ScreenSuccess, Message: SuccessMessage}
		})
		http.Redirect(w, r, "/register", http.StatusSeeOther)
	}
}
