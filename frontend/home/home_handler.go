package home

import (
	"net/http"

	"github.com/dustin/go-humanize"

	"welcomehome/frontend/shared/shell"
)

var actionLinks = []Link{
	{Label: "Accept Donation", Href: "/donate"},
	{Label: "Find Item", Href: "/find-item"},
	{Label: "Find Order", Href: "/find-order"},
}

// HomePageQueryHandler renders the landing screen from the logged-in flag
// alone. The token is not re-validated here.
func HomePageQueryHandler(sh *shell.Shell) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := shell.Session(r)
		data := PageData{Nav: sh.Nav(r), LoggedIn: sess.LoggedIn()}
		if data.LoggedIn {
			data.Links = visibleLinks(sh, r)
			if !sess.CreatedAt.IsZero() {
				data.SignedInAgo = humanize.Time(sess.CreatedAt)
			}
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := HomePage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render home page", http.StatusInternalServerError)
			return
		}
	}
}

// visibleLinks hides actions the cached role cannot use. Without a cached
// role every action is offered and the screen decides.
func visibleLinks(sh *shell.Shell, r *http.Request) []Link {
	info, ok := sh.CachedUser(r)
	if !ok || info.Role == "" {
		return actionLinks
	}
	links := make([]Link, 0, len(actionLinks))
	for _, l := range actionLinks {
		if l.Href == "/donate" && !sh.Rbac.Allows(info.Role, http.MethodGet, l.Href) {
			continue
		}
		links = append(links, l)
	}
	return links
}

// NotFoundHandler renders the fallback screen for unmatched paths.
func NotFoundHandler(sh *shell.Shell) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_ = NotFoundPage(sh.Nav(r)).Render(r.Context(), w)
	}
}
