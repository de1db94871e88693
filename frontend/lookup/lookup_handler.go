package lookup

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"welcomehome/frontend/shared/shell"
	"welcomehome/infrastructure/backend"
	"welcomehome/infrastructure/cache"
)

// fetchFunc loads the result for one identifier.
type fetchFunc func(ctx context.Context, token string, id int64) (any, error)

func FindItemPageQueryHandler(sh *shell.Shell) http.HandlerFunc {
	return pageQueryHandler(sh, findItemScreen)
}

func FindOrderPageQueryHandler(sh *shell.Shell) http.HandlerFunc {
	return pageQueryHandler(sh, findOrderScreen)
}

// FindItemCommandHandler looks up the pieces of one item.
func FindItemCommandHandler(sh *shell.Shell) http.HandlerFunc {
	return commandHandler(sh, findItemScreen, func(ctx context.Context, token string, id int64) (any, error) {
		return sh.Backend.Item(ctx, token, id)
	})
}

// FindOrderCommandHandler looks up the items of one order.
func FindOrderCommandHandler(sh *shell.Shell) http.HandlerFunc {
	return commandHandler(sh, findOrderScreen, func(ctx context.Context, token string, id int64) (any, error) {
		return sh.Backend.Order(ctx, token, id)
	})
}

func pageQueryHandler(sh *shell.Shell, screen lookupScreen) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st := sh.TakeScreen(r, screen.Key)
		data := PageData{Nav: sh.Nav(r), Screen: screen, State: st}
		if input, ok := st.Draft.(string); ok {
			data.Input = input
		}
		switch result := st.Result.(type) {
		case []backend.Piece:
			data.Pieces = result
		case []backend.OrderItem:
			data.Items = result
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := LookupPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render lookup screen", http.StatusInternalServerError)
			return
		}
	}
}

// commandHandler checks the token before anything else so that no request
// leaves without one. Every submission replaces the previous outcome.
func commandHandler(sh *shell.Shell, screen lookupScreen, fetch fetchFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form data", http.StatusBadRequest)
			return
		}
		input := strings.TrimSpace(r.FormValue("id"))
		token := shell.Session(r).AccessToken

		sh.Submit(r, screen.Key, func(ctx context.Context) cache.ScreenState {
			st := lookup(ctx, fetch, token, input)
			st.Draft = input
			return st
		})
		http.Redirect(w, r, screen.Path, http.StatusSeeOther)
	}
}

func lookup(ctx context.Context, fetch fetchFunc, token, input string) cache.ScreenState {
	if token == "" {
		return shell.Failed(backend.ErrNoToken)
	}
	id, err := strconv.ParseInt(input, 10, 64)
	if err != nil {
		return cache.ScreenState{Status: cache.ScreenFailed, Message: InvalidIDMessage}
	}
	result, err := fetch(ctx, token, id)
	if err != nil {
		return shell.Failed(err)
	}
	return cache.ScreenState{Status: cache.ScreenSuccess, Result: result}
}
