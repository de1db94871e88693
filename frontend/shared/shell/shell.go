package shell

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sessioncontext "welcomehome/frontend/shared/context"
	"welcomehome/frontend/shared/nav"
	"welcomehome/infrastructure/backend"
	"welcomehome/infrastructure/cache"
	"welcomehome/infrastructure/inflight"
	"welcomehome/infrastructure/rbac"
	sessioncookie "welcomehome/infrastructure/session"
	"welcomehome/models"
)

// Screen names used as screen-state keys.
const (
	ScreenRegister  = "register"
	ScreenLogin     = "login"
	ScreenDonate    = "donate"
	ScreenFindItem  = "find-item"
	ScreenFindOrder = "find-order"
)

// Shell is what screens share: the session, the backend, and the login and
// logout callbacks.
type Shell struct {
	Sessions *sessioncookie.Store
	Users    *cache.UserCache
	Screens  *cache.ScreenStateCache
	Tracker  *inflight.Tracker
	Backend  *backend.Client
	Rbac     *rbac.Rbac

	CookieMaxAge          int
	RegisterRedirectDelay time.Duration
}

// Session returns the request's session. The zero session is logged out.
func Session(r *http.Request) models.Session {
	s, _ := sessioncontext.GetSessionFromContext(r.Context())
	return s
}

// LoggedIn is derived from token presence only.
func LoggedIn(r *http.Request) bool {
	return Session(r).LoggedIn()
}

// Login stores token under a fresh session ID and sets the session cookie.
func (s *Shell) Login(w http.ResponseWriter, r *http.Request, token string) (models.Session, error) {
	if old := Session(r); old.ID != "" {
		s.forget(r.Context(), old.ID)
	}

	sess, err := s.Sessions.Set(r.Context(), sessioncookie.NewID(), token)
	if err != nil {
		return models.Session{}, err
	}
	http.SetCookie(w, sessioncookie.SessionCookie(sess.ID, s.CookieMaxAge))
	s.refreshUserInfo(r.Context(), sess)
	return sess, nil
}

// Logout clears the stored token, cached user info and screen state.
func (s *Shell) Logout(w http.ResponseWriter, r *http.Request) {
	if sess := Session(r); sess.ID != "" {
		s.forget(r.Context(), sess.ID)
	} else if c, err := r.Cookie(sessioncookie.CookieName); err == nil && c.Value != "" {
		s.forget(r.Context(), c.Value)
	}
	if client := sessioncontext.GetClientKeyFromContext(r.Context()); client != "" {
		s.Screens.ClearClient(client)
	}
	http.SetCookie(w, sessioncookie.SessionCookie("", -1))
}

func (s *Shell) forget(ctx context.Context, sessionID string) {
	s.Users.Delete(sessionID)
	if err := s.Sessions.Clear(ctx, sessionID); err != nil {
		slog.Error("clear session failed", slog.Any("err", err))
	}
}

// refreshUserInfo feeds the navigation. Failures only cost the role badge.
func (s *Shell) refreshUserInfo(ctx context.Context, sess models.Session) {
	info, err := s.Backend.UserInfo(ctx, sess.AccessToken)
	if err != nil {
		slog.Warn("user info refresh after login failed", slog.Any("err", err))
		return
	}
	s.Users.Add(sess.ID, info)
}

// CachedUser returns the user info fetched at login, if any.
func (s *Shell) CachedUser(r *http.Request) (models.UserInfo, bool) {
	sess := Session(r)
	if !sess.LoggedIn() {
		return models.UserInfo{}, false
	}
	return s.Users.Get(sess.ID)
}

// Nav builds the top navigation for the request.
func (s *Shell) Nav(r *http.Request) nav.TopNavData {
	info, _ := s.CachedUser(r)
	return nav.BuildTopNavData(Session(r), info)
}

func screenKey(r *http.Request, screen string) string {
	return cache.ScreenKey(sessioncontext.GetClientKeyFromContext(r.Context()), screen)
}

// Submit runs fn as the newest submission on screen. A submission started
// later for the same browser and screen cancels fn's context, and only the
// newest outcome is kept. The returned bool reports whether st was kept.
func (s *Shell) Submit(r *http.Request, screen string, fn func(ctx context.Context) cache.ScreenState) (cache.ScreenState, bool) {
	key := screenKey(r, screen)
	ticket := s.Tracker.Begin(r.Context(), key)
	defer ticket.Done()

	st := fn(ticket.Context())
	kept := ticket.Commit(func() {
		s.Screens.Put(key, st)
	})
	if !kept {
		slog.Info("discarded superseded submission", slog.String("screen", screen), slog.Uint64("generation", ticket.Generation()))
	}
	return st, kept
}

// TakeScreen returns the state to render for screen. The outcome of a
// finished submission is returned once; while one is running the state is
// Submitting; otherwise Idle.
func (s *Shell) TakeScreen(r *http.Request, screen string) cache.ScreenState {
	key := screenKey(r, screen)
	if st, ok := s.Screens.Take(key); ok {
		return st
	}
	if s.Tracker.InFlight(key) {
		return cache.ScreenState{Status: cache.ScreenSubmitting}
	}
	return cache.ScreenState{Status: cache.ScreenIdle}
}

// PutScreen records st as the outcome to show on screen.
func (s *Shell) PutScreen(r *http.Request, screen string, st cache.ScreenState) {
	s.Screens.Put(screenKey(r, screen), st)
}

// Failed builds the failure state for err.
func Failed(err error) cache.ScreenState {
	return cache.ScreenState{Status: cache.ScreenFailed, Message: backend.UserMessage(err)}
}
