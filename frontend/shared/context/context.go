package context

import (
	"context"

	"welcomehome/models"
)

type sessionKey struct{}

type clientKey struct{}

func NewContextWithSession(ctx context.Context, session models.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetSessionFromContext returns the resolved session. ok is false when the
// browser holds no session; callers decide what that means.
func GetSessionFromContext(ctx context.Context) (models.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(models.Session)
	return s, ok
}

// NewContextWithClientKey stores the per-browser key used for screen state.
func NewContextWithClientKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, clientKey{}, key)
}

func GetClientKeyFromContext(ctx context.Context) string {
	k, _ := ctx.Value(clientKey{}).(string)
	return k
}
