package httpx

import (
	"context"

	domainauth "github.com/ayabeauty/storefront/internal/domain/auth"
)

// sessionKey is an unexported context key type to avoid collisions across packages.
type sessionKey struct{}

// SetSessionInContext returns a child context that carries the given session.
// If session is nil, the original ctx is returned unchanged.
func SetSessionInContext(ctx context.Context, session *domainauth.Session) context.Context {
	if session == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetSessionFromContext returns the admin session placed by the gate middleware, if any.
func GetSessionFromContext(ctx context.Context) (*domainauth.Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(*domainauth.Session)
	return session, ok && session != nil
}
