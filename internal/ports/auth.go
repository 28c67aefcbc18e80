// Package ports defines interfaces (hexagonal ports) used by the service layer.
// Implementations live in internal/adapters and internal/data; orchestration in internal/service.
package ports

import (
	"context"
	"time"

	domainauth "github.com/ayabeauty/storefront/internal/domain/auth"
)

// TokenStore tracks issued admin session tokens.
// A token is valid iff it was issued, has not been revoked, and has not expired.
type TokenStore interface {
	// Issue creates a new random token, records it as valid and returns its session record.
	Issue(ctx context.Context) (domainauth.Session, error)
	// Revoke removes the token. Revoking an unknown or empty token is a no-op.
	Revoke(ctx context.Context, token string) error
	// IsValid reports whether the token is currently valid.
	IsValid(ctx context.Context, token string) (bool, error)
	// Lookup returns the session record of a valid token, or domainauth.ErrSessionNotFound.
	Lookup(ctx context.Context, token string) (domainauth.Session, error)
}

// LimitDecision is the outcome of a rate limiter query.
type LimitDecision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// LoginLimiter throttles failed login attempts per client key.
type LoginLimiter interface {
	Allow(ctx context.Context, key string) (LimitDecision, error)
	RecordFailure(ctx context.Context, key string) (LimitDecision, error)
	Reset(ctx context.Context, key string) error
}
