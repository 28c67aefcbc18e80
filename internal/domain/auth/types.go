// Package auth contains domain-level types for the admin session subsystem.
// It is pure and free of framework/adapter concerns.
package auth

import (
	"errors"
	"time"
)

const (
	// CookieName is the name of the cookie that carries the admin session token.
	CookieName = "admin_session"

	// DefaultSessionTTL matches the cookie Max-Age of one day.
	DefaultSessionTTL = 24 * time.Hour

	// TokenBytes is the number of random bytes behind every session token.
	TokenBytes = 32
)

var (
	// ErrInvalidCredentials is returned when the submitted password does not match the admin secret.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSessionNotFound is returned when a token is not present in the store or has expired.
	ErrSessionNotFound = errors.New("session not found")
)

// Session is the server-side record behind an issued admin token.
// Token is an opaque hex string; it carries no claims.
type Session struct {
	Token     string    `json:"token"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at the given instant.
// A zero ExpiresAt never expires.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// TTL returns the remaining lifetime at the given instant, never negative.
func (s Session) TTL(now time.Time) time.Duration {
	if s.ExpiresAt.IsZero() {
		return 0
	}
	if d := s.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

// ShortToken returns a prefix of the token that is safe to log.
func ShortToken(token string) string {
	const n = 8
	if len(token) <= n {
		return token
	}
	return token[:n]
}
