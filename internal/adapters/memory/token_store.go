// Package memory provides process-local adapters for single-instance deployments and tests.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	domainauth "github.com/ayabeauty/storefront/internal/domain/auth"
	"github.com/ayabeauty/storefront/internal/ports"
)

var _ ports.TokenStore = (*TokenStore)(nil)

// TokenStoreOptions configures a TokenStore.
type TokenStoreOptions struct {
	// TTL is the lifetime of an issued token. Zero means tokens never expire.
	TTL time.Duration
	// Now overrides the clock (tests).
	Now func() time.Time
	// NewToken overrides token generation (tests).
	NewToken func() (string, error)
}

// TokenStore keeps admin session tokens in a mutex-protected map.
// Entries live until revoked, until they expire, or until the process exits.
type TokenStore struct {
	mu       sync.Mutex
	tokens   map[string]domainauth.Session
	ttl      time.Duration
	now      func() time.Time
	newToken func() (string, error)
}

// NewTokenStore creates an empty TokenStore.
func NewTokenStore(opts TokenStoreOptions) *TokenStore {
	s := &TokenStore{
		tokens:   make(map[string]domainauth.Session),
		ttl:      opts.TTL,
		now:      opts.Now,
		newToken: opts.NewToken,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newToken == nil {
		s.newToken = domainauth.NewToken
	}
	return s
}

// Issue generates a fresh token and records it as valid.
func (s *TokenStore) Issue(ctx context.Context) (domainauth.Session, error) {
	if err := ctx.Err(); err != nil {
		return domainauth.Session{}, err
	}

	// Generate outside the lock; retry on the (practically impossible) collision.
	for range 3 {
		token, err := s.newToken()
		if err != nil {
			return domainauth.Session{}, fmt.Errorf("generate token: %w", err)
		}

		now := s.now()
		sess := domainauth.Session{Token: token, IssuedAt: now}
		if s.ttl > 0 {
			sess.ExpiresAt = now.Add(s.ttl)
		}

		s.mu.Lock()
		if _, exists := s.tokens[token]; !exists {
			s.tokens[token] = sess
			s.mu.Unlock()
			return sess, nil
		}
		s.mu.Unlock()
	}
	return domainauth.Session{}, fmt.Errorf("generate token: %w", errTokenCollision)
}

// Revoke removes token; unknown tokens are ignored.
func (s *TokenStore) Revoke(_ context.Context, token string) error {
	if token == "" {
		return nil
	}
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
	return nil
}

// IsValid reports whether token is present and unexpired.
func (s *TokenStore) IsValid(ctx context.Context, token string) (bool, error) {
	if _, err := s.Lookup(ctx, token); err != nil {
		if errors.Is(err, domainauth.ErrSessionNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Lookup returns the session behind token. Expired entries are dropped on lookup.
func (s *TokenStore) Lookup(_ context.Context, token string) (domainauth.Session, error) {
	if token == "" {
		return domainauth.Session{}, domainauth.ErrSessionNotFound
	}
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.tokens[token]
	if !ok {
		return domainauth.Session{}, domainauth.ErrSessionNotFound
	}
	if sess.Expired(now) {
		delete(s.tokens, token)
		return domainauth.Session{}, domainauth.ErrSessionNotFound
	}
	return sess, nil
}

// RevokeAll drops every token and returns how many were removed.
func (s *TokenStore) RevokeAll(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.tokens)
	clear(s.tokens)
	return n, nil
}

// Sweep removes expired tokens and returns how many were removed.
func (s *TokenStore) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, sess := range s.tokens {
		if sess.Expired(now) {
			delete(s.tokens, token)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked tokens, including expired ones not yet swept.
func (s *TokenStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *TokenStore) RunSweeper(ctx context.Context, interval time.Duration) error {
	return runTicker(ctx, interval, func() { s.Sweep() })
}
