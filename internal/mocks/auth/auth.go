// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	domainauth "github.com/ayabeauty/storefront/internal/domain/auth"
	"github.com/ayabeauty/storefront/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.TokenStore   = (*FakeTokenStore)(nil)
	_ ports.LoginLimiter = (*StaticLimiter)(nil)
)

// FakeTokenStore is an in-memory token store with deterministic tokens ("token-1", "token-2", ...).
// Any of the Func fields override the default behavior.
type FakeTokenStore struct {
	IssueFunc  func(ctx context.Context) (domainauth.Session, error)
	RevokeFunc func(ctx context.Context, token string) error
	LookupFunc func(ctx context.Context, token string) (domainauth.Session, error)

	TTL time.Duration

	mu      sync.Mutex
	tokens  map[string]domainauth.Session
	issued  int
	revoked []string
}

// NewFakeTokenStore creates a FakeTokenStore with a one hour TTL.
func NewFakeTokenStore() *FakeTokenStore {
	return &FakeTokenStore{TTL: time.Hour, tokens: make(map[string]domainauth.Session)}
}

func (f *FakeTokenStore) Issue(ctx context.Context) (domainauth.Session, error) {
	if f.IssueFunc != nil {
		return f.IssueFunc(ctx)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tokens == nil {
		f.tokens = make(map[string]domainauth.Session)
	}
	f.issued++
	now := time.Now()
	sess := domainauth.Session{
		Token:     fmt.Sprintf("token-%d", f.issued),
		IssuedAt:  now,
		ExpiresAt: now.Add(f.TTL),
	}
	f.tokens[sess.Token] = sess
	return sess, nil
}

func (f *FakeTokenStore) Revoke(ctx context.Context, token string) error {
	if f.RevokeFunc != nil {
		return f.RevokeFunc(ctx, token)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked = append(f.revoked, token)
	delete(f.tokens, token)
	return nil
}

func (f *FakeTokenStore) IsValid(ctx context.Context, token string) (bool, error) {
	if _, err := f.Lookup(ctx, token); err != nil {
		if errors.Is(err, domainauth.ErrSessionNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (f *FakeTokenStore) Lookup(ctx context.Context, token string) (domainauth.Session, error) {
	if f.LookupFunc != nil {
		return f.LookupFunc(ctx, token)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	sess, ok := f.tokens[token]
	if !ok {
		return domainauth.Session{}, domainauth.ErrSessionNotFound
	}
	return sess, nil
}

// Put records token as valid without going through Issue.
func (f *FakeTokenStore) Put(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tokens == nil {
		f.tokens = make(map[string]domainauth.Session)
	}
	sess := domainauth.Session{Token: token, IssuedAt: time.Now()}
	if f.TTL > 0 {
		sess.ExpiresAt = sess.IssuedAt.Add(f.TTL)
	}
	f.tokens[token] = sess
}

// IssuedCount returns the number of tokens created by the default Issue.
func (f *FakeTokenStore) IssuedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.issued
}

// Revoked returns the tokens passed to the default Revoke, in call order.
func (f *FakeTokenStore) Revoked() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.revoked...)
}

// StaticLimiter allows every request unless the Func fields say otherwise.
type StaticLimiter struct {
	AllowFunc         func(ctx context.Context, key string) (ports.LimitDecision, error)
	RecordFailureFunc func(ctx context.Context, key string) (ports.LimitDecision, error)
	ResetFunc         func(ctx context.Context, key string) error

	mu       sync.Mutex
	failures map[string]int
	resets   map[string]int
}

func (l *StaticLimiter) Allow(ctx context.Context, key string) (ports.LimitDecision, error) {
	if l.AllowFunc != nil {
		return l.AllowFunc(ctx, key)
	}
	return ports.LimitDecision{Allowed: true}, nil
}

func (l *StaticLimiter) RecordFailure(ctx context.Context, key string) (ports.LimitDecision, error) {
	l.mu.Lock()
	if l.failures == nil {
		l.failures = make(map[string]int)
	}
	l.failures[key]++
	l.mu.Unlock()
	if l.RecordFailureFunc != nil {
		return l.RecordFailureFunc(ctx, key)
	}
	return ports.LimitDecision{Allowed: true}, nil
}

func (l *StaticLimiter) Reset(ctx context.Context, key string) error {
	l.mu.Lock()
	if l.resets == nil {
		l.resets = make(map[string]int)
	}
	l.resets[key]++
	l.mu.Unlock()
	if l.ResetFunc != nil {
		return l.ResetFunc(ctx, key)
	}
	return nil
}

// Failures returns how many failures were recorded for key.
func (l *StaticLimiter) Failures(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.failures[key]
}

// Resets returns how many times key was reset.
func (l *StaticLimiter) Resets(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.resets[key]
}
