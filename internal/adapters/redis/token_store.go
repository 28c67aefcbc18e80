// Package redis provides Redis-based adapters shared by every storefront instance.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	domainauth "github.com/ayabeauty/storefront/internal/domain/auth"
	"github.com/ayabeauty/storefront/internal/ports"
	"github.com/redis/go-redis/v9"
)

// DefaultTokenPrefix namespaces admin session keys.
const DefaultTokenPrefix = "admin_session:"

var _ ports.TokenStore = (*TokenStore)(nil)

// TokenStoreOptions configures a TokenStore.
type TokenStoreOptions struct {
	Prefix   string
	TTL      time.Duration
	Now      func() time.Time
	NewToken func() (string, error)
}

// TokenStore keeps admin session tokens in Redis so that all instances share them.
// Key TTLs follow the session ExpiresAt; lookups re-check expiry.
type TokenStore struct {
	client   redis.UniversalClient
	prefix   string
	ttl      time.Duration
	now      func() time.Time
	newToken func() (string, error)
}

// NewTokenStore creates a Redis-backed token store.
func NewTokenStore(client redis.UniversalClient, opts TokenStoreOptions) *TokenStore {
	s := &TokenStore{
		client:   client,
		prefix:   opts.Prefix,
		ttl:      opts.TTL,
		now:      opts.Now,
		newToken: opts.NewToken,
	}
	if s.prefix == "" {
		s.prefix = DefaultTokenPrefix
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newToken == nil {
		s.newToken = domainauth.NewToken
	}
	return s
}

func (s *TokenStore) key(token string) string { return s.prefix + token }

// Issue generates a token and stores it with SET NX so an existing key is never overwritten.
func (s *TokenStore) Issue(ctx context.Context) (domainauth.Session, error) {
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

		data, err := json.Marshal(sess)
		if err != nil {
			return domainauth.Session{}, fmt.Errorf("marshal session: %w", err)
		}

		ok, err := s.client.SetNX(ctx, s.key(token), data, s.ttl).Result()
		if err != nil {
			return domainauth.Session{}, fmt.Errorf("redis setnx: %w", err)
		}
		if ok {
			return sess, nil
		}
	}
	return domainauth.Session{}, errors.New("generate token: token collision")
}

// Revoke deletes the token key; absent keys are ignored.
func (s *TokenStore) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil // Nothing to delete
	}
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// IsValid reports whether the token key exists and the stored session has not expired.
func (s *TokenStore) IsValid(ctx context.Context, token string) (bool, error) {
	if _, err := s.Lookup(ctx, token); err != nil {
		if errors.Is(err, domainauth.ErrSessionNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Lookup loads the session stored under token.
func (s *TokenStore) Lookup(ctx context.Context, token string) (domainauth.Session, error) {
	if token == "" {
		return domainauth.Session{}, domainauth.ErrSessionNotFound
	}

	data, err := s.client.Get(ctx, s.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.Session{}, domainauth.ErrSessionNotFound
		}
		return domainauth.Session{}, fmt.Errorf("redis get: %w", err)
	}

	var sess domainauth.Session
	if unmarshalErr := json.Unmarshal([]byte(data), &sess); unmarshalErr != nil {
		return domainauth.Session{}, fmt.Errorf("unmarshal session: %w", unmarshalErr)
	}

	// Key TTL normally covers this; clock skew between instances can leave a stale key briefly.
	if sess.Expired(s.now()) {
		if delErr := s.Revoke(ctx, token); delErr != nil {
			return domainauth.Session{}, fmt.Errorf("cleanup expired session: %w", delErr)
		}
		return domainauth.Session{}, domainauth.ErrSessionNotFound
	}
	return sess, nil
}

// RevokeAll deletes every key under the store prefix and returns how many were removed.
func (s *TokenStore) RevokeAll(ctx context.Context) (int, error) {
	var (
		cursor  uint64
		removed int
	)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", 100).Result()
		if err != nil {
			return removed, fmt.Errorf("redis scan: %w", err)
		}
		if len(keys) > 0 {
			n, delErr := s.client.Del(ctx, keys...).Result()
			if delErr != nil {
				return removed, fmt.Errorf("redis del: %w", delErr)
			}
			removed += int(n)
		}
		cursor = next
		if cursor == 0 {
			return removed, nil
		}
	}
}
