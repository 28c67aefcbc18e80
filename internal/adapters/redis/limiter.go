package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ayabeauty/storefront/internal/ports"
	"github.com/redis/go-redis/v9"
)

var _ ports.LoginLimiter = (*LoginLimiter)(nil)

// LimiterOptions configures a LoginLimiter.
type LimiterOptions struct {
	Prefix      string
	MaxAttempts int
	Window      time.Duration
	Block       time.Duration
}

// LoginLimiter counts failed logins per key with INCR on a windowed key and
// blocks the key with a separate expiring marker once MaxAttempts is reached.
type LoginLimiter struct {
	client      redis.UniversalClient
	prefix      string
	maxAttempts int
	window      time.Duration
	block       time.Duration
}

// NewLoginLimiter creates a Redis-backed limiter with the same defaults as the in-memory one.
func NewLoginLimiter(client redis.UniversalClient, opts LimiterOptions) *LoginLimiter {
	l := &LoginLimiter{
		client:      client,
		prefix:      opts.Prefix,
		maxAttempts: opts.MaxAttempts,
		window:      opts.Window,
		block:       opts.Block,
	}
	if l.prefix == "" {
		l.prefix = "login_limit:"
	}
	if l.maxAttempts <= 0 {
		l.maxAttempts = 5
	}
	if l.window <= 0 {
		l.window = time.Minute
	}
	if l.block <= 0 {
		l.block = 5 * time.Minute
	}
	return l
}

func (l *LoginLimiter) countKey(key string) string { return l.prefix + "count:" + key }
func (l *LoginLimiter) blockKey(key string) string { return l.prefix + "block:" + key }

// Allow reports whether key may attempt a login now.
func (l *LoginLimiter) Allow(ctx context.Context, key string) (ports.LimitDecision, error) {
	blocked, retry, err := l.blockedFor(ctx, key)
	if err != nil {
		return ports.LimitDecision{}, err
	}
	if blocked {
		return ports.LimitDecision{Allowed: false, RetryAfter: retry}, nil
	}

	n, err := l.client.Get(ctx, l.countKey(key)).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		return ports.LimitDecision{}, fmt.Errorf("redis get: %w", err)
	}
	return ports.LimitDecision{Allowed: true, Remaining: max(l.maxAttempts-n, 0)}, nil
}

// RecordFailure counts a failed attempt and blocks the key once the limit is reached.
func (l *LoginLimiter) RecordFailure(ctx context.Context, key string) (ports.LimitDecision, error) {
	blocked, retry, err := l.blockedFor(ctx, key)
	if err != nil {
		return ports.LimitDecision{}, err
	}
	if blocked {
		return ports.LimitDecision{Allowed: false, RetryAfter: retry}, nil
	}

	// The window is anchored at the first failure: EXPIRE NX only sets a TTL on a fresh counter.
	var incr *redis.IntCmd
	_, err = l.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, l.countKey(key))
		p.ExpireNX(ctx, l.countKey(key), l.window)
		return nil
	})
	if err != nil {
		return ports.LimitDecision{}, fmt.Errorf("redis incr: %w", err)
	}

	n := int(incr.Val())
	if n < l.maxAttempts {
		return ports.LimitDecision{Allowed: true, Remaining: l.maxAttempts - n}, nil
	}

	_, err = l.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, l.blockKey(key), n, l.block)
		p.Del(ctx, l.countKey(key))
		return nil
	})
	if err != nil {
		return ports.LimitDecision{}, fmt.Errorf("redis block: %w", err)
	}
	return ports.LimitDecision{Allowed: false, RetryAfter: l.block}, nil
}

// Reset clears both the counter and any block for key.
func (l *LoginLimiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, l.countKey(key), l.blockKey(key)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (l *LoginLimiter) blockedFor(ctx context.Context, key string) (bool, time.Duration, error) {
	ttl, err := l.client.PTTL(ctx, l.blockKey(key)).Result()
	if err != nil {
		return false, 0, fmt.Errorf("redis pttl: %w", err)
	}
	blocked, retry := blockRemaining(ttl, l.block)
	return blocked, retry, nil
}

// blockRemaining maps a PTTL reply on the block key to the remaining block.
// go-redis reports a missing key as -2 and a key without expiry as -1.
func blockRemaining(ttl, block time.Duration) (bool, time.Duration) {
	switch {
	case ttl > 0:
		return true, ttl
	case ttl == -1:
		return true, block
	default:
		return false, 0
	}
}
