package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ayabeauty/storefront/internal/ports"
)

var (
	_ ports.LoginLimiter = (*LoginLimiter)(nil)

	errTokenCollision = errors.New("token collision")
)

// LimiterOptions configures a LoginLimiter.
type LimiterOptions struct {
	MaxAttempts int
	Window      time.Duration
	Block       time.Duration
	Now         func() time.Time
}

type attemptRecord struct {
	count        int
	windowEnds   time.Time
	blockedUntil time.Time
}

func (r attemptRecord) stale(now time.Time) bool {
	return !now.Before(r.windowEnds) && !now.Before(r.blockedUntil)
}

// LoginLimiter counts failed logins per key inside a fixed window.
// Reaching MaxAttempts blocks the key for Block.
type LoginLimiter struct {
	mu          sync.Mutex
	attempts    map[string]attemptRecord
	maxAttempts int
	window      time.Duration
	block       time.Duration
	now         func() time.Time
}

// NewLoginLimiter creates a LoginLimiter. Non-positive options fall back to 5 attempts per minute, 5 minute block.
func NewLoginLimiter(opts LimiterOptions) *LoginLimiter {
	l := &LoginLimiter{
		attempts:    make(map[string]attemptRecord),
		maxAttempts: opts.MaxAttempts,
		window:      opts.Window,
		block:       opts.Block,
		now:         opts.Now,
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
	if l.now == nil {
		l.now = time.Now
	}
	return l
}

// Allow reports whether key may attempt a login now.
func (l *LoginLimiter) Allow(_ context.Context, key string) (ports.LimitDecision, error) {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.attempts[key]
	if !ok || rec.stale(now) {
		return ports.LimitDecision{Allowed: true, Remaining: l.maxAttempts}, nil
	}
	return l.decision(rec, now), nil
}

// RecordFailure counts a failed attempt for key and returns the resulting decision.
func (l *LoginLimiter) RecordFailure(_ context.Context, key string) (ports.LimitDecision, error) {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.attempts[key]
	if !ok || rec.stale(now) {
		rec = attemptRecord{windowEnds: now.Add(l.window)}
	}
	rec.count++
	if rec.count >= l.maxAttempts && !now.Before(rec.blockedUntil) {
		rec.blockedUntil = now.Add(l.block)
	}
	l.attempts[key] = rec
	return l.decision(rec, now), nil
}

// Reset forgets every attempt recorded for key.
func (l *LoginLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	delete(l.attempts, key)
	l.mu.Unlock()
	return nil
}

func (l *LoginLimiter) decision(rec attemptRecord, now time.Time) ports.LimitDecision {
	if now.Before(rec.blockedUntil) {
		return ports.LimitDecision{Allowed: false, RetryAfter: rec.blockedUntil.Sub(now)}
	}
	return ports.LimitDecision{Allowed: true, Remaining: max(l.maxAttempts-rec.count, 0)}
}

// Sweep drops records whose window and block have both elapsed.
func (l *LoginLimiter) Sweep() int {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, rec := range l.attempts {
		if rec.stale(now) {
			delete(l.attempts, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked keys.
func (l *LoginLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.attempts)
}

// RunSweeper calls Sweep every interval until ctx is done.
func (l *LoginLimiter) RunSweeper(ctx context.Context, interval time.Duration) error {
	return runTicker(ctx, interval, func() { l.Sweep() })
}

func runTicker(ctx context.Context, interval time.Duration, fn func()) error {
	if interval <= 0 {
		<-ctx.Done()
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			fn()
		}
	}
}
