package redis

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	domainauth "github.com/ayabeauty/storefront/internal/domain/auth"
	"github.com/ayabeauty/storefront/internal/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a Redis client for testing.
// Tests will be skipped if Redis is not available.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	return testutil.SetupTestRedis(t)
}

func TestTokenStore_IssueAndValidate(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewTokenStore(client, TokenStoreOptions{TTL: 30 * time.Minute})
	ctx := context.Background()

	sess, err := store.Issue(ctx)
	require.NoError(t, err)
	assert.Len(t, sess.Token, 64)

	ok, err := store.IsValid(ctx, sess.Token)
	require.NoError(t, err)
	assert.True(t, ok)

	ttl, err := client.TTL(ctx, DefaultTokenPrefix+sess.Token).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 29*time.Minute)
	assert.LessOrEqual(t, ttl, 30*time.Minute)
}

func TestTokenStore_Revoke(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewTokenStore(client, TokenStoreOptions{TTL: time.Minute})
	ctx := context.Background()

	sess, err := store.Issue(ctx)
	require.NoError(t, err)

	require.NoError(t, store.Revoke(ctx, sess.Token))
	ok, err := store.IsValid(ctx, sess.Token)
	require.NoError(t, err)
	assert.False(t, ok)

	// Unknown and empty tokens are no-ops.
	require.NoError(t, store.Revoke(ctx, sess.Token))
	require.NoError(t, store.Revoke(ctx, ""))
}

func TestTokenStore_Lookup(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	issuedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store := NewTokenStore(client, TokenStoreOptions{TTL: time.Hour, Now: testutil.FixedTimeFunc(issuedAt)})
	ctx := context.Background()

	sess, err := store.Issue(ctx)
	require.NoError(t, err)

	got, err := store.Lookup(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.Token, got.Token)
	assert.True(t, issuedAt.Equal(got.IssuedAt))
	assert.True(t, issuedAt.Add(time.Hour).Equal(got.ExpiresAt))

	_, err = store.Lookup(ctx, "non-existent")
	require.ErrorIs(t, err, domainauth.ErrSessionNotFound)
	_, err = store.Lookup(ctx, "")
	require.ErrorIs(t, err, domainauth.ErrSessionNotFound)
}

func TestTokenStore_UnknownToken(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewTokenStore(client, TokenStoreOptions{})
	ok, err := store.IsValid(context.Background(), "non-existent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTokenStore_ExpiredByClock(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	now := time.Now()
	store := NewTokenStore(client, TokenStoreOptions{TTL: time.Hour, Now: testutil.FixedTimeFunc(now)})
	ctx := context.Background()

	sess, err := store.Issue(ctx)
	require.NoError(t, err)

	// Another instance with a clock past expiry must reject and clean up.
	late := NewTokenStore(client, TokenStoreOptions{TTL: time.Hour, Now: testutil.FixedTimeFunc(now.Add(2 * time.Hour))})
	ok, err := late.IsValid(ctx, sess.Token)
	require.NoError(t, err)
	assert.False(t, ok)

	exists, err := client.Exists(ctx, DefaultTokenPrefix+sess.Token).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), exists)
}

func TestTokenStore_SharedAcrossInstances(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	a := NewTokenStore(client, TokenStoreOptions{TTL: time.Minute})
	b := NewTokenStore(client, TokenStoreOptions{TTL: time.Minute})
	ctx := context.Background()

	sess, err := a.Issue(ctx)
	require.NoError(t, err)

	ok, err := b.IsValid(ctx, sess.Token)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, b.Revoke(ctx, sess.Token))
	ok, err = a.IsValid(ctx, sess.Token)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTokenStore_CollisionIsNotOverwritten(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	n := 0
	gen := func() (string, error) {
		n++
		if n <= 2 {
			return "fixed", nil
		}
		return fmt.Sprintf("fresh-%d", n), nil
	}
	store := NewTokenStore(client, TokenStoreOptions{TTL: time.Minute, NewToken: gen})
	ctx := context.Background()

	first, err := store.Issue(ctx)
	require.NoError(t, err)
	second, err := store.Issue(ctx)
	require.NoError(t, err)

	assert.Equal(t, "fixed", first.Token)
	assert.Equal(t, "fresh-3", second.Token)
}

func TestTokenStore_ConcurrentIssueDistinct(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewTokenStore(client, TokenStoreOptions{TTL: time.Minute})
	ctx := context.Background()

	const n = 50
	var (
		mu     sync.Mutex
		tokens = make(map[string]struct{}, n)
		wg     sync.WaitGroup
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess, err := store.Issue(ctx)
			if err != nil {
				return
			}
			mu.Lock()
			tokens[sess.Token] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, tokens, n)
}

func TestTokenStore_RevokeAll(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewTokenStore(client, TokenStoreOptions{TTL: time.Minute})
	ctx := context.Background()

	for range 5 {
		_, err := store.Issue(ctx)
		require.NoError(t, err)
	}
	require.NoError(t, client.Set(ctx, "unrelated", "x", time.Minute).Err())

	removed, err := store.RevokeAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, removed)

	exists, err := client.Exists(ctx, "unrelated").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists)
}
