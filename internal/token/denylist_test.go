package token

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCache struct {
	entries map[string]time.Duration
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]time.Duration)}
}

func (f *fakeCache) Delete(_ context.Context, key string) error {
	delete(f.entries, key)
	return nil
}

func (f *fakeCache) Exists(_ context.Context, key string) (bool, error) {
	_, ok := f.entries[key]
	return ok, nil
}

func (f *fakeCache) SetJSON(_ context.Context, key string, _ interface{}, expiration time.Duration) error {
	f.entries[key] = expiration
	return nil
}

func (f *fakeCache) GetJSON(_ context.Context, _ string, _ interface{}) error {
	return nil
}

func TestMemoryDenylistRevoke(t *testing.T) {
	denylist := NewMemoryDenylist()
	ctx := context.Background()

	assert.False(t, denylist.IsRevoked(ctx, "some-token"))

	require.NoError(t, denylist.Revoke(ctx, "some-token", time.Hour))
	assert.True(t, denylist.IsRevoked(ctx, "some-token"))
	assert.False(t, denylist.IsRevoked(ctx, "another-token"))
}

func TestMemoryDenylistExpiredTTLNotRecorded(t *testing.T) {
	denylist := NewMemoryDenylist()
	ctx := context.Background()

	require.NoError(t, denylist.Revoke(ctx, "stale-token", -1*time.Second))
	assert.False(t, denylist.IsRevoked(ctx, "stale-token"))
}

func TestMemoryDenylistEntryExpires(t *testing.T) {
	denylist := NewMemoryDenylist()
	ctx := context.Background()

	require.NoError(t, denylist.Revoke(ctx, "short-token", 10*time.Millisecond))
	assert.True(t, denylist.IsRevoked(ctx, "short-token"))

	time.Sleep(20 * time.Millisecond)
	assert.False(t, denylist.IsRevoked(ctx, "short-token"))
}

func TestRedisDenylistRevoke(t *testing.T) {
	store := newFakeCache()
	denylist := NewRedisDenylist(store)
	ctx := context.Background()

	require.NoError(t, denylist.Revoke(ctx, "some-token", time.Hour))
	assert.True(t, denylist.IsRevoked(ctx, "some-token"))
	assert.False(t, denylist.IsRevoked(ctx, "another-token"))

	// The entry carries the remaining token lifetime so Redis drops it itself
	assert.Equal(t, time.Hour, store.entries[denylistKeyPrefix+"some-token"])
}

func TestRedisDenylistExpiredTTLNotRecorded(t *testing.T) {
	store := newFakeCache()
	denylist := NewRedisDenylist(store)
	ctx := context.Background()

	require.NoError(t, denylist.Revoke(ctx, "stale-token", 0))
	assert.Empty(t, store.entries)
}
