package token

import (
	"context"
	"sync"
	"time"

	"healthqueue-be/internal/cache"
)

const denylistKeyPrefix = "denylist:"

// Denylist records logged-out session tokens until they would have expired
// on their own. A revoked token is refused by the auth middleware even though
// its signature and expiry still check out.
type Denylist interface {
	Revoke(ctx context.Context, tokenString string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenString string) bool
}

type redisDenylist struct {
	cache cache.Cache
}

// NewRedisDenylist creates a denylist backed by the Redis cache, so logouts
// survive a process restart and are shared across instances.
func NewRedisDenylist(cacheClient cache.Cache) Denylist {
	return &redisDenylist{cache: cacheClient}
}

func (d *redisDenylist) Revoke(ctx context.Context, tokenString string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // already expired, nothing to record
	}
	return d.cache.SetJSON(ctx, denylistKeyPrefix+tokenString, true, ttl)
}

func (d *redisDenylist) IsRevoked(ctx context.Context, tokenString string) bool {
	exists, err := d.cache.Exists(ctx, denylistKeyPrefix+tokenString)
	return err == nil && exists
}

type memoryDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

// NewMemoryDenylist creates an in-process denylist for running without Redis
func NewMemoryDenylist() Denylist {
	d := &memoryDenylist{revoked: make(map[string]time.Time)}

	// Clean up expired entries every 5 minutes
	go d.cleanup()

	return d
}

func (d *memoryDenylist) Revoke(_ context.Context, tokenString string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[tokenString] = time.Now().Add(ttl)
	return nil
}

func (d *memoryDenylist) IsRevoked(_ context.Context, tokenString string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	expiry, ok := d.revoked[tokenString]
	if !ok {
		return false
	}
	if time.Now().After(expiry) {
		delete(d.revoked, tokenString)
		return false
	}
	return true
}

func (d *memoryDenylist) cleanup() {
	for {
		time.Sleep(5 * time.Minute)
		d.mu.Lock()
		now := time.Now()
		for tokenString, expiry := range d.revoked {
			if now.After(expiry) {
				delete(d.revoked, tokenString)
			}
		}
		d.mu.Unlock()
	}
}
