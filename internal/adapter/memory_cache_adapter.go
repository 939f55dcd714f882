package adapter

import (
	"context"
	"time"

	"bio-kids-puzzles/internal/domain"

	"github.com/jellydator/ttlcache/v3"
)

// MemoryCacheAdapter implements domain.Cache in process memory on top of
// ttlcache. Reads do not extend an entry's lifetime, matching Redis GET.
type MemoryCacheAdapter struct {
	items *ttlcache.Cache[string, string]
}

// NewMemoryCacheAdapter creates an empty in-memory cache. Expired entries are
// invisible to Get right away; StartCleanup evicts them in the background.
func NewMemoryCacheAdapter() *MemoryCacheAdapter {
	return &MemoryCacheAdapter{
		items: ttlcache.New[string, string](ttlcache.WithDisableTouchOnHit[string, string]()),
	}
}

func (m *MemoryCacheAdapter) Get(_ context.Context, key string) (string, error) {
	item := m.items.Get(key)
	if item == nil {
		return "", domain.ErrCacheMiss
	}
	return item.Value(), nil
}

func (m *MemoryCacheAdapter) Set(_ context.Context, key string, value string, expiration time.Duration) error {
	ttl := ttlcache.NoTTL
	if expiration > 0 {
		ttl = expiration
	}
	m.items.Set(key, value, ttl)
	return nil
}

func (m *MemoryCacheAdapter) Delete(_ context.Context, key string) error {
	m.items.Delete(key)
	return nil
}

// Ping always succeeds
func (m *MemoryCacheAdapter) Ping(_ context.Context) error {
	return nil
}

// Len counts stored entries, expired ones included until they are evicted
func (m *MemoryCacheAdapter) Len() int {
	return m.items.Len()
}

// StartCleanup runs the eviction loop and blocks until StopCleanup is called.
func (m *MemoryCacheAdapter) StartCleanup() {
	m.items.Start()
}

func (m *MemoryCacheAdapter) StopCleanup() {
	m.items.Stop()
}
