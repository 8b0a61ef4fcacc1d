// Package cache stores short-lived keys, such as revoked session ids.
package cache

import (
	"context"
	"sync"
	"time"
)

// Cache is a key store with per-key expiration.
type Cache interface {
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
	Close() error
}

type entry struct {
	value     string
	expiresAt time.Time
}

// MemoryCache is the in-process Cache used when no Redis is configured.
type MemoryCache struct {
	mu    sync.Mutex
	items map[string]entry
	now   func() time.Time
}

// NewMemoryCache returns an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		items: make(map[string]entry),
		now:   time.Now,
	}
}

func (m *MemoryCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.evict()
	m.items[key] = entry{value: value, expiresAt: m.now().Add(expiration)}
	return nil
}

func (m *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.items[key]
	if !ok {
		return false, nil
	}
	if !m.now().Before(e.expiresAt) {
		delete(m.items, key)
		return false, nil
	}
	return true, nil
}

func (m *MemoryCache) Close() error {
	return nil
}

// evict drops expired keys; the caller holds the lock.
func (m *MemoryCache) evict() {
	now := m.now()
	for k, e := range m.items {
		if !now.Before(e.expiresAt) {
			delete(m.items, k)
		}
	}
}
