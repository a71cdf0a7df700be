package gate

import (
	"context"
	"sync"
	"time"
)

// Resolver resolves a key (typically a session user id) to a value
// (typically the acting user record).
type Resolver[K comparable, V any] interface {
	Resolve(ctx context.Context, key K) (V, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc[K comparable, V any] func(ctx context.Context, key K) (V, error)

func (f ResolverFunc[K, V]) Resolve(ctx context.Context, key K) (V, error) {
	return f(ctx, key)
}

// CachedResolver wraps a Resolver with TTL-based caching.
// This avoids hitting the database on every authorization check.
type CachedResolver[K comparable, V any] struct {
	inner Resolver[K, V]
	cache map[K]*cacheEntry[V]
	mu    sync.RWMutex
	ttl   time.Duration
}

type cacheEntry[V any] struct {
	value     V
	expiresAt time.Time
}

// NewCachedResolver wraps a resolver with caching.
// ttl is how long values are cached before re-fetching.
func NewCachedResolver[K comparable, V any](inner Resolver[K, V], ttl time.Duration) *CachedResolver[K, V] {
	return &CachedResolver[K, V]{
		inner: inner,
		cache: make(map[K]*cacheEntry[V]),
		ttl:   ttl,
	}
}

// Resolve returns the value for the given key, using the cache if fresh.
func (r *CachedResolver[K, V]) Resolve(ctx context.Context, key K) (V, error) {
	r.mu.RLock()
	entry, ok := r.cache[key]
	r.mu.RUnlock()

	if ok && time.Now().Before(entry.expiresAt) {
		return entry.value, nil
	}

	// Cache miss or expired - fetch from inner resolver
	value, err := r.inner.Resolve(ctx, key)
	if err != nil {
		var zero V
		return zero, err
	}

	r.mu.Lock()
	r.cache[key] = &cacheEntry[V]{
		value:     value,
		expiresAt: time.Now().Add(r.ttl),
	}
	r.mu.Unlock()

	return value, nil
}

// Invalidate removes a key from the cache.
// Call this when the underlying record changes (state, role, structure).
func (r *CachedResolver[K, V]) Invalidate(key K) {
	r.mu.Lock()
	delete(r.cache, key)
	r.mu.Unlock()
}

// InvalidateAll clears the entire cache.
func (r *CachedResolver[K, V]) InvalidateAll() {
	r.mu.Lock()
	r.cache = make(map[K]*cacheEntry[V])
	r.mu.Unlock()
}
