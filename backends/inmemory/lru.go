package inmemory

import (
	"context"
	"sync"

	"github.com/botirk38/argmap/types"
	lru "github.com/hashicorp/golang-lru/v2"
)

// LRUBackend implements CacheBackend using LRU eviction policy
type LRUBackend[K comparable, V any] struct {
	mu    *sync.RWMutex
	cache *lru.Cache[K, V]
}

// NewLRUBackend creates a new LRU backend
func NewLRUBackend[K comparable, V any](config types.BackendConfig) (*LRUBackend[K, V], error) {
	lruCache, err := lru.New[K, V](config.Capacity)
	if err != nil {
		return nil, err
	}

	return &LRUBackend[K, V]{
		mu:    &sync.RWMutex{},
		cache: lruCache,
	}, nil
}

// Set stores a value in the LRU cache
func (b *LRUBackend[K, V]) Set(ctx context.Context, key K, value V) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.cache.Add(key, value)
	return nil
}

// Get retrieves a value from the LRU cache and marks it as recently used
func (b *LRUBackend[K, V]) Get(ctx context.Context, key K) (V, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	value, ok := b.cache.Get(key)
	return value, ok, nil
}

// Delete removes an entry from the LRU cache
func (b *LRUBackend[K, V]) Delete(ctx context.Context, key K) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.cache.Remove(key)
	return nil
}

// Contains checks if a key exists without affecting recency
func (b *LRUBackend[K, V]) Contains(ctx context.Context, key K) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.cache.Contains(key), nil
}

// Flush clears all entries from the LRU cache
func (b *LRUBackend[K, V]) Flush(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.cache.Purge()
	return nil
}

// Len returns the number of entries in the LRU cache
func (b *LRUBackend[K, V]) Len(ctx context.Context) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.cache.Len(), nil
}

// Keys returns all keys from oldest to newest
func (b *LRUBackend[K, V]) Keys(ctx context.Context) ([]K, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.cache.Keys(), nil
}

// Close closes the LRU backend (no-op for in-memory)
func (b *LRUBackend[K, V]) Close() error {
	return nil
}
