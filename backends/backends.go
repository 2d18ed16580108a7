package backends

import (
	"errors"
	"fmt"

	"github.com/botirk38/argmap/backends/inmemory"
	"github.com/botirk38/argmap/backends/remote"
	"github.com/botirk38/argmap/types"
)

var ErrUnsupportedBackend = errors.New("unsupported backend type")

// BackendFactory creates cache backends based on type and configuration
type BackendFactory[K comparable, V any] struct{}

// NewBackend creates a new cache backend of the specified type
func (f *BackendFactory[K, V]) NewBackend(backendType types.BackendType, config types.BackendConfig) (types.CacheBackend[K, V], error) {
	switch backendType {
	case types.BackendLRU:
		return NewLRUBackend[K, V](config)
	case types.BackendFIFO:
		return NewFIFOBackend[K, V](config)
	case types.BackendLFU:
		return NewLFUBackend[K, V](config)
	case types.BackendRedis:
		return NewRedisBackend[K, V](config)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBackend, backendType)
	}
}

// CompletionCacheKeyPrefix namespaces completions stored in a shared Redis.
const CompletionCacheKeyPrefix = "argmap:completion:"

// NewCompletionCache builds the cache the analyzer keys model replies by.
// Redis entries get CompletionCacheKeyPrefix unless config sets a prefix.
func NewCompletionCache(backendType types.BackendType, config types.BackendConfig) (types.CacheBackend[string, string], error) {
	if backendType == types.BackendRedis && config.Prefix == "" {
		config.Prefix = CompletionCacheKeyPrefix
	}
	factory := &BackendFactory[string, string]{}
	return factory.NewBackend(backendType, config)
}

// NewLRUBackend creates a new LRU backend
func NewLRUBackend[K comparable, V any](config types.BackendConfig) (types.CacheBackend[K, V], error) {
	b, err := inmemory.NewLRUBackend[K, V](config)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// NewFIFOBackend creates a new FIFO backend
func NewFIFOBackend[K comparable, V any](config types.BackendConfig) (types.CacheBackend[K, V], error) {
	b, err := inmemory.NewFIFOBackend[K, V](config)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// NewLFUBackend creates a new LFU backend
func NewLFUBackend[K comparable, V any](config types.BackendConfig) (types.CacheBackend[K, V], error) {
	b, err := inmemory.NewLFUBackend[K, V](config)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// NewRedisBackend creates a new Redis backend
func NewRedisBackend[K comparable, V any](config types.BackendConfig) (types.CacheBackend[K, V], error) {
	b, err := remote.NewRedisBackend[K, V](config)
	if err != nil {
		return nil, err
	}
	return b, nil
}
