package remote

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/botirk38/argmap/types"
	"github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key written by the Redis backend.
const DefaultPrefix = "argmap:"

const scanBatch = 100

// RedisBackend implements CacheBackend on top of plain Redis strings.
// Values are JSON encoded so any serialisable V can be stored.
type RedisBackend[K comparable, V any] struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// redisDocument represents a cached entry stored in Redis
type redisDocument[V any] struct {
	Key       string `json:"key"`
	Value     V      `json:"value"`
	Timestamp int64  `json:"timestamp"`
}

// parseRedisURL parses a Redis URL and returns redis.Options
func parseRedisURL(connectionString string) (*redis.Options, error) {
	if connectionString == "" {
		return nil, errors.New("redis connection string is empty")
	}

	// Handle redis:// or rediss:// URLs
	if strings.HasPrefix(connectionString, "redis://") || strings.HasPrefix(connectionString, "rediss://") {
		parsedURL, err := url.Parse(connectionString)
		if err != nil {
			return nil, fmt.Errorf("invalid Redis URL: %w", err)
		}

		opts := &redis.Options{
			Addr: parsedURL.Host,
		}

		if parsedURL.Scheme == "rediss" {
			opts.TLSConfig = &tls.Config{
				MinVersion: tls.VersionTLS12,
			}
		}

		if parsedURL.User != nil {
			opts.Username = parsedURL.User.Username()
			if password, ok := parsedURL.User.Password(); ok {
				opts.Password = password
			}
		}

		// Extract database number from path
		if parsedURL.Path != "" && parsedURL.Path != "/" {
			dbStr := strings.TrimPrefix(parsedURL.Path, "/")
			db, err := strconv.Atoi(dbStr)
			if err != nil {
				return nil, fmt.Errorf("invalid Redis database %q: %w", dbStr, err)
			}
			opts.DB = db
		}

		return opts, nil
	}

	// For simple address format (host:port), return minimal options
	return &redis.Options{
		Addr: connectionString,
	}, nil
}

// NewRedisBackend creates a new Redis backend and verifies the connection
func NewRedisBackend[K comparable, V any](config types.BackendConfig) (*RedisBackend[K, V], error) {
	opts, err := parseRedisURL(config.ConnectionString)
	if err != nil {
		return nil, err
	}

	// Override with explicit config values if provided
	if config.Username != "" {
		opts.Username = config.Username
	}
	if config.Password != "" {
		opts.Password = config.Password
	}
	if config.Database != 0 {
		opts.DB = config.Database
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	prefix := config.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}

	return &RedisBackend[K, V]{
		client: client,
		prefix: prefix,
		ttl:    config.TTL,
	}, nil
}

// keyString converts a key to a Redis key string
func (b *RedisBackend[K, V]) keyString(key K) string {
	return fmt.Sprintf("%s%v", b.prefix, key)
}

// Set stores a value in Redis, expiring it after the configured TTL
func (b *RedisBackend[K, V]) Set(ctx context.Context, key K, value V) error {
	doc := redisDocument[V]{
		Key:       fmt.Sprintf("%v", key),
		Value:     value,
		Timestamp: time.Now().Unix(),
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}

	if err := b.client.Set(ctx, b.keyString(key), payload, b.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set entry in Redis: %w", err)
	}
	return nil
}

// Get retrieves a value from Redis
func (b *RedisBackend[K, V]) Get(ctx context.Context, key K) (V, bool, error) {
	var zero V

	result, err := b.client.Get(ctx, b.keyString(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("failed to get entry from Redis: %w", err)
	}

	var doc redisDocument[V]
	if err := json.Unmarshal(result, &doc); err != nil {
		return zero, false, fmt.Errorf("failed to unmarshal entry: %w", err)
	}
	return doc.Value, true, nil
}

// Delete removes an entry from Redis
func (b *RedisBackend[K, V]) Delete(ctx context.Context, key K) error {
	if err := b.client.Del(ctx, b.keyString(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete entry from Redis: %w", err)
	}
	return nil
}

// Contains checks if a key exists in Redis
func (b *RedisBackend[K, V]) Contains(ctx context.Context, key K) (bool, error) {
	exists, err := b.client.Exists(ctx, b.keyString(key)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check key existence in Redis: %w", err)
	}
	return exists > 0, nil
}

// scanKeys walks every Redis key carrying the backend prefix
func (b *RedisBackend[K, V]) scanKeys(ctx context.Context) ([]string, error) {
	pattern := b.prefix + "*"
	var keys []string
	var cursor uint64

	for {
		result, nextCursor, err := b.client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan keys from Redis: %w", err)
		}

		keys = append(keys, result...)
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	return keys, nil
}

// Flush clears all entries with the configured prefix from Redis
func (b *RedisBackend[K, V]) Flush(ctx context.Context) error {
	keys, err := b.scanKeys(ctx)
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		if err := b.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("failed to flush Redis: %w", err)
		}
	}
	return nil
}

// Len returns the number of entries in Redis with our prefix
func (b *RedisBackend[K, V]) Len(ctx context.Context) (int, error) {
	keys, err := b.scanKeys(ctx)
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}

// Keys returns all keys in Redis with our prefix. Keys that cannot be decoded
// back into K are skipped.
func (b *RedisBackend[K, V]) Keys(ctx context.Context) ([]K, error) {
	redisKeys, err := b.scanKeys(ctx)
	if err != nil {
		return nil, err
	}

	keys := make([]K, 0, len(redisKeys))
	for _, redisKey := range redisKeys {
		keyStr := strings.TrimPrefix(redisKey, b.prefix)
		if keyStr == "" {
			continue
		}
		var key K
		quoted, _ := json.Marshal(keyStr)
		if err := json.Unmarshal(quoted, &key); err == nil {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// Close closes the Redis connection
func (b *RedisBackend[K, V]) Close() error {
	return b.client.Close()
}
