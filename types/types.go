package types

import (
	"context"
	"errors"
	"time"
)

// ErrEmptyCompletion is returned by providers when the model reply carries no text.
var ErrEmptyCompletion = errors.New("provider returned an empty completion")

// CompletionRequest is a single-turn prompt sent to a completion provider.
type CompletionRequest struct {
	// Prompt is the user message.
	Prompt string
	// System is an optional system instruction.
	System string
	// MaxTokens caps the completion length. Zero means the provider default.
	MaxTokens int
	// Temperature controls sampling randomness; the pipeline always uses 0.
	Temperature float64
}

// CompletionProvider defines the interface all LLM backends must satisfy.
type CompletionProvider interface {
	// Complete sends the request and returns the text of the reply.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	// CountTokens estimates how many input tokens text would consume.
	CountTokens(ctx context.Context, text string) (int, error)
	// Name identifies the provider and model, e.g. "anthropic/claude-3-5-sonnet-20241022".
	Name() string
	// GetMaxTokens returns the context window of the configured model.
	GetMaxTokens() int
	// Close frees any resources held by the provider.
	Close()
}

// Transcriber turns recorded audio into transcript text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// CacheBackend defines the interface for completion cache storage.
// This allows for pluggable storage systems including in-memory and Redis.
type CacheBackend[K comparable, V any] interface {
	// Set stores a value under key
	Set(ctx context.Context, key K, value V) error

	// Get retrieves a value by key
	Get(ctx context.Context, key K) (V, bool, error)

	// Delete removes an entry by key
	Delete(ctx context.Context, key K) error

	// Contains checks if a key exists without retrieving the value
	Contains(ctx context.Context, key K) (bool, error)

	// Flush clears all entries from the cache
	Flush(ctx context.Context) error

	// Len returns the number of entries in the cache
	Len(ctx context.Context) (int, error)

	// Keys returns all keys in the cache
	Keys(ctx context.Context) ([]K, error)

	// Close closes the backend and releases resources
	Close() error
}

// BackendConfig provides configuration options for backends
type BackendConfig struct {
	// For in-memory caches
	Capacity int

	// For Redis
	ConnectionString string
	Username         string
	Password         string
	Database         int
	Prefix           string

	// TTL expires remote entries. Zero keeps them until evicted.
	TTL time.Duration
}

// BackendType represents the type of cache backend
type BackendType string

const (
	BackendLRU   BackendType = "lru"
	BackendFIFO  BackendType = "fifo"
	BackendLFU   BackendType = "lfu"
	BackendRedis BackendType = "redis"
)

// ProviderType represents the type of completion provider
type ProviderType string

const (
	ProviderAnthropic ProviderType = "anthropic"
	ProviderOpenAI    ProviderType = "openai"
	ProviderGemini    ProviderType = "gemini"
)
