// Package options provides functional options for configuring an argmap Analyzer.
package options

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/botirk38/argmap/backends"
	"github.com/botirk38/argmap/chunker"
	"github.com/botirk38/argmap/providers/anthropic"
	"github.com/botirk38/argmap/providers/gemini"
	"github.com/botirk38/argmap/providers/openai"
	"github.com/botirk38/argmap/similarity"
	"github.com/botirk38/argmap/transcription/assemblyai"
	"github.com/botirk38/argmap/types"
)

// DefaultLowSimilarityThreshold is the local score under which a generated
// diagram is reported as a poor match for its transcript.
const DefaultLowSimilarityThreshold = 0.7

// Option represents a configuration option for an Analyzer
type Option func(*Config) error

// Config holds the configuration for building an Analyzer
type Config struct {
	Provider    types.CompletionProvider
	Cache       types.CacheBackend[string, string]
	Transcriber types.Transcriber
	Comparator  similarity.SimilarityFunc
	Logger      *slog.Logger

	// LowSimilarityThreshold flags pipeline results whose local score is below it.
	LowSimilarityThreshold float64
	// ChunkConfig drives transcript coverage analysis.
	ChunkConfig chunker.ChunkConfig
	// MaxPromptTokens rejects prompts longer than this. Zero disables the check.
	MaxPromptTokens int
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		Comparator:             similarity.CosineSimilarity,
		Logger:                 slog.New(slog.DiscardHandler),
		LowSimilarityThreshold: DefaultLowSimilarityThreshold,
		ChunkConfig:            chunker.DefaultChunkConfig(),
	}
}

// Apply applies all the given options to the config
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Provider == nil {
		return errors.New("completion provider is required - use WithAnthropicProvider, WithOpenAIProvider, etc.")
	}
	if c.Comparator == nil {
		return errors.New("comparator cannot be nil")
	}
	if c.LowSimilarityThreshold < 0 || c.LowSimilarityThreshold > 1 {
		return errors.New("low similarity threshold must be within [0, 1]")
	}
	if c.MaxPromptTokens < 0 {
		return errors.New("max prompt tokens must not be negative")
	}
	if c.MaxPromptTokens > 0 && c.MaxPromptTokens > c.Provider.GetMaxTokens() {
		return errors.New("max prompt tokens exceeds the provider's context window")
	}
	return c.ChunkConfig.Validate()
}

// WithAnthropicProvider sets up the Anthropic completion provider
func WithAnthropicProvider(apiKey string, model ...string) Option {
	return func(cfg *Config) error {
		config := anthropic.AnthropicConfig{APIKey: apiKey}
		if len(model) > 0 {
			config.Model = model[0]
		}

		provider, err := anthropic.NewAnthropicProvider(config)
		if err != nil {
			return err
		}
		cfg.Provider = provider
		return nil
	}
}

// WithOpenAIProvider sets up the OpenAI completion provider
func WithOpenAIProvider(apiKey string, model ...string) Option {
	return func(cfg *Config) error {
		config := openai.OpenAIConfig{APIKey: apiKey}
		if len(model) > 0 {
			config.Model = model[0]
		}

		provider, err := openai.NewOpenAIProvider(config)
		if err != nil {
			return err
		}
		cfg.Provider = provider
		return nil
	}
}

// WithGeminiProvider sets up the Gemini completion provider
func WithGeminiProvider(apiKey string, model ...string) Option {
	return func(cfg *Config) error {
		config := gemini.GeminiConfig{APIKey: apiKey}
		if len(model) > 0 {
			config.Model = model[0]
		}

		provider, err := gemini.NewGeminiProvider(context.Background(), config)
		if err != nil {
			return err
		}
		cfg.Provider = provider
		return nil
	}
}

// WithCustomProvider allows using a pre-configured completion provider
func WithCustomProvider(provider types.CompletionProvider) Option {
	return func(cfg *Config) error {
		if provider == nil {
			return errors.New("provider cannot be nil")
		}
		cfg.Provider = provider
		return nil
	}
}

// WithLRUCache caches completions in an LRU in-memory backend
func WithLRUCache(capacity int) Option {
	return func(cfg *Config) error {
		backend, err := backends.NewLRUBackend[string, string](types.BackendConfig{
			Capacity: capacity,
		})
		if err != nil {
			return err
		}
		cfg.Cache = backend
		return nil
	}
}

// WithFIFOCache caches completions in a FIFO in-memory backend
func WithFIFOCache(capacity int) Option {
	return func(cfg *Config) error {
		backend, err := backends.NewFIFOBackend[string, string](types.BackendConfig{
			Capacity: capacity,
		})
		if err != nil {
			return err
		}
		cfg.Cache = backend
		return nil
	}
}

// WithLFUCache caches completions in an LFU in-memory backend
func WithLFUCache(capacity int) Option {
	return func(cfg *Config) error {
		backend, err := backends.NewLFUBackend[string, string](types.BackendConfig{
			Capacity: capacity,
		})
		if err != nil {
			return err
		}
		cfg.Cache = backend
		return nil
	}
}

// WithRedisCache caches completions in Redis. A zero ttl keeps entries forever.
func WithRedisCache(addr string, db int, ttl time.Duration) Option {
	return func(cfg *Config) error {
		backend, err := backends.NewCompletionCache(types.BackendRedis, types.BackendConfig{
			ConnectionString: addr,
			Database:         db,
			TTL:              ttl,
		})
		if err != nil {
			return err
		}
		cfg.Cache = backend
		return nil
	}
}

// WithCustomCache allows using a pre-configured cache backend
func WithCustomCache(backend types.CacheBackend[string, string]) Option {
	return func(cfg *Config) error {
		if backend == nil {
			return errors.New("cache backend cannot be nil")
		}
		cfg.Cache = backend
		return nil
	}
}

// WithAssemblyAITranscriber enables audio input through AssemblyAI
func WithAssemblyAITranscriber(apiKey string) Option {
	return func(cfg *Config) error {
		client, err := assemblyai.NewClient(assemblyai.Config{APIKey: apiKey, Logger: cfg.Logger})
		if err != nil {
			return err
		}
		cfg.Transcriber = client
		return nil
	}
}

// WithCustomTranscriber allows using any speech-to-text implementation
func WithCustomTranscriber(transcriber types.Transcriber) Option {
	return func(cfg *Config) error {
		if transcriber == nil {
			return errors.New("transcriber cannot be nil")
		}
		cfg.Transcriber = transcriber
		return nil
	}
}

// WithSimilarityComparator sets the vector similarity used by coverage analysis.
// Diagram checks always score with cosine.
func WithSimilarityComparator(comparator similarity.SimilarityFunc) Option {
	return func(cfg *Config) error {
		if comparator == nil {
			return errors.New("comparator cannot be nil")
		}
		cfg.Comparator = comparator
		return nil
	}
}

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *Config) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.Logger = logger
		return nil
	}
}

// WithLowSimilarityThreshold sets the score under which results are flagged
func WithLowSimilarityThreshold(threshold float64) Option {
	return func(cfg *Config) error {
		if threshold < 0 || threshold > 1 {
			return errors.New("threshold must be within [0, 1]")
		}
		cfg.LowSimilarityThreshold = threshold
		return nil
	}
}

// WithChunkConfig sets how transcripts are split for coverage analysis
func WithChunkConfig(config chunker.ChunkConfig) Option {
	return func(cfg *Config) error {
		if err := config.Validate(); err != nil {
			return err
		}
		cfg.ChunkConfig = config
		return nil
	}
}

// WithMaxPromptTokens rejects prompts longer than n tokens before they are sent
func WithMaxPromptTokens(n int) Option {
	return func(cfg *Config) error {
		if n < 0 {
			return errors.New("max prompt tokens must not be negative")
		}
		cfg.MaxPromptTokens = n
		return nil
	}
}
