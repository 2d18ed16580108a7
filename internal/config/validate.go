package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateLLM(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	if c.Server.Bind == "" {
		return errors.New("server.bind must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "auto", "text", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateLLM() error {
	switch c.LLM.Provider {
	case "anthropic", "openai", "gemini":
	default:
		return fmt.Errorf("llm.provider: unsupported value %q (want anthropic, openai or gemini)", c.LLM.Provider)
	}
	if c.LLM.MaxRetries < 0 {
		return errors.New("llm.max_retries must be non-negative")
	}
	if c.LLM.MaxPromptTokens < 0 {
		return errors.New("llm.max_prompt_tokens must be non-negative")
	}
	return nil
}

func (c *Config) validateCache() error {
	switch c.Cache.Backend {
	case "":
		return nil
	case "lru", "fifo", "lfu":
		if c.Cache.Capacity <= 0 {
			return errors.New("cache.capacity must be positive for in-memory backends")
		}
	case "redis":
		if c.Cache.RedisURL == "" {
			return errors.New("cache.redis_url must be set when cache.backend is redis")
		}
		if c.Cache.RedisDB < 0 {
			return errors.New("cache.redis_db must be non-negative")
		}
	default:
		return fmt.Errorf("cache.backend: unsupported value %q", c.Cache.Backend)
	}
	if c.Cache.TTLSeconds < 0 {
		return errors.New("cache.ttl_seconds must be non-negative")
	}
	return nil
}

func (c *Config) validateAnalysis() error {
	a := c.Analysis
	if a.LowSimilarityThreshold < 0 || a.LowSimilarityThreshold > 1 {
		return errors.New("analysis.low_similarity_threshold must be between 0 and 1")
	}
	switch a.Comparator {
	case "cosine", "dot", "euclidean", "manhattan":
	default:
		return fmt.Errorf("analysis.comparator: unsupported value %q", a.Comparator)
	}
	switch a.ChunkStrategy {
	case "fixed_overlap", "speaker_turn":
	default:
		return fmt.Errorf("analysis.chunk_strategy: unsupported value %q", a.ChunkStrategy)
	}
	if a.ChunkSize <= 0 {
		return errors.New("analysis.chunk_size must be positive")
	}
	if a.ChunkOverlap < 0 || a.ChunkOverlap >= a.ChunkSize {
		return errors.New("analysis.chunk_overlap must be in [0, chunk_size)")
	}
	if a.MaxTokens < a.ChunkSize {
		return errors.New("analysis.max_tokens must be at least chunk_size")
	}
	return nil
}
