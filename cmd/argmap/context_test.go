package main

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/botirk38/argmap/backends"
	"github.com/botirk38/argmap/internal/config"
	"github.com/botirk38/argmap/types"
)

type closeTrackingProvider struct {
	closed bool
}

func (p *closeTrackingProvider) Complete(ctx context.Context, req types.CompletionRequest) (string, error) {
	return "ok", nil
}

func (p *closeTrackingProvider) CountTokens(ctx context.Context, text string) (int, error) {
	return 1, nil
}

func (p *closeTrackingProvider) Name() string      { return "stub/model" }
func (p *closeTrackingProvider) GetMaxTokens() int { return 1000 }
func (p *closeTrackingProvider) Close()            { p.closed = true }

type closeTrackingCache struct {
	types.CacheBackend[string, string]
	closed bool
}

func (c *closeTrackingCache) Close() error {
	c.closed = true
	return c.CacheBackend.Close()
}

func trackingFactory(created **closeTrackingCache) cacheFactory {
	return func(bt types.BackendType, cfg types.BackendConfig) (types.CacheBackend[string, string], error) {
		inner, err := backends.NewCompletionCache(bt, cfg)
		if err != nil {
			return nil, err
		}
		*created = &closeTrackingCache{CacheBackend: inner}
		return *created, nil
	}
}

func TestAssembleAnalyzer(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	t.Run("success keeps resources open", func(t *testing.T) {
		cfg := config.Default()
		cfg.Cache.Backend = "lru"
		provider := &closeTrackingProvider{}
		var cache *closeTrackingCache

		analyzer, err := assembleAnalyzer(&cfg, logger, provider, trackingFactory(&cache))
		if err != nil {
			t.Fatalf("assembleAnalyzer() error = %v", err)
		}
		if provider.closed || cache == nil || cache.closed {
			t.Fatal("provider and cache should stay open until the analyzer is closed")
		}
		_ = analyzer.Close()
		if !provider.closed || !cache.closed {
			t.Fatal("closing the analyzer should release provider and cache")
		}
	})

	t.Run("analyzer failure closes cache", func(t *testing.T) {
		cfg := config.Default()
		cfg.Cache.Backend = "lru"
		cfg.Analysis.LowSimilarityThreshold = 2
		provider := &closeTrackingProvider{}
		var cache *closeTrackingCache

		if _, err := assembleAnalyzer(&cfg, logger, provider, trackingFactory(&cache)); err == nil {
			t.Fatal("expected error for out of range threshold")
		}
		if cache == nil || !cache.closed {
			t.Error("cache should be closed when the analyzer cannot be built")
		}
		if !provider.closed {
			t.Error("provider should be closed when the analyzer cannot be built")
		}
	})

	t.Run("cache failure closes provider", func(t *testing.T) {
		cfg := config.Default()
		cfg.Cache.Backend = "redis"
		provider := &closeTrackingProvider{}
		failing := func(types.BackendType, types.BackendConfig) (types.CacheBackend[string, string], error) {
			return nil, errors.New("dial refused")
		}

		if _, err := assembleAnalyzer(&cfg, logger, provider, failing); err == nil {
			t.Fatal("expected cache error")
		}
		if !provider.closed {
			t.Error("provider should be closed when the cache cannot be created")
		}
	})
}
