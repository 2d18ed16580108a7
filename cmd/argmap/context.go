package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/botirk38/argmap"
	"github.com/botirk38/argmap/backends"
	"github.com/botirk38/argmap/chunker"
	"github.com/botirk38/argmap/internal/config"
	"github.com/botirk38/argmap/internal/history"
	"github.com/botirk38/argmap/internal/logging"
	"github.com/botirk38/argmap/options"
	"github.com/botirk38/argmap/providers"
	"github.com/botirk38/argmap/similarity"
	"github.com/botirk38/argmap/transcription/assemblyai"
	"github.com/botirk38/argmap/types"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.ToLower(strings.TrimSpace(*c.logLevelFlag))
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) comparator(override string) (similarity.SimilarityFunc, error) {
	name := strings.ToLower(strings.TrimSpace(override))
	if name == "" {
		cfg, err := c.ensureConfig()
		if err != nil {
			return nil, err
		}
		name = cfg.Analysis.Comparator
	}
	return similarity.ByName(name)
}

// newAnalyzer wires the provider, cache and transcriber described by the
// configuration into an Analyzer. The caller must Close it.
func (c *commandContext) newAnalyzer(ctx context.Context) (*argmap.Analyzer, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}

	provider, err := providers.New(ctx, types.ProviderType(cfg.LLM.Provider), providers.Config{
		APIKey:     cfg.LLM.APIKey,
		BaseURL:    cfg.LLM.BaseURL,
		Model:      cfg.LLM.Model,
		MaxRetries: cfg.LLM.MaxRetries,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s provider: %w", cfg.LLM.Provider, err)
	}

	return assembleAnalyzer(cfg, logger, provider, backends.NewCompletionCache)
}

type cacheFactory func(types.BackendType, types.BackendConfig) (types.CacheBackend[string, string], error)

// assembleAnalyzer takes ownership of provider. If the analyzer cannot be
// built, provider and any cache opened here are closed before returning.
func assembleAnalyzer(cfg *config.Config, logger *slog.Logger, provider types.CompletionProvider, newCache cacheFactory) (_ *argmap.Analyzer, err error) {
	var cache types.CacheBackend[string, string]
	defer func() {
		if err == nil {
			return
		}
		provider.Close()
		if cache != nil {
			_ = cache.Close()
		}
	}()

	comparator, err := similarity.ByName(cfg.Analysis.Comparator)
	if err != nil {
		return nil, err
	}

	opts := []options.Option{
		options.WithCustomProvider(provider),
		options.WithLogger(logger),
		options.WithSimilarityComparator(comparator),
		options.WithLowSimilarityThreshold(cfg.Analysis.LowSimilarityThreshold),
		options.WithMaxPromptTokens(cfg.LLM.MaxPromptTokens),
		options.WithChunkConfig(chunker.ChunkConfig{
			MaxTokens:    cfg.Analysis.MaxTokens,
			ChunkSize:    cfg.Analysis.ChunkSize,
			ChunkOverlap: cfg.Analysis.ChunkOverlap,
			Strategy:     chunker.ChunkStrategy(cfg.Analysis.ChunkStrategy),
		}),
	}

	if cfg.Cache.Backend != "" {
		cache, err = newCache(types.BackendType(cfg.Cache.Backend), types.BackendConfig{
			Capacity:         cfg.Cache.Capacity,
			ConnectionString: cfg.Cache.RedisURL,
			Database:         cfg.Cache.RedisDB,
			TTL:              cfg.CacheTTL(),
		})
		if err != nil {
			return nil, fmt.Errorf("create %s cache: %w", cfg.Cache.Backend, err)
		}
		opts = append(opts, options.WithCustomCache(cache))
	}

	if cfg.Transcription.APIKey != "" {
		client, err := assemblyai.NewClient(assemblyai.Config{
			APIKey:       cfg.Transcription.APIKey,
			BaseURL:      cfg.Transcription.BaseURL,
			Language:     cfg.Transcription.Language,
			PollInterval: cfg.PollInterval(),
			Logger:       logger,
		})
		if err != nil {
			return nil, fmt.Errorf("create transcriber: %w", err)
		}
		opts = append(opts, options.WithCustomTranscriber(client))
	}

	return argmap.New(opts...)
}

// openHistory returns nil without error when history is disabled.
func (c *commandContext) openHistory() (*history.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.History.Enabled {
		return nil, nil
	}
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	return store, nil
}

// readInput reads a file, or stdin when path is "-".
func readInput(cmd interface{ InOrStdin() io.Reader }, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func readText(cmd interface{ InOrStdin() io.Reader }, path string) (string, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
