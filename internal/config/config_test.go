package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/botirk38/argmap/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("ASSEMBLYAI_API_KEY", "aai-env")

	cfg, resolved, exists, err := config.Load(filepath.Join(tempHome, "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent")
	}
	if resolved != filepath.Join(tempHome, "missing.toml") {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if cfg.LLM.Provider != "anthropic" {
		t.Fatalf("unexpected default provider %q", cfg.LLM.Provider)
	}
	if cfg.Analysis.LowSimilarityThreshold != 0.7 {
		t.Fatalf("unexpected default threshold %v", cfg.Analysis.LowSimilarityThreshold)
	}
	if cfg.Cache.Backend != "" {
		t.Fatalf("expected cache disabled by default, got %q", cfg.Cache.Backend)
	}
	if cfg.Transcription.APIKey != "aai-env" {
		t.Fatalf("expected AssemblyAI key from env, got %q", cfg.Transcription.APIKey)
	}
	if cfg.PollInterval() != 3*time.Second {
		t.Fatalf("unexpected poll interval %v", cfg.PollInterval())
	}
	wantHistory := filepath.Join(tempHome, ".local", "share", "argmap", "history.db")
	if cfg.History.Path != wantHistory {
		t.Fatalf("unexpected history path: got %q want %q", cfg.History.Path, wantHistory)
	}
}

func TestLoadFileOverridesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "argmap.toml")
	content := `
[logging]
format = " JSON "
level = "Debug"

[llm]
provider = "OpenAI"
model = "gpt-4o-mini"

[cache]
backend = "redis"
redis_url = "redis://localhost:6379"
ttl_seconds = 600

[history]
path = "runs.db"

[analysis]
comparator = "Manhattan"
chunk_strategy = "speaker_turn"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging not normalised: %+v", cfg.Logging)
	}
	if cfg.LLM.Provider != "openai" || cfg.LLM.Model != "gpt-4o-mini" {
		t.Fatalf("unexpected llm section: %+v", cfg.LLM)
	}
	if cfg.CacheTTL() != 10*time.Minute {
		t.Fatalf("unexpected cache ttl %v", cfg.CacheTTL())
	}
	if !filepath.IsAbs(cfg.History.Path) {
		t.Fatalf("expected absolute history path, got %q", cfg.History.Path)
	}
	if cfg.Analysis.Comparator != "manhattan" || cfg.Analysis.ChunkStrategy != "speaker_turn" {
		t.Fatalf("unexpected analysis section: %+v", cfg.Analysis)
	}
	// Untouched keys keep their defaults.
	if cfg.Server.Bind != config.Default().Server.Bind {
		t.Fatalf("unexpected bind %q", cfg.Server.Bind)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "argmap.toml")
	if err := os.WriteFile(path, []byte("[llm]\nprovder = \"openai\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{"defaults", func(*config.Config) {}, ""},
		{"bad provider", func(c *config.Config) { c.LLM.Provider = "cohere" }, "llm.provider"},
		{"bad log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"bad log level", func(c *config.Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"redis without url", func(c *config.Config) { c.Cache.Backend = "redis" }, "cache.redis_url"},
		{"lru without capacity", func(c *config.Config) { c.Cache.Backend = "lru"; c.Cache.Capacity = 0 }, "cache.capacity"},
		{"unknown cache", func(c *config.Config) { c.Cache.Backend = "memcached" }, "cache.backend"},
		{"threshold too high", func(c *config.Config) { c.Analysis.LowSimilarityThreshold = 1.5 }, "low_similarity_threshold"},
		{"bad comparator", func(c *config.Config) { c.Analysis.Comparator = "jaccard" }, "analysis.comparator"},
		{"overlap too large", func(c *config.Config) { c.Analysis.ChunkOverlap = c.Analysis.ChunkSize }, "chunk_overlap"},
		{"empty bind", func(c *config.Config) { c.Server.Bind = "" }, "server.bind"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSampleConfigMatchesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var sample config.Config
	if err := toml.Unmarshal(data, &sample); err != nil {
		t.Fatalf("sample config does not parse: %v", err)
	}

	defaults := config.Default()
	if sample.Analysis != defaults.Analysis {
		t.Fatalf("sample analysis %+v differs from defaults %+v", sample.Analysis, defaults.Analysis)
	}
	if sample.Server != defaults.Server || sample.Cache != defaults.Cache {
		t.Fatal("sample server/cache sections differ from defaults")
	}
	if sample.LLM.Provider != defaults.LLM.Provider || sample.LLM.MaxRetries != defaults.LLM.MaxRetries {
		t.Fatalf("sample llm %+v differs from defaults", sample.LLM)
	}
}
