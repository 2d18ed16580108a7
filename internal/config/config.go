package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Logging contains configuration for log output.
type Logging struct {
	// Format is "text", "json" or "auto" (text on a terminal, json otherwise).
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// LLM selects and configures the completion provider.
type LLM struct {
	Provider        string `toml:"provider"`
	Model           string `toml:"model"`
	APIKey          string `toml:"api_key"`
	BaseURL         string `toml:"base_url"`
	MaxRetries      int    `toml:"max_retries"`
	MaxPromptTokens int    `toml:"max_prompt_tokens"`
}

// Transcription configures the AssemblyAI speech-to-text client.
type Transcription struct {
	APIKey              string `toml:"api_key"`
	BaseURL             string `toml:"base_url"`
	Language            string `toml:"language"`
	PollIntervalSeconds int    `toml:"poll_interval_seconds"`
}

// Cache configures the completion cache. An empty backend disables it.
type Cache struct {
	Backend    string `toml:"backend"`
	Capacity   int    `toml:"capacity"`
	RedisURL   string `toml:"redis_url"`
	RedisDB    int    `toml:"redis_db"`
	TTLSeconds int    `toml:"ttl_seconds"`
}

// Server configures the HTTP API.
type Server struct {
	Bind string `toml:"bind"`
}

// History configures the SQLite run store.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Analysis tunes the local similarity checks.
type Analysis struct {
	// LowSimilarityThreshold flags diagrams whose local score falls below it. Default: 0.7
	LowSimilarityThreshold float64 `toml:"low_similarity_threshold"`
	// Comparator is one of cosine, dot, euclidean or manhattan. Default: cosine
	Comparator    string `toml:"comparator"`
	ChunkStrategy string `toml:"chunk_strategy"`
	ChunkSize     int    `toml:"chunk_size"`
	ChunkOverlap  int    `toml:"chunk_overlap"`
	MaxTokens     int    `toml:"max_tokens"`
}

// Config encapsulates all configuration values for argmap.
//
// Configuration sections by subsystem:
//   - Logging: log format and level
//   - LLM: completion provider, model and credentials
//   - Transcription: AssemblyAI settings for audio input
//   - Cache: completion cache backend
//   - Server: HTTP API bind address
//   - History: SQLite store of pipeline runs
//   - Analysis: similarity threshold, comparator and chunking
type Config struct {
	Logging       Logging       `toml:"logging"`
	LLM           LLM           `toml:"llm"`
	Transcription Transcription `toml:"transcription"`
	Cache         Cache         `toml:"cache"`
	Server        Server        `toml:"server"`
	History       History       `toml:"history"`
	Analysis      Analysis      `toml:"analysis"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. A missing file is
// not an error: the defaults are used and exists reports false.
func Load(path string) (cfg *Config, resolvedPath string, exists bool, err error) {
	c := Default()

	resolvedPath, exists, err = resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&c); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := c.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := c.Validate(); err != nil {
		return nil, "", false, err
	}

	return &c, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("argmap.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// CacheTTL returns the configured Redis entry lifetime.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

// PollInterval returns the transcription polling interval.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Transcription.PollIntervalSeconds) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
