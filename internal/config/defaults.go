package config

const (
	defaultConfigPath             = "~/.config/argmap/config.toml"
	defaultLogFormat              = "auto"
	defaultLogLevel               = "info"
	defaultProvider               = "anthropic"
	defaultMaxRetries             = 2
	defaultTranscriptionBaseURL   = "https://api.assemblyai.com"
	defaultTranscriptionLanguage  = "en"
	defaultPollIntervalSeconds    = 3
	defaultCacheCapacity          = 256
	defaultServerBind             = "127.0.0.1:8080"
	defaultHistoryPath            = "~/.local/share/argmap/history.db"
	defaultLowSimilarityThreshold = 0.7
	defaultComparator             = "cosine"
	defaultChunkStrategy          = "fixed_overlap"
	defaultChunkSize              = 256
	defaultChunkOverlap           = 32
	defaultChunkMaxTokens         = 32768
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		LLM: LLM{
			Provider:   defaultProvider,
			MaxRetries: defaultMaxRetries,
		},
		Transcription: Transcription{
			BaseURL:             defaultTranscriptionBaseURL,
			Language:            defaultTranscriptionLanguage,
			PollIntervalSeconds: defaultPollIntervalSeconds,
		},
		Cache: Cache{
			Capacity: defaultCacheCapacity,
		},
		Server: Server{
			Bind: defaultServerBind,
		},
		History: History{
			Enabled: true,
			Path:    defaultHistoryPath,
		},
		Analysis: Analysis{
			LowSimilarityThreshold: defaultLowSimilarityThreshold,
			Comparator:             defaultComparator,
			ChunkStrategy:          defaultChunkStrategy,
			ChunkSize:              defaultChunkSize,
			ChunkOverlap:           defaultChunkOverlap,
			MaxTokens:              defaultChunkMaxTokens,
		},
	}
}
