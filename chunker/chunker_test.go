package chunker

import (
	"errors"
	"fmt"
	"testing"
)

func TestDefaultChunkConfig(t *testing.T) {
	config := DefaultChunkConfig()

	if config.MaxTokens != 32768 {
		t.Errorf("expected MaxTokens=32768, got %d", config.MaxTokens)
	}
	if config.ChunkSize != 256 {
		t.Errorf("expected ChunkSize=256, got %d", config.ChunkSize)
	}
	if config.ChunkOverlap != 32 {
		t.Errorf("expected ChunkOverlap=32, got %d", config.ChunkOverlap)
	}
	if err := config.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
	if config.Strategy != FixedSizeOverlap {
		t.Errorf("expected Strategy=FixedSizeOverlap, got %s", config.Strategy)
	}
}

func TestChunkConfig_Validate(t *testing.T) {
	base := DefaultChunkConfig()
	with := func(mutate func(*ChunkConfig)) ChunkConfig {
		c := base
		mutate(&c)
		return c
	}

	tests := []struct {
		name    string
		config  ChunkConfig
		wantErr error
	}{
		{"defaults", base, nil},
		{"speaker turns", with(func(c *ChunkConfig) { c.Strategy = SpeakerTurn }), nil},
		{"empty strategy", with(func(c *ChunkConfig) { c.Strategy = "" }), nil},
		{"zero chunk size", with(func(c *ChunkConfig) { c.ChunkSize = 0 }), ErrInvalidChunkSize},
		{"negative chunk size", with(func(c *ChunkConfig) { c.ChunkSize = -1 }), ErrInvalidChunkSize},
		{"chunk larger than transcript cap", with(func(c *ChunkConfig) { c.MaxTokens = 128 }), ErrChunkSizeExceedsMax},
		{"negative overlap", with(func(c *ChunkConfig) { c.ChunkOverlap = -1 }), ErrInvalidOverlap},
		{"overlap equals chunk", with(func(c *ChunkConfig) { c.ChunkOverlap = c.ChunkSize }), ErrOverlapTooLarge},
		{"overlap exceeds chunk", with(func(c *ChunkConfig) { c.ChunkOverlap = c.ChunkSize + 1 }), ErrOverlapTooLarge},
		{"unknown strategy", with(func(c *ChunkConfig) { c.Strategy = "paragraph" }), ErrUnknownStrategy},
		{"zero max tokens", with(func(c *ChunkConfig) { c.MaxTokens = 0 }), ErrInvalidMaxTokens},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		strategy ChunkStrategy
		want     string
	}{
		{"default", "", "*chunker.FixedOverlapChunker"},
		{"fixed", FixedSizeOverlap, "*chunker.FixedOverlapChunker"},
		{"speaker", SpeakerTurn, "*chunker.SpeakerTurnChunker"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultChunkConfig()
			config.Strategy = tt.strategy
			c, err := New(config)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if got := fmt.Sprintf("%T", c); got != tt.want {
				t.Errorf("New() = %s, want %s", got, tt.want)
			}
		})
	}

	if _, err := New(ChunkConfig{}); !errors.Is(err, ErrInvalidMaxTokens) {
		t.Errorf("New(zero config) error = %v, want ErrInvalidMaxTokens", err)
	}
}
