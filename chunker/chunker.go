// Package chunker splits long transcripts into token-bounded windows so each
// part of a debate can be scored against a diagram on its own.
package chunker

import "fmt"

// Chunker defines the interface for text chunking strategies.
type Chunker interface {
	// ChunkText splits text into chunks based on the chunker's strategy
	// and token limits configured in the chunker.
	ChunkText(text string) ([]Chunk, error)

	// CountTokens counts the number of tokens in the given text.
	CountTokens(text string) (int, error)
}

// ChunkConfig holds configuration for text chunking behavior.
type ChunkConfig struct {
	// MaxTokens caps the whole input. Longer transcripts are rejected.
	// Default: 32768
	MaxTokens int

	// ChunkSize is the target number of tokens per chunk.
	// Default: 256 tokens
	ChunkSize int

	// ChunkOverlap is the number of tokens to overlap between chunks.
	// Only FixedSizeOverlap uses it.
	// Default: 32 tokens
	ChunkOverlap int

	// Strategy specifies the chunking algorithm to use.
	// Default: FixedSizeOverlap
	Strategy ChunkStrategy
}

// ChunkStrategy represents the chunking algorithm type.
type ChunkStrategy string

const (
	// FixedSizeOverlap splits text into fixed-size chunks with overlap.
	FixedSizeOverlap ChunkStrategy = "fixed_overlap"

	// SpeakerTurn packs whole speaker turns ("Speaker A: ...") into chunks.
	SpeakerTurn ChunkStrategy = "speaker_turn"
)

// Chunk represents a single chunk of text with its metadata.
type Chunk struct {
	// Text is the actual text content of this chunk
	Text string `json:"text"`

	// StartToken is the starting token index in the original text
	StartToken int `json:"start_token"`

	// EndToken is the ending token index in the original text
	EndToken int `json:"end_token"`

	// Index is the chunk's position in the sequence (0-based)
	Index int `json:"index"`
}

// DefaultChunkConfig returns the default chunking configuration.
func DefaultChunkConfig() ChunkConfig {
	return ChunkConfig{
		MaxTokens:    32768,
		ChunkSize:    256,
		ChunkOverlap: 32,
		Strategy:     FixedSizeOverlap,
	}
}

// Validate checks if the chunk configuration is valid.
func (c ChunkConfig) Validate() error {
	if c.MaxTokens <= 0 {
		return ErrInvalidMaxTokens
	}

	if c.ChunkSize <= 0 {
		return ErrInvalidChunkSize
	}
	if c.ChunkSize > c.MaxTokens {
		return ErrChunkSizeExceedsMax
	}

	if c.ChunkOverlap < 0 {
		return ErrInvalidOverlap
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return ErrOverlapTooLarge
	}

	switch c.Strategy {
	case "", FixedSizeOverlap, SpeakerTurn:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStrategy, c.Strategy)
	}

	return nil
}

// New builds the chunker selected by config.Strategy. An empty strategy means
// FixedSizeOverlap.
func New(config ChunkConfig) (Chunker, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid chunk config: %w", err)
	}
	if config.Strategy == SpeakerTurn {
		return NewSpeakerTurnChunker(config)
	}
	return NewFixedOverlapChunker(config)
}
