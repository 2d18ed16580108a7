package chunker

import (
	"fmt"
	"strings"

	"github.com/botirk38/argmap/tokenizer"
)

// FixedOverlapChunker implements the Chunker interface using a fixed-size
// chunking strategy with overlap between chunks.
type FixedOverlapChunker struct {
	config  ChunkConfig
	counter *tokenizer.BPECounter
}

// NewFixedOverlapChunker creates a new FixedOverlapChunker with the given configuration.
func NewFixedOverlapChunker(config ChunkConfig) (*FixedOverlapChunker, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid chunk config: %w", err)
	}

	counter, err := tokenizer.NewBPECounter()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tokenizer: %w", err)
	}

	return &FixedOverlapChunker{
		config:  config,
		counter: counter,
	}, nil
}

// CountTokens counts the number of tokens in the given text.
func (c *FixedOverlapChunker) CountTokens(text string) (int, error) {
	n, err := c.counter.CountTokens(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTokenizerFailed, err)
	}
	return n, nil
}

// ChunkText splits the text into overlapping chunks based on token count.
func (c *FixedOverlapChunker) ChunkText(text string) ([]Chunk, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	codec := c.counter.Codec()
	tokens, _, err := codec.Encode(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenizerFailed, err)
	}

	totalTokens := len(tokens)
	if totalTokens > c.config.MaxTokens {
		return nil, fmt.Errorf("%w: %d > %d", ErrTextTooLong, totalTokens, c.config.MaxTokens)
	}

	if totalTokens <= c.config.ChunkSize {
		return []Chunk{{
			Text:       text,
			StartToken: 0,
			EndToken:   totalTokens,
			Index:      0,
		}}, nil
	}

	stride := c.config.ChunkSize - c.config.ChunkOverlap

	var chunks []Chunk
	for start := 0; start < totalTokens; start += stride {
		end := min(start+c.config.ChunkSize, totalTokens)

		chunkText, err := codec.Decode(tokens[start:end])
		if err != nil {
			return nil, fmt.Errorf("failed to decode chunk %d: %w", len(chunks), err)
		}

		chunks = append(chunks, Chunk{
			Text:       chunkText,
			StartToken: start,
			EndToken:   end,
			Index:      len(chunks),
		})

		if end >= totalTokens {
			break
		}
	}

	return chunks, nil
}
