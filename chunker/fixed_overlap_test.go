package chunker

import (
	"errors"
	"strings"
	"testing"
)

const debateTurn = "Speaker A: Homework should be optional because students need time to rest. "

func newFixed(t *testing.T, size, overlap int) *FixedOverlapChunker {
	t.Helper()
	c, err := NewFixedOverlapChunker(ChunkConfig{
		MaxTokens:    4096,
		ChunkSize:    size,
		ChunkOverlap: overlap,
		Strategy:     FixedSizeOverlap,
	})
	if err != nil {
		t.Fatalf("NewFixedOverlapChunker() error = %v", err)
	}
	return c
}

func TestNewFixedOverlapChunkerRejectsBadConfig(t *testing.T) {
	_, err := NewFixedOverlapChunker(ChunkConfig{MaxTokens: 100, ChunkSize: 200})
	if !errors.Is(err, ErrChunkSizeExceedsMax) {
		t.Fatalf("expected ErrChunkSizeExceedsMax, got %v", err)
	}
}

func TestFixedOverlapChunker_CountTokens(t *testing.T) {
	c := newFixed(t, 64, 8)

	tests := []struct {
		name     string
		text     string
		min, max int
	}{
		{"empty", "", 0, 0},
		{"speaker label", "Speaker B:", 2, 5},
		{"one turn", debateTurn, 10, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := c.CountTokens(tt.text)
			if err != nil {
				t.Fatalf("CountTokens() error = %v", err)
			}
			if n < tt.min || n > tt.max {
				t.Errorf("CountTokens() = %d, want %d..%d", n, tt.min, tt.max)
			}
		})
	}
}

func TestFixedOverlapChunker_ChunkText(t *testing.T) {
	t.Run("blank transcript", func(t *testing.T) {
		c := newFixed(t, 64, 8)
		if _, err := c.ChunkText(" \n\t"); !errors.Is(err, ErrEmptyText) {
			t.Errorf("expected ErrEmptyText, got %v", err)
		}
	})

	t.Run("short transcript is one chunk", func(t *testing.T) {
		c := newFixed(t, 64, 8)
		chunks, err := c.ChunkText(debateTurn)
		if err != nil {
			t.Fatalf("ChunkText() error = %v", err)
		}
		if len(chunks) != 1 {
			t.Fatalf("expected 1 chunk, got %d", len(chunks))
		}
		if chunks[0].Text != debateTurn || chunks[0].StartToken != 0 {
			t.Errorf("unexpected chunk %+v", chunks[0])
		}
	})

	t.Run("windows advance by size minus overlap", func(t *testing.T) {
		const size, overlap = 20, 5
		c := newFixed(t, size, overlap)
		text := strings.Repeat(debateTurn, 12)

		total, err := c.CountTokens(text)
		if err != nil {
			t.Fatalf("CountTokens() error = %v", err)
		}
		chunks, err := c.ChunkText(text)
		if err != nil {
			t.Fatalf("ChunkText() error = %v", err)
		}
		if len(chunks) < 2 {
			t.Fatalf("expected several chunks, got %d", len(chunks))
		}

		for i, chunk := range chunks {
			if chunk.Index != i {
				t.Errorf("chunk %d has index %d", i, chunk.Index)
			}
			if chunk.StartToken != i*(size-overlap) {
				t.Errorf("chunk %d starts at %d, want %d", i, chunk.StartToken, i*(size-overlap))
			}
			if chunk.EndToken-chunk.StartToken > size {
				t.Errorf("chunk %d spans %d tokens, more than %d", i, chunk.EndToken-chunk.StartToken, size)
			}
			if chunk.Text == "" {
				t.Errorf("chunk %d is empty", i)
			}
			if i > 0 && chunk.StartToken >= chunks[i-1].EndToken {
				t.Errorf("chunks %d and %d do not overlap", i-1, i)
			}
		}
		if last := chunks[len(chunks)-1]; last.EndToken != total {
			t.Errorf("last chunk ends at %d, want %d", last.EndToken, total)
		}
	})

	t.Run("zero overlap tiles the transcript", func(t *testing.T) {
		c := newFixed(t, 16, 0)
		text := strings.Repeat(debateTurn, 4)
		chunks, err := c.ChunkText(text)
		if err != nil {
			t.Fatalf("ChunkText() error = %v", err)
		}

		var rebuilt strings.Builder
		for i, chunk := range chunks {
			if i > 0 && chunk.StartToken != chunks[i-1].EndToken {
				t.Errorf("gap or overlap between chunks %d and %d", i-1, i)
			}
			rebuilt.WriteString(chunk.Text)
		}
		if rebuilt.String() != text {
			t.Errorf("chunks do not reassemble the transcript")
		}
	})
}

func TestFixedOverlapChunker_TextTooLong(t *testing.T) {
	c, err := NewFixedOverlapChunker(ChunkConfig{
		MaxTokens:    20,
		ChunkSize:    10,
		ChunkOverlap: 2,
		Strategy:     FixedSizeOverlap,
	})
	if err != nil {
		t.Fatalf("NewFixedOverlapChunker() error = %v", err)
	}

	_, err = c.ChunkText(strings.Repeat("homework debate ", 40))
	if !errors.Is(err, ErrTextTooLong) {
		t.Errorf("expected ErrTextTooLong, got %v", err)
	}
}
