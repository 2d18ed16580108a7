package chunker

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/botirk38/argmap/tokenizer"
)

var turnStartRe = regexp.MustCompile(`(?i)^speaker [a-z]:`)

// SpeakerTurnChunker groups consecutive speaker turns into chunks of at most
// ChunkSize tokens. A single turn longer than ChunkSize becomes its own chunk.
type SpeakerTurnChunker struct {
	config  ChunkConfig
	counter *tokenizer.BPECounter
}

// NewSpeakerTurnChunker creates a chunker that never splits a speaker turn
// across two chunks.
func NewSpeakerTurnChunker(config ChunkConfig) (*SpeakerTurnChunker, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid chunk config: %w", err)
	}

	counter, err := tokenizer.NewBPECounter()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tokenizer: %w", err)
	}

	return &SpeakerTurnChunker{config: config, counter: counter}, nil
}

// CountTokens counts the number of tokens in the given text.
func (c *SpeakerTurnChunker) CountTokens(text string) (int, error) {
	n, err := c.counter.CountTokens(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTokenizerFailed, err)
	}
	return n, nil
}

// ChunkText splits text into speaker turns and packs them greedily.
func (c *SpeakerTurnChunker) ChunkText(text string) ([]Chunk, error) {
	turns := splitTurns(text)
	if len(turns) == 0 {
		return nil, ErrEmptyText
	}

	var (
		chunks  []Chunk
		current []string
		size    int
		start   int
		offset  int
	)

	flush := func() {
		if len(current) == 0 {
			return
		}
		chunks = append(chunks, Chunk{
			Text:       strings.Join(current, "\n"),
			StartToken: start,
			EndToken:   start + size,
			Index:      len(chunks),
		})
		start += size
		current, size = nil, 0
	}

	for _, turn := range turns {
		n, err := c.CountTokens(turn)
		if err != nil {
			return nil, err
		}
		offset += n
		if offset > c.config.MaxTokens {
			return nil, fmt.Errorf("%w: more than %d tokens", ErrTextTooLong, c.config.MaxTokens)
		}
		if size > 0 && size+n > c.config.ChunkSize {
			flush()
		}
		current = append(current, turn)
		size += n
	}
	flush()

	return chunks, nil
}

// splitTurns breaks a transcript on lines that open a new speaker turn.
// Transcripts without speaker labels come back as a single turn.
func splitTurns(text string) []string {
	var (
		turns   []string
		current []string
	)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if turnStartRe.MatchString(line) && len(current) > 0 {
			turns = append(turns, strings.Join(current, " "))
			current = nil
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		turns = append(turns, strings.Join(current, " "))
	}
	return turns
}
