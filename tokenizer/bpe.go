package tokenizer

import (
	"fmt"

	"github.com/tiktoken-go/tokenizer"
)

// BPECounter counts model tokens using tiktoken's cl100k_base encoding.
// It is a local approximation and never calls a remote API.
type BPECounter struct {
	codec tokenizer.Codec
}

// NewBPECounter loads the cl100k_base encoding.
func NewBPECounter() (*BPECounter, error) {
	enc, err := tokenizer.Get(tokenizer.Cl100kBase)
	if err != nil {
		return nil, fmt.Errorf("load cl100k_base encoding: %w", err)
	}
	return &BPECounter{codec: enc}, nil
}

// CountTokens returns the number of BPE tokens in text.
func (c *BPECounter) CountTokens(text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	ids, _, err := c.codec.Encode(text)
	if err != nil {
		return 0, fmt.Errorf("encode text: %w", err)
	}
	return len(ids), nil
}

// Codec exposes the underlying encoding for callers that need to slice token ids.
func (c *BPECounter) Codec() tokenizer.Codec {
	return c.codec
}
