package argmap

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/botirk38/argmap/tokenizer"
)

// ChunkScore is the similarity between one transcript chunk and a diagram.
type ChunkScore struct {
	Index      int     `json:"index"`
	StartToken int     `json:"startToken"`
	EndToken   int     `json:"endToken"`
	Text       string  `json:"text"`
	Score      float64 `json:"score"`
}

// Coverage splits transcript into token chunks and scores each against the
// diagram's text, showing which parts of a debate the diagram leaves out.
// Scores are returned in transcript order.
func (a *Analyzer) Coverage(ctx context.Context, transcript, diagram string) ([]ChunkScore, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, ErrEmptyTranscript
	}
	if strings.TrimSpace(diagram) == "" {
		return nil, ErrEmptyDiagram
	}

	c, err := a.chunker()
	if err != nil {
		return nil, err
	}
	chunks, err := c.ChunkText(transcript)
	if err != nil {
		return nil, fmt.Errorf("chunking transcript: %w", err)
	}

	diagramText := tokenizer.ExtractDiagramText(diagram)
	scores := make([]ChunkScore, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, chunk := range chunks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scores[i] = ChunkScore{
				Index:      chunk.Index,
				StartToken: chunk.StartToken,
				EndToken:   chunk.EndToken,
				Text:       chunk.Text,
				Score:      CompareTextsWith(a.comparator, chunk.Text, diagramText),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	a.logger.Debug("coverage computed", "chunks", len(scores))
	return scores, nil
}
