package argmap

import (
	"context"
	"fmt"

	"github.com/botirk38/argmap/tokenizer"
)

// DiagramCheck is the outcome of comparing a diagram with its transcript.
// Err is set when scoring failed and Score was forced to 0.
type DiagramCheck struct {
	Score       float64 `json:"score"`
	DiagramText string  `json:"diagramText"`
	Err         error   `json:"-"`
}

// CheckDiagram strips Mermaid markup from diagram and scores the remaining
// prose against transcript with CompareTexts. The configured comparator only
// applies to Coverage, so the score keeps the cosine bounds.
func (a *Analyzer) CheckDiagram(ctx context.Context, transcript, diagram string) (check DiagramCheck) {
	defer func() {
		if r := recover(); r != nil {
			check = DiagramCheck{Err: fmt.Errorf("scoring diagram: panic: %v", r)}
		}
	}()

	if err := ctx.Err(); err != nil {
		return DiagramCheck{Err: err}
	}

	text := tokenizer.ExtractDiagramText(diagram)
	return DiagramCheck{
		Score:       CompareTexts(transcript, text),
		DiagramText: text,
	}
}

// CheckSemanticSimilarity is CheckDiagram for callers that only want a number.
// It never fails: errors are logged and reported as a score of 0.
func (a *Analyzer) CheckSemanticSimilarity(ctx context.Context, transcript, diagram string) float64 {
	check := a.CheckDiagram(ctx, transcript, diagram)
	if check.Err != nil {
		a.logger.Error("error checking semantic similarity", "error", check.Err)
		return 0
	}

	a.logger.Debug("comparing transcript with diagram",
		"transcript", transcript,
		"diagram_text", check.DiagramText,
	)
	a.logger.Info("semantic similarity", "score", check.Score)

	if check.Score == 0 {
		a.logger.Warn("zero similarity detected",
			"transcript_chars", len(transcript),
			"diagram", diagram,
		)
	}
	return check.Score
}
