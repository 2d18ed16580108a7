package argmap

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome of a full pipeline run.
type Result struct {
	Transcript      string `json:"transcript"`
	MainClaim       string `json:"mainClaim"`
	InitialDiagram  string `json:"initialDiagram"`
	ImprovedDiagram string `json:"improvedDiagram"`
	// Diagram is the final, fence-stripped Mermaid code.
	Diagram string `json:"diagram"`

	// LocalScore is the TF-IDF similarity between transcript and diagram text.
	LocalScore float64 `json:"localScore"`
	// LLMScore is the model's own similarity rating; nil when that check failed.
	LLMScore      *float64 `json:"llmScore,omitempty"`
	LLMScoreError string   `json:"llmScoreError,omitempty"`
	// LowSimilarity is set when LocalScore is below the configured threshold.
	LowSimilarity bool `json:"lowSimilarity"`

	Provider string        `json:"provider"`
	Duration time.Duration `json:"duration"`
}

// Process runs the pipeline: main claim, draft, restyle, describe, clean, then
// both similarity checks in parallel.
func (a *Analyzer) Process(ctx context.Context, transcript string) (*Result, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, ErrEmptyTranscript
	}
	start := time.Now()
	res := &Result{Transcript: transcript, Provider: a.provider.Name()}

	var err error
	if res.MainClaim, err = a.GetMainClaim(ctx, transcript); err != nil {
		return nil, err
	}
	a.logger.Info("main claim extracted", "claim", res.MainClaim)

	if res.InitialDiagram, err = a.GenerateDiagram(ctx, transcript, res.MainClaim); err != nil {
		return nil, err
	}
	if res.ImprovedDiagram, err = a.ImproveDiagram(ctx, res.InitialDiagram); err != nil {
		return nil, err
	}
	final, err := a.MakeMoreDescriptive(ctx, res.ImprovedDiagram, transcript)
	if err != nil {
		return nil, err
	}
	res.Diagram = CleanMermaidCode(final)

	// The LLM rating is advisory, so its failure is recorded rather than returned.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res.LocalScore = a.CheckSemanticSimilarity(gctx, transcript, res.Diagram)
		return nil
	})
	g.Go(func() error {
		score, err := a.CheckSimilarityLLM(gctx, transcript, res.Diagram)
		if err != nil {
			a.logger.Warn("llm similarity check failed", "error", err)
			res.LLMScoreError = err.Error()
			return nil
		}
		res.LLMScore = &score
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if res.LocalScore < a.lowSimilarityThreshold {
		res.LowSimilarity = true
		a.logger.Warn("low semantic similarity between transcript and diagram",
			"score", res.LocalScore,
			"threshold", a.lowSimilarityThreshold,
		)
	}

	res.Duration = time.Since(start)
	a.logger.Info("pipeline finished", "duration", res.Duration, "local_score", res.LocalScore)
	return res, nil
}

// ProcessAudio transcribes audio and runs Process on the transcript.
func (a *Analyzer) ProcessAudio(ctx context.Context, audio []byte) (*Result, error) {
	transcript, err := a.Transcribe(ctx, audio)
	if err != nil {
		return nil, err
	}
	return a.Process(ctx, transcript)
}

// ProcessResult holds the result of an async Process operation.
type ProcessResult struct {
	Result *Result
	Error  error
}

// ProcessAsync runs Process in a goroutine.
// Returns a channel that will receive the result when complete.
func (a *Analyzer) ProcessAsync(ctx context.Context, transcript string) <-chan ProcessResult {
	resultCh := make(chan ProcessResult, 1)
	go func() {
		defer close(resultCh)
		res, err := a.Process(ctx, transcript)
		resultCh <- ProcessResult{Result: res, Error: err}
	}()
	return resultCh
}
