package argmap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/botirk38/argmap/chunker"
	"github.com/botirk38/argmap/options"
	"github.com/botirk38/argmap/similarity"
	"github.com/botirk38/argmap/types"
)

// Analyzer runs the transcript to diagram pipeline against a completion provider.
// It is safe for concurrent use.
type Analyzer struct {
	provider    types.CompletionProvider
	cache       types.CacheBackend[string, string]
	transcriber types.Transcriber
	comparator  similarity.SimilarityFunc
	logger      *slog.Logger

	lowSimilarityThreshold float64
	maxPromptTokens        int

	chunkConfig chunker.ChunkConfig
	chunker     func() (chunker.Chunker, error)
}

// New creates an Analyzer with functional options.
func New(opts ...options.Option) (*Analyzer, error) {
	cfg := options.NewConfig()

	if err := cfg.Apply(opts...); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return NewAnalyzer(cfg.Provider, cfg.Cache, cfg)
}

// NewAnalyzer creates an Analyzer from a provider and an optional completion
// cache. Remaining settings come from cfg; a nil cfg uses the defaults.
func NewAnalyzer(provider types.CompletionProvider, cache types.CacheBackend[string, string], cfg *options.Config) (*Analyzer, error) {
	if provider == nil {
		return nil, errors.New("provider cannot be nil")
	}
	if cfg == nil {
		cfg = options.NewConfig()
	}
	if cfg.Comparator == nil {
		return nil, errors.New("comparator cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	chunkConfig := cfg.ChunkConfig
	return &Analyzer{
		provider:               provider,
		cache:                  cache,
		transcriber:            cfg.Transcriber,
		comparator:             cfg.Comparator,
		logger:                 logger,
		lowSimilarityThreshold: cfg.LowSimilarityThreshold,
		maxPromptTokens:        cfg.MaxPromptTokens,
		chunkConfig:            chunkConfig,
		chunker: sync.OnceValues(func() (chunker.Chunker, error) {
			return chunker.New(chunkConfig)
		}),
	}, nil
}

// Provider returns the completion provider in use.
func (a *Analyzer) Provider() types.CompletionProvider {
	return a.provider
}

// Close releases the provider and the completion cache.
func (a *Analyzer) Close() error {
	a.provider.Close()
	if a.cache != nil {
		return a.cache.Close()
	}
	return nil
}

// GetMainClaim asks the model for the one-sentence claim the debate revolves around.
func (a *Analyzer) GetMainClaim(ctx context.Context, transcript string) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", ErrEmptyTranscript
	}

	claim, err := a.complete(ctx, "main_claim", types.CompletionRequest{
		Prompt:    mainClaimPrompt(transcript),
		MaxTokens: mainClaimMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("getting main claim: %w", err)
	}
	return strings.TrimSpace(claim), nil
}

// GenerateDiagram drafts a Mermaid diagram of the debate centred on mainClaim.
func (a *Analyzer) GenerateDiagram(ctx context.Context, transcript, mainClaim string) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", ErrEmptyTranscript
	}

	diagram, err := a.complete(ctx, "generate_diagram", types.CompletionRequest{
		Prompt:    generateDiagramPrompt(transcript, mainClaim),
		MaxTokens: diagramMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("generating diagram: %w", err)
	}
	return diagram, nil
}

// ImproveDiagram restyles a diagram for readability and keeps it a tree.
func (a *Analyzer) ImproveDiagram(ctx context.Context, diagram string) (string, error) {
	if strings.TrimSpace(diagram) == "" {
		return "", ErrEmptyDiagram
	}

	improved, err := a.complete(ctx, "improve_diagram", types.CompletionRequest{
		Prompt:    improveDiagramPrompt(diagram),
		MaxTokens: diagramMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("improving diagram: %w", err)
	}
	return improved, nil
}

// MakeMoreDescriptive rewrites node text in plain language and turns the main
// claim into a question.
func (a *Analyzer) MakeMoreDescriptive(ctx context.Context, diagram, transcript string) (string, error) {
	if strings.TrimSpace(diagram) == "" {
		return "", ErrEmptyDiagram
	}
	if strings.TrimSpace(transcript) == "" {
		return "", ErrEmptyTranscript
	}

	described, err := a.complete(ctx, "make_descriptive", types.CompletionRequest{
		Prompt:    descriptivePrompt(diagram, transcript),
		MaxTokens: diagramMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("making diagram more descriptive: %w", err)
	}
	return described, nil
}

// EditDiagram applies a natural-language instruction to a diagram and returns
// the cleaned result.
func (a *Analyzer) EditDiagram(ctx context.Context, diagram, instruction string) (string, error) {
	if strings.TrimSpace(diagram) == "" {
		return "", ErrEmptyDiagram
	}
	if strings.TrimSpace(instruction) == "" {
		return "", ErrEmptyInstruction
	}

	edited, err := a.complete(ctx, "edit_diagram", types.CompletionRequest{
		Prompt:    editDiagramPrompt(diagram, instruction),
		MaxTokens: diagramMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("editing diagram: %w", err)
	}
	return CleanMermaidCode(edited), nil
}

// EditDiagramFromAudio transcribes a spoken instruction and applies it.
func (a *Analyzer) EditDiagramFromAudio(ctx context.Context, diagram string, audio []byte) (string, error) {
	instruction, err := a.Transcribe(ctx, audio)
	if err != nil {
		return "", err
	}
	a.logger.Info("voice instruction transcribed", "instruction", instruction)
	return a.EditDiagram(ctx, diagram, instruction)
}

// Transcribe converts audio to text with the configured transcriber.
func (a *Analyzer) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if a.transcriber == nil {
		return "", ErrNoTranscriber
	}
	if len(audio) == 0 {
		return "", ErrEmptyAudio
	}

	text, err := a.transcriber.Transcribe(ctx, audio)
	if err != nil {
		return "", fmt.Errorf("transcribing audio: %w", err)
	}
	return text, nil
}

var leadingNumberRe = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// parseScore reads the leading decimal number of a model reply, ignoring any
// trailing prose, and clamps it to [0, 1].
func parseScore(reply string) (float64, error) {
	m := leadingNumberRe.FindString(strings.TrimSpace(reply))
	if m == "" {
		return 0, fmt.Errorf("%w: %q", ErrUnparsableScore, reply)
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnparsableScore, reply)
	}
	return similarity.Clamp01(v), nil
}

// CheckSimilarityLLM asks the model to rate how well diagram represents transcript.
func (a *Analyzer) CheckSimilarityLLM(ctx context.Context, transcript, diagram string) (float64, error) {
	if strings.TrimSpace(transcript) == "" {
		return 0, ErrEmptyTranscript
	}
	if strings.TrimSpace(diagram) == "" {
		return 0, ErrEmptyDiagram
	}

	reply, err := a.complete(ctx, "check_similarity", types.CompletionRequest{
		Prompt:    similarityPrompt(transcript, diagram),
		MaxTokens: similarityMaxTokens,
	})
	if err != nil {
		return 0, fmt.Errorf("checking similarity: %w", err)
	}
	return parseScore(reply)
}
