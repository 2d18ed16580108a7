// Package providers builds completion providers for the supported LLM vendors.
package providers

import (
	"context"
	"errors"
	"fmt"

	"github.com/botirk38/argmap/providers/anthropic"
	"github.com/botirk38/argmap/providers/gemini"
	"github.com/botirk38/argmap/providers/openai"
	"github.com/botirk38/argmap/types"
)

var (
	ErrUnsupportedProvider = errors.New("unsupported provider type")

	// ErrEmptyCompletion is returned when a model reply carries no text.
	ErrEmptyCompletion = types.ErrEmptyCompletion
)

// Config carries the settings shared by every provider. Empty fields fall back
// to each provider's defaults and environment variables.
type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	MaxRetries int
}

// New creates a provider of the given type.
func New(ctx context.Context, providerType types.ProviderType, config Config) (types.CompletionProvider, error) {
	switch providerType {
	case types.ProviderAnthropic:
		return NewAnthropicProvider(anthropic.AnthropicConfig{
			APIKey:     config.APIKey,
			BaseURL:    config.BaseURL,
			Model:      config.Model,
			MaxRetries: config.MaxRetries,
		})
	case types.ProviderOpenAI:
		return NewOpenAIProvider(openai.OpenAIConfig{
			APIKey:     config.APIKey,
			BaseURL:    config.BaseURL,
			Model:      config.Model,
			MaxRetries: config.MaxRetries,
		})
	case types.ProviderGemini:
		return NewGeminiProvider(ctx, gemini.GeminiConfig{
			APIKey:  config.APIKey,
			BaseURL: config.BaseURL,
			Model:   config.Model,
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, providerType)
	}
}

// NewAnthropicProvider creates a new Anthropic provider
func NewAnthropicProvider(config anthropic.AnthropicConfig) (types.CompletionProvider, error) {
	p, err := anthropic.NewAnthropicProvider(config)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(config openai.OpenAIConfig) (types.CompletionProvider, error) {
	p, err := openai.NewOpenAIProvider(config)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// NewGeminiProvider creates a new Gemini provider
func NewGeminiProvider(ctx context.Context, config gemini.GeminiConfig) (types.CompletionProvider, error) {
	p, err := gemini.NewGeminiProvider(ctx, config)
	if err != nil {
		return nil, err
	}
	return p, nil
}
