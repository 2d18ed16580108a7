package anthropic

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/botirk38/argmap/types"
)

const (
	DefaultAnthropicModel = "claude-3-5-sonnet-20241022"

	defaultMaxTokens = 1024
)

// anthropicModelLimits maps model names to their context windows.
var anthropicModelLimits = map[string]int{
	"claude-3-5-sonnet-20241022": 200000,
	"claude-3-5-haiku-20241022":  200000,
	"claude-3-7-sonnet-20250219": 200000,
	"claude-sonnet-4-20250514":   200000,
}

// AnthropicProvider sends completions to Anthropic's Messages API.
type AnthropicProvider struct {
	client *anthropic.Client
	model  string
}

// AnthropicConfig provides configuration options for the Anthropic provider
type AnthropicConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	MaxRetries int
}

// NewAnthropicProvider creates a completion provider for Anthropic.
// The API key falls back to ANTHROPIC_API_KEY.
func NewAnthropicProvider(config AnthropicConfig) (*AnthropicProvider, error) {
	apiKey := config.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return nil, errors.New("Anthropic API key is required")
		}
	}

	model := config.Model
	if model == "" {
		model = DefaultAnthropicModel
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}
	if config.MaxRetries > 0 {
		opts = append(opts, option.WithMaxRetries(config.MaxRetries))
	}

	client := anthropic.NewClient(opts...)
	return &AnthropicProvider{client: &client, model: model}, nil
}

// Complete sends a single user message and returns the concatenated text blocks
// of the reply.
func (p *AnthropicProvider) Complete(ctx context.Context, req types.CompletionRequest) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(p.model),
		MaxTokens:   int64(maxTokens),
		Temperature: anthropic.Float(req.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic completion failed: %w", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", types.ErrEmptyCompletion
	}
	return b.String(), nil
}

// CountTokens counts input tokens using Anthropic's token counting endpoint.
// This makes an API call.
func (p *AnthropicProvider) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	result, err := p.client.Messages.CountTokens(ctx, anthropic.MessageCountTokensParams{
		Model: anthropic.Model(p.model),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(text)),
		},
	})
	if err != nil {
		return 0, fmt.Errorf("anthropic token counting failed: %w", err)
	}
	return int(result.InputTokens), nil
}

// Name returns "anthropic/<model>".
func (p *AnthropicProvider) Name() string {
	return "anthropic/" + p.model
}

// GetMaxTokens returns the model's context window, defaulting to 200k for
// unknown models.
func (p *AnthropicProvider) GetMaxTokens() int {
	if limit, ok := anthropicModelLimits[p.model]; ok {
		return limit
	}
	return 200000
}

func (p *AnthropicProvider) Close() {}
