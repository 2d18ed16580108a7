package openai

import (
	"context"
	"errors"
	"fmt"
	"os"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/botirk38/argmap/tokenizer"
	"github.com/botirk38/argmap/types"
)

const (
	DefaultOpenAIModel = openai.ChatModelGPT4o
)

// openAIModelLimits maps chat models to their context windows.
var openAIModelLimits = map[string]int{
	openai.ChatModelGPT4o:     128000,
	openai.ChatModelGPT4oMini: 128000,
	openai.ChatModelGPT4Turbo: 128000,
	openai.ChatModelGPT4_1:    1047576,
}

// OpenAIProvider uses OpenAI's chat completions API.
type OpenAIProvider struct {
	client  *openai.Client
	model   string
	counter *tokenizer.BPECounter
}

// OpenAIConfig provides configuration options for the OpenAI provider
type OpenAIConfig struct {
	APIKey     string
	BaseURL    string
	OrgID      string
	Model      string
	MaxRetries int
}

// NewOpenAIProvider creates a completion provider for OpenAI.
// The API key falls back to OPENAI_API_KEY.
func NewOpenAIProvider(config OpenAIConfig) (*OpenAIProvider, error) {
	apiKey := config.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, errors.New("OpenAI API key is required")
		}
	}

	model := config.Model
	if model == "" {
		model = DefaultOpenAIModel
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}

	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}

	if config.OrgID != "" {
		opts = append(opts, option.WithOrganization(config.OrgID))
	}

	if config.MaxRetries > 0 {
		opts = append(opts, option.WithMaxRetries(config.MaxRetries))
	}

	counter, err := tokenizer.NewBPECounter()
	if err != nil {
		return nil, err
	}

	client := openai.NewClient(opts...)
	return &OpenAIProvider{client: &client, model: model, counter: counter}, nil
}

// Complete sends the request as a system and user message pair.
func (p *OpenAIProvider) Complete(ctx context.Context, req types.CompletionRequest) (string, error) {
	var messages []openai.ChatCompletionMessageParamUnion
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(p.model),
		Messages:    messages,
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(req.MaxTokens))
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai completion failed: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", types.ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}

// CountTokens counts tokens locally with tiktoken. No API call is made.
func (p *OpenAIProvider) CountTokens(ctx context.Context, text string) (int, error) {
	return p.counter.CountTokens(text)
}

// Name returns "openai/<model>".
func (p *OpenAIProvider) Name() string {
	return "openai/" + p.model
}

// GetMaxTokens returns the model's context window, defaulting to 128k.
func (p *OpenAIProvider) GetMaxTokens() int {
	if limit, ok := openAIModelLimits[p.model]; ok {
		return limit
	}
	return 128000
}

func (p *OpenAIProvider) Close() {}
