package gemini

import (
	"context"
	"errors"
	"fmt"
	"os"

	"google.golang.org/genai"

	"github.com/botirk38/argmap/types"
)

const (
	DefaultGeminiModel = "gemini-2.0-flash"
)

// geminiModelLimits maps model names to their input token limits.
var geminiModelLimits = map[string]int{
	"gemini-2.0-flash":      1048576,
	"gemini-2.0-flash-lite": 1048576,
	"gemini-2.5-pro":        1048576,
	"gemini-2.5-flash":      1048576,
}

// GeminiProvider generates completions with the Gemini API.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// GeminiConfig provides configuration options for the Gemini provider
type GeminiConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// NewGeminiProvider creates a completion provider for Gemini.
// The API key falls back to GEMINI_API_KEY, then GOOGLE_API_KEY.
func NewGeminiProvider(ctx context.Context, config GeminiConfig) (*GeminiProvider, error) {
	apiKey := config.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	if apiKey == "" {
		return nil, errors.New("Gemini API key is required")
	}

	model := config.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: config.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiProvider{client: client, model: model}, nil
}

// Complete generates a reply for the prompt.
func (p *GeminiProvider) Complete(ctx context.Context, req types.CompletionRequest) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(req.Temperature)),
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini completion failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", types.ErrEmptyCompletion
	}
	return text, nil
}

// CountTokens counts tokens using Gemini's token counting endpoint.
// This makes an API call.
func (p *GeminiProvider) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	result, err := p.client.Models.CountTokens(ctx, p.model, genai.Text(text), nil)
	if err != nil {
		return 0, fmt.Errorf("gemini token counting failed: %w", err)
	}
	return int(result.TotalTokens), nil
}

// Name returns "gemini/<model>".
func (p *GeminiProvider) Name() string {
	return "gemini/" + p.model
}

// GetMaxTokens returns the model's input token limit, defaulting to 1M.
func (p *GeminiProvider) GetMaxTokens() int {
	if limit, ok := geminiModelLimits[p.model]; ok {
		return limit
	}
	return 1048576
}

func (p *GeminiProvider) Close() {}
