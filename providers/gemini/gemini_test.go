package gemini

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/botirk38/argmap/types"
)

func TestNewGeminiProvider_KeyFallback(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
	if _, err := NewGeminiProvider(context.Background(), GeminiConfig{}); err == nil {
		t.Fatal("expected error without API key")
	}

	t.Setenv("GOOGLE_API_KEY", "google-key")
	p, err := NewGeminiProvider(context.Background(), GeminiConfig{})
	if err != nil {
		t.Fatalf("expected GOOGLE_API_KEY fallback, got %v", err)
	}
	if p.Name() != "gemini/"+DefaultGeminiModel {
		t.Errorf("Name() = %q", p.Name())
	}
}

func TestGeminiProvider_Complete(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [{
				"content": {"role": "model", "parts": [{"text": "0.85"}]},
				"finishReason": "STOP"
			}]
		}`))
	}))
	defer srv.Close()

	p, err := NewGeminiProvider(context.Background(), GeminiConfig{APIKey: "test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewGeminiProvider() error = %v", err)
	}

	got, err := p.Complete(context.Background(), types.CompletionRequest{Prompt: "score it", MaxTokens: 16})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got != "0.85" {
		t.Errorf("Complete() = %q", got)
	}
	if !strings.Contains(path, DefaultGeminiModel+":generateContent") {
		t.Errorf("unexpected request path %q", path)
	}
}

func TestGeminiProvider_GetMaxTokens(t *testing.T) {
	for _, model := range []string{DefaultGeminiModel, "unknown-model"} {
		p := &GeminiProvider{model: model}
		if got := p.GetMaxTokens(); got != 1048576 {
			t.Errorf("GetMaxTokens(%s) = %d, want 1048576", model, got)
		}
	}
}
