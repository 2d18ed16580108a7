// Package assemblyai transcribes recorded debate audio through the
// AssemblyAI Go SDK using its upload, submit and poll flow.
package assemblyai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
)

const (
	DefaultBaseURL      = "https://api.assemblyai.com"
	DefaultPollInterval = 3 * time.Second
	DefaultLanguage     = "en"
)

var (
	// ErrEmptyAudio is returned when Transcribe is called with no audio bytes.
	ErrEmptyAudio = errors.New("assemblyai: audio is empty")
	// ErrMissingAPIKey is returned when no API key is configured.
	ErrMissingAPIKey = errors.New("AssemblyAI API key is required")
)

// TranscriptionError reports a transcript that AssemblyAI marked as failed.
type TranscriptionError struct {
	ID      string
	Message string
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcription %s failed: %s", e.ID, e.Message)
}

// Config provides configuration options for the AssemblyAI client
type Config struct {
	APIKey       string
	BaseURL      string
	Language     string
	PollInterval time.Duration
	HTTPClient   *http.Client
	Logger       *slog.Logger
}

// Client implements types.Transcriber.
type Client struct {
	client       *aai.Client
	apiKey       string
	baseURL      string
	language     string
	pollInterval time.Duration
	logger       *slog.Logger
}

// NewClient creates an AssemblyAI client. The API key falls back to
// ASSEMBLYAI_API_KEY.
func NewClient(config Config) (*Client, error) {
	apiKey := config.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("ASSEMBLYAI_API_KEY")
		if apiKey == "" {
			return nil, ErrMissingAPIKey
		}
	}

	c := &Client{
		apiKey:       apiKey,
		baseURL:      config.BaseURL,
		language:     config.Language,
		pollInterval: config.PollInterval,
		logger:       config.Logger,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.language == "" {
		c.language = DefaultLanguage
	}
	if c.pollInterval <= 0 {
		c.pollInterval = DefaultPollInterval
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	c.client = aai.NewClientWithOptions(
		aai.WithAPIKey(apiKey),
		aai.WithBaseURL(c.baseURL),
		aai.WithHTTPClient(httpClient),
	)
	return c, nil
}

// Transcribe uploads audio, submits a transcript job and polls until it
// completes, fails or ctx is done.
func (c *Client) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", ErrEmptyAudio
	}

	uploadURL, err := c.client.Upload(ctx, bytes.NewReader(audio))
	if err != nil {
		return "", fmt.Errorf("upload audio: %w", err)
	}

	transcript, err := c.client.Transcripts.SubmitFromURL(ctx, uploadURL, &aai.TranscriptOptionalParams{
		LanguageCode: aai.TranscriptLanguageCode(c.language),
		FormatText:   aai.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("submit transcript: %w", err)
	}
	id := deref(transcript.ID)
	if id == "" {
		return "", errors.New("submit transcript: response carried no id")
	}
	c.logger.Debug("transcript submitted", "id", id)

	return c.wait(ctx, id)
}

// wait polls the transcript every poll interval until it leaves the queue.
// The SDK's own Wait polls on a fixed interval, so the loop lives here.
func (c *Client) wait(ctx context.Context, id string) (string, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		transcript, err := c.client.Transcripts.Get(ctx, id)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", ctxErr
			}
			return "", fmt.Errorf("poll transcript %s: %w", id, err)
		}

		switch transcript.Status {
		case aai.TranscriptStatusCompleted:
			return deref(transcript.Text), nil
		case aai.TranscriptStatusError:
			return "", &TranscriptionError{ID: id, Message: deref(transcript.Error)}
		}
		c.logger.Debug("transcript pending", "id", id, "status", transcript.Status)

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
