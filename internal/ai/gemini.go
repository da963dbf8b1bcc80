package ai

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"google.golang.org/genai"

	"audiosummarizer/internal/config"
)

const transcribePrompt = `Transcribe the attached audio recording verbatim.
Return only the spoken text as plain prose, with sentence punctuation and
paragraph breaks where the speaker pauses. Do not add timestamps, speaker
labels, or commentary.`

const summaryPrompt = `You are a professional report writer. Based on the
following audio transcript, generate a comprehensive report in a structured,
professional manner suitable for a business document. Cover every topic the
transcript raises, in the order it appears. Return only the report text.

Transcript:
---
%s
---`

// mime types accepted by the upstream service, keyed by file extension.
var audioMIMEs = map[string]string{
	".mp3":  "audio/mp3",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
	".flac": "audio/flac",
}

// Client calls the Gemini API for both speech-to-text and summarization.
// One Client is shared by all requests; the underlying genai client is
// safe for concurrent use.
type Client struct {
	genai           *genai.Client
	transcribeModel string
	summaryModel    string
	timeout         time.Duration
	maxAudioBytes   int64
}

var (
	_ Transcriber = (*Client)(nil)
	_ Summarizer  = (*Client)(nil)
)

// NewClient creates a Gemini-backed Client from configuration.
func NewClient(ctx context.Context, cfg config.GenAIConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("genai api key is required")
	}

	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Client{
		genai:           cli,
		transcribeModel: cfg.TranscribeModel,
		summaryModel:    cfg.SummaryModel,
		timeout:         time.Duration(cfg.TimeoutSec) * time.Second,
		maxAudioBytes:   cfg.MaxAudioBytes,
	}, nil
}

// Transcribe validates the local audio file and sends it to the speech model.
// The call blocks until the remote response arrives or ctx is done.
func (c *Client) Transcribe(ctx context.Context, audioPath string) (string, error) {
	mimeType, err := c.validateAudio(audioPath)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(audioPath)
	if err != nil {
		return "", fmt.Errorf("read audio file: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(data, mimeType),
			genai.NewPartFromText(transcribePrompt),
		}, genai.RoleUser),
	}

	result, err := c.genai.Models.GenerateContent(ctx, c.transcribeModel, contents, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranscription, err)
	}

	text := candidateText(result)
	if text == "" {
		return "", fmt.Errorf("%w: empty response", ErrTranscription)
	}
	return text, nil
}

// Summarize sends the fixed report prompt plus the transcript to the summary model.
func (c *Client) Summarize(ctx context.Context, transcript string) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", fmt.Errorf("%w: empty transcript", ErrSummarization)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	prompt := fmt.Sprintf(summaryPrompt, transcript)
	result, err := c.genai.Models.GenerateContent(ctx, c.summaryModel, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSummarization, err)
	}

	text := candidateText(result)
	if text == "" {
		return "", fmt.Errorf("%w: empty response", ErrSummarization)
	}
	return text, nil
}

// validateAudio enforces the upstream service's constraints locally so a bad
// file fails fast without a remote call. Returns the mime type to send.
func (c *Client) validateAudio(audioPath string) (string, error) {
	info, err := os.Stat(audioPath)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrAudioNotFound, audioPath)
	}

	ext := strings.ToLower(filepath.Ext(audioPath))
	mimeType, ok := audioMIMEs[ext]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedAudio, ext)
	}

	if c.maxAudioBytes > 0 && info.Size() > c.maxAudioBytes {
		return "", fmt.Errorf("%w: %d bytes (limit %d)", ErrAudioTooLarge, info.Size(), c.maxAudioBytes)
	}

	return mimeType, nil
}

// candidateText flattens the first candidate's text parts.
func candidateText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}
	var text string
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}
	return text
}
