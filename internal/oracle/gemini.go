package oracle

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

// geminiOracle implements Oracle using Google's GenAI SDK with the Gemini
// API backend.
type geminiOracle struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini-backed oracle.
func NewGemini(ctx context.Context, cfg Config) (Oracle, error) {
	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiOracle{client: client, model: model}, nil
}

// Complete sends the prompt and returns the completion text verbatim.
func (o *geminiOracle) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.Models.GenerateContent(ctx, o.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOracle, err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%w: empty completion", ErrOracle)
	}
	return text, nil
}

func (o *geminiOracle) Close() error { return nil }
