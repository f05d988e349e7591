package oracle

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// defaultModel is used when no model is configured.
const defaultModel = "gemini-2.0-flash"

// GeminiOracle implements Oracle against the Gemini API.
type GeminiOracle struct {
	client *genai.Client
	model  string
	cfg    *genai.GenerateContentConfig
}

// GeminiOracleConfig carries the Gemini client settings.
type GeminiOracleConfig struct {
	APIKey string
	Model  string
}

// NewGeminiOracle creates a Gemini-backed oracle client.
func NewGeminiOracle(ctx context.Context, cfg GeminiOracleConfig) (*GeminiOracle, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	logrus.Infof("gemini oracle client initialized with model %s", model)

	return &GeminiOracle{
		client: client,
		model:  model,
		cfg: &genai.GenerateContentConfig{
			// Low temperature keeps the one-word classification replies on
			// vocabulary without hurting the companion replies.
			Temperature: genai.Ptr[float32](0.3),
		},
	}, nil
}

// Invoke sends a single prompt and returns the raw text reply.
// An empty reply is reported as ErrEmptyReply so callers treat it like any
// other oracle failure.
func (g *GeminiOracle) Invoke(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, g.cfg)
	if err != nil {
		return "", fmt.Errorf("generate content failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyReply
	}

	return text, nil
}
