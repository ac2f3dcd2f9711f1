package narrative

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/quantlab/graham/pkg/config"
	"github.com/quantlab/graham/pkg/logger"
)

// Gemini narrates through Google's Gemini models via the official
// GenAI SDK.
type Gemini struct {
	apiKey string
	model  string
	logger *logger.Logger
}

var _ Provider = (*Gemini)(nil)

// NewGemini creates a Gemini narration provider.
func NewGemini(cfg config.LLMConfig, log *logger.Logger) *Gemini {
	return &Gemini{
		apiKey: cfg.GeminiAPIKey,
		model:  cfg.GeminiModel,
		logger: log.WithField("provider", "gemini"),
	}
}

func (g *Gemini) Name() string { return "gemini" }

// Generate sends a generateContent request with the persona as system
// instruction.
func (g *Gemini) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create GenAI client: %w", err)
	}

	genCfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.7)),
	}
	if systemPrompt != "" {
		genCfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		}
	}

	result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(userPrompt), genCfg)
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned an empty completion")
	}

	g.logger.WithField("model", g.model).Debug("Narration generated")
	return text, nil
}
