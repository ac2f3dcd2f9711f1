package narrative

import (
	"context"
	"fmt"

	"github.com/quantlab/graham/pkg/config"
	"github.com/quantlab/graham/pkg/logger"
)

// Provider is a narration backend. Implementations wrap one LLM API.
type Provider interface {
	// Name identifies the provider in logs and error messages.
	Name() string
	// Generate produces a completion for the given persona and prompt.
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// NewProvider builds the configured narration backend.
func NewProvider(cfg config.LLMConfig, log *logger.Logger) (Provider, error) {
	switch cfg.Provider {
	case "gemini":
		return NewGemini(cfg, log), nil
	case "grok":
		return NewGrok(cfg, log), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", cfg.Provider)
	}
}
