package narrative

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/quantlab/graham/pkg/config"
	"github.com/quantlab/graham/pkg/httputil"
	"github.com/quantlab/graham/pkg/logger"
)

// Grok narrates through xAI's OpenAI-compatible chat completions API.
type Grok struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	apiKey     string
	baseURL    string
	model      string
}

var _ Provider = (*Grok)(nil)

// NewGrok creates a Grok narration provider.
func NewGrok(cfg config.LLMConfig, log *logger.Logger) *Grok {
	return &Grok{
		httpClient: httputil.New(log, cfg.Timeout).WithRetry(2, 2*time.Second),
		logger:     log.WithField("provider", "grok"),
		apiKey:     cfg.XAIAPIKey,
		baseURL:    cfg.GrokBaseURL,
		model:      cfg.GrokModel,
	}
}

func (g *Grok) Name() string { return "grok" }

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	Stream      bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends a chat completion with the persona as system message.
func (g *Grok) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("XAI_API_KEY is not set")
	}

	reqBody := chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens:   4096,
		Temperature: 0.7,
		Stream:      false,
	}

	resp, err := g.httpClient.PostJSON(ctx, g.baseURL+"/chat/completions", reqBody,
		map[string]string{"Authorization": "Bearer " + g.apiKey})
	if err != nil {
		return "", fmt.Errorf("grok API call: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read grok response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("grok API: status %d: %s", resp.StatusCode, string(body))
	}

	var completion chatResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("decode grok response: %w", err)
	}

	if completion.Error != nil {
		return "", fmt.Errorf("grok API: %s", completion.Error.Message)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("grok returned no choices")
	}

	g.logger.WithField("model", g.model).Debug("Narration generated")
	return completion.Choices[0].Message.Content, nil
}
