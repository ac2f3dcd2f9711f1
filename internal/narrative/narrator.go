package narrative

import (
	"context"

	"github.com/quantlab/graham/internal/contracts"
	"github.com/quantlab/graham/pkg/logger"
)

// Narrator turns a numeric analysis into an analyst verdict. Provider
// failures degrade to the deterministic fallback: narration never
// blocks a result.
type Narrator struct {
	provider Provider
	logger   *logger.Logger
}

var _ contracts.Narrator = (*Narrator)(nil)

// ContrarianViews holds the two opposing-perspective narrations.
type ContrarianViews struct {
	Devil   string `json:"devil"`
	Skeptic string `json:"skeptic"`
}

// NewNarrator creates a Narrator on top of a provider.
func NewNarrator(provider Provider, log *logger.Logger) *Narrator {
	return &Narrator{
		provider: provider,
		logger:   log.WithField("module", "narrative"),
	}
}

// Narrate generates the analyst verdict for a result. On provider
// failure it logs the error and returns the fallback verdict.
func (n *Narrator) Narrate(ctx context.Context, result *contracts.AnalysisResult) (string, error) {
	text, err := n.provider.Generate(ctx, PersonaFor(result.Strategy), BuildPrompt(result))
	if err != nil {
		narrErr := &contracts.NarrationError{Provider: n.provider.Name(), Err: err}
		n.logger.WithError(narrErr).WithField("ticker", result.Ticker).
			Warn("Narration failed, using fallback verdict")
		return FallbackVerdict(result), nil
	}
	return text, nil
}

// Contrarian generates the devil's advocate and skeptic views. Each
// side fails independently; an unavailable side carries an apology
// line instead of aborting.
func (n *Narrator) Contrarian(ctx context.Context, result *contracts.AnalysisResult) ContrarianViews {
	prompt := BuildContrarianPrompt(result)
	views := ContrarianViews{}

	devil, err := n.provider.Generate(ctx, devilPersona, prompt)
	if err != nil {
		n.logger.WithError(err).WithField("ticker", result.Ticker).Warn("Devil's advocate narration failed")
		devil = "Devil's Advocate unavailable: " + err.Error()
	}
	views.Devil = devil

	skeptic, err := n.provider.Generate(ctx, skepticPersona, prompt)
	if err != nil {
		n.logger.WithError(err).WithField("ticker", result.Ticker).Warn("Skeptic narration failed")
		skeptic = "Skeptic unavailable: " + err.Error()
	}
	views.Skeptic = skeptic

	return views
}
