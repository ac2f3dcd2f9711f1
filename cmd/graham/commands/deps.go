package commands

import (
	"fmt"

	"github.com/quantlab/graham/internal/analysis"
	"github.com/quantlab/graham/internal/batch"
	"github.com/quantlab/graham/internal/external/stockanalysis"
	"github.com/quantlab/graham/internal/external/yahoo"
	"github.com/quantlab/graham/internal/narrative"
	"github.com/quantlab/graham/pkg/config"
	"github.com/quantlab/graham/pkg/logger"
)

// app bundles the wired pipeline shared by all commands.
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	runner   *batch.Runner
	narrator *narrative.Narrator
}

// newApp loads config and wires the fetch-evaluate-narrate pipeline.
// When withNarration is false no LLM provider is constructed and
// narration flags are ignored downstream.
func newApp(withNarration bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	fetcher := yahoo.NewClient(cfg.Yahoo, log)
	engine := analysis.NewEngine(log)
	runner := batch.NewRunner(fetcher, engine, cfg.Batch.Workers, log).
		WithEnricher(stockanalysis.NewClient(log))

	a := &app{cfg: cfg, log: log, runner: runner}

	if withNarration {
		provider, err := narrative.NewProvider(cfg.LLM, log)
		if err != nil {
			return nil, err
		}
		a.narrator = narrative.NewNarrator(provider, log)
		runner.WithNarrator(a.narrator)
	}

	return a, nil
}
