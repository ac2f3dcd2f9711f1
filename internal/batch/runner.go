// Package batch runs the fetch-evaluate-narrate pipeline for sets of
// tickers on a bounded worker pool.
package batch

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/quantlab/graham/internal/analysis"
	"github.com/quantlab/graham/internal/contracts"
	"github.com/quantlab/graham/pkg/logger"
)

// Enricher fills snapshot gaps from a secondary source. Enrichment is
// best-effort and never fails a fetch.
type Enricher interface {
	Enrich(ctx context.Context, data *contracts.FinancialData)
}

// TickerResult is the outcome of one ticker's pipeline. Either Result
// is set or Err is; a failed ticker never hides the rest of a batch.
type TickerResult struct {
	Ticker    string                    `json:"ticker"`
	Result    *contracts.AnalysisResult `json:"result,omitempty"`
	Narration string                    `json:"narration,omitempty"`
	Err       error                     `json:"-"`
	ErrString string                    `json:"error,omitempty"`
}

// Runner executes per-ticker pipelines with bounded concurrency.
type Runner struct {
	fetcher  contracts.Fetcher
	engine   *analysis.Engine
	logger   *logger.Logger
	workers  int
	enricher Enricher
	narrator contracts.Narrator
}

// NewRunner creates a Runner. Workers below 1 are clamped to 1.
func NewRunner(fetcher contracts.Fetcher, engine *analysis.Engine, workers int, log *logger.Logger) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{
		fetcher: fetcher,
		engine:  engine,
		workers: workers,
		logger:  log.WithField("module", "batch"),
	}
}

// WithWorkers overrides the worker count. Values below 1 are ignored.
func (r *Runner) WithWorkers(n int) *Runner {
	if n > 0 {
		r.workers = n
	}
	return r
}

// WithEnricher attaches a fallback data source.
func (r *Runner) WithEnricher(e Enricher) *Runner {
	r.enricher = e
	return r
}

// WithNarrator attaches a narration backend.
func (r *Runner) WithNarrator(n contracts.Narrator) *Runner {
	r.narrator = n
	return r
}

// AnalyzeOne runs the full pipeline for a single ticker.
func (r *Runner) AnalyzeOne(ctx context.Context, ticker string, strategy contracts.Strategy, narrate bool) TickerResult {
	data, err := r.fetcher.Fetch(ctx, ticker)
	if err != nil {
		r.logger.WithError(err).WithField("ticker", ticker).Warn("Fetch failed")
		return TickerResult{Ticker: ticker, Err: err, ErrString: err.Error()}
	}

	if r.enricher != nil {
		r.enricher.Enrich(ctx, data)
	}

	result := r.engine.Evaluate(data, strategy)

	out := TickerResult{Ticker: ticker, Result: result}
	if narrate && r.narrator != nil {
		narration, err := r.narrator.Narrate(ctx, result)
		if err != nil {
			// The numeric result stands on its own.
			r.logger.WithError(err).WithField("ticker", ticker).Warn("Narration failed")
		} else {
			out.Narration = narration
		}
	}
	return out
}

// Run evaluates all tickers on the worker pool. Results arrive in
// completion order, not input order. The optional progress callback is
// invoked once per completed ticker from the collecting goroutine.
func (r *Runner) Run(ctx context.Context, tickers []string, strategy contracts.Strategy, narrate bool, progress func(TickerResult)) []TickerResult {
	if len(tickers) == 0 {
		return nil
	}

	r.logger.WithFields(map[string]interface{}{
		"tickers":  len(tickers),
		"strategy": string(strategy),
		"workers":  r.workers,
	}).Info("Batch evaluation started")

	tickerCh := make(chan string, len(tickers))
	resultCh := make(chan TickerResult, len(tickers))

	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, tickerCh, resultCh, strategy, narrate)
		}()
	}

	for _, ticker := range tickers {
		tickerCh <- ticker
	}
	close(tickerCh)

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	results := make([]TickerResult, 0, len(tickers))
	succeeded, failed := 0, 0
	for res := range resultCh {
		results = append(results, res)
		if res.Err != nil {
			failed++
		} else {
			succeeded++
		}
		if progress != nil {
			progress(res)
		}
	}

	r.logger.WithFields(map[string]interface{}{
		"succeeded": succeeded,
		"failed":    failed,
		"total":     len(results),
	}).Info("Batch evaluation completed")

	return results
}

func (r *Runner) worker(ctx context.Context, tickerCh <-chan string, resultCh chan<- TickerResult, strategy contracts.Strategy, narrate bool) {
	for ticker := range tickerCh {
		select {
		case <-ctx.Done():
			resultCh <- TickerResult{Ticker: ticker, Err: ctx.Err(), ErrString: ctx.Err().Error()}
			continue
		default:
		}

		resultCh <- r.AnalyzeOne(ctx, ticker, strategy, narrate)
	}
}

// ComparisonReport renders a ranked summary of a batch, best score
// first. Failed tickers are listed after the ranking.
func ComparisonReport(results []TickerResult) string {
	if len(results) == 0 {
		return "No analyses to compare."
	}

	ranked := make([]TickerResult, 0, len(results))
	var failed []TickerResult
	for _, res := range results {
		if res.Result != nil {
			ranked = append(ranked, res)
		} else {
			failed = append(failed, res)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Result.ScorePercentage > ranked[j].Result.ScorePercentage
	})

	divider := strings.Repeat("=", 70)
	var b strings.Builder
	fmt.Fprintf(&b, "%s\nBENJAMIN GRAHAM STOCK COMPARISON\n%s\n\n", divider, divider)

	for i, res := range ranked {
		rank := fmt.Sprintf("#%d", i+1)
		switch i {
		case 0:
			rank = "🥇"
		case 1:
			rank = "🥈"
		case 2:
			rank = "🥉"
		}
		fmt.Fprintf(&b, "%s %s (%s): %.0f%% (%d/%d)\n   → %s\n\n",
			rank, res.Result.Ticker, res.Result.CompanyName,
			res.Result.ScorePercentage, res.Result.PassedCount, res.Result.TotalCount,
			res.Result.Recommendation)
	}

	for _, res := range failed {
		fmt.Fprintf(&b, "✗ %s: %s\n", res.Ticker, res.ErrString)
	}

	b.WriteString(divider)

	if len(ranked) > 1 {
		best := ranked[0].Result
		fmt.Fprintf(&b, "\n\nTOP PICK: %s best aligns with Graham's principles with a %.0f%% score.",
			best.Ticker, best.ScorePercentage)
	}

	return b.String()
}
