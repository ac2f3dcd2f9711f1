// Package jobs holds the scheduled job implementations.
package jobs

import (
	"context"
	"fmt"
	"sync"

	"github.com/quantlab/graham/internal/batch"
	"github.com/quantlab/graham/internal/contracts"
	"github.com/quantlab/graham/pkg/logger"
)

// Pipeline is the batch evaluation surface the job needs. Satisfied by
// batch.Runner.
type Pipeline interface {
	Run(ctx context.Context, tickers []string, strategy contracts.Strategy, narrate bool, progress func(batch.TickerResult)) []batch.TickerResult
}

// WatchlistJob re-analyzes a fixed ticker list on a schedule and logs
// score movements between runs. Scores are kept in memory only; the
// history resets with the process.
type WatchlistJob struct {
	pipeline Pipeline
	logger   *logger.Logger
	tickers  []string
	strategy contracts.Strategy
	schedule string

	mu         sync.Mutex
	prevScores map[string]float64
}

// NewWatchlistJob creates the watchlist job.
func NewWatchlistJob(pipeline Pipeline, tickers []string, strategy contracts.Strategy, schedule string, log *logger.Logger) *WatchlistJob {
	return &WatchlistJob{
		pipeline:   pipeline,
		logger:     log.WithField("job", "watchlist"),
		tickers:    tickers,
		strategy:   strategy,
		schedule:   schedule,
		prevScores: make(map[string]float64),
	}
}

func (j *WatchlistJob) Name() string     { return "watchlist" }
func (j *WatchlistJob) Schedule() string { return j.schedule }

// Run evaluates the watchlist and logs every score change since the
// previous run.
func (j *WatchlistJob) Run(ctx context.Context) error {
	if len(j.tickers) == 0 {
		return fmt.Errorf("watchlist is empty")
	}

	results := j.pipeline.Run(ctx, j.tickers, j.strategy, false, nil)

	j.mu.Lock()
	defer j.mu.Unlock()

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			j.logger.WithFields(map[string]interface{}{
				"ticker": res.Ticker,
				"error":  res.ErrString,
			}).Warn("Watchlist ticker failed")
			continue
		}

		score := res.Result.ScorePercentage
		prev, seen := j.prevScores[res.Ticker]
		j.prevScores[res.Ticker] = score

		fields := map[string]interface{}{
			"ticker":         res.Ticker,
			"score":          score,
			"recommendation": res.Result.Recommendation,
		}

		switch {
		case !seen:
			j.logger.WithFields(fields).Info("Watchlist baseline recorded")
		case score != prev:
			fields["previous_score"] = prev
			fields["delta"] = score - prev
			j.logger.WithFields(fields).Info("Watchlist score changed")
		default:
			j.logger.WithFields(fields).Debug("Watchlist score unchanged")
		}
	}

	if failed == len(results) {
		return fmt.Errorf("all %d watchlist tickers failed", failed)
	}
	return nil
}
