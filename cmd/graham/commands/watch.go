package commands

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/quantlab/graham/internal/contracts"
	"github.com/quantlab/graham/internal/scheduler"
	"github.com/quantlab/graham/internal/scheduler/jobs"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-analyze a watchlist on a cron schedule",
	Long: `Runs the watchlist job on a cron schedule and logs score changes
between runs. The first run fires immediately; scores live in memory
for the life of the process.

Examples:
  graham watch --tickers AAPL,KO,JNJ
  graham watch --tickers AAPL --strategy buffett --cron "0 0 9 * * 1-5"`,
	RunE: runWatch,
}

var (
	watchTickers  string
	watchCron     string
	watchStrategy string
)

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchTickers, "tickers", "", "comma-separated watchlist (default from WATCH_TICKERS)")
	watchCmd.Flags().StringVar(&watchCron, "cron", "", "cron schedule with seconds (default from WATCH_SCHEDULE)")
	watchCmd.Flags().StringVar(&watchStrategy, "strategy", "", "checklist (default from WATCH_STRATEGY)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := newApp(false)
	if err != nil {
		return err
	}

	tickers := a.cfg.Watch.Tickers
	if watchTickers != "" {
		tickers = splitTickers(watchTickers)
	}
	if len(tickers) == 0 {
		return errors.New("watchlist is empty: set --tickers or WATCH_TICKERS")
	}

	schedule := a.cfg.Watch.Schedule
	if watchCron != "" {
		schedule = watchCron
	}

	strategyName := a.cfg.Watch.Strategy
	if watchStrategy != "" {
		strategyName = watchStrategy
	}
	strategy, err := contracts.ParseStrategy(strings.ToLower(strategyName))
	if err != nil {
		return err
	}

	sched := scheduler.New(a.log)
	job := jobs.NewWatchlistJob(a.runner, tickers, strategy, schedule, a.log)
	if err := sched.AddJob(job); err != nil {
		return err
	}

	sched.Start()
	defer sched.Stop()

	// First evaluation right away; later runs follow the schedule.
	if err := sched.RunJob(job.Name()); err != nil {
		return err
	}

	fmt.Printf("Watching %d tickers on schedule %q (Ctrl+C to stop)\n", len(tickers), schedule)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	return nil
}
