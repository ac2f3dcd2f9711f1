package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quantlab/graham/internal/batch"
	"github.com/quantlab/graham/internal/contracts"
	"github.com/quantlab/graham/internal/indices"
)

var scanCmd = &cobra.Command{
	Use:   "scan <dow30|nasdaq100|sp500>",
	Short: "Scan a whole index against a checklist",
	Long: `Evaluates every constituent of an index on the worker pool and
prints a ranked comparison. Failed tickers are skipped, never fatal.

Examples:
  graham scan dow30
  graham scan sp500 --strategy buffett --workers 8`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

var (
	scanStrategy string
	scanWorkers  int
	scanJSON     bool
)

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVar(&scanStrategy, "strategy", "defensive", "checklist: defensive, enterprising or buffett")
	scanCmd.Flags().IntVar(&scanWorkers, "workers", 0, "concurrent workers (default from BATCH_WORKERS)")
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "emit JSON instead of formatted text")
}

func runScan(cmd *cobra.Command, args []string) error {
	strategy, err := contracts.ParseStrategy(strings.ToLower(scanStrategy))
	if err != nil {
		return err
	}

	idx, err := indices.Lookup(args[0])
	if err != nil {
		return err
	}

	a, err := newApp(false)
	if err != nil {
		return err
	}
	if scanWorkers > 0 {
		a.runner.WithWorkers(scanWorkers)
	}

	if !scanJSON {
		fmt.Printf("Scanning %s (%d tickers) with the %s checklist...\n",
			idx.Name, idx.Count, strategy)
	}

	completed := 0
	progress := func(res batch.TickerResult) {
		completed++
		if scanJSON {
			return
		}
		status := "ok"
		if res.Err != nil {
			status = "failed"
		}
		fmt.Printf("[scan] %-8s %-6s [%d/%d]\n", res.Ticker, status, completed, idx.Count)
	}

	results := a.runner.Run(cmd.Context(), idx.Tickers(), strategy, false, progress)

	if scanJSON {
		return emitJSON(results)
	}

	printStatusTable(results)
	fmt.Println(batch.ComparisonReport(results))
	return nil
}
