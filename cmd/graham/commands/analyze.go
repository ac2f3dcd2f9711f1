package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quantlab/graham/internal/batch"
	"github.com/quantlab/graham/internal/contracts"
	"github.com/quantlab/graham/internal/narrative"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <ticker|t1,t2,...>",
	Short: "Analyze one or more tickers against a checklist",
	Long: `Fetches financials and evaluates the selected checklist.

A single ticker prints the full criteria breakdown and analyst
narration. A comma-separated list runs on the worker pool and prints a
status table plus a ranked comparison.

Examples:
  graham analyze AAPL
  graham analyze AAPL --strategy buffett --contrarian
  graham analyze AAPL,MSFT,KO --no-narrate --json`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var (
	analyzeStrategy   string
	analyzeNoNarrate  bool
	analyzeJSON       bool
	analyzeContrarian bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeStrategy, "strategy", "defensive", "checklist: defensive, enterprising or buffett")
	analyzeCmd.Flags().BoolVar(&analyzeNoNarrate, "no-narrate", false, "skip the LLM narration")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "emit JSON instead of formatted text")
	analyzeCmd.Flags().BoolVar(&analyzeContrarian, "contrarian", false, "add devil's advocate and skeptic views")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	strategy, err := contracts.ParseStrategy(strings.ToLower(analyzeStrategy))
	if err != nil {
		return err
	}

	tickers := splitTickers(args[0])
	if len(tickers) == 0 {
		return errors.New("no tickers given")
	}

	narrate := !analyzeNoNarrate
	a, err := newApp(narrate)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if len(tickers) == 1 {
		res := a.runner.AnalyzeOne(ctx, tickers[0], strategy, narrate)
		if res.Err != nil {
			return fmt.Errorf("analyze %s: %w", tickers[0], res.Err)
		}

		var contrarian *narrative.ContrarianViews
		if analyzeContrarian && a.narrator != nil {
			views := a.narrator.Contrarian(ctx, res.Result)
			contrarian = &views
		}

		if analyzeJSON {
			return emitJSON(struct {
				Result     *contracts.AnalysisResult  `json:"result"`
				Narration  string                     `json:"narration,omitempty"`
				Contrarian *narrative.ContrarianViews `json:"contrarian,omitempty"`
			}{res.Result, res.Narration, contrarian})
		}

		printAnalysis(res.Result)
		printNarration("ANALYST VERDICT", res.Narration)
		if contrarian != nil {
			printNarration("DEVIL'S ADVOCATE", contrarian.Devil)
			printNarration("SKEPTIC", contrarian.Skeptic)
		}
		return nil
	}

	results := a.runner.Run(ctx, tickers, strategy, narrate, nil)

	if analyzeJSON {
		return emitJSON(results)
	}

	printStatusTable(results)
	fmt.Println(batch.ComparisonReport(results))
	return nil
}

// splitTickers parses a comma-separated ticker list, uppercased.
func splitTickers(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.ToUpper(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func emitJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
