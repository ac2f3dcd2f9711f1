package commands

import (
	"fmt"
	"strings"

	"github.com/quantlab/graham/internal/batch"
	"github.com/quantlab/graham/internal/contracts"
	"github.com/quantlab/graham/internal/narrative"
)

// Common output formatting, shared by all commands.

const lineWidth = 70

func printDoubleSeparator() {
	fmt.Println(strings.Repeat("═", lineWidth))
}

func printSeparator() {
	fmt.Println(strings.Repeat("─", lineWidth))
}

// printAnalysis renders one ticker's full checklist result.
func printAnalysis(res *contracts.AnalysisResult) {
	fmt.Println()
	printDoubleSeparator()
	fmt.Printf("  %s (%s) - %s\n", res.Ticker, res.CompanyName, narrative.StrategyName(res.Strategy))
	printSeparator()

	for _, c := range res.CriteriaResults {
		mark := "✗"
		if c.Passed {
			mark = "✓"
		}
		fmt.Printf("  %s %s\n", mark, c.Name)
		fmt.Printf("      Actual   : %s\n", c.ActualValue)
		fmt.Printf("      Required : %s\n", c.RequiredValue)
	}

	printSeparator()
	fmt.Printf("  Score          : %d/%d (%.0f%%)\n", res.PassedCount, res.TotalCount, res.ScorePercentage)
	fmt.Printf("  Recommendation : %s\n", res.Recommendation)
	printDoubleSeparator()
}

// printStatusTable renders the per-ticker batch outcome summary.
func printStatusTable(results []batch.TickerResult) {
	fmt.Println()
	fmt.Printf("  %-8s  %-8s  %-7s  %s\n", "TICKER", "STATUS", "SCORE", "RECOMMENDATION")
	printSeparator()
	for _, res := range results {
		if res.Err != nil {
			fmt.Printf("  %-8s  %-8s  %-7s  %s\n", res.Ticker, "FAILED", "-", res.ErrString)
			continue
		}
		fmt.Printf("  %-8s  %-8s  %-7s  %s\n",
			res.Ticker, "OK",
			fmt.Sprintf("%.0f%%", res.Result.ScorePercentage),
			res.Result.Recommendation)
	}
	printSeparator()
}

// printNarration renders an analyst narration block.
func printNarration(title, text string) {
	if text == "" {
		return
	}
	fmt.Println()
	fmt.Printf("── %s ", title)
	fmt.Println(strings.Repeat("─", maxInt(0, lineWidth-len(title)-4)))
	fmt.Println(text)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
