package narrative

import (
	"fmt"
	"strings"

	"github.com/quantlab/graham/internal/contracts"
)

// FallbackVerdict renders a deterministic verdict from the numeric
// result alone, used when the LLM is unavailable.
func FallbackVerdict(r *contracts.AnalysisResult) string {
	analyst := "BENJAMIN GRAHAM"
	if r.Strategy == contracts.StrategyBuffett {
		analyst = "WARREN BUFFETT"
	}
	divider := strings.Repeat("=", 60)
	thin := strings.Repeat("-", 60)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s ANALYSIS VERDICT: %s\n%s\n\n", divider, analyst, r.Ticker, divider)
	fmt.Fprintf(&b, "Strategy: %s\n", StrategyName(r.Strategy))
	fmt.Fprintf(&b, "Score: %d/%d criteria passed (%.0f%%)\n\n", r.PassedCount, r.TotalCount, r.ScorePercentage)
	fmt.Fprintf(&b, "Recommendation: %s\n\n%s\nCRITERIA BREAKDOWN:\n%s\n", r.Recommendation, thin, thin)

	if passed := r.Passed(); len(passed) > 0 {
		b.WriteString("\n✓ STRENGTHS (Criteria Passed):\n")
		for _, c := range passed {
			fmt.Fprintf(&b, "\n  • %s\n    Value: %s\n    → %s\n", c.Name, c.ActualValue, truncate(c.Explanation, 150))
		}
	}

	if failed := r.Failed(); len(failed) > 0 {
		b.WriteString("\n✗ CONCERNS (Criteria Failed):\n")
		for _, c := range failed {
			fmt.Fprintf(&b, "\n  • %s\n    Value: %s (Required: %s)\n    → %s\n",
				c.Name, c.ActualValue, c.RequiredValue, truncate(c.Explanation, 150))
		}
	}

	fmt.Fprintf(&b, "\n%s\n\n%s", divider, closingView(r))
	return b.String()
}

// closingView picks the analyst's summary line from the score band.
func closingView(r *contracts.AnalysisResult) string {
	strategy := strings.ToLower(StrategyName(r.Strategy))

	if r.Strategy == contracts.StrategyBuffett {
		switch {
		case r.ScorePercentage >= 70:
			return "WARREN BUFFETT'S VIEW: This appears to be a wonderful business with " +
				"a durable competitive moat. The quality indicators suggest it could be " +
				"a candidate for our portfolio if the price is right."
		case r.ScorePercentage >= 50:
			return "WARREN BUFFETT'S VIEW: This business has some quality characteristics, " +
				"but missing criteria raise questions about the durability of its moat. " +
				"I'd want to understand these weaknesses better before committing capital."
		default:
			return "WARREN BUFFETT'S VIEW: This doesn't meet my standards for a quality business. " +
				"I look for wonderful companies with durable moats, and this one has too many " +
				"red flags. I'd rather pass and wait for a better opportunity."
		}
	}

	switch {
	case r.ScorePercentage >= 70:
		return "BENJAMIN GRAHAM'S VIEW: This stock shows strong adherence to value " +
			"investing principles. The fundamentals suggest a reasonable margin of safety."
	case r.ScorePercentage >= 50:
		return "BENJAMIN GRAHAM'S VIEW: This stock has mixed characteristics. While some " +
			"fundamentals are sound, the failed criteria introduce risk that a " +
			strategy + " should carefully consider."
	default:
		return "BENJAMIN GRAHAM'S VIEW: This stock does not meet my standards for a " +
			strategy + ". The multiple failed criteria suggest insufficient " +
			"margin of safety. Consider looking elsewhere or waiting for better conditions."
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
