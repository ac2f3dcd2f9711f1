package narrative

import (
	"fmt"
	"strings"

	"github.com/quantlab/graham/internal/contracts"
)

const grahamPersona = "You are Benjamin Graham, the father of value investing and author of " +
	"'The Intelligent Investor'. You speak with authority on investment principles, " +
	"emphasizing margin of safety, fundamental analysis, and disciplined investing. " +
	"You explain your criteria clearly, referencing your philosophy throughout. " +
	"Be direct, educational, and avoid unnecessary jargon."

const buffettPersona = "You are Warren Buffett, the Oracle of Omaha and Chairman of Berkshire Hathaway. " +
	"You are Benjamin Graham's most famous student but have evolved his teachings to focus on " +
	"wonderful businesses at fair prices rather than fair businesses at wonderful prices. " +
	"You emphasize durable competitive advantages (moats), owner earnings over GAAP metrics, " +
	"and long-term holding periods. You speak plainly, use folksy analogies, and reference " +
	"your annual shareholder letters. You despise EBITDA ('bullshit earnings'), excessive debt, " +
	"and management that doesn't think like owners. Be direct, wise, and occasionally witty."

const devilPersona = "You are a contrarian investment analyst. Your job is to argue the exact opposite of the " +
	"prevailing verdict on a stock - if the analysis says BUY, you argue SELL; if it says SELL, " +
	"you argue BUY. Base your argument strictly on the quantitative data provided. Do not speculate " +
	"about news, macro events, or information not present in the numbers. Be concise, direct, and " +
	"analytical. No buzzwords. No hedging. Make the strongest possible opposing case in 3-5 short " +
	"paragraphs, covering past performance, present condition, and future trajectory implied by the data."

const skepticPersona = "You are a rigorous skeptic reviewing an investment analysis. Your job is to find the holes, " +
	"the hidden risks, the assumptions that might be wrong, and the things the analysis glosses over. " +
	"You are not arguing for or against the investment - you are asking hard questions and exposing " +
	"weaknesses in the methodology and the data. Base your critique strictly on the quantitative data " +
	"provided. Do not speculate about news or events not present in the numbers. Be concise, precise, " +
	"and unsparing. Identify 3-5 specific concerns in short, direct paragraphs."

const defensiveRules = `DEFENSIVE INVESTOR CRITERIA (Strict Safety):
1. Adequate Size: Sales > $500M (inflation adjusted)
2. Strong Financials: Current Ratio > 2.0
3. Financial Stability: Long-term Debt < Working Capital
4. Earnings Stability: Positive earnings for last 10 consecutive years
5. Dividend Record: Uninterrupted dividends for last 20 years
6. Earnings Growth: At least 33% growth over last 10 years (using 3yr averages)
7. Moderate Valuation: P/E < 15 AND P/B < 1.5 (or P/E*P/B < 22.5)`

const enterprisingRules = `ENTERPRISING INVESTOR CRITERIA (Aggressive/Bargain):
1. Financial Condition: Current Ratio > 1.5
2. Debt Stability: Total Debt < 110% of Net Current Assets (Working Capital)
3. Earnings Stability: No earnings deficit in last 5 years
4. Dividend Record: Currently pays some dividend
5. Earnings Growth: Current earnings > Earnings 5 years ago
6. Price: Price < 120% of Net Tangible Assets`

const buffettRules = `BUFFETT QUALITY INVESTOR CRITERIA (Wonderful Businesses at Fair Prices):

BUSINESS TENETS:
1. Economic Moat: Gross Margin > 40% AND ROIC > 15% (durable competitive advantage)
2. Consistent Earnings: No more than 2 negative earnings years (predictable business)
3. Revenue Growth: CAGR > 5% (favorable long-term prospects)

MANAGEMENT TENETS:
4. High ROE (Not Debt-Driven): ROE > 15% average with Debt/Equity < 1.0 (rational capital allocation)
5. Efficient Operations: SG&A < 30% of Gross Profit (lean, disciplined management)

FINANCIAL TENETS:
6. High Margins: Net Margin > 20% (pricing power from moat)
7. Owner Earnings: Positive and Yield > 4.5% (true cash generation, not GAAP games)
8. Low Debt: Debt/Equity < 0.5 AND can pay off debt in < 4 years (financial strength)
9. Interest Coverage: > 5x (ample buffer for debt service)

VALUE TENET:
10. Reasonable Valuation: P/E < 15 OR FCF Yield > 4.5% (margin of safety)`

// StrategyName returns the display name of a checklist strategy.
func StrategyName(s contracts.Strategy) string {
	switch s {
	case contracts.StrategyDefensive:
		return "Defensive Investor"
	case contracts.StrategyEnterprising:
		return "Enterprising Investor"
	default:
		return "Buffett Quality Investor"
	}
}

// PersonaFor returns the system prompt matching a strategy's analyst.
func PersonaFor(s contracts.Strategy) string {
	if s == contracts.StrategyBuffett {
		return buffettPersona
	}
	return grahamPersona
}

func rulesFor(s contracts.Strategy) string {
	switch s {
	case contracts.StrategyDefensive:
		return defensiveRules
	case contracts.StrategyEnterprising:
		return enterprisingRules
	default:
		return buffettRules
	}
}

// BuildPrompt renders the analyst verdict prompt from an analysis result.
func BuildPrompt(r *contracts.AnalysisResult) string {
	var criteria strings.Builder
	for _, c := range r.CriteriaResults {
		status := "✗ FAIL"
		if c.Passed {
			status = "✓ PASS"
		}
		fmt.Fprintf(&criteria, "- %s: %s\n  Actual: %s\n  Required: %s\n",
			c.Name, status, c.ActualValue, c.RequiredValue)
	}

	header := fmt.Sprintf(`CONTEXT:
%s

STOCK: %s (%s)
STRATEGY: %s
SCORE: %d/%d criteria passed (%.0f%%)
RECOMMENDATION: %s

DETAILED CRITERIA RESULTS:
%s`,
		rulesFor(r.Strategy), r.Ticker, r.CompanyName, StrategyName(r.Strategy),
		r.PassedCount, r.TotalCount, r.ScorePercentage, r.Recommendation,
		criteria.String())

	if r.Strategy == contracts.StrategyBuffett {
		return "Analyze this stock using my investment criteria and provide a comprehensive verdict.\n\n" +
			header + `

Please provide:
1. An overall assessment (2-3 sentences) on whether this is a wonderful business I'd want to own forever
2. Evaluate the MOAT: Does this company have a durable competitive advantage? What kind (brand, cost, network, switching costs)?
3. For each FAILED criterion, explain WHY it matters from my perspective as an owner
4. For significant PASSED criteria, acknowledge why this makes it a quality business
5. A final verdict: Would I, Warren Buffett, consider adding this to my portfolio? Why or why not?

Remember: I look for businesses I understand, with honest and able management, and at a fair price.
I'd rather buy a wonderful company at a fair price than a fair company at a wonderful price.
Reference my letters to shareholders where relevant.`
	}

	strategy := StrategyName(r.Strategy)
	return fmt.Sprintf("Analyze this stock using my %s criteria and provide a comprehensive verdict.\n\n", strategy) +
		header + fmt.Sprintf(`

Please provide:
1. An overall assessment (2-3 sentences) on whether this stock meets my standards
2. For each FAILED criterion, explain WHY it matters and what the risk is
3. For significant PASSED criteria, acknowledge the strength
4. A final verdict: Would I, Benjamin Graham, consider this a suitable investment for a %s?

Be specific about the numbers and ratios. Reference my philosophy from 'The Intelligent Investor' where relevant.`,
			strings.ToLower(strategy))
}

// BuildContrarianPrompt renders the shared prompt for the devil's
// advocate and skeptic personas.
func BuildContrarianPrompt(r *contracts.AnalysisResult) string {
	var criteria strings.Builder
	for _, c := range r.CriteriaResults {
		status := "FAIL"
		if c.Passed {
			status = "PASS"
		}
		fmt.Fprintf(&criteria, "- %s: %s | Actual: %s | Required: %s\n",
			c.Name, status, c.ActualValue, c.RequiredValue)
	}

	return fmt.Sprintf(`STOCK: %s (%s)
STRATEGY: %s
SCORE: %d/%d criteria passed (%.0f%%)
CURRENT VERDICT: %s

CRITERIA RESULTS:
%s
Use only the quantitative data above. Do not introduce outside information.`,
		r.Ticker, r.CompanyName, StrategyName(r.Strategy),
		r.PassedCount, r.TotalCount, r.ScorePercentage, r.Recommendation,
		criteria.String())
}
