package analysis

import (
	"fmt"

	"github.com/quantlab/graham/internal/contracts"
)

// Defensive investor thresholds from The Intelligent Investor, with the
// size floor inflation-adjusted from Graham's original $100M.
const (
	defensiveMinRevenue      = 500_000_000.0
	defensiveMinCurrentRatio = 2.0
	defensiveStabilityYears  = 10
	defensiveDividendYears   = 20
	defensiveGrowthLookback  = 10
	defensiveGrowthWindow    = 3
	defensiveGrowthRatio     = 1.33
	defensiveMaxPE           = 15.0
	defensiveMaxPB           = 1.5
	defensiveMaxPEPBProduct  = 22.5
)

// evaluateDefensive runs the seven Defensive Investor criteria, in the
// fixed checklist order.
func (e *Engine) evaluateDefensive(d *contracts.FinancialData) []contracts.CriteriaResult {
	return []contracts.CriteriaResult{
		e.checkAdequateSize(d),
		e.checkCurrentRatio(d),
		e.checkDebtVsWorkingCapital(d),
		e.checkEarningsStability(d),
		e.checkDividendRecord(d),
		e.checkEarningsGrowth(d),
		e.checkModerateValuation(d),
	}
}

// Criterion 1: adequate size of enterprise. Revenue above $500M keeps
// the defensive investor out of small companies that can fail outright.
func (e *Engine) checkAdequateSize(d *contracts.FinancialData) contracts.CriteriaResult {
	required := fmt.Sprintf("> %s", FormatCurrency(defensiveMinRevenue))

	revenue, ok := value(d.Revenue)
	if !ok {
		return contracts.CriteriaResult{
			Name:          "Adequate Size of Enterprise",
			Passed:        false,
			ActualValue:   insufficientData,
			RequiredValue: required,
			Explanation:   "Revenue is missing from the provider data, so company size cannot be verified.",
		}
	}

	return contracts.CriteriaResult{
		Name:          "Adequate Size of Enterprise",
		Passed:        revenue > defensiveMinRevenue,
		ActualValue:   FormatCurrency(revenue),
		RequiredValue: required,
		Explanation: "Graham required companies to be large and established to reduce risk. " +
			"Large companies have more resources to weather economic downturns.",
	}
}

// Criterion 2: strong financial condition, current ratio above 2.
func (e *Engine) checkCurrentRatio(d *contracts.FinancialData) contracts.CriteriaResult {
	name := "Strong Financials: Current Ratio"
	required := fmt.Sprintf("> %.1f", defensiveMinCurrentRatio)

	assets, okA := value(d.CurrentAssets)
	liabilities, okL := value(d.CurrentLiabilities)

	switch {
	case !okA || !okL:
		return contracts.CriteriaResult{
			Name:          name,
			Passed:        false,
			ActualValue:   insufficientData,
			RequiredValue: required,
			Explanation: missingInputs("current ratio",
				missing(!okA, "current assets"),
				missing(!okL, "current liabilities")),
		}
	case liabilities == 0:
		return contracts.CriteriaResult{
			Name:          name,
			Passed:        false,
			ActualValue:   insufficientData,
			RequiredValue: required,
			Explanation:   "Current liabilities are zero, so the current ratio is undefined.",
		}
	}

	ratio := assets / liabilities
	return contracts.CriteriaResult{
		Name:          name,
		Passed:        ratio > defensiveMinCurrentRatio,
		ActualValue:   fmt.Sprintf("%.2f", ratio),
		RequiredValue: required,
		Explanation: "A 2:1 current ratio gives a margin of safety against short-term " +
			"financial difficulty and ensures the company can meet its obligations.",
	}
}

// Criterion 3: long-term debt below working capital.
func (e *Engine) checkDebtVsWorkingCapital(d *contracts.FinancialData) contracts.CriteriaResult {
	name := "Strong Financials: Debt vs Working Capital"
	required := "Long-term Debt < Net Current Assets"

	debt, okD := value(d.LongTermDebt)
	assets, okA := value(d.CurrentAssets)
	liabilities, okL := value(d.CurrentLiabilities)

	if !okD || !okA || !okL {
		return contracts.CriteriaResult{
			Name:          name,
			Passed:        false,
			ActualValue:   insufficientData,
			RequiredValue: required,
			Explanation: missingInputs("working capital comparison",
				missing(!okD, "long-term debt"),
				missing(!okA, "current assets"),
				missing(!okL, "current liabilities")),
		}
	}

	workingCapital := assets - liabilities
	return contracts.CriteriaResult{
		Name:          name,
		Passed:        debt < workingCapital,
		ActualValue:   fmt.Sprintf("LT Debt: %s, Working Capital: %s", FormatCurrency(debt), FormatCurrency(workingCapital)),
		RequiredValue: required,
		Explanation: "The company should be able to retire its long-term debt out of " +
			"working capital alone, keeping financial flexibility in a downturn.",
	}
}

// Criterion 4: positive earnings in each of the last ten years. With a
// shorter history only the available years are checked and the
// shortfall is noted; fewer than ten positive years never passes.
func (e *Engine) checkEarningsStability(d *contracts.FinancialData) contracts.CriteriaResult {
	name := "Earnings Stability (10 Years)"
	required := fmt.Sprintf("%d consecutive years of positive earnings", defensiveStabilityYears)

	recent := d.RecentNetIncome(defensiveStabilityYears)
	if len(recent) == 0 {
		return contracts.CriteriaResult{
			Name:          name,
			Passed:        false,
			ActualValue:   insufficientData,
			RequiredValue: required,
			Explanation:   "No net income history is available from the provider.",
		}
	}

	positive := 0
	for _, ni := range recent {
		if ni > 0 {
			positive++
		}
	}

	explanation := "Consistent profitability over a decade demonstrates a business model " +
		"that survives varied economic conditions."
	if len(recent) < defensiveStabilityYears {
		explanation = fmt.Sprintf("Only %d of the required %d years of earnings history are "+
			"available; a defensive investor cannot confirm stability on a partial record.",
			len(recent), defensiveStabilityYears)
	}

	return contracts.CriteriaResult{
		Name:          name,
		Passed:        len(recent) >= defensiveStabilityYears && positive == len(recent),
		ActualValue:   fmt.Sprintf("%d positive years out of %d available", positive, len(recent)),
		RequiredValue: required,
		Explanation:   explanation,
	}
}

// Criterion 5: at least twenty years of uninterrupted dividends.
func (e *Engine) checkDividendRecord(d *contracts.FinancialData) contracts.CriteriaResult {
	return contracts.CriteriaResult{
		Name:          "Dividend Record (20 Years)",
		Passed:        d.DividendYears >= defensiveDividendYears,
		ActualValue:   fmt.Sprintf("%d years of dividend payments", d.DividendYears),
		RequiredValue: fmt.Sprintf(">= %d consecutive years of dividend payments", defensiveDividendYears),
		Explanation: "A long dividend history shows stable, predictable cash flows and a " +
			"management committed to returning value to shareholders.",
	}
}

// Criterion 6: earnings growth of at least a third over the lookback,
// comparing 3-year arithmetic averages at each end to smooth out
// single-year swings.
func (e *Engine) checkEarningsGrowth(d *contracts.FinancialData) contracts.CriteriaResult {
	name := "Earnings Growth (10-Year)"
	required := fmt.Sprintf(">= %.0f%% growth using %d-year averages",
		(defensiveGrowthRatio-1)*100, defensiveGrowthWindow)

	window := d.RecentNetIncome(defensiveGrowthLookback)
	if len(window) < 2*defensiveGrowthWindow {
		return contracts.CriteriaResult{
			Name:          name,
			Passed:        false,
			ActualValue:   insufficientData,
			RequiredValue: required,
			Explanation: fmt.Sprintf("Growth comparison needs at least %d years of earnings "+
				"history; only %d are available.", 2*defensiveGrowthWindow, len(window)),
		}
	}

	oldAvg := mean(window[:defensiveGrowthWindow])
	recentAvg := mean(window[len(window)-defensiveGrowthWindow:])

	if oldAvg <= 0 {
		return contracts.CriteriaResult{
			Name:          name,
			Passed:        false,
			ActualValue:   "base period earnings not positive",
			RequiredValue: required,
			Explanation: "The earliest 3-year average is zero or negative, so a growth " +
				"ratio cannot be established.",
		}
	}

	growthPct := (recentAvg - oldAvg) / oldAvg * 100
	return contracts.CriteriaResult{
		Name:          name,
		Passed:        recentAvg/oldAvg >= defensiveGrowthRatio,
		ActualValue:   fmt.Sprintf("%.1f%% growth", growthPct),
		RequiredValue: required,
		Explanation: "Comparing 3-year averages at both ends of the decade smooths out " +
			"fluctuations; a one-third increase shows growing earning power, not just maintenance.",
	}
}

// Criterion 7: moderate valuation. Either both multiples are cheap or
// their product stays under Graham's 22.5 combined rule.
func (e *Engine) checkModerateValuation(d *contracts.FinancialData) contracts.CriteriaResult {
	name := "Moderate Valuation (P/E & P/B)"
	required := fmt.Sprintf("P/E < %.0f AND P/B < %.1f, OR P/E x P/B < %.1f",
		defensiveMaxPE, defensiveMaxPB, defensiveMaxPEPBProduct)

	price, okP := value(d.CurrentPrice)
	eps, okE := value(d.EarningsPerShare)
	bvps, okB := value(d.BookValuePerShare)

	if !okP || !okE || !okB {
		missing := "current price"
		switch {
		case okP && !okE:
			missing = "earnings per share"
		case okP && !okB:
			missing = "book value per share"
		}
		return contracts.CriteriaResult{
			Name:          name,
			Passed:        false,
			ActualValue:   insufficientData,
			RequiredValue: required,
			Explanation:   fmt.Sprintf("Valuation cannot be computed: %s is missing from the provider data.", missing),
		}
	}

	if eps <= 0 || bvps <= 0 {
		return contracts.CriteriaResult{
			Name:          name,
			Passed:        false,
			ActualValue:   insufficientData,
			RequiredValue: required,
			Explanation: "Earnings per share or book value per share is zero or negative, " +
				"so the valuation multiples are undefined.",
		}
	}

	pe := price / eps
	pb := price / bvps
	product := pe * pb
	passed := (pe < defensiveMaxPE && pb < defensiveMaxPB) || product < defensiveMaxPEPBProduct

	return contracts.CriteriaResult{
		Name:          name,
		Passed:        passed,
		ActualValue:   fmt.Sprintf("P/E: %.1f, P/B: %.2f, Product: %.1f", pe, pb, product),
		RequiredValue: required,
		Explanation: "Paying under 15 years of earnings or under 1.5x net asset value " +
			"preserves a margin of safety; the combined 22.5 rule trades one multiple off the other.",
	}
}

// missing tags a field name when its value is absent, for missingInputs.
func missing(isMissing bool, field string) string {
	if isMissing {
		return field
	}
	return ""
}

// missingInputs builds an explanation naming which inputs were absent.
func missingInputs(what string, fields ...string) string {
	present := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			present = append(present, f)
		}
	}
	return fmt.Sprintf("The %s cannot be computed: %s missing from the provider data.",
		what, joinWithVerb(present))
}

// joinWithVerb joins field names with a matching verb ("x is" / "x and y are").
func joinWithVerb(fields []string) string {
	switch len(fields) {
	case 0:
		return "a required input is"
	case 1:
		return fields[0] + " is"
	case 2:
		return fields[0] + " and " + fields[1] + " are"
	default:
		joined := ""
		for i, f := range fields[:len(fields)-1] {
			if i > 0 {
				joined += ", "
			}
			joined += f
		}
		return joined + " and " + fields[len(fields)-1] + " are"
	}
}
