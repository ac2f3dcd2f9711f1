package analysis

import (
	"fmt"

	"github.com/quantlab/graham/internal/contracts"
)

// Enterprising investor thresholds. Deliberately looser than the
// defensive set: Graham allowed the active investor into turnaround
// and bargain situations the defensive investor must skip.
const (
	enterprisingMinCurrentRatio = 1.5
	enterprisingDebtFactor      = 1.10
	enterprisingStabilityYears  = 5
	enterprisingGrowthSpanYears = 5
	enterprisingNTAPriceFactor  = 1.20
)

// evaluateEnterprising runs the six Enterprising Investor criteria, in
// the fixed checklist order.
func (e *Engine) evaluateEnterprising(d *contracts.FinancialData) []contracts.CriteriaResult {
	return []contracts.CriteriaResult{
		e.checkFinancialCondition(d),
		e.checkDebtLevel(d),
		e.checkEarningsStabilityShort(d),
		e.checkCurrentDividend(d),
		e.checkEarningsMomentum(d),
		e.checkPriceVsNetTangibleAssets(d),
	}
}

// Criterion 1: current ratio above 1.5.
func (e *Engine) checkFinancialCondition(d *contracts.FinancialData) contracts.CriteriaResult {
	name := "Financial Condition: Current Ratio"
	required := fmt.Sprintf("> %.1f", enterprisingMinCurrentRatio)

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
		Passed:        ratio > enterprisingMinCurrentRatio,
		ActualValue:   fmt.Sprintf("%.2f", ratio),
		RequiredValue: required,
		Explanation: "The relaxed 1.5:1 requirement still provides safety but admits " +
			"more aggressive opportunities, including turnaround situations.",
	}
}

// Criterion 2: total debt under 110% of working capital.
func (e *Engine) checkDebtLevel(d *contracts.FinancialData) contracts.CriteriaResult {
	name := "Debt Level vs Working Capital"
	required := fmt.Sprintf("Total Debt < %.0f%% of Net Current Assets", enterprisingDebtFactor*100)

	debt, okD := value(d.TotalDebt)
	assets, okA := value(d.CurrentAssets)
	liabilities, okL := value(d.CurrentLiabilities)

	if !okD || !okA || !okL {
		return contracts.CriteriaResult{
			Name:          name,
			Passed:        false,
			ActualValue:   insufficientData,
			RequiredValue: required,
			Explanation: missingInputs("debt comparison",
				missing(!okD, "total debt"),
				missing(!okA, "current assets"),
				missing(!okL, "current liabilities")),
		}
	}

	workingCapital := assets - liabilities
	if workingCapital <= 0 {
		return contracts.CriteriaResult{
			Name:          name,
			Passed:        false,
			ActualValue:   "negative working capital",
			RequiredValue: required,
			Explanation: "Working capital is zero or negative, so no amount of debt " +
				"satisfies the 110% bound.",
		}
	}

	pct := debt / workingCapital * 100
	return contracts.CriteriaResult{
		Name:          name,
		Passed:        debt < enterprisingDebtFactor*workingCapital,
		ActualValue:   fmt.Sprintf("Debt is %.0f%% of Working Capital", pct),
		RequiredValue: required,
		Explanation: "Accepting up to 110% of working capital in total debt opens up " +
			"leveraged companies that may offer bargain prices.",
	}
}

// Criterion 3: no earnings deficit among the most recent five years.
func (e *Engine) checkEarningsStabilityShort(d *contracts.FinancialData) contracts.CriteriaResult {
	name := "Earnings Stability (5 Years)"
	required := fmt.Sprintf("No earnings deficit in last %d years", enterprisingStabilityYears)

	recent := d.RecentNetIncome(enterprisingStabilityYears)
	if len(recent) < enterprisingStabilityYears {
		return contracts.CriteriaResult{
			Name:          name,
			Passed:        false,
			ActualValue:   insufficientData,
			RequiredValue: required,
			Explanation: fmt.Sprintf("Only %d of the required %d years of earnings history "+
				"are available.", len(recent), enterprisingStabilityYears),
		}
	}

	deficitFree := true
	for _, ni := range recent {
		if ni <= 0 {
			deficitFree = false
			break
		}
	}

	actual := fmt.Sprintf("No deficit in %d years checked", len(recent))
	if !deficitFree {
		actual = fmt.Sprintf("Deficit found in last %d years", len(recent))
	}

	return contracts.CriteriaResult{
		Name:          name,
		Passed:        deficitFree,
		ActualValue:   actual,
		RequiredValue: required,
		Explanation: "Five deficit-free years admit younger or recovering companies " +
			"while still screening out chronic money-losers.",
	}
}

// Criterion 4: the company currently pays some dividend, any amount.
func (e *Engine) checkCurrentDividend(d *contracts.FinancialData) contracts.CriteriaResult {
	name := "Current Dividend Payment"
	required := "Currently pays any dividend"

	yield, hasYield := value(d.DividendYield)
	passed := d.DividendYears >= 1 || (hasYield && yield > 0)

	actual := "No dividend"
	if hasYield && yield > 0 {
		actual = fmt.Sprintf("Yield: %.2f%%", yield)
	} else if d.DividendYears >= 1 {
		actual = fmt.Sprintf("%d years of dividend payments", d.DividendYears)
	}

	return contracts.CriteriaResult{
		Name:          name,
		Passed:        passed,
		ActualValue:   actual,
		RequiredValue: required,
		Explanation: "Some dividend, however small, is proof the company generates real " +
			"cash; unlike the defensive 20-year record, any current payment suffices.",
	}
}

// Criterion 5: latest earnings above the level of five years prior.
func (e *Engine) checkEarningsMomentum(d *contracts.FinancialData) contracts.CriteriaResult {
	name := "Earnings Growth (5-Year)"
	required := "Current earnings > earnings 5 years ago"

	hist := d.NetIncomeHistory
	if len(hist) < enterprisingGrowthSpanYears {
		return contracts.CriteriaResult{
			Name:          name,
			Passed:        false,
			ActualValue:   insufficientData,
			RequiredValue: required,
			Explanation: fmt.Sprintf("Growth comparison needs %d years of earnings history; "+
				"only %d are available.", enterprisingGrowthSpanYears, len(hist)),
		}
	}

	current := hist[len(hist)-1]
	old := hist[len(hist)-enterprisingGrowthSpanYears]

	growthDesc := "base year had no positive earnings"
	if old > 0 {
		growthDesc = fmt.Sprintf("%.1f%% growth", (current-old)/old*100)
	}

	return contracts.CriteriaResult{
		Name:          name,
		Passed:        old > 0 && current > old,
		ActualValue:   fmt.Sprintf("Current: %s, 5yr ago: %s (%s)", FormatCurrency(current), FormatCurrency(old), growthDesc),
		RequiredValue: required,
		Explanation: "Unlike the defensive one-third threshold, the enterprising investor " +
			"only needs positive momentum over a meaningful period.",
	}
}

// Criterion 6: price under 120% of net tangible assets per share.
func (e *Engine) checkPriceVsNetTangibleAssets(d *contracts.FinancialData) contracts.CriteriaResult {
	name := "Price vs Net Tangible Assets"
	required := fmt.Sprintf("Price < %.0f%% of Net Tangible Assets per share", enterprisingNTAPriceFactor*100)

	price, okP := value(d.CurrentPrice)
	nta, okN := value(d.NetTangibleAssets)
	shares, okS := value(d.SharesOutstanding)

	if !okP || !okN || !okS {
		return contracts.CriteriaResult{
			Name:          name,
			Passed:        false,
			ActualValue:   insufficientData,
			RequiredValue: required,
			Explanation: missingInputs("price-to-assets comparison",
				missing(!okP, "current price"),
				missing(!okN, "net tangible assets"),
				missing(!okS, "shares outstanding")),
		}
	}

	if shares <= 0 {
		return contracts.CriteriaResult{
			Name:          name,
			Passed:        false,
			ActualValue:   insufficientData,
			RequiredValue: required,
			Explanation:   "Shares outstanding is zero, so per-share tangible assets are undefined.",
		}
	}

	ntaPerShare := nta / shares
	if ntaPerShare <= 0 {
		return contracts.CriteriaResult{
			Name:          name,
			Passed:        false,
			ActualValue:   "negative net tangible assets",
			RequiredValue: required,
			Explanation:   "Net tangible assets per share are zero or negative; there is no asset backing to price against.",
		}
	}

	pct := price / ntaPerShare * 100
	return contracts.CriteriaResult{
		Name:          name,
		Passed:        price < enterprisingNTAPriceFactor*ntaPerShare,
		ActualValue:   fmt.Sprintf("Price is %.0f%% of NTA/share", pct),
		RequiredValue: required,
		Explanation: "Buying at or near tangible asset value is Graham's net-net margin " +
			"of safety: even at 120% of NTA the premium over liquidation value is modest.",
	}
}
