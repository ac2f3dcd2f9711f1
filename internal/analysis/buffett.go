package analysis

import (
	"fmt"
	"math"

	"github.com/quantlab/graham/internal/contracts"
)

// Buffett quality thresholds, drawn from the shareholder letters:
// business, management, financial, and value tenets.
const (
	buffettMinGrossMargin     = 40.0
	buffettMinROIC            = 15.0
	buffettMaxNegativeYears   = 2
	buffettMinHistoryYears    = 4
	buffettMinRevenueCAGR     = 5.0
	buffettMinROE             = 15.0
	buffettMaxDebtToEquity    = 1.0
	buffettMaxSGARatio        = 30.0
	buffettMinNetMargin       = 20.0
	buffettMinOwnerEarnYield  = 4.5
	buffettLowDebtToEquity    = 0.5
	buffettMaxDebtPayoffYears = 4.0
	buffettMinInterestCover   = 5.0
	buffettMaxPE              = 15.0
	buffettMinFCFYield        = 4.5

	// Approximate corporate tax rate used for the NOPAT estimate.
	corporateTaxRate = 0.21
)

// evaluateBuffett runs the ten Buffett quality criteria: three
// business tenets, two management tenets, four financial tenets and
// one value tenet, in that order.
func (e *Engine) evaluateBuffett(d *contracts.FinancialData) []contracts.CriteriaResult {
	return []contracts.CriteriaResult{
		e.checkEconomicMoat(d),
		e.checkConsistentEarnings(d),
		e.checkRevenueGrowth(d),
		e.checkROEConsistency(d),
		e.checkEfficientManagement(d),
		e.checkHighMargins(d),
		e.checkOwnerEarnings(d),
		e.checkLowDebt(d),
		e.checkInterestCoverage(d),
		e.checkReasonableValuation(d),
	}
}

// Business tenet 1: durable competitive advantage, read from pricing
// power (gross margin) and capital efficiency (ROIC).
func (e *Engine) checkEconomicMoat(d *contracts.FinancialData) contracts.CriteriaResult {
	name := "Economic Moat (Gross Margin & ROIC)"
	required := fmt.Sprintf("Gross Margin > %.0f%% AND ROIC > %.0f%%", buffettMinGrossMargin, buffettMinROIC)

	grossMargin, okGM := e.grossMargin(d)
	roic, okROIC := e.roic(d)

	if !okGM || !okROIC {
		return contracts.CriteriaResult{
			Name:          name,
			Passed:        false,
			ActualValue:   insufficientData,
			RequiredValue: required,
			Explanation: missingInputs("moat assessment",
				missing(!okGM, "gross profit or revenue"),
				missing(!okROIC, "operating income or invested capital")),
		}
	}

	return contracts.CriteriaResult{
		Name:          name,
		Passed:        grossMargin >= buffettMinGrossMargin && roic >= buffettMinROIC,
		ActualValue:   fmt.Sprintf("Gross Margin: %.1f%%, ROIC: %.1f%%", grossMargin, roic),
		RequiredValue: required,
		Explanation: "High gross margins indicate pricing power from brand, patents or " +
			"network effects; returns on invested capital well above the cost of capital " +
			"suggest a moat competitors cannot easily breach.",
	}
}

// Business tenet 2: consistent operating history.
func (e *Engine) checkConsistentEarnings(d *contracts.FinancialData) contracts.CriteriaResult {
	name := "Consistent Earnings History"
	required := fmt.Sprintf("No more than %d negative earnings years", buffettMaxNegativeYears)

	hist := d.NetIncomeHistory
	negative := 0
	for _, ni := range hist {
		if ni <= 0 {
			negative++
		}
	}

	return contracts.CriteriaResult{
		Name:          name,
		Passed:        len(hist) >= buffettMinHistoryYears && negative <= buffettMaxNegativeYears,
		ActualValue:   fmt.Sprintf("%d negative years out of %d available", negative, len(hist)),
		RequiredValue: required,
		Explanation: "Erratic or frequently negative earnings are too unpredictable to " +
			"value with confidence; consistency marks a stable, proven business model.",
	}
}

// Business tenet 3: favorable long-term prospects via revenue CAGR.
func (e *Engine) checkRevenueGrowth(d *contracts.FinancialData) contracts.CriteriaResult {
	name := "Revenue Growth (CAGR)"
	required := fmt.Sprintf("Revenue CAGR > %.0f%%", buffettMinRevenueCAGR)

	hist := d.RevenueHistory
	if len(hist) < 3 {
		return contracts.CriteriaResult{
			Name:          name,
			Passed:        false,
			ActualValue:   insufficientData,
			RequiredValue: required,
			Explanation: fmt.Sprintf("Revenue trend needs at least 3 years of history; "+
				"only %d are available.", len(hist)),
		}
	}

	starting := hist[0]
	ending := hist[len(hist)-1]
	years := len(hist) - 1

	if starting <= 0 {
		return contracts.CriteriaResult{
			Name:          name,
			Passed:        false,
			ActualValue:   "base year revenue not positive",
			RequiredValue: required,
			Explanation:   "The earliest year's revenue is zero or negative, so a growth rate cannot be established.",
		}
	}

	cagr := (math.Pow(ending/starting, 1/float64(years)) - 1) * 100
	return contracts.CriteriaResult{
		Name:          name,
		Passed:        cagr >= buffettMinRevenueCAGR,
		ActualValue:   fmt.Sprintf("%.1f%% CAGR over %d years", cagr, years),
		RequiredValue: required,
		Explanation: "Sustained revenue growth indicates an expanding market or share " +
			"gains; stagnant or declining revenue signals trouble ahead.",
	}
}

// Management tenet 1: high return on equity not driven by leverage.
func (e *Engine) checkROEConsistency(d *contracts.FinancialData) contracts.CriteriaResult {
	name := "High ROE (Not Debt-Driven)"
	required := fmt.Sprintf("ROE > %.0f%% average, Debt/Equity < %.1f", buffettMinROE, buffettMaxDebtToEquity)

	avgROE, okROE := e.averageROE(d)
	de, okDE := e.debtToEquity(d)

	if !okROE || !okDE {
		return contracts.CriteriaResult{
			Name:          name,
			Passed:        false,
			ActualValue:   insufficientData,
			RequiredValue: required,
			Explanation: missingInputs("return-on-equity assessment",
				missing(!okROE, "return on equity"),
				missing(!okDE, "debt-to-equity")),
		}
	}

	return contracts.CriteriaResult{
		Name:          name,
		Passed:        avgROE >= buffettMinROE && de <= buffettMaxDebtToEquity,
		ActualValue:   fmt.Sprintf("Avg ROE: %.1f%%, D/E: %.2f", avgROE, de),
		RequiredValue: required,
		Explanation: "Returns on equity above 15% show efficient capital deployment; if " +
			"ROE is high only because of heavy leverage the returns are borrowed, not earned.",
	}
}

// Management tenet 2: lean operations, SG&A small relative to gross profit.
func (e *Engine) checkEfficientManagement(d *contracts.FinancialData) contracts.CriteriaResult {
	name := "Efficient Management (Low SG&A)"
	required := fmt.Sprintf("SG&A < %.0f%% of Gross Profit", buffettMaxSGARatio)

	sga, okS := value(d.SGAExpense)
	grossProfit, okG := value(d.GrossProfit)

	if !okS || !okG {
		return contracts.CriteriaResult{
			Name:          name,
			Passed:        false,
			ActualValue:   insufficientData,
			RequiredValue: required,
			Explanation: missingInputs("overhead ratio",
				missing(!okS, "SG&A expense"),
				missing(!okG, "gross profit")),
		}
	}

	if grossProfit <= 0 {
		return contracts.CriteriaResult{
			Name:          name,
			Passed:        false,
			ActualValue:   "no gross profit",
			RequiredValue: required,
			Explanation:   "Gross profit is zero or negative, so the overhead ratio is undefined.",
		}
	}

	ratio := sga / grossProfit * 100
	return contracts.CriteriaResult{
		Name:          name,
		Passed:        ratio < buffettMaxSGARatio,
		ActualValue:   fmt.Sprintf("SG&A is %.1f%% of Gross Profit", ratio),
		RequiredValue: required,
		Explanation: "Low overhead relative to gross profit indicates disciplined cost " +
			"control and management that resists empire-building.",
	}
}

// Financial tenet 1: wide net profit margins.
func (e *Engine) checkHighMargins(d *contracts.FinancialData) contracts.CriteriaResult {
	name := "High Net Profit Margin"
	required := fmt.Sprintf("Net Margin > %.0f%%", buffettMinNetMargin)

	netIncome, okN := value(d.NetIncome)
	revenue, okR := value(d.Revenue)

	if !okN || !okR || revenue <= 0 {
		return contracts.CriteriaResult{
			Name:          name,
			Passed:        false,
			ActualValue:   insufficientData,
			RequiredValue: required,
			Explanation: missingInputs("net margin",
				missing(!okN, "net income"),
				missing(!okR || revenue <= 0, "revenue")),
		}
	}

	margin := netIncome / revenue * 100
	return contracts.CriteriaResult{
		Name:          name,
		Passed:        margin >= buffettMinNetMargin,
		ActualValue:   fmt.Sprintf("%.1f%%", margin),
		RequiredValue: required,
		Explanation: "Wide margins mean pricing power or an exceptional cost structure; " +
			"thin margins mark commodity businesses vulnerable to competition.",
	}
}

// Financial tenet 2: positive owner earnings with a yield above the
// long Treasury rate.
func (e *Engine) checkOwnerEarnings(d *contracts.FinancialData) contracts.CriteriaResult {
	name := "Positive Owner Earnings"
	required := fmt.Sprintf("Positive and Yield > %.1f%%", buffettMinOwnerEarnYield)

	ownerEarnings, okO := value(d.OwnerEarnings)
	marketCap, okM := value(d.MarketCap)

	if !okO || !okM || marketCap <= 0 {
		return contracts.CriteriaResult{
			Name:          name,
			Passed:        false,
			ActualValue:   insufficientData,
			RequiredValue: required,
			Explanation: missingInputs("owner earnings yield",
				missing(!okO, "owner earnings"),
				missing(!okM || marketCap <= 0, "market capitalization")),
		}
	}

	yield := ownerEarnings / marketCap * 100
	return contracts.CriteriaResult{
		Name:          name,
		Passed:        ownerEarnings > 0 && yield > buffettMinOwnerEarnYield,
		ActualValue:   fmt.Sprintf("Owner Earnings: %s, Yield: %.1f%%", FormatCurrency(ownerEarnings), yield),
		RequiredValue: required,
		Explanation: "Owner earnings approximate what an owner could extract annually " +
			"without harming the business; the yield should beat Treasuries to justify equity risk.",
	}
}

// Financial tenet 3: conservative debt, payable from a few years of earnings.
func (e *Engine) checkLowDebt(d *contracts.FinancialData) contracts.CriteriaResult {
	name := "Conservative Debt Levels"
	required := fmt.Sprintf("Debt/Equity < %.1f AND Payoff < %.0f years", buffettLowDebtToEquity, buffettMaxDebtPayoffYears)

	de, okDE := e.debtToEquity(d)
	totalDebt, okD := value(d.TotalDebt)
	netIncome, okN := value(d.NetIncome)

	if !okDE || !okD || !okN {
		return contracts.CriteriaResult{
			Name:          name,
			Passed:        false,
			ActualValue:   insufficientData,
			RequiredValue: required,
			Explanation: missingInputs("debt capacity assessment",
				missing(!okDE, "debt-to-equity"),
				missing(!okD, "total debt"),
				missing(!okN, "net income")),
		}
	}

	if netIncome <= 0 {
		return contracts.CriteriaResult{
			Name:          name,
			Passed:        false,
			ActualValue:   fmt.Sprintf("D/E: %.2f, no earnings to service debt", de),
			RequiredValue: required,
			Explanation:   "With no positive earnings the debt payoff horizon is unbounded.",
		}
	}

	payoffYears := totalDebt / netIncome
	return contracts.CriteriaResult{
		Name:          name,
		Passed:        de < buffettLowDebtToEquity && payoffYears < buffettMaxDebtPayoffYears,
		ActualValue:   fmt.Sprintf("D/E: %.2f, Payoff: %.1f years", de, payoffYears),
		RequiredValue: required,
		Explanation: "A company that can self-fund growth and retire its debt from a few " +
			"years of earnings keeps its options open during downturns.",
	}
}

// Financial tenet 4: comfortable interest coverage.
func (e *Engine) checkInterestCoverage(d *contracts.FinancialData) contracts.CriteriaResult {
	name := "Strong Interest Coverage"
	required := fmt.Sprintf("Interest Coverage > %.0fx OR no interest expense", buffettMinInterestCover)

	interest, okI := value(d.InterestExpense)
	if !okI {
		return contracts.CriteriaResult{
			Name:          name,
			Passed:        false,
			ActualValue:   insufficientData,
			RequiredValue: required,
			Explanation:   "Interest expense is missing from the provider data.",
		}
	}

	if interest <= 0 {
		return contracts.CriteriaResult{
			Name:          name,
			Passed:        true,
			ActualValue:   "No debt/interest",
			RequiredValue: required,
			Explanation:   "The company carries no interest burden at all.",
		}
	}

	ebit, okE := value(d.OperatingIncome)
	if !okE {
		return contracts.CriteriaResult{
			Name:          name,
			Passed:        false,
			ActualValue:   insufficientData,
			RequiredValue: required,
			Explanation:   "Operating income is missing from the provider data, so coverage cannot be computed.",
		}
	}

	coverage := ebit / interest
	return contracts.CriteriaResult{
		Name:          name,
		Passed:        coverage > buffettMinInterestCover,
		ActualValue:   fmt.Sprintf("Coverage: %.1fx", coverage),
		RequiredValue: required,
		Explanation: "Earning several times the interest obligation leaves ample buffer " +
			"against earnings declines or rate increases.",
	}
}

// Value tenet: a fair price, by earnings multiple or cash yield.
func (e *Engine) checkReasonableValuation(d *contracts.FinancialData) contracts.CriteriaResult {
	name := "Reasonable Valuation (Margin of Safety)"
	required := fmt.Sprintf("P/E < %.0f OR FCF Yield > %.1f%%", buffettMaxPE, buffettMinFCFYield)

	price, okP := value(d.CurrentPrice)
	eps, okE := value(d.EarningsPerShare)
	fcf, okF := value(d.FreeCashFlow)
	marketCap, okM := value(d.MarketCap)

	peOK := false
	peDesc := "P/E: n/a"
	if okP && okE && eps > 0 {
		pe := price / eps
		peOK = pe < buffettMaxPE
		peDesc = fmt.Sprintf("P/E: %.1f", pe)
	}

	fcfOK := false
	fcfDesc := "FCF Yield: n/a"
	if okF && okM && marketCap > 0 {
		yield := fcf / marketCap * 100
		fcfOK = yield > buffettMinFCFYield
		fcfDesc = fmt.Sprintf("FCF Yield: %.1f%%", yield)
	}

	if peDesc == "P/E: n/a" && fcfDesc == "FCF Yield: n/a" {
		return contracts.CriteriaResult{
			Name:          name,
			Passed:        false,
			ActualValue:   insufficientData,
			RequiredValue: required,
			Explanation: "Neither valuation branch can be computed: earnings per share " +
				"and free cash flow are missing from the provider data.",
		}
	}

	return contracts.CriteriaResult{
		Name:          name,
		Passed:        peOK || fcfOK,
		ActualValue:   peDesc + ", " + fcfDesc,
		RequiredValue: required,
		Explanation: "A wonderful business at a fair price: a modest earnings multiple " +
			"or a cash yield above Treasuries keeps the margin of safety intact.",
	}
}

// Derived ratio helpers. Each reports ok=false when a required raw
// input is absent, keeping the fail-closed policy in one place.

func (e *Engine) grossMargin(d *contracts.FinancialData) (float64, bool) {
	gp, okG := value(d.GrossProfit)
	rev, okR := value(d.Revenue)
	if !okG || !okR || rev <= 0 {
		return 0, false
	}
	return gp / rev * 100, true
}

func (e *Engine) roic(d *contracts.FinancialData) (float64, bool) {
	ebit, okE := value(d.OperatingIncome)
	assets, okA := value(d.TotalAssets)
	liabilities, okL := value(d.CurrentLiabilities)
	if !okE || !okA || !okL {
		return 0, false
	}
	invested := assets - liabilities
	if invested <= 0 || ebit <= 0 {
		return 0, false
	}
	nopat := ebit * (1 - corporateTaxRate)
	return nopat / invested * 100, true
}

func (e *Engine) averageROE(d *contracts.FinancialData) (float64, bool) {
	if len(d.ROEHistory) >= 2 {
		return mean(d.ROEHistory), true
	}
	ni, okN := value(d.NetIncome)
	equity, okE := value(d.StockholderEquity)
	if !okN || !okE || equity <= 0 {
		return 0, false
	}
	return ni / equity * 100, true
}

func (e *Engine) debtToEquity(d *contracts.FinancialData) (float64, bool) {
	if de, ok := value(d.DebtToEquity); ok {
		return de, true
	}
	debt, okD := value(d.TotalDebt)
	equity, okE := value(d.StockholderEquity)
	if !okD || !okE || equity <= 0 {
		return 0, false
	}
	return debt / equity, true
}
