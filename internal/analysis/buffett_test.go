package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantlab/graham/internal/contracts"
)

// strongBuffettSnapshot satisfies all ten quality tenets.
func strongBuffettSnapshot() *contracts.FinancialData {
	return &contracts.FinancialData{
		Ticker:             "MOAT",
		CompanyName:        "Moat & Co",
		CurrentPrice:       fp(90),
		MarketCap:          fp(400e9),
		Revenue:            fp(100e9),
		GrossProfit:        fp(45e9),
		OperatingIncome:    fp(30e9),
		NetIncome:          fp(24e9),
		EarningsPerShare:   fp(10),
		SGAExpense:         fp(9e9),
		InterestExpense:    fp(1e9),
		TotalAssets:        fp(120e9),
		CurrentLiabilities: fp(20e9),
		TotalDebt:          fp(40e9),
		StockholderEquity:  fp(100e9),
		NetIncomeHistory:   []float64{15e9, 17e9, 19e9, 21e9, 24e9},
		RevenueHistory:     []float64{70e9, 78e9, 86e9, 94e9, 100e9},
		ROEHistory:         []float64{28, 30, 32},
		DebtToEquity:       fp(0.4),
		OwnerEarnings:      fp(26e9),
		FreeCashFlow:       fp(25e9),
	}
}

func TestEvaluateBuffett_AllTenetsPass(t *testing.T) {
	result := testEngine().Evaluate(strongBuffettSnapshot(), contracts.StrategyBuffett)

	require.Equal(t, 10, result.TotalCount)
	assert.Equal(t, 10, result.PassedCount)
	assert.Equal(t, 100.0, result.ScorePercentage)
	assert.Equal(t, "STRONG BUY - Exceptional Buffett-style investment", result.Recommendation)

	names := make([]string, 0, len(result.CriteriaResults))
	for _, c := range result.CriteriaResults {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{
		"Economic Moat (Gross Margin & ROIC)",
		"Consistent Earnings History",
		"Revenue Growth (CAGR)",
		"High ROE (Not Debt-Driven)",
		"Efficient Management (Low SG&A)",
		"High Net Profit Margin",
		"Positive Owner Earnings",
		"Conservative Debt Levels",
		"Strong Interest Coverage",
		"Reasonable Valuation (Margin of Safety)",
	}, names)
}

func TestCheckEconomicMoat(t *testing.T) {
	engine := testEngine()

	t.Run("wide margin and high ROIC pass", func(t *testing.T) {
		got := engine.checkEconomicMoat(strongBuffettSnapshot())
		assert.True(t, got.Passed)
		// NOPAT 30B * 0.79 over 100B invested capital.
		assert.Equal(t, "Gross Margin: 45.0%, ROIC: 23.7%", got.ActualValue)
	})

	t.Run("thin gross margin fails", func(t *testing.T) {
		d := strongBuffettSnapshot()
		d.GrossProfit = fp(30e9)
		got := engine.checkEconomicMoat(d)
		assert.False(t, got.Passed)
	})

	t.Run("missing gross profit", func(t *testing.T) {
		d := strongBuffettSnapshot()
		d.GrossProfit = nil
		got := engine.checkEconomicMoat(d)
		assert.False(t, got.Passed)
		assert.Equal(t, insufficientData, got.ActualValue)
		assert.Contains(t, got.Explanation, "gross profit or revenue")
	})
}

func TestCheckConsistentEarnings(t *testing.T) {
	engine := testEngine()

	t.Run("five positive years pass", func(t *testing.T) {
		got := engine.checkConsistentEarnings(strongBuffettSnapshot())
		assert.True(t, got.Passed)
		assert.Equal(t, "0 negative years out of 5 available", got.ActualValue)
	})

	t.Run("three loss years fail", func(t *testing.T) {
		d := &contracts.FinancialData{
			NetIncomeHistory: []float64{-1e9, 2e9, -3e9, 4e9, -5e9, 6e9},
		}
		got := engine.checkConsistentEarnings(d)
		assert.False(t, got.Passed)
		assert.Equal(t, "3 negative years out of 6 available", got.ActualValue)
	})

	t.Run("too little history fails even when clean", func(t *testing.T) {
		d := &contracts.FinancialData{NetIncomeHistory: []float64{1e9, 2e9, 3e9}}
		got := engine.checkConsistentEarnings(d)
		assert.False(t, got.Passed)
	})
}

func TestCheckRevenueGrowth(t *testing.T) {
	engine := testEngine()

	t.Run("high single digit CAGR passes", func(t *testing.T) {
		got := engine.checkRevenueGrowth(strongBuffettSnapshot())
		assert.True(t, got.Passed)
		assert.Equal(t, "9.3% CAGR over 4 years", got.ActualValue)
	})

	t.Run("flat revenue fails", func(t *testing.T) {
		d := &contracts.FinancialData{RevenueHistory: []float64{50e9, 50e9, 50e9, 50e9}}
		got := engine.checkRevenueGrowth(d)
		assert.False(t, got.Passed)
		assert.Equal(t, "0.0% CAGR over 3 years", got.ActualValue)
	})

	t.Run("two years insufficient", func(t *testing.T) {
		d := &contracts.FinancialData{RevenueHistory: []float64{50e9, 60e9}}
		got := engine.checkRevenueGrowth(d)
		assert.False(t, got.Passed)
		assert.Equal(t, insufficientData, got.ActualValue)
	})

	t.Run("non-positive base year", func(t *testing.T) {
		d := &contracts.FinancialData{RevenueHistory: []float64{0, 50e9, 60e9}}
		got := engine.checkRevenueGrowth(d)
		assert.False(t, got.Passed)
		assert.Equal(t, "base year revenue not positive", got.ActualValue)
	})
}

func TestCheckROEConsistency(t *testing.T) {
	engine := testEngine()

	t.Run("history average with low leverage passes", func(t *testing.T) {
		got := engine.checkROEConsistency(strongBuffettSnapshot())
		assert.True(t, got.Passed)
		assert.Equal(t, "Avg ROE: 30.0%, D/E: 0.40", got.ActualValue)
	})

	t.Run("falls back to point-in-time ROE", func(t *testing.T) {
		d := strongBuffettSnapshot()
		d.ROEHistory = nil
		got := engine.checkROEConsistency(d)
		assert.True(t, got.Passed)
		assert.Equal(t, "Avg ROE: 24.0%, D/E: 0.40", got.ActualValue)
	})

	t.Run("high ROE on heavy leverage fails", func(t *testing.T) {
		d := strongBuffettSnapshot()
		d.DebtToEquity = fp(1.8)
		got := engine.checkROEConsistency(d)
		assert.False(t, got.Passed)
	})

	t.Run("no equity data", func(t *testing.T) {
		d := &contracts.FinancialData{NetIncome: fp(24e9), DebtToEquity: fp(0.4)}
		got := engine.checkROEConsistency(d)
		assert.False(t, got.Passed)
		assert.Equal(t, insufficientData, got.ActualValue)
	})
}

func TestCheckEfficientManagement(t *testing.T) {
	engine := testEngine()

	t.Run("lean overhead passes", func(t *testing.T) {
		got := engine.checkEfficientManagement(strongBuffettSnapshot())
		assert.True(t, got.Passed)
		assert.Equal(t, "SG&A is 20.0% of Gross Profit", got.ActualValue)
	})

	t.Run("bloated overhead fails", func(t *testing.T) {
		d := strongBuffettSnapshot()
		d.SGAExpense = fp(20e9)
		got := engine.checkEfficientManagement(d)
		assert.False(t, got.Passed)
		assert.Equal(t, "SG&A is 44.4% of Gross Profit", got.ActualValue)
	})

	t.Run("no gross profit", func(t *testing.T) {
		d := strongBuffettSnapshot()
		d.GrossProfit = fp(-1e9)
		got := engine.checkEfficientManagement(d)
		assert.False(t, got.Passed)
		assert.Equal(t, "no gross profit", got.ActualValue)
	})
}

func TestCheckHighMargins(t *testing.T) {
	engine := testEngine()

	got := engine.checkHighMargins(strongBuffettSnapshot())
	assert.True(t, got.Passed)
	assert.Equal(t, "24.0%", got.ActualValue)

	d := strongBuffettSnapshot()
	d.NetIncome = fp(8e9)
	got = engine.checkHighMargins(d)
	assert.False(t, got.Passed)
	assert.Equal(t, "8.0%", got.ActualValue)
}

func TestCheckOwnerEarnings(t *testing.T) {
	engine := testEngine()

	t.Run("yield above treasuries passes", func(t *testing.T) {
		got := engine.checkOwnerEarnings(strongBuffettSnapshot())
		assert.True(t, got.Passed)
		assert.Equal(t, "Owner Earnings: $26.00B, Yield: 6.5%", got.ActualValue)
	})

	t.Run("negative owner earnings fail", func(t *testing.T) {
		d := strongBuffettSnapshot()
		d.OwnerEarnings = fp(-4e9)
		got := engine.checkOwnerEarnings(d)
		assert.False(t, got.Passed)
	})

	t.Run("missing market cap", func(t *testing.T) {
		d := strongBuffettSnapshot()
		d.MarketCap = nil
		got := engine.checkOwnerEarnings(d)
		assert.False(t, got.Passed)
		assert.Equal(t, insufficientData, got.ActualValue)
	})
}

func TestCheckLowDebt(t *testing.T) {
	engine := testEngine()

	t.Run("modest debt passes", func(t *testing.T) {
		got := engine.checkLowDebt(strongBuffettSnapshot())
		assert.True(t, got.Passed)
		assert.Equal(t, "D/E: 0.40, Payoff: 1.7 years", got.ActualValue)
	})

	t.Run("long payoff horizon fails", func(t *testing.T) {
		d := strongBuffettSnapshot()
		d.TotalDebt = fp(120e9)
		d.DebtToEquity = fp(0.4)
		got := engine.checkLowDebt(d)
		assert.False(t, got.Passed)
		assert.Equal(t, "D/E: 0.40, Payoff: 5.0 years", got.ActualValue)
	})

	t.Run("no earnings to service debt", func(t *testing.T) {
		d := strongBuffettSnapshot()
		d.NetIncome = fp(-1e9)
		got := engine.checkLowDebt(d)
		assert.False(t, got.Passed)
		assert.Contains(t, got.ActualValue, "no earnings to service debt")
	})
}

func TestCheckInterestCoverage(t *testing.T) {
	engine := testEngine()

	tests := []struct {
		name       string
		interest   *float64
		ebit       *float64
		wantPassed bool
		wantActual string
	}{
		{"comfortable coverage", fp(1e9), fp(30e9), true, "Coverage: 30.0x"},
		{"thin coverage fails", fp(10e9), fp(30e9), false, "Coverage: 3.0x"},
		{"debt free passes outright", fp(0), nil, true, "No debt/interest"},
		{"interest without operating income", fp(1e9), nil, false, insufficientData},
		{"missing interest expense", nil, fp(30e9), false, insufficientData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.checkInterestCoverage(&contracts.FinancialData{
				InterestExpense: tt.interest,
				OperatingIncome: tt.ebit,
			})
			assert.Equal(t, tt.wantPassed, got.Passed)
			assert.Equal(t, tt.wantActual, got.ActualValue)
		})
	}
}

func TestCheckReasonableValuation(t *testing.T) {
	engine := testEngine()

	t.Run("modest earnings multiple passes", func(t *testing.T) {
		d := &contracts.FinancialData{CurrentPrice: fp(90), EarningsPerShare: fp(10)}
		got := engine.checkReasonableValuation(d)
		assert.True(t, got.Passed)
		assert.Equal(t, "P/E: 9.0, FCF Yield: n/a", got.ActualValue)
	})

	t.Run("cash yield rescues a loss maker", func(t *testing.T) {
		d := &contracts.FinancialData{
			CurrentPrice:     fp(90),
			EarningsPerShare: fp(-2),
			FreeCashFlow:     fp(26e9),
			MarketCap:        fp(400e9),
		}
		got := engine.checkReasonableValuation(d)
		assert.True(t, got.Passed)
		assert.Equal(t, "P/E: n/a, FCF Yield: 6.5%", got.ActualValue)
	})

	t.Run("expensive on both branches fails", func(t *testing.T) {
		d := &contracts.FinancialData{
			CurrentPrice:     fp(300),
			EarningsPerShare: fp(10),
			FreeCashFlow:     fp(8e9),
			MarketCap:        fp(400e9),
		}
		got := engine.checkReasonableValuation(d)
		assert.False(t, got.Passed)
		assert.Equal(t, "P/E: 30.0, FCF Yield: 2.0%", got.ActualValue)
	})

	t.Run("neither branch computable", func(t *testing.T) {
		got := engine.checkReasonableValuation(&contracts.FinancialData{})
		assert.False(t, got.Passed)
		assert.Equal(t, insufficientData, got.ActualValue)
	})
}

func TestDebtToEquityFallback(t *testing.T) {
	engine := testEngine()

	// Reported ratio preferred over the computed one.
	de, ok := engine.debtToEquity(strongBuffettSnapshot())
	require.True(t, ok)
	assert.Equal(t, 0.4, de)

	d := strongBuffettSnapshot()
	d.DebtToEquity = nil
	de, ok = engine.debtToEquity(d)
	require.True(t, ok)
	assert.Equal(t, 0.4, de)

	d.StockholderEquity = nil
	_, ok = engine.debtToEquity(d)
	assert.False(t, ok)
}
