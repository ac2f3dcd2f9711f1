package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantlab/graham/internal/contracts"
)

// strongDefensiveSnapshot satisfies all seven defensive criteria.
func strongDefensiveSnapshot() *contracts.FinancialData {
	return &contracts.FinancialData{
		Ticker:             "SOLID",
		CompanyName:        "Solid Industries",
		CurrentPrice:       fp(10),
		CurrentAssets:      fp(400e9),
		CurrentLiabilities: fp(100e9),
		LongTermDebt:       fp(50e9),
		Revenue:            fp(80e9),
		EarningsPerShare:   fp(1),
		BookValuePerShare:  fp(8),
		NetIncomeHistory: []float64{
			10e9, 11e9, 12e9, 13e9, 14e9, 15e9, 16e9, 17e9, 18e9, 19e9,
		},
		DividendYears: 25,
	}
}

func TestEvaluateDefensive_AllCriteriaPass(t *testing.T) {
	result := testEngine().Evaluate(strongDefensiveSnapshot(), contracts.StrategyDefensive)

	require.Equal(t, 7, result.TotalCount)
	assert.Equal(t, 7, result.PassedCount)
	assert.Equal(t, 100.0, result.ScorePercentage)
	assert.Equal(t, "STRONG BUY - Meets nearly all Graham criteria", result.Recommendation)

	names := make([]string, 0, len(result.CriteriaResults))
	for _, c := range result.CriteriaResults {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{
		"Adequate Size of Enterprise",
		"Strong Financials: Current Ratio",
		"Strong Financials: Debt vs Working Capital",
		"Earnings Stability (10 Years)",
		"Dividend Record (20 Years)",
		"Earnings Growth (10-Year)",
		"Moderate Valuation (P/E & P/B)",
	}, names)
}

func TestCheckAdequateSize(t *testing.T) {
	engine := testEngine()

	tests := []struct {
		name       string
		revenue    *float64
		wantPassed bool
		wantActual string
	}{
		{"well above floor", fp(80e9), true, "$80.00B"},
		{"exactly at floor fails", fp(500e6), false, "$500.00M"},
		{"below floor", fp(120e6), false, "$120.00M"},
		{"missing revenue", nil, false, insufficientData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.checkAdequateSize(&contracts.FinancialData{Revenue: tt.revenue})
			assert.Equal(t, tt.wantPassed, got.Passed)
			assert.Equal(t, tt.wantActual, got.ActualValue)
		})
	}
}

func TestCheckCurrentRatio(t *testing.T) {
	engine := testEngine()

	tests := []struct {
		name        string
		assets      *float64
		liabilities *float64
		wantPassed  bool
		wantActual  string
	}{
		{"healthy 4:1", fp(400e9), fp(100e9), true, "4.00"},
		{"big tech below 1", fp(147.96e9), fp(165.63e9), false, "0.89"},
		{"missing liabilities", fp(400e9), nil, false, insufficientData},
		{"zero liabilities undefined", fp(400e9), fp(0), false, insufficientData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.checkCurrentRatio(&contracts.FinancialData{
				CurrentAssets:      tt.assets,
				CurrentLiabilities: tt.liabilities,
			})
			assert.Equal(t, tt.wantPassed, got.Passed)
			assert.Equal(t, tt.wantActual, got.ActualValue)
		})
	}
}

func TestCheckCurrentRatio_NamesMissingInput(t *testing.T) {
	got := testEngine().checkCurrentRatio(&contracts.FinancialData{CurrentAssets: fp(1e9)})
	assert.Contains(t, got.Explanation, "current liabilities is missing")
}

func TestCheckDebtVsWorkingCapital(t *testing.T) {
	engine := testEngine()

	tests := []struct {
		name        string
		debt        *float64
		assets      *float64
		liabilities *float64
		wantPassed  bool
	}{
		{"debt under working capital", fp(50e9), fp(400e9), fp(100e9), true},
		{"debt exceeds working capital", fp(350e9), fp(400e9), fp(100e9), false},
		{"missing debt", nil, fp(400e9), fp(100e9), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.checkDebtVsWorkingCapital(&contracts.FinancialData{
				LongTermDebt:       tt.debt,
				CurrentAssets:      tt.assets,
				CurrentLiabilities: tt.liabilities,
			})
			assert.Equal(t, tt.wantPassed, got.Passed)
		})
	}
}

func TestCheckEarningsStability(t *testing.T) {
	engine := testEngine()

	t.Run("ten positive years pass", func(t *testing.T) {
		got := engine.checkEarningsStability(strongDefensiveSnapshot())
		assert.True(t, got.Passed)
		assert.Equal(t, "10 positive years out of 10 available", got.ActualValue)
	})

	t.Run("one loss year fails", func(t *testing.T) {
		d := strongDefensiveSnapshot()
		d.NetIncomeHistory[3] = -2e9
		got := engine.checkEarningsStability(d)
		assert.False(t, got.Passed)
		assert.Equal(t, "9 positive years out of 10 available", got.ActualValue)
	})

	t.Run("partial history never passes", func(t *testing.T) {
		d := &contracts.FinancialData{NetIncomeHistory: []float64{1e9, 2e9, 3e9, 4e9, 5e9, 6e9}}
		got := engine.checkEarningsStability(d)
		assert.False(t, got.Passed)
		assert.Equal(t, "6 positive years out of 6 available", got.ActualValue)
		assert.Contains(t, got.Explanation, "Only 6 of the required 10")
	})

	t.Run("no history", func(t *testing.T) {
		got := engine.checkEarningsStability(&contracts.FinancialData{})
		assert.False(t, got.Passed)
		assert.Equal(t, insufficientData, got.ActualValue)
	})
}

func TestCheckDividendRecord_TwentyYearBoundary(t *testing.T) {
	engine := testEngine()

	got := engine.checkDividendRecord(&contracts.FinancialData{DividendYears: 20})
	assert.True(t, got.Passed)
	assert.Equal(t, "20 years of dividend payments", got.ActualValue)

	got = engine.checkDividendRecord(&contracts.FinancialData{DividendYears: 19})
	assert.False(t, got.Passed)
	assert.Equal(t, "19 years of dividend payments", got.ActualValue)
}

func TestCheckEarningsGrowth(t *testing.T) {
	engine := testEngine()

	t.Run("one third growth in averages passes", func(t *testing.T) {
		// old 3-year avg 11B, recent 18B: ratio 1.64.
		got := engine.checkEarningsGrowth(strongDefensiveSnapshot())
		assert.True(t, got.Passed)
		assert.Equal(t, "63.6% growth", got.ActualValue)
	})

	t.Run("flat earnings fail", func(t *testing.T) {
		d := &contracts.FinancialData{
			NetIncomeHistory: []float64{5e9, 5e9, 5e9, 5e9, 5e9, 5e9, 5e9, 5e9, 5e9, 5e9},
		}
		got := engine.checkEarningsGrowth(d)
		assert.False(t, got.Passed)
		assert.Equal(t, "0.0% growth", got.ActualValue)
	})

	t.Run("short history insufficient", func(t *testing.T) {
		d := &contracts.FinancialData{NetIncomeHistory: []float64{1e9, 2e9, 3e9, 4e9, 5e9}}
		got := engine.checkEarningsGrowth(d)
		assert.False(t, got.Passed)
		assert.Equal(t, insufficientData, got.ActualValue)
	})

	t.Run("non-positive base period", func(t *testing.T) {
		d := &contracts.FinancialData{
			NetIncomeHistory: []float64{-3e9, -1e9, 1e9, 2e9, 3e9, 4e9, 5e9, 6e9, 7e9, 8e9},
		}
		got := engine.checkEarningsGrowth(d)
		assert.False(t, got.Passed)
		assert.Equal(t, "base period earnings not positive", got.ActualValue)
	})
}

func TestCheckModerateValuation(t *testing.T) {
	engine := testEngine()

	tests := []struct {
		name       string
		price      *float64
		eps        *float64
		bvps       *float64
		wantPassed bool
		wantActual string
	}{
		{"cheap on both multiples", fp(10), fp(1), fp(8), true, "P/E: 10.0, P/B: 1.25, Product: 12.5"},
		{"combined 22.5 rule saves a high P/E", fp(90), fp(5), fp(75), true, "P/E: 18.0, P/B: 1.20, Product: 21.6"},
		{"growth stock fails both branches", fp(187), fp(5), fp(3.34), false, "P/E: 37.4, P/B: 55.99, Product: 2094.0"},
		{"negative earnings undefined", fp(10), fp(-1), fp(8), false, insufficientData},
		{"missing book value", fp(10), fp(1), nil, false, insufficientData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.checkModerateValuation(&contracts.FinancialData{
				CurrentPrice:      tt.price,
				EarningsPerShare:  tt.eps,
				BookValuePerShare: tt.bvps,
			})
			assert.Equal(t, tt.wantPassed, got.Passed)
			assert.Equal(t, tt.wantActual, got.ActualValue)
		})
	}
}

func TestJoinWithVerb(t *testing.T) {
	assert.Equal(t, "a required input is", joinWithVerb(nil))
	assert.Equal(t, "revenue is", joinWithVerb([]string{"revenue"}))
	assert.Equal(t, "revenue and net income are", joinWithVerb([]string{"revenue", "net income"}))
	assert.Equal(t, "a, b and c are", joinWithVerb([]string{"a", "b", "c"}))
}
