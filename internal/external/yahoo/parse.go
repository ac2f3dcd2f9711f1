package yahoo

import (
	"fmt"

	"github.com/quantlab/graham/internal/contracts"
)

// mapSummary converts a quoteSummary result into a FinancialData
// snapshot. Absent provider fields stay nil pointers; nothing here
// invents a zero.
func mapSummary(ticker string, r *quoteSummaryResult) (*contracts.FinancialData, error) {
	if r.Price.LongName == "" && r.Price.ShortName == "" && r.Price.RegularMarketPrice.Raw == nil {
		return nil, fmt.Errorf("%w: no price module for %s", contracts.ErrMalformedResponse, ticker)
	}

	name := r.Price.LongName
	if name == "" {
		name = r.Price.ShortName
	}

	data := &contracts.FinancialData{
		Ticker:      ticker,
		CompanyName: name,

		CurrentPrice:      r.Price.RegularMarketPrice.Raw,
		MarketCap:         r.Price.MarketCap.Raw,
		SharesOutstanding: r.DefaultKeyStatistics.SharesOutstanding.Raw,

		EarningsPerShare:  r.DefaultKeyStatistics.TrailingEps.Raw,
		BookValuePerShare: r.DefaultKeyStatistics.BookValue.Raw,

		TotalDebt:    r.FinancialData.TotalDebt.Raw,
		FreeCashFlow: r.FinancialData.FreeCashflow.Raw,
	}

	if y := r.SummaryDetail.DividendYield.Raw; y != nil {
		// Yahoo reports yield as a fraction (0.0044 = 0.44%).
		pct := *y * 100
		data.DividendYield = &pct
	}

	if de := r.FinancialData.DebtToEquity.Raw; de != nil {
		// Yahoo reports debt-to-equity in percent; the checklists work
		// with the plain ratio.
		ratio := *de / 100
		data.DebtToEquity = &ratio
	}

	mapBalanceSheets(data, r.BalanceSheetHistory.Statements)
	mapIncomeStatements(data, r.IncomeStatementHistory.Statements)
	mapCashflow(data, r.CashflowStatementHistory.Statements)
	mapROEHistory(data, r)

	return data, nil
}

// mapBalanceSheets takes the newest annual balance sheet for the
// point-in-time fields.
func mapBalanceSheets(data *contracts.FinancialData, sheets []balanceSheet) {
	if len(sheets) == 0 {
		return
	}

	latest := sheets[0]
	data.CurrentAssets = latest.TotalCurrentAssets.Raw
	data.CurrentLiabilities = latest.TotalCurrentLiabilities.Raw
	data.LongTermDebt = latest.LongTermDebt.Raw
	data.StockholderEquity = latest.TotalStockholderEquity.Raw
	data.TotalAssets = latest.TotalAssets.Raw
	data.NetTangibleAssets = latest.NetTangibleAssets.Raw
}

// mapIncomeStatements fills the point-in-time income fields from the
// newest statement and builds the oldest-to-newest history slices.
func mapIncomeStatements(data *contracts.FinancialData, stmts []incomeStatement) {
	if len(stmts) == 0 {
		return
	}

	latest := stmts[0]
	data.Revenue = latest.TotalRevenue.Raw
	data.NetIncome = latest.NetIncome.Raw
	data.GrossProfit = latest.GrossProfit.Raw
	data.OperatingIncome = latest.OperatingIncome.Raw
	data.SGAExpense = latest.SellingGeneralAdministrative.Raw

	if latest.InterestExpense.Raw != nil {
		// Yahoo reports interest expense as a negative line item.
		expense := *latest.InterestExpense.Raw
		if expense < 0 {
			expense = -expense
		}
		data.InterestExpense = &expense
	}

	// Yahoo delivers statements newest first; the checklists want
	// oldest first.
	for i := len(stmts) - 1; i >= 0; i-- {
		if ni := stmts[i].NetIncome.Raw; ni != nil {
			data.NetIncomeHistory = append(data.NetIncomeHistory, *ni)
		}
		if rev := stmts[i].TotalRevenue.Raw; rev != nil {
			data.RevenueHistory = append(data.RevenueHistory, *rev)
		}
	}
}

// mapCashflow derives owner earnings from the newest cash flow
// statement: net income plus depreciation minus capital expenditures.
func mapCashflow(data *contracts.FinancialData, stmts []cashflowStatement) {
	if len(stmts) == 0 {
		return
	}

	latest := stmts[0]
	ni := latest.NetIncome.Raw
	dep := latest.Depreciation.Raw
	capex := latest.CapitalExpenditures.Raw
	if ni == nil || dep == nil || capex == nil {
		return
	}

	// Capital expenditures come through as a negative outflow.
	spend := *capex
	if spend < 0 {
		spend = -spend
	}
	ownerEarnings := *ni + *dep - spend
	data.OwnerEarnings = &ownerEarnings
}

// mapROEHistory pairs annual income statements with balance sheets by
// position and records return on equity in percent, oldest first. The
// history is only built when the two statement series line up.
func mapROEHistory(data *contracts.FinancialData, r *quoteSummaryResult) {
	income := r.IncomeStatementHistory.Statements
	sheets := r.BalanceSheetHistory.Statements
	if len(income) == 0 || len(income) != len(sheets) {
		return
	}

	roe := make([]float64, 0, len(income))
	for i := len(income) - 1; i >= 0; i-- {
		ni := income[i].NetIncome.Raw
		equity := sheets[i].TotalStockholderEquity.Raw
		if ni == nil || equity == nil || *equity <= 0 {
			return
		}
		roe = append(roe, *ni / *equity * 100)
	}
	data.ROEHistory = roe
}
