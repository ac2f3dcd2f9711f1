package contracts

import "time"

// FinancialData is an immutable snapshot of a company's financials for
// one ticker, produced by the data-fetch layer. All numeric fields are
// pointers: the provider may not report a field, and absence must stay
// distinguishable from zero. Nothing mutates a snapshot after the
// fetcher returns it.
type FinancialData struct {
	Ticker      string
	CompanyName string

	// Price data
	CurrentPrice      *float64
	MarketCap         *float64
	SharesOutstanding *float64

	// Balance sheet
	CurrentAssets      *float64
	CurrentLiabilities *float64
	LongTermDebt       *float64
	TotalDebt          *float64
	StockholderEquity  *float64
	BookValuePerShare  *float64
	NetTangibleAssets  *float64
	TotalAssets        *float64

	// Income statement
	Revenue          *float64
	NetIncome        *float64
	EarningsPerShare *float64
	GrossProfit      *float64
	OperatingIncome  *float64
	InterestExpense  *float64
	SGAExpense       *float64

	// History, ordered oldest to newest. Length varies with what the
	// provider reports (0..N years).
	NetIncomeHistory []float64
	RevenueHistory   []float64
	ROEHistory       []float64

	// Dividends
	DividendYears int
	DividendYield *float64

	// Derived ratios the provider reports directly
	DebtToEquity  *float64
	OwnerEarnings *float64
	FreeCashFlow  *float64

	FetchedAt time.Time
}

// HistoryYears returns how many years of net income history are available.
func (d *FinancialData) HistoryYears() int {
	return len(d.NetIncomeHistory)
}

// RecentNetIncome returns the most recent n years of net income,
// newest last. Returns fewer entries when less history is available.
func (d *FinancialData) RecentNetIncome(n int) []float64 {
	if n >= len(d.NetIncomeHistory) {
		return d.NetIncomeHistory
	}
	return d.NetIncomeHistory[len(d.NetIncomeHistory)-n:]
}
