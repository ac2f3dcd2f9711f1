package yahoo

// quoteSummaryEnvelope mirrors the quoteSummary response shape.
type quoteSummaryEnvelope struct {
	QuoteSummary struct {
		Result []quoteSummaryResult `json:"result"`
		Error  *apiError            `json:"error"`
	} `json:"quoteSummary"`
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// rawValue is Yahoo's nullable number wrapper. Missing fields decode
// to an empty object, leaving Raw nil.
type rawValue struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt"`
}

type quoteSummaryResult struct {
	Price struct {
		LongName           string   `json:"longName"`
		ShortName          string   `json:"shortName"`
		RegularMarketPrice rawValue `json:"regularMarketPrice"`
		MarketCap          rawValue `json:"marketCap"`
	} `json:"price"`

	SummaryDetail struct {
		DividendYield rawValue `json:"dividendYield"`
		TrailingPE    rawValue `json:"trailingPE"`
	} `json:"summaryDetail"`

	DefaultKeyStatistics struct {
		SharesOutstanding rawValue `json:"sharesOutstanding"`
		BookValue         rawValue `json:"bookValue"`
		TrailingEps       rawValue `json:"trailingEps"`
	} `json:"defaultKeyStatistics"`

	FinancialData struct {
		TotalDebt      rawValue `json:"totalDebt"`
		DebtToEquity   rawValue `json:"debtToEquity"`
		ReturnOnEquity rawValue `json:"returnOnEquity"`
		FreeCashflow   rawValue `json:"freeCashflow"`
	} `json:"financialData"`

	BalanceSheetHistory struct {
		Statements []balanceSheet `json:"balanceSheetStatements"`
	} `json:"balanceSheetHistory"`

	IncomeStatementHistory struct {
		Statements []incomeStatement `json:"incomeStatementHistory"`
	} `json:"incomeStatementHistory"`

	CashflowStatementHistory struct {
		Statements []cashflowStatement `json:"cashflowStatements"`
	} `json:"cashflowStatementHistory"`
}

// Annual statements, newest first as Yahoo delivers them.
type balanceSheet struct {
	EndDate                 rawValue `json:"endDate"`
	TotalCurrentAssets      rawValue `json:"totalCurrentAssets"`
	TotalCurrentLiabilities rawValue `json:"totalCurrentLiabilities"`
	LongTermDebt            rawValue `json:"longTermDebt"`
	TotalStockholderEquity  rawValue `json:"totalStockholderEquity"`
	TotalAssets             rawValue `json:"totalAssets"`
	NetTangibleAssets       rawValue `json:"netTangibleAssets"`
}

type incomeStatement struct {
	EndDate                      rawValue `json:"endDate"`
	TotalRevenue                 rawValue `json:"totalRevenue"`
	NetIncome                    rawValue `json:"netIncome"`
	GrossProfit                  rawValue `json:"grossProfit"`
	OperatingIncome              rawValue `json:"operatingIncome"`
	InterestExpense              rawValue `json:"interestExpense"`
	SellingGeneralAdministrative rawValue `json:"sellingGeneralAdministrative"`
}

type cashflowStatement struct {
	EndDate             rawValue `json:"endDate"`
	NetIncome           rawValue `json:"netIncome"`
	Depreciation        rawValue `json:"depreciation"`
	CapitalExpenditures rawValue `json:"capitalExpenditures"`
}

// chartEnvelope mirrors the chart endpoint response, used only for
// dividend events.
type chartEnvelope struct {
	Chart struct {
		Result []struct {
			Events struct {
				Dividends map[string]struct {
					Amount float64 `json:"amount"`
					Date   int64   `json:"date"`
				} `json:"dividends"`
			} `json:"events"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"chart"`
}
