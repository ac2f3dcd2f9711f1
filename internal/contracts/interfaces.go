package contracts

import "context"

// Fetcher retrieves a financial snapshot for a ticker. The analysis
// pipeline depends only on this signature, not on the transport behind
// it.
type Fetcher interface {
	Fetch(ctx context.Context, ticker string) (*FinancialData, error)
}

// Narrator turns an analysis result into a narrative verdict.
type Narrator interface {
	Narrate(ctx context.Context, result *AnalysisResult) (string, error)
}
