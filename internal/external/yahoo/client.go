package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/quantlab/graham/internal/contracts"
	"github.com/quantlab/graham/pkg/config"
	"github.com/quantlab/graham/pkg/httputil"
	"github.com/quantlab/graham/pkg/logger"
)

// quoteSummary modules fetched in a single call. Balance sheet and
// income statement history carry up to 4 annual statements.
const summaryModules = "price,summaryDetail,defaultKeyStatistics,financialData," +
	"balanceSheetHistory,incomeStatementHistory,cashflowStatementHistory"

// Client fetches company financials from the Yahoo Finance JSON API.
// All Yahoo calls in the system go through this client.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new Yahoo Finance client. Requests are rate
// limited client-side so that batch scans stay under the provider's
// tolerance.
func NewClient(cfg config.YahooConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient: httputil.New(log, cfg.Timeout).
			WithRetry(3, 500*time.Millisecond).
			WithRateLimit(cfg.RequestsPerSec, cfg.Burst),
		logger:  log.WithField("module", "yahoo"),
		baseURL: cfg.BaseURL,
	}
}

// Fetch retrieves a financial snapshot for one ticker. It implements
// contracts.Fetcher. Failures are categorized: unknown ticker,
// unreachable provider, or a response that cannot be parsed.
func (c *Client) Fetch(ctx context.Context, ticker string) (*contracts.FinancialData, error) {
	summary, err := c.fetchQuoteSummary(ctx, ticker)
	if err != nil {
		return nil, contracts.NewFetchError(ticker, err)
	}

	data, err := mapSummary(ticker, summary)
	if err != nil {
		return nil, contracts.NewFetchError(ticker, err)
	}

	// Dividend history is best-effort: a partial snapshot beats none.
	years, err := c.fetchDividendYears(ctx, ticker)
	if err != nil {
		c.logger.WithError(err).WithField("ticker", ticker).
			Warn("Dividend history unavailable, continuing without it")
	} else {
		data.DividendYears = years
	}

	data.FetchedAt = time.Now()

	c.logger.WithFields(map[string]interface{}{
		"ticker":        ticker,
		"company":       data.CompanyName,
		"history_years": data.HistoryYears(),
	}).Debug("Financial snapshot fetched")

	return data, nil
}

// fetchQuoteSummary calls the quoteSummary endpoint and returns the
// single result object.
func (c *Client) fetchQuoteSummary(ctx context.Context, ticker string) (*quoteSummaryResult, error) {
	endpoint := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s",
		c.baseURL, url.PathEscape(ticker), url.QueryEscape(summaryModules))

	resp, err := c.httpClient.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contracts.ErrProviderUnreachable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, contracts.ErrTickerNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: status %d", contracts.ErrProviderUnreachable, resp.StatusCode)
	}

	var envelope quoteSummaryEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", contracts.ErrMalformedResponse, err)
	}

	if envelope.QuoteSummary.Error != nil {
		// Yahoo reports unknown symbols inside the envelope too.
		if envelope.QuoteSummary.Error.Code == "Not Found" {
			return nil, contracts.ErrTickerNotFound
		}
		return nil, fmt.Errorf("%w: %s", contracts.ErrMalformedResponse,
			envelope.QuoteSummary.Error.Description)
	}

	if len(envelope.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("%w: empty result", contracts.ErrTickerNotFound)
	}

	return &envelope.QuoteSummary.Result[0], nil
}
