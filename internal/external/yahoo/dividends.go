package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// fetchDividendYears pulls three decades of dividend events from the
// chart endpoint and counts the unbroken run of paying years ending at
// the present. A streak that stopped before last year counts as zero:
// the record is interrupted.
func (c *Client) fetchDividendYears(ctx context.Context, ticker string) (int, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?range=30y&interval=1mo&events=div",
		c.baseURL, url.PathEscape(ticker))

	resp, err := c.httpClient.Get(ctx, endpoint)
	if err != nil {
		return 0, fmt.Errorf("chart request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("chart request: status %d", resp.StatusCode)
	}

	var envelope chartEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return 0, fmt.Errorf("decode chart response: %w", err)
	}

	if envelope.Chart.Error != nil {
		return 0, fmt.Errorf("chart response: %s", envelope.Chart.Error.Description)
	}
	if len(envelope.Chart.Result) == 0 {
		return 0, nil
	}

	years := make(map[int]bool)
	for _, div := range envelope.Chart.Result[0].Events.Dividends {
		if div.Amount > 0 {
			years[time.Unix(div.Date, 0).UTC().Year()] = true
		}
	}

	return consecutiveDividendYears(years, time.Now().UTC().Year()), nil
}

// consecutiveDividendYears counts the streak of paying years ending at
// the current or previous year. The current year not having paid yet
// does not break the streak.
func consecutiveDividendYears(paid map[int]bool, currentYear int) int {
	start := currentYear
	if !paid[start] {
		start = currentYear - 1
	}
	if !paid[start] {
		return 0
	}

	count := 0
	for year := start; paid[year]; year-- {
		count++
	}
	return count
}
