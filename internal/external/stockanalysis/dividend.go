package stockanalysis

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/quantlab/graham/internal/contracts"
)

var yearRe = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// Enrich fills gaps in a snapshot from scraped pages: the dividend
// payment streak when the JSON provider reported none, and the company
// name when it was blank. Scrape failures leave the snapshot untouched.
func (c *Client) Enrich(ctx context.Context, data *contracts.FinancialData) {
	if data.DividendYears == 0 {
		years, err := c.FetchDividendYears(ctx, data.Ticker)
		if err != nil {
			c.logger.WithError(err).WithField("ticker", data.Ticker).
				Debug("Dividend fallback scrape failed")
		} else if years > 0 {
			data.DividendYears = years
		}
	}

	if data.CompanyName == "" || data.CompanyName == data.Ticker {
		name, err := c.FetchCompanyName(ctx, data.Ticker)
		if err != nil {
			c.logger.WithError(err).WithField("ticker", data.Ticker).
				Debug("Profile fallback scrape failed")
		} else if name != "" {
			data.CompanyName = name
		}
	}
}

// FetchDividendYears scrapes the dividend history page and counts the
// unbroken run of paying years ending at the present.
func (c *Client) FetchDividendYears(ctx context.Context, ticker string) (int, error) {
	url := fmt.Sprintf("%s/stocks/%s/dividend/", c.baseURL, strings.ToLower(ticker))

	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return 0, fmt.Errorf("dividend page request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("dividend page: status %d", resp.StatusCode)
	}

	paid, err := parseDividendYears(resp.Body)
	if err != nil {
		return 0, err
	}

	streak := consecutiveYears(paid, time.Now().UTC().Year())

	c.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"streak": streak,
	}).Debug("Scraped dividend history")

	return streak, nil
}

// FetchCompanyName scrapes the company profile page heading.
func (c *Client) FetchCompanyName(ctx context.Context, ticker string) (string, error) {
	url := fmt.Sprintf("%s/stocks/%s/", c.baseURL, strings.ToLower(ticker))

	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return "", fmt.Errorf("profile page request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("profile page: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse profile page: %w", err)
	}

	heading := strings.TrimSpace(doc.Find("h1").First().Text())
	// Headings look like "Apple Inc. (AAPL)" - strip the symbol suffix.
	if idx := strings.LastIndex(heading, " ("); idx > 0 {
		heading = heading[:idx]
	}
	return heading, nil
}

// parseDividendYears extracts the set of years with at least one
// payment from the dividend history table.
func parseDividendYears(r io.Reader) (map[int]bool, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse dividend page: %w", err)
	}

	paid := make(map[int]bool)
	doc.Find("table tbody tr").Each(func(i int, row *goquery.Selection) {
		dateText := strings.TrimSpace(row.Find("td").First().Text())
		match := yearRe.FindString(dateText)
		if match == "" {
			return
		}
		year, err := strconv.Atoi(match)
		if err != nil {
			return
		}
		paid[year] = true
	})

	return paid, nil
}

// consecutiveYears counts the streak of paying years ending at the
// current or previous year.
func consecutiveYears(paid map[int]bool, currentYear int) int {
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
