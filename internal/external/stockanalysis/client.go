package stockanalysis

import (
	"time"

	"github.com/quantlab/graham/pkg/httputil"
	"github.com/quantlab/graham/pkg/logger"
)

// Client scrapes stockanalysis.com as a fallback source for fields the
// JSON provider omits, currently the dividend payment record and the
// company profile. Everything it recovers is best-effort.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new stockanalysis.com scrape client.
func NewClient(log *logger.Logger) *Client {
	return &Client{
		httpClient: httputil.New(log, 15*time.Second).
			WithRetry(2, 1*time.Second).
			WithRateLimit(1, 2),
		logger:  log.WithField("module", "stockanalysis"),
		baseURL: "https://stockanalysis.com",
	}
}
