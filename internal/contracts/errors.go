package contracts

import (
	"errors"
	"fmt"
)

// Fetch failure categories. A fetch failure aborts that ticker's
// pipeline; it never aborts a batch.
var (
	ErrTickerNotFound      = errors.New("ticker not found")
	ErrProviderUnreachable = errors.New("provider unreachable")
	ErrMalformedResponse   = errors.New("malformed provider response")
)

// FetchError wraps a data-provider failure for one ticker.
type FetchError struct {
	Ticker string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Ticker, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError builds a FetchError around one of the category errors.
func NewFetchError(ticker string, err error) *FetchError {
	return &FetchError{Ticker: ticker, Err: err}
}

// NarrationError wraps an LLM failure. Narration is best-effort: the
// caller degrades to the fallback verdict, never drops the numeric
// result.
type NarrationError struct {
	Provider string
	Err      error
}

func (e *NarrationError) Error() string {
	return fmt.Sprintf("narration via %s: %v", e.Provider, e.Err)
}

func (e *NarrationError) Unwrap() error {
	return e.Err
}
