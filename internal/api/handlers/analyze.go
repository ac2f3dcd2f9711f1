package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/quantlab/graham/internal/batch"
	"github.com/quantlab/graham/internal/contracts"
	"github.com/quantlab/graham/internal/indices"
	"github.com/quantlab/graham/internal/narrative"
	"github.com/quantlab/graham/pkg/logger"
)

// Pipeline runs per-ticker analysis pipelines. Satisfied by
// batch.Runner.
type Pipeline interface {
	AnalyzeOne(ctx context.Context, ticker string, strategy contracts.Strategy, narrate bool) batch.TickerResult
	Run(ctx context.Context, tickers []string, strategy contracts.Strategy, narrate bool, progress func(batch.TickerResult)) []batch.TickerResult
}

// ContrarianSource produces the opposing-view narrations.
type ContrarianSource interface {
	Contrarian(ctx context.Context, result *contracts.AnalysisResult) narrative.ContrarianViews
}

// AnalysisHandler serves the analysis API endpoints.
type AnalysisHandler struct {
	pipeline   Pipeline
	contrarian ContrarianSource
	logger     *logger.Logger
}

// NewAnalysisHandler creates the analysis handler. The contrarian
// source may be nil when no narration backend is configured.
func NewAnalysisHandler(pipeline Pipeline, contrarian ContrarianSource, log *logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		pipeline:   pipeline,
		contrarian: contrarian,
		logger:     log,
	}
}

// AnalyzeResponse is the single-ticker analysis payload.
type AnalyzeResponse struct {
	Result     *contracts.AnalysisResult  `json:"result"`
	Narration  string                     `json:"narration,omitempty"`
	Contrarian *narrative.ContrarianViews `json:"contrarian,omitempty"`
}

// GetAnalyze evaluates a single ticker.
// GET /api/analyze/{ticker}?strategy=defensive&narrate=true&contrarian=false
func (h *AnalysisHandler) GetAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ticker := strings.ToUpper(strings.TrimSpace(mux.Vars(r)["ticker"]))
	if ticker == "" {
		respondError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	strategy, err := parseStrategyParam(r.URL.Query().Get("strategy"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	narrate := r.URL.Query().Get("narrate") == "true"

	res := h.pipeline.AnalyzeOne(ctx, ticker, strategy, narrate)
	if res.Err != nil {
		status := http.StatusBadGateway
		if errors.Is(res.Err, contracts.ErrTickerNotFound) {
			status = http.StatusNotFound
		}
		respondError(w, status, res.Err.Error())
		return
	}

	response := AnalyzeResponse{Result: res.Result, Narration: res.Narration}
	if r.URL.Query().Get("contrarian") == "true" && h.contrarian != nil {
		views := h.contrarian.Contrarian(ctx, res.Result)
		response.Contrarian = &views
	}

	respondJSON(w, http.StatusOK, response)
}

// ScanRequest selects a set of tickers, either explicitly or as a
// whole index.
type ScanRequest struct {
	Tickers  []string `json:"tickers,omitempty"`
	Index    string   `json:"index,omitempty"`
	Strategy string   `json:"strategy,omitempty"`
	Narrate  bool     `json:"narrate,omitempty"`
}

// ScanResponse is the batch result payload.
type ScanResponse struct {
	Results []batch.TickerResult `json:"results"`
	Report  string               `json:"report"`
}

// Scan evaluates a batch of tickers.
// POST /api/scan
func (h *AnalysisHandler) Scan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	tickers, strategy, err := resolveScan(&req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	results := h.pipeline.Run(ctx, tickers, strategy, req.Narrate, nil)
	respondJSON(w, http.StatusOK, ScanResponse{
		Results: results,
		Report:  batch.ComparisonReport(results),
	})
}

// IndexResponse describes one scannable index.
type IndexResponse struct {
	Key         string   `json:"key"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Count       int      `json:"count"`
	Tickers     []string `json:"tickers"`
}

// GetIndices lists the scannable indices.
// GET /api/indices
func (h *AnalysisHandler) GetIndices(w http.ResponseWriter, r *http.Request) {
	all := indices.All()
	out := make([]IndexResponse, 0, len(all))
	for _, idx := range all {
		out = append(out, IndexResponse{
			Key:         idx.Key,
			Name:        idx.Name,
			Description: idx.Description,
			Count:       idx.Count,
			Tickers:     idx.Tickers(),
		})
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"indices": out})
}

// resolveScan turns a scan request into a ticker list and strategy.
func resolveScan(req *ScanRequest) ([]string, contracts.Strategy, error) {
	strategy, err := parseStrategyParam(req.Strategy)
	if err != nil {
		return nil, "", err
	}

	var tickers []string
	switch {
	case req.Index != "":
		idx, err := indices.Lookup(req.Index)
		if err != nil {
			return nil, "", err
		}
		tickers = idx.Tickers()
	case len(req.Tickers) > 0:
		for _, t := range req.Tickers {
			t = strings.ToUpper(strings.TrimSpace(t))
			if t != "" {
				tickers = append(tickers, t)
			}
		}
	}

	if len(tickers) == 0 {
		return nil, "", errors.New("either tickers or index must be provided")
	}
	return tickers, strategy, nil
}

func parseStrategyParam(s string) (contracts.Strategy, error) {
	if s == "" {
		return contracts.StrategyDefensive, nil
	}
	return contracts.ParseStrategy(strings.ToLower(strings.TrimSpace(s)))
}
