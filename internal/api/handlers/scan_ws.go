package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/quantlab/graham/internal/batch"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The API is served without an origin allowlist; browsers hitting
	// it from a local dashboard are expected.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ScanEvent is one message on the scan progress stream.
type ScanEvent struct {
	Type      string              `json:"type"` // progress, done or error
	Completed int                 `json:"completed,omitempty"`
	Total     int                 `json:"total,omitempty"`
	Result    *batch.TickerResult `json:"result,omitempty"`
	Report    string              `json:"report,omitempty"`
	Error     string              `json:"error,omitempty"`
}

// ScanWS streams per-ticker progress while a scan runs. The client
// sends one ScanRequest after connecting, then receives a progress
// event per completed ticker and a final done event with the report.
// GET /api/scan/ws
func (h *AnalysisHandler) ScanWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	var req ScanRequest
	if err := conn.ReadJSON(&req); err != nil {
		conn.WriteJSON(ScanEvent{Type: "error", Error: "invalid scan request: " + err.Error()})
		return
	}

	tickers, strategy, err := resolveScan(&req)
	if err != nil {
		conn.WriteJSON(ScanEvent{Type: "error", Error: err.Error()})
		return
	}

	total := len(tickers)
	completed := 0

	// The progress callback runs on the collecting goroutine, so the
	// connection has a single writer until Run returns.
	results := h.pipeline.Run(r.Context(), tickers, strategy, req.Narrate, func(res batch.TickerResult) {
		completed++
		if err := conn.WriteJSON(ScanEvent{
			Type:      "progress",
			Completed: completed,
			Total:     total,
			Result:    &res,
		}); err != nil {
			h.logger.WithError(err).Debug("Scan progress write failed")
		}
	})

	conn.WriteJSON(ScanEvent{
		Type:   "done",
		Total:  total,
		Report: batch.ComparisonReport(results),
	})
}
