package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/quantlab/graham/internal/api"
	"github.com/quantlab/graham/internal/api/handlers"
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the HTTP API server",
	Long: `Serves the analysis pipeline over HTTP.

Endpoints:
  GET  /health                  - Health check
  GET  /api/analyze/{ticker}    - Single ticker analysis
  POST /api/scan                - Batch / index scan
  GET  /api/scan/ws             - Scan with streamed progress (WebSocket)
  GET  /api/indices             - Scannable index lists

Example:
  graham api --port 8087`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "listen port (default from PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	if apiPort != "" {
		a.cfg.Port = apiPort
	}

	handler := handlers.NewAnalysisHandler(a.runner, a.narrator, a.log)
	router := api.NewRouter(handler, a.log)
	server := api.New(a.cfg, a.log, router)

	go func() {
		if err := server.Start(); err != nil {
			a.log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("✅ Server running on http://localhost:%s\n", a.cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}
