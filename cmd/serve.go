package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/takeshy/reshape/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP JSON API",
	Long: `Start an HTTP server exposing scan, preview, rename and pattern
management as a JSON API, plus /healthz and Prometheus /metrics.

Endpoints:
  POST /api/scan              {folderPath, extensions}
  POST /api/preview           {folderPath, extensions, pattern, vacationMode}
  POST /api/rename            {items, baseFolderPath, dryRun}
  GET  /api/patterns
  POST /api/patterns/add      {pattern, description}
  POST /api/patterns/remove   {pattern}
  GET  /api/metadata/<path>   URL-escaped file path

Examples:
  reshape serve
  reshape serve --addr 127.0.0.1:8080`,
	RunE: runServe,
}

func init() {
	defaultAddr := ":5000"
	if envAddr := os.Getenv("RESHAPE_ADDR"); envAddr != "" {
		defaultAddr = envAddr
	}
	serveCmd.Flags().StringVar(&serveAddr, "addr", defaultAddr, "Listen address (or set RESHAPE_ADDR env var)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "Starting reshape API on %s\n", serveAddr)
	if err := server.New(svc, Version).Start(ctx, serveAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
