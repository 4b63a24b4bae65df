package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/takeshy/reshape/internal/mcp"
)

var (
	mcpTransport string
	mcpPort      int
	mcpAPIKey    string
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for AI assistant integration",
	Long: `Start a Model Context Protocol (MCP) server that exposes reshape
functionality to AI assistants like Claude Desktop, Cline, etc.

Tools: scan_folder, preview_rename, execute_rename, get_metadata,
list_patterns, add_pattern, remove_pattern.

Transport options:
  stdio: Standard input/output (default, for local CLI integration)
  sse:   Server-Sent Events over HTTP (for remote connections, requires API key)
  http:  Streamable HTTP (for bidirectional HTTP communication, requires API key)

Examples:
  # Start stdio server (for Claude Desktop config)
  reshape mcp

  # Start HTTP/SSE server on port 8080 (API key required)
  reshape mcp --transport sse --port 8080 --serve-api-key mysecretkey

  # Or use environment variable for API key
  export RESHAPE_SERVE_API_KEY=mysecretkey
  reshape mcp --transport http --port 8080

Claude Desktop Configuration (~/.config/claude/claude_desktop_config.json):
  {
    "mcpServers": {
      "reshape": {
        "command": "/path/to/reshape",
        "args": ["mcp"]
      }
    }
  }`,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpTransport, "transport", "stdio", "Transport type: stdio, sse, or http")
	mcpCmd.Flags().IntVar(&mcpPort, "port", 8080, "Port for HTTP/SSE server")
	mcpCmd.Flags().StringVar(&mcpAPIKey, "serve-api-key", "", "API key for HTTP authentication (or RESHAPE_SERVE_API_KEY env var)")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	server := mcpserver.NewServer(svc, Version)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	switch mcpTransport {
	case "stdio":
		go func() {
			<-sigChan
			cancel()
		}()
		fmt.Fprintln(os.Stderr, "Starting MCP server on stdio...")
		return server.RunStdio(ctx)

	case "sse":
		return runHTTPServerWithShutdown(server.NewHTTPHandler(), "SSE", sigChan)

	case "http":
		return runHTTPServerWithShutdown(server.NewStreamableHTTPHandler(), "HTTP", sigChan)

	default:
		return fmt.Errorf("unknown transport: %s (must be stdio, sse, or http)", mcpTransport)
	}
}

func runHTTPServerWithShutdown(handler http.Handler, transportName string, sigChan chan os.Signal) error {
	httpAPIKey := mcpAPIKey
	if httpAPIKey == "" {
		httpAPIKey = os.Getenv("RESHAPE_SERVE_API_KEY")
	}

	// Require API key for HTTP server
	if httpAPIKey == "" {
		return fmt.Errorf("API key required for HTTP server. Use --serve-api-key or set RESHAPE_SERVE_API_KEY environment variable")
	}

	handler = mcpserver.APIKeyMiddleware(httpAPIKey, handler)

	addr := fmt.Sprintf(":%d", mcpPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown on signal
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	fmt.Fprintf(os.Stderr, "Starting MCP %s server on http://localhost%s (API key authentication enabled)\n", transportName, addr)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}
