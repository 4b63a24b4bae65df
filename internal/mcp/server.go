package mcp

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/takeshy/reshape/internal/service"
)

// Server wraps the MCP server with reshape-specific functionality
type Server struct {
	mcpServer *mcp.Server
	svc       *service.Service
}

// NewServer creates a new MCP server for reshape
func NewServer(svc *service.Service, version string) *Server {
	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "reshape",
		Version: version,
	}, nil)

	s := &Server{
		mcpServer: mcpServer,
		svc:       svc,
	}

	// Register all tools
	s.registerTools()

	return s
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "scan_folder",
		Description: "List the files of a folder with the metadata available for rename patterns. Optionally filter by extension.",
	}, s.handleScanFolder)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "preview_rename",
		Description: "Plan a batch rename of a folder from a pattern such as '{year}-{month}-{day}_{filename}'. Nothing is changed on disk. Set vacation_mode to group photos into day folders by capture date.",
	}, s.handlePreviewRename)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "execute_rename",
		Description: "Plan and apply a batch rename of a folder. Conflicting and unchanged files are skipped. Use dry_run to check the outcome first.",
	}, s.handleExecuteRename)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_metadata",
		Description: "Show the placeholder values extracted from a single file (dates, camera, dimensions, GPS).",
	}, s.handleGetMetadata)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_patterns",
		Description: "List the built-in and saved rename patterns.",
	}, s.handleListPatterns)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_pattern",
		Description: "Save a custom rename pattern.",
	}, s.handleAddPattern)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "remove_pattern",
		Description: "Remove a saved rename pattern.",
	}, s.handleRemovePattern)
}

// RunStdio runs the server using stdio transport
func (s *Server) RunStdio(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// NewHTTPHandler creates an HTTP handler for SSE transport
func (s *Server) NewHTTPHandler() http.Handler {
	return mcp.NewSSEHandler(func(req *http.Request) *mcp.Server {
		return s.mcpServer
	}, nil)
}

// NewStreamableHTTPHandler creates a streamable HTTP handler
func (s *Server) NewStreamableHTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(req *http.Request) *mcp.Server {
		return s.mcpServer
	}, nil)
}
