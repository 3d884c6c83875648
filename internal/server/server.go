package server

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bharath31/auth0-mcp-server/internal/logging"
	"github.com/bharath31/auth0-mcp-server/internal/tools"
)

const serverName = "auth0-mcp-server"

// Server exposes the Auth0 tool catalog over the MCP stdio transport.
type Server struct {
	mcpServer  *server.MCPServer
	dispatcher *Dispatcher
	logger     *logging.Logger
}

// New creates the MCP server and registers every catalog tool against the
// dispatcher. WithRecovery keeps a handler panic from killing the transport.
func New(dispatcher *Dispatcher, version string, logger *logging.Logger) *Server {
	mcpServer := server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	for _, tool := range tools.All() {
		name := tool.Definition.Name
		mcpServer.AddTool(tool.Definition, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})
			return dispatcher.Dispatch(ctx, name, args), nil
		})
	}

	return &Server{
		mcpServer:  mcpServer,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// ServeStdio runs the server over stdin/stdout until the client disconnects.
// Stdout carries only protocol frames; all logging goes to stderr.
func (s *Server) ServeStdio() error {
	s.logger.Info("Starting %s (stdio transport)...", serverName)
	return server.ServeStdio(s.mcpServer)
}
