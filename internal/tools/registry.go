// Package tools defines the Auth0 MCP tool catalog and the handlers that
// translate tool calls into Management API requests.
package tools

import (
	"context"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/bharath31/auth0-mcp-server/internal/logging"
)

// Request carries the bearer token and caller-supplied parameters into a
// handler invocation.
type Request struct {
	Token      string
	Parameters map[string]interface{}
}

// Config carries per-dispatch configuration into a handler. Domain is the
// fully-qualified tenant host; BaseURL and HTTPClient exist so tests can point
// handlers at a mock upstream.
type Config struct {
	Domain     string
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
	Logger     *logging.Logger
}

// HandlerFunc executes one tool call. Every code path returns a well-formed
// result; handlers never surface Go errors to the protocol layer.
type HandlerFunc func(ctx context.Context, req Request, cfg Config) *mcp.CallToolResult

// Tool pairs an MCP tool definition with its handler.
type Tool struct {
	Definition mcp.Tool
	Handler    HandlerFunc
}

// All returns the static tool catalog: the concatenation of the per-family
// tool lists. Definitions are immutable for the life of the process.
func All() []Tool {
	var catalog []Tool
	catalog = append(catalog, applicationTools()...)
	catalog = append(catalog, resourceServerTools()...)
	catalog = append(catalog, actionTools()...)
	catalog = append(catalog, logTools()...)
	catalog = append(catalog, formTools()...)
	return catalog
}

// HandlersByName builds the name-keyed dispatch table from the catalog.
func HandlersByName() map[string]HandlerFunc {
	catalog := All()
	handlers := make(map[string]HandlerFunc, len(catalog))
	for _, tool := range catalog {
		handlers[tool.Definition.Name] = tool.Handler
	}
	return handlers
}
