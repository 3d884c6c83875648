// Package server binds the tool catalog and request dispatcher to the MCP
// stdio transport.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/bharath31/auth0-mcp-server/internal/auth0"
	"github.com/bharath31/auth0-mcp-server/internal/logging"
	"github.com/bharath31/auth0-mcp-server/internal/tools"
)

// Dispatcher routes tool calls by name, injecting freshly resolved
// credentials into each handler invocation.
type Dispatcher struct {
	resolver *auth0.Resolver
	handlers map[string]tools.HandlerFunc
	logger   *logging.Logger

	httpClient     *http.Client
	baseURL        string
	requestTimeout time.Duration
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithHTTPClient replaces the HTTP client used by handlers, for tests.
func WithHTTPClient(client *http.Client) DispatcherOption {
	return func(d *Dispatcher) { d.httpClient = client }
}

// WithBaseURL points handlers at an alternative Management API base URL.
func WithBaseURL(baseURL string) DispatcherOption {
	return func(d *Dispatcher) { d.baseURL = baseURL }
}

// WithRequestTimeout overrides the per-call HTTP timeout.
func WithRequestTimeout(timeout time.Duration) DispatcherOption {
	return func(d *Dispatcher) { d.requestTimeout = timeout }
}

// NewDispatcher builds the name-keyed dispatch table from the static catalog.
func NewDispatcher(resolver *auth0.Resolver, logger *logging.Logger, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		resolver: resolver,
		handlers: tools.HandlersByName(),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch executes one tool call. Every code path terminates in a
// well-formed result: an unknown tool, a credential failure or a handler
// error must never tear down the stdio transport, so nothing here returns a
// Go error to the protocol layer.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, params map[string]interface{}) *mcp.CallToolResult {
	handler, ok := d.handlers[name]
	if !ok {
		d.logger.Warning("call for unknown tool %q", name)
		return mcp.NewToolResultError(fmt.Sprintf("unknown tool: %s", name))
	}

	cred, err := d.resolver.Resolve(ctx, false)
	if err == nil && !cred.Valid() {
		d.logger.Debug("resolved credential invalid, forcing refresh")
		cred, err = d.resolver.Resolve(ctx, true)
	}
	if err != nil {
		d.logger.Error("credential resolution failed: %v", err)
		return mcp.NewToolResultError(fmt.Sprintf("Failed to resolve Auth0 credentials: %v", err))
	}

	d.logger.Debug("dispatching %s for tenant %s", name, cred.Domain)
	return handler(ctx,
		tools.Request{Token: cred.Token, Parameters: params},
		tools.Config{
			Domain:     cred.Domain,
			BaseURL:    d.baseURL,
			HTTPClient: d.httpClient,
			Timeout:    d.requestTimeout,
			Logger:     d.logger,
		})
}
