package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

// defaultRequestTimeout bounds every Management API call. Cancellation is
// cooperative via the request context; the call site synthesizes a
// timeout-classified error when it fires.
const defaultRequestTimeout = 15 * time.Second

// apiResponse is the raw outcome of a Management API call.
type apiResponse struct {
	Status     int
	StatusText string
	Body       []byte
}

func (c Config) baseURL() string {
	if c.BaseURL != "" {
		return strings.TrimSuffix(c.BaseURL, "/")
	}
	return "https://" + c.Domain + "/api/v2"
}

func (c Config) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c Config) requestTimeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return defaultRequestTimeout
}

// callManagement issues a single HTTP request against the tenant's Management
// API. A non-nil error is a network-level failure; HTTP error statuses come
// back as a normal apiResponse for the caller to classify.
func callManagement(ctx context.Context, req Request, cfg Config, method, path string, query url.Values, body interface{}) (*apiResponse, error) {
	endpoint := cfg.baseURL() + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	callCtx, cancel := context.WithTimeout(ctx, cfg.requestTimeout())
	defer cancel()

	httpReq, err := http.NewRequestWithContext(callCtx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	cfg.Logger.Debug("%s %s", method, endpoint)

	resp, err := cfg.httpClient().Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return &apiResponse{
		Status:     resp.StatusCode,
		StatusText: http.StatusText(resp.StatusCode),
		Body:       data,
	}, nil
}

// requireDomain refuses to build a request without a tenant domain. This is a
// configuration error, distinct from input validation.
func requireDomain(cfg Config) *mcp.CallToolResult {
	if cfg.Domain != "" || cfg.BaseURL != "" {
		return nil
	}
	return mcp.NewToolResultError("Auth0 domain is not configured. Set AUTH0_DOMAIN or log in with the auth0 CLI.")
}
