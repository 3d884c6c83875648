package tools

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

// resultText flattens the text content of a tool result.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil {
		t.Fatal("nil tool result")
	}
	var b strings.Builder
	for _, content := range result.Content {
		if textContent, ok := mcp.AsTextContent(content); ok {
			b.WriteString(textContent.Text)
		}
	}
	return b.String()
}

// recordedRequest is a snapshot of one upstream request, taken while the
// handler is still running so the body is readable.
type recordedRequest struct {
	Method string
	URL    *url.URL
	Header http.Header
	Body   []byte
}

// mockAPI stands in for the Management API. It records requests and plays a
// fixed status/body response.
type mockAPI struct {
	t        *testing.T
	server   *httptest.Server
	status   int
	body     string
	requests []recordedRequest
}

func newMockAPI(t *testing.T, status int, body string) *mockAPI {
	t.Helper()
	m := &mockAPI{t: t, status: status, body: body}
	m.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		m.requests = append(m.requests, recordedRequest{
			Method: r.Method,
			URL:    r.URL,
			Header: r.Header.Clone(),
			Body:   data,
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(m.status)
		_, _ = w.Write([]byte(m.body))
	}))
	t.Cleanup(m.server.Close)
	return m
}

func (m *mockAPI) config() Config {
	return Config{
		Domain:  "test-tenant.us.auth0.com",
		BaseURL: m.server.URL,
	}
}

func (m *mockAPI) requestCount() int {
	return len(m.requests)
}
