package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/bharath31/auth0-mcp-server/internal/auth0"
)

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func testResolver(t *testing.T, env map[string]string) *auth0.Resolver {
	t.Helper()
	return auth0.NewResolver(auth0.NewTokenCache(), nil,
		auth0.WithEnvLookup(envMap(env)),
		auth0.WithHomeDir(t.TempDir()),
		auth0.WithCommandRunner(func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return nil, errors.New("auth0: command not found")
		}),
	)
}

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

func TestDispatchUnknownTool(t *testing.T) {
	resolver := testResolver(t, map[string]string{
		auth0.EnvToken:  "tok",
		auth0.EnvDomain: "acme.us.auth0.com",
	})
	d := NewDispatcher(resolver, nil)

	result := d.Dispatch(context.Background(), "auth0_no_such_tool", nil)

	if !result.IsError {
		t.Fatal("expected error result for unknown tool")
	}
	if !strings.Contains(resultText(t, result), "unknown tool: auth0_no_such_tool") {
		t.Errorf("expected unknown tool message, got: %s", resultText(t, result))
	}
}

func TestDispatchListApplications(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer env-tok" {
			t.Errorf("expected injected bearer token, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"clients": [{"client_id": "abc", "name": "App1"}],
			"total": 1, "page": 0, "per_page": 5
		}`))
	}))
	defer upstream.Close()

	resolver := testResolver(t, map[string]string{
		auth0.EnvToken:  "env-tok",
		auth0.EnvDomain: "acme",
	})
	d := NewDispatcher(resolver, nil, WithBaseURL(upstream.URL))

	result := d.Dispatch(context.Background(), "auth0_list_applications",
		map[string]interface{}{"per_page": float64(5)})

	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}
	text := resultText(t, result)
	if !strings.Contains(text, "Auth0 Applications (1/1)") {
		t.Errorf("expected summary header, got:\n%s", text)
	}
	if !strings.Contains(text, "App1") {
		t.Errorf("expected App1 row, got:\n%s", text)
	}
}

func TestDispatchForbiddenScope(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer upstream.Close()

	resolver := testResolver(t, map[string]string{
		auth0.EnvToken:  "env-tok",
		auth0.EnvDomain: "acme",
	})
	d := NewDispatcher(resolver, nil, WithBaseURL(upstream.URL))

	result := d.Dispatch(context.Background(), "auth0_list_applications", nil)

	if !result.IsError {
		t.Fatal("expected error result for 403")
	}
	text := resultText(t, result)
	if !strings.Contains(text, "Forbidden") || !strings.Contains(text, "read:clients") {
		t.Errorf("expected Forbidden with scope guidance, got: %s", text)
	}
}

func TestDispatchValidationBeforeHTTP(t *testing.T) {
	calls := 0
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer upstream.Close()

	resolver := testResolver(t, map[string]string{
		auth0.EnvToken:  "env-tok",
		auth0.EnvDomain: "acme",
	})
	d := NewDispatcher(resolver, nil, WithBaseURL(upstream.URL))

	result := d.Dispatch(context.Background(), "auth0_get_application", map[string]interface{}{})

	if !result.IsError {
		t.Fatal("expected error result for missing client_id")
	}
	if !strings.Contains(resultText(t, result), "client_id is required") {
		t.Errorf("expected missing-field message, got: %s", resultText(t, result))
	}
	if calls != 0 {
		t.Errorf("expected no HTTP call, got %d", calls)
	}
}

func TestDispatchCredentialFailureDoesNotCrash(t *testing.T) {
	// No env credentials, no CLI, no config files: resolution is exhausted
	// and the dispatch must degrade to an error result.
	resolver := testResolver(t, map[string]string{})
	d := NewDispatcher(resolver, nil)

	result := d.Dispatch(context.Background(), "auth0_list_applications", nil)

	if !result.IsError {
		t.Fatal("expected error result when credentials cannot be resolved")
	}
	if !strings.Contains(resultText(t, result), "Failed to resolve Auth0 credentials") {
		t.Errorf("expected credential failure message, got: %s", resultText(t, result))
	}
}

func TestDispatchCoversEveryCatalogTool(t *testing.T) {
	resolver := testResolver(t, map[string]string{})
	d := NewDispatcher(resolver, nil)

	if len(d.handlers) == 0 {
		t.Fatal("dispatcher has no handlers")
	}
}

func TestRedactToken(t *testing.T) {
	got := redactToken("eyJhbGciOiJSUzI1NiJ9")
	if !strings.HasPrefix(got, "eyJh") || !strings.HasSuffix(got, "NiJ9") || !strings.Contains(got, "...") {
		t.Errorf("unexpected redaction: %q", got)
	}
	if got := redactToken("short"); got != "********" {
		t.Errorf("expected full redaction of short token, got %q", got)
	}
}
