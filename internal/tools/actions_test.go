package tools

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestListActionsTriggerFilter(t *testing.T) {
	api := newMockAPI(t, http.StatusOK, `{"actions": [{"id": "act_1", "name": "Enrich", "status": "built"}], "total": 1}`)

	result := listActions(context.Background(),
		Request{Token: "tok", Parameters: map[string]interface{}{"trigger_id": "post-login"}},
		api.config())

	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}
	if got := api.requests[0].URL.Query().Get("triggerId"); got != "post-login" {
		t.Errorf("expected trigger filter in query, got %q", got)
	}
}

func TestGetActionIncludesCode(t *testing.T) {
	api := newMockAPI(t, http.StatusOK, `{
		"id": "act_1", "name": "Enrich", "status": "built",
		"code": "exports.onExecutePostLogin = async () => {};"
	}`)

	result := getAction(context.Background(),
		Request{Token: "tok", Parameters: map[string]interface{}{"id": "act_1"}},
		api.config())

	text := resultText(t, result)
	if !strings.Contains(text, "```javascript") {
		t.Errorf("expected fenced code block, got:\n%s", text)
	}
	if !strings.Contains(text, "onExecutePostLogin") {
		t.Errorf("expected action code, got:\n%s", text)
	}
}

func TestCreateActionRequiredParams(t *testing.T) {
	api := newMockAPI(t, http.StatusCreated, `{}`)

	result := createAction(context.Background(),
		Request{Token: "tok", Parameters: map[string]interface{}{"name": "X", "trigger_id": "post-login"}},
		api.config())

	if !result.IsError {
		t.Fatal("expected error result for missing code")
	}
	if !strings.Contains(resultText(t, result), "code is required") {
		t.Errorf("expected missing-field message, got: %s", resultText(t, result))
	}
	if api.requestCount() != 0 {
		t.Errorf("expected no HTTP call, got %d", api.requestCount())
	}
}

func TestCreateActionBuildsSupportedTriggers(t *testing.T) {
	api := newMockAPI(t, http.StatusCreated, `{"id": "act_9", "name": "New", "status": "pending"}`)

	result := createAction(context.Background(),
		Request{Token: "tok", Parameters: map[string]interface{}{
			"name":       "New",
			"trigger_id": "post-login",
			"code":       "exports.onExecutePostLogin = async () => {};",
		}},
		api.config())

	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(api.requests[0].Body, &payload); err != nil {
		t.Fatalf("request body not JSON: %v", err)
	}
	triggers, ok := payload["supported_triggers"].([]interface{})
	if !ok || len(triggers) != 1 {
		t.Fatalf("expected one supported trigger, got %v", payload["supported_triggers"])
	}
	if payload["runtime"] != "node18" {
		t.Errorf("expected default runtime node18, got %v", payload["runtime"])
	}
}

func TestUpdateActionBestEffortSecrets(t *testing.T) {
	var requestBodies []map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		var payload map[string]interface{}
		_ = json.Unmarshal(data, &payload)
		requestBodies = append(requestBodies, payload)

		w.Header().Set("Content-Type", "application/json")
		if _, isSecrets := payload["secrets"]; isSecrets {
			// Secret sub-update fails; the primary update must stand.
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message": "secret value invalid"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id": "act_1", "name": "Renamed", "status": "built"}`))
	}))
	defer server.Close()

	cfg := Config{Domain: "test-tenant.us.auth0.com", BaseURL: server.URL}
	result := updateAction(context.Background(),
		Request{Token: "tok", Parameters: map[string]interface{}{
			"id":      "act_1",
			"name":    "Renamed",
			"secrets": []interface{}{map[string]interface{}{"name": "API_KEY", "value": "shh"}},
		}},
		cfg)

	if result.IsError {
		t.Fatalf("expected best-effort success, got error: %s", resultText(t, result))
	}
	text := resultText(t, result)
	if !strings.Contains(text, "Renamed") {
		t.Errorf("expected primary update result, got:\n%s", text)
	}
	if !strings.Contains(text, "Warning") || !strings.Contains(text, "secrets") {
		t.Errorf("expected secrets failure warning, got:\n%s", text)
	}
	if len(requestBodies) != 2 {
		t.Errorf("expected primary + secrets requests, got %d", len(requestBodies))
	}
}

func TestUpdateActionNoFields(t *testing.T) {
	api := newMockAPI(t, http.StatusOK, `{}`)

	result := updateAction(context.Background(),
		Request{Token: "tok", Parameters: map[string]interface{}{"id": "act_1"}},
		api.config())

	if !result.IsError {
		t.Fatal("expected error result for empty update")
	}
	if api.requestCount() != 0 {
		t.Errorf("expected no HTTP call, got %d", api.requestCount())
	}
}

func TestDeployAction(t *testing.T) {
	api := newMockAPI(t, http.StatusOK, `{"id": "act_1"}`)

	result := deployAction(context.Background(),
		Request{Token: "tok", Parameters: map[string]interface{}{"id": "act_1"}},
		api.config())

	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}
	if !strings.Contains(resultText(t, result), "deployed") {
		t.Errorf("expected deploy confirmation, got: %s", resultText(t, result))
	}
	if api.requests[0].Method != http.MethodPost {
		t.Errorf("expected POST, got %s", api.requests[0].Method)
	}
	if !strings.HasSuffix(api.requests[0].URL.Path, "/actions/actions/act_1/deploy") {
		t.Errorf("unexpected path %s", api.requests[0].URL.Path)
	}
}
