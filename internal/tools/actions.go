package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// actionTools returns the tool definitions for the actions family.
func actionTools() []Tool {
	return []Tool{
		{
			Definition: mcp.NewTool("auth0_list_actions",
				mcp.WithDescription("List actions in the Auth0 tenant"),
				mcp.WithNumber("page",
					mcp.Description("Page number, zero-based"),
				),
				mcp.WithNumber("per_page",
					mcp.Description("Number of actions per page (default 10)"),
				),
				mcp.WithString("trigger_id",
					mcp.Description("Filter by trigger, e.g. post-login"),
				),
			),
			Handler: listActions,
		},
		{
			Definition: mcp.NewTool("auth0_get_action",
				mcp.WithDescription("Get the details of a single action by ID"),
				mcp.WithString("id",
					mcp.Required(),
					mcp.Description("ID of the action"),
				),
			),
			Handler: getAction,
		},
		{
			Definition: mcp.NewTool("auth0_create_action",
				mcp.WithDescription("Create a new action"),
				mcp.WithString("name",
					mcp.Required(),
					mcp.Description("Name of the action"),
				),
				mcp.WithString("trigger_id",
					mcp.Required(),
					mcp.Description("Trigger the action runs on, e.g. post-login"),
				),
				mcp.WithString("code",
					mcp.Required(),
					mcp.Description("JavaScript source code of the action"),
				),
				mcp.WithString("runtime",
					mcp.Description("Runtime, e.g. node18 (default node18)"),
				),
			),
			Handler: createAction,
		},
		{
			Definition: mcp.NewTool("auth0_update_action",
				mcp.WithDescription("Update an existing action; secrets and dependencies are updated best-effort after the primary update"),
				mcp.WithString("id",
					mcp.Required(),
					mcp.Description("ID of the action to update"),
				),
				mcp.WithString("name",
					mcp.Description("New name"),
				),
				mcp.WithString("code",
					mcp.Description("New JavaScript source code"),
				),
				mcp.WithObject("secrets",
					mcp.Description("Secrets to set (array of {name, value})"),
				),
				mcp.WithObject("dependencies",
					mcp.Description("npm dependencies to set (array of {name, version})"),
				),
			),
			Handler: updateAction,
		},
		{
			Definition: mcp.NewTool("auth0_deploy_action",
				mcp.WithDescription("Deploy an action so the latest version runs on its trigger"),
				mcp.WithString("id",
					mcp.Required(),
					mcp.Description("ID of the action to deploy"),
				),
			),
			Handler: deployAction,
		},
	}
}

var actionDetailFields = [][2]string{
	{"Name", "name"},
	{"ID", "id"},
	{"Status", "status"},
	{"Runtime", "runtime"},
}

func listActions(ctx context.Context, req Request, cfg Config) *mcp.CallToolResult {
	if res := requireDomain(cfg); res != nil {
		return res
	}

	query := paginationQuery(req.Parameters)
	if trigger, ok := stringParam(req.Parameters, "trigger_id"); ok {
		query.Set("triggerId", trigger)
	}

	resp, err := callManagement(ctx, req, cfg, http.MethodGet, "/actions/actions", query, nil)
	if err != nil {
		return networkErrorResult(err, cfg.Domain)
	}
	if resp.Status != http.StatusOK {
		return apiErrorResult(resp, "Actions", "read:actions", "")
	}

	page, parseErr := parseListPage(resp.Body, "actions")
	if parseErr != nil {
		return mcp.NewToolResultError("Unexpected response format from the Auth0 API when listing actions.")
	}
	if len(page.Items) == 0 {
		return mcp.NewToolResultText("No actions found for this tenant.")
	}

	text := listResultText("Actions", "auth0_list_actions", page,
		[]string{"Name", "Status", "Runtime"},
		func(item map[string]interface{}) []string {
			return []string{
				stringField(item, "name"),
				stringField(item, "status"),
				stringField(item, "runtime"),
			}
		},
		"name", "id")
	return mcp.NewToolResultText(text)
}

func getAction(ctx context.Context, req Request, cfg Config) *mcp.CallToolResult {
	if res := requireDomain(cfg); res != nil {
		return res
	}
	id, res := requireString(req.Parameters, "id")
	if res != nil {
		return res
	}

	resp, err := callManagement(ctx, req, cfg, http.MethodGet, "/actions/actions/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return networkErrorResult(err, cfg.Domain)
	}
	if resp.Status != http.StatusOK {
		return apiErrorResult(resp, "Action", "read:actions", id)
	}

	action, parseErr := parseObject(resp.Body)
	if parseErr != nil {
		return mcp.NewToolResultError("Unexpected response format from the Auth0 API for this action.")
	}

	var b strings.Builder
	title := fmt.Sprintf("Auth0 Action: %s", stringField(action, "name"))
	b.WriteString(detailText(title, action, actionDetailFields))
	if code := stringField(action, "code"); code != "" {
		fmt.Fprintf(&b, "\n**Code:**\n```javascript\n%s\n```\n", code)
	}
	return mcp.NewToolResultText(b.String())
}

func createAction(ctx context.Context, req Request, cfg Config) *mcp.CallToolResult {
	if res := requireDomain(cfg); res != nil {
		return res
	}
	if _, res := requireString(req.Parameters, "name"); res != nil {
		return res
	}
	trigger, res := requireString(req.Parameters, "trigger_id")
	if res != nil {
		return res
	}
	if _, res := requireString(req.Parameters, "code"); res != nil {
		return res
	}

	runtime := "node18"
	if rt, ok := stringParam(req.Parameters, "runtime"); ok {
		runtime = rt
	}

	body := pickParams(req.Parameters, "name", "code")
	body["runtime"] = runtime
	body["supported_triggers"] = []map[string]interface{}{
		{"id": trigger, "version": "v3"},
	}

	resp, err := callManagement(ctx, req, cfg, http.MethodPost, "/actions/actions", nil, body)
	if err != nil {
		return networkErrorResult(err, cfg.Domain)
	}
	if resp.Status != http.StatusCreated && resp.Status != http.StatusOK {
		return apiErrorResult(resp, "Action", "create:actions", "")
	}

	action, parseErr := parseObject(resp.Body)
	if parseErr != nil {
		return mcp.NewToolResultError("Action was created but the Auth0 API response could not be parsed.")
	}

	title := fmt.Sprintf("Created Auth0 Action: %s", stringField(action, "name"))
	return mcp.NewToolResultText(detailText(title, action, actionDetailFields))
}

// updateAction patches the action itself, then applies secret and dependency
// updates as separate follow-up calls. Sub-resource failures do not undo the
// primary update; they surface as warning lines in the result so the caller
// can retry just the failed part.
func updateAction(ctx context.Context, req Request, cfg Config) *mcp.CallToolResult {
	if res := requireDomain(cfg); res != nil {
		return res
	}
	id, res := requireString(req.Parameters, "id")
	if res != nil {
		return res
	}

	body := pickParams(req.Parameters, "name", "code")
	_, hasSecrets := req.Parameters["secrets"]
	_, hasDependencies := req.Parameters["dependencies"]
	if len(body) == 0 && !hasSecrets && !hasDependencies {
		return mcp.NewToolResultError("no updatable fields provided; supply at least one of name, code, secrets or dependencies")
	}

	actionPath := "/actions/actions/" + url.PathEscape(id)

	var action map[string]interface{}
	if len(body) > 0 {
		resp, err := callManagement(ctx, req, cfg, http.MethodPatch, actionPath, nil, body)
		if err != nil {
			return networkErrorResult(err, cfg.Domain)
		}
		if resp.Status != http.StatusOK {
			return apiErrorResult(resp, "Action", "update:actions", id)
		}
		if parsed, parseErr := parseObject(resp.Body); parseErr == nil {
			action = parsed
		}
	}

	var warnings []string
	for _, sub := range []struct {
		key   string
		field string
	}{
		{"secrets", "secrets"},
		{"dependencies", "dependencies"},
	} {
		value, ok := req.Parameters[sub.key]
		if !ok {
			continue
		}
		resp, err := callManagement(ctx, req, cfg, http.MethodPatch, actionPath, nil, map[string]interface{}{sub.field: value})
		if err != nil {
			cfg.Logger.Warning("action %s %s update failed: %v", id, sub.key, err)
			warnings = append(warnings, fmt.Sprintf("updating %s failed: network error", sub.key))
			continue
		}
		if resp.Status != http.StatusOK {
			cfg.Logger.Warning("action %s %s update failed: %d %s", id, sub.key, resp.Status, resp.StatusText)
			warnings = append(warnings, fmt.Sprintf("updating %s failed: %d %s", sub.key, resp.Status, resp.StatusText))
			continue
		}
		if parsed, parseErr := parseObject(resp.Body); parseErr == nil {
			action = parsed
		}
	}

	var b strings.Builder
	if action != nil {
		title := fmt.Sprintf("Updated Auth0 Action: %s", stringField(action, "name"))
		b.WriteString(detailText(title, action, actionDetailFields))
	} else {
		fmt.Fprintf(&b, "Action `%s` was updated.\n", id)
	}
	for _, warning := range warnings {
		fmt.Fprintf(&b, "\nWarning: %s.", warning)
	}
	if len(warnings) == 0 && (hasSecrets || hasDependencies) {
		b.WriteString("\nSecrets and dependencies were updated. Deploy the action for the changes to take effect.")
	}
	return mcp.NewToolResultText(b.String())
}

func deployAction(ctx context.Context, req Request, cfg Config) *mcp.CallToolResult {
	if res := requireDomain(cfg); res != nil {
		return res
	}
	id, res := requireString(req.Parameters, "id")
	if res != nil {
		return res
	}

	resp, err := callManagement(ctx, req, cfg, http.MethodPost, "/actions/actions/"+url.PathEscape(id)+"/deploy", nil, nil)
	if err != nil {
		return networkErrorResult(err, cfg.Domain)
	}
	if resp.Status != http.StatusOK && resp.Status != http.StatusAccepted {
		return apiErrorResult(resp, "Action", "update:actions", id)
	}

	return mcp.NewToolResultText(fmt.Sprintf("Action `%s` was deployed. The latest version now runs on its trigger.", id))
}
