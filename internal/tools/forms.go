package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mark3labs/mcp-go/mcp"
)

// formTools returns the tool definitions for the forms family.
func formTools() []Tool {
	return []Tool{
		{
			Definition: mcp.NewTool("auth0_list_forms",
				mcp.WithDescription("List forms in the Auth0 tenant"),
				mcp.WithNumber("page",
					mcp.Description("Page number, zero-based"),
				),
				mcp.WithNumber("per_page",
					mcp.Description("Number of forms per page (default 10)"),
				),
				mcp.WithBoolean("include_totals",
					mcp.Description("Include pagination totals in the response (default true)"),
				),
			),
			Handler: listForms,
		},
		{
			Definition: mcp.NewTool("auth0_get_form",
				mcp.WithDescription("Get the details of a single form by ID"),
				mcp.WithString("id",
					mcp.Required(),
					mcp.Description("ID of the form"),
				),
			),
			Handler: getForm,
		},
		{
			Definition: mcp.NewTool("auth0_create_form",
				mcp.WithDescription("Create a new form"),
				mcp.WithString("name",
					mcp.Required(),
					mcp.Description("Name of the form"),
				),
				mcp.WithObject("nodes",
					mcp.Description("Form nodes (steps and fields)"),
				),
				mcp.WithObject("start",
					mcp.Description("Form entry configuration"),
				),
				mcp.WithObject("ending",
					mcp.Description("Form completion configuration"),
				),
			),
			Handler: createForm,
		},
		{
			Definition: mcp.NewTool("auth0_update_form",
				mcp.WithDescription("Update an existing form"),
				mcp.WithString("id",
					mcp.Required(),
					mcp.Description("ID of the form to update"),
				),
				mcp.WithString("name",
					mcp.Description("New name"),
				),
				mcp.WithObject("nodes",
					mcp.Description("Replacement form nodes"),
				),
				mcp.WithObject("start",
					mcp.Description("Replacement entry configuration"),
				),
				mcp.WithObject("ending",
					mcp.Description("Replacement completion configuration"),
				),
			),
			Handler: updateForm,
		},
		{
			Definition: mcp.NewTool("auth0_delete_form",
				mcp.WithDescription("Delete a form by ID"),
				mcp.WithString("id",
					mcp.Required(),
					mcp.Description("ID of the form to delete"),
				),
			),
			Handler: deleteForm,
		},
	}
}

var formDetailFields = [][2]string{
	{"Name", "name"},
	{"ID", "id"},
	{"Created", "created_at"},
	{"Updated", "updated_at"},
}

func listForms(ctx context.Context, req Request, cfg Config) *mcp.CallToolResult {
	if res := requireDomain(cfg); res != nil {
		return res
	}

	query := paginationQuery(req.Parameters)
	resp, err := callManagement(ctx, req, cfg, http.MethodGet, "/forms", query, nil)
	if err != nil {
		return networkErrorResult(err, cfg.Domain)
	}
	if resp.Status != http.StatusOK {
		return apiErrorResult(resp, "Forms", "read:forms", "")
	}

	page, parseErr := parseListPage(resp.Body, "forms")
	if parseErr != nil {
		return mcp.NewToolResultError("Unexpected response format from the Auth0 API when listing forms.")
	}
	if len(page.Items) == 0 {
		return mcp.NewToolResultText("No forms found for this tenant.")
	}

	text := listResultText("Forms", "auth0_list_forms", page,
		[]string{"Name", "ID", "Updated"},
		func(item map[string]interface{}) []string {
			return []string{
				stringField(item, "name"),
				stringField(item, "id"),
				stringField(item, "updated_at"),
			}
		},
		"name", "id")
	return mcp.NewToolResultText(text)
}

func getForm(ctx context.Context, req Request, cfg Config) *mcp.CallToolResult {
	if res := requireDomain(cfg); res != nil {
		return res
	}
	id, res := requireString(req.Parameters, "id")
	if res != nil {
		return res
	}

	resp, err := callManagement(ctx, req, cfg, http.MethodGet, "/forms/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return networkErrorResult(err, cfg.Domain)
	}
	if resp.Status != http.StatusOK {
		return apiErrorResult(resp, "Form", "read:forms", id)
	}

	form, parseErr := parseObject(resp.Body)
	if parseErr != nil {
		return mcp.NewToolResultError("Unexpected response format from the Auth0 API for this form.")
	}

	title := fmt.Sprintf("Auth0 Form: %s", stringField(form, "name"))
	return mcp.NewToolResultText(detailText(title, form, formDetailFields))
}

func createForm(ctx context.Context, req Request, cfg Config) *mcp.CallToolResult {
	if res := requireDomain(cfg); res != nil {
		return res
	}
	if _, res := requireString(req.Parameters, "name"); res != nil {
		return res
	}

	body := pickParams(req.Parameters, "name", "nodes", "start", "ending")
	resp, err := callManagement(ctx, req, cfg, http.MethodPost, "/forms", nil, body)
	if err != nil {
		return networkErrorResult(err, cfg.Domain)
	}
	if resp.Status != http.StatusCreated && resp.Status != http.StatusOK {
		return apiErrorResult(resp, "Form", "create:forms", "")
	}

	form, parseErr := parseObject(resp.Body)
	if parseErr != nil {
		return mcp.NewToolResultError("Form was created but the Auth0 API response could not be parsed.")
	}

	title := fmt.Sprintf("Created Auth0 Form: %s", stringField(form, "name"))
	return mcp.NewToolResultText(detailText(title, form, formDetailFields))
}

func updateForm(ctx context.Context, req Request, cfg Config) *mcp.CallToolResult {
	if res := requireDomain(cfg); res != nil {
		return res
	}
	id, res := requireString(req.Parameters, "id")
	if res != nil {
		return res
	}

	body := pickParams(req.Parameters, "name", "nodes", "start", "ending")
	if len(body) == 0 {
		return mcp.NewToolResultError("no updatable fields provided; supply at least one of name, nodes, start or ending")
	}

	resp, err := callManagement(ctx, req, cfg, http.MethodPatch, "/forms/"+url.PathEscape(id), nil, body)
	if err != nil {
		return networkErrorResult(err, cfg.Domain)
	}
	if resp.Status != http.StatusOK {
		return apiErrorResult(resp, "Form", "update:forms", id)
	}

	form, parseErr := parseObject(resp.Body)
	if parseErr != nil {
		return mcp.NewToolResultError("Form was updated but the Auth0 API response could not be parsed.")
	}

	title := fmt.Sprintf("Updated Auth0 Form: %s", stringField(form, "name"))
	return mcp.NewToolResultText(detailText(title, form, formDetailFields))
}

func deleteForm(ctx context.Context, req Request, cfg Config) *mcp.CallToolResult {
	if res := requireDomain(cfg); res != nil {
		return res
	}
	id, res := requireString(req.Parameters, "id")
	if res != nil {
		return res
	}

	resp, err := callManagement(ctx, req, cfg, http.MethodDelete, "/forms/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return networkErrorResult(err, cfg.Domain)
	}
	if resp.Status != http.StatusNoContent && resp.Status != http.StatusOK {
		return apiErrorResult(resp, "Form", "delete:forms", id)
	}

	return mcp.NewToolResultText(fmt.Sprintf("Form `%s` was deleted.", id))
}
