package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mark3labs/mcp-go/mcp"
)

// applicationTools returns the tool definitions for the applications
// (clients) resource family.
func applicationTools() []Tool {
	return []Tool{
		{
			Definition: mcp.NewTool("auth0_list_applications",
				mcp.WithDescription("List applications (clients) in the Auth0 tenant"),
				mcp.WithNumber("page",
					mcp.Description("Page number, zero-based"),
				),
				mcp.WithNumber("per_page",
					mcp.Description("Number of applications per page (default 10)"),
				),
				mcp.WithBoolean("include_totals",
					mcp.Description("Include pagination totals in the response (default true)"),
				),
			),
			Handler: listApplications,
		},
		{
			Definition: mcp.NewTool("auth0_get_application",
				mcp.WithDescription("Get the details of a single Auth0 application by client ID"),
				mcp.WithString("client_id",
					mcp.Required(),
					mcp.Description("Client ID of the application"),
				),
			),
			Handler: getApplication,
		},
		{
			Definition: mcp.NewTool("auth0_create_application",
				mcp.WithDescription("Create a new Auth0 application (client)"),
				mcp.WithString("name",
					mcp.Required(),
					mcp.Description("Name of the application"),
				),
				mcp.WithString("app_type",
					mcp.Description("Application type: native, spa, regular_web or non_interactive"),
				),
				mcp.WithString("description",
					mcp.Description("Free-form description of the application"),
				),
				mcp.WithObject("callbacks",
					mcp.Description("Allowed callback URLs (array of strings)"),
				),
				mcp.WithObject("allowed_origins",
					mcp.Description("Allowed origins (array of strings)"),
				),
			),
			Handler: createApplication,
		},
		{
			Definition: mcp.NewTool("auth0_update_application",
				mcp.WithDescription("Update an existing Auth0 application"),
				mcp.WithString("client_id",
					mcp.Required(),
					mcp.Description("Client ID of the application to update"),
				),
				mcp.WithString("name",
					mcp.Description("New name for the application"),
				),
				mcp.WithString("app_type",
					mcp.Description("New application type"),
				),
				mcp.WithString("description",
					mcp.Description("New description"),
				),
				mcp.WithObject("callbacks",
					mcp.Description("Replacement list of allowed callback URLs"),
				),
				mcp.WithObject("allowed_origins",
					mcp.Description("Replacement list of allowed origins"),
				),
			),
			Handler: updateApplication,
		},
		{
			Definition: mcp.NewTool("auth0_delete_application",
				mcp.WithDescription("Delete an Auth0 application by client ID"),
				mcp.WithString("client_id",
					mcp.Required(),
					mcp.Description("Client ID of the application to delete"),
				),
			),
			Handler: deleteApplication,
		},
	}
}

var applicationDetailFields = [][2]string{
	{"Name", "name"},
	{"Client ID", "client_id"},
	{"Type", "app_type"},
	{"Description", "description"},
	{"Domain", "domain"},
	{"Token Endpoint Auth", "token_endpoint_auth_method"},
}

func listApplications(ctx context.Context, req Request, cfg Config) *mcp.CallToolResult {
	if res := requireDomain(cfg); res != nil {
		return res
	}

	query := paginationQuery(req.Parameters)
	resp, err := callManagement(ctx, req, cfg, http.MethodGet, "/clients", query, nil)
	if err != nil {
		return networkErrorResult(err, cfg.Domain)
	}
	if resp.Status != http.StatusOK {
		return apiErrorResult(resp, "Applications", "read:clients", "")
	}

	page, parseErr := parseListPage(resp.Body, "clients")
	if parseErr != nil {
		return mcp.NewToolResultError("Unexpected response format from the Auth0 API when listing applications.")
	}
	if len(page.Items) == 0 {
		return mcp.NewToolResultText("No applications found for this tenant.")
	}

	text := listResultText("Applications", "auth0_list_applications", page,
		[]string{"Name", "Client ID", "Type"},
		func(item map[string]interface{}) []string {
			return []string{
				stringField(item, "name"),
				stringField(item, "client_id"),
				stringField(item, "app_type"),
			}
		},
		"name", "client_id")
	return mcp.NewToolResultText(text)
}

func getApplication(ctx context.Context, req Request, cfg Config) *mcp.CallToolResult {
	if res := requireDomain(cfg); res != nil {
		return res
	}
	clientID, res := requireString(req.Parameters, "client_id")
	if res != nil {
		return res
	}

	resp, err := callManagement(ctx, req, cfg, http.MethodGet, "/clients/"+url.PathEscape(clientID), nil, nil)
	if err != nil {
		return networkErrorResult(err, cfg.Domain)
	}
	if resp.Status != http.StatusOK {
		return apiErrorResult(resp, "Application", "read:clients", clientID)
	}

	app, parseErr := parseObject(resp.Body)
	if parseErr != nil {
		return mcp.NewToolResultError("Unexpected response format from the Auth0 API for this application.")
	}

	title := fmt.Sprintf("Auth0 Application: %s", stringField(app, "name"))
	return mcp.NewToolResultText(detailText(title, app, applicationDetailFields))
}

func createApplication(ctx context.Context, req Request, cfg Config) *mcp.CallToolResult {
	if res := requireDomain(cfg); res != nil {
		return res
	}
	if _, res := requireString(req.Parameters, "name"); res != nil {
		return res
	}

	body := pickParams(req.Parameters, "name", "app_type", "description", "callbacks", "allowed_origins")
	resp, err := callManagement(ctx, req, cfg, http.MethodPost, "/clients", nil, body)
	if err != nil {
		return networkErrorResult(err, cfg.Domain)
	}
	if resp.Status != http.StatusCreated && resp.Status != http.StatusOK {
		return apiErrorResult(resp, "Application", "create:clients", "")
	}

	app, parseErr := parseObject(resp.Body)
	if parseErr != nil {
		return mcp.NewToolResultError("Application was created but the Auth0 API response could not be parsed.")
	}

	title := fmt.Sprintf("Created Auth0 Application: %s", stringField(app, "name"))
	return mcp.NewToolResultText(detailText(title, app, applicationDetailFields))
}

func updateApplication(ctx context.Context, req Request, cfg Config) *mcp.CallToolResult {
	if res := requireDomain(cfg); res != nil {
		return res
	}
	clientID, res := requireString(req.Parameters, "client_id")
	if res != nil {
		return res
	}

	body := pickParams(req.Parameters, "name", "app_type", "description", "callbacks", "allowed_origins")
	if len(body) == 0 {
		return mcp.NewToolResultError("no updatable fields provided; supply at least one of name, app_type, description, callbacks or allowed_origins")
	}

	resp, err := callManagement(ctx, req, cfg, http.MethodPatch, "/clients/"+url.PathEscape(clientID), nil, body)
	if err != nil {
		return networkErrorResult(err, cfg.Domain)
	}
	if resp.Status != http.StatusOK {
		return apiErrorResult(resp, "Application", "update:clients", clientID)
	}

	app, parseErr := parseObject(resp.Body)
	if parseErr != nil {
		return mcp.NewToolResultError("Application was updated but the Auth0 API response could not be parsed.")
	}

	title := fmt.Sprintf("Updated Auth0 Application: %s", stringField(app, "name"))
	return mcp.NewToolResultText(detailText(title, app, applicationDetailFields))
}

func deleteApplication(ctx context.Context, req Request, cfg Config) *mcp.CallToolResult {
	if res := requireDomain(cfg); res != nil {
		return res
	}
	clientID, res := requireString(req.Parameters, "client_id")
	if res != nil {
		return res
	}

	resp, err := callManagement(ctx, req, cfg, http.MethodDelete, "/clients/"+url.PathEscape(clientID), nil, nil)
	if err != nil {
		return networkErrorResult(err, cfg.Domain)
	}
	if resp.Status != http.StatusNoContent && resp.Status != http.StatusOK {
		return apiErrorResult(resp, "Application", "delete:clients", clientID)
	}

	return mcp.NewToolResultText(fmt.Sprintf("Application `%s` was deleted.", clientID))
}
