package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mark3labs/mcp-go/mcp"
)

// resourceServerTools returns the tool definitions for the resource servers
// (APIs) family.
func resourceServerTools() []Tool {
	return []Tool{
		{
			Definition: mcp.NewTool("auth0_list_resource_servers",
				mcp.WithDescription("List resource servers (APIs) in the Auth0 tenant"),
				mcp.WithNumber("page",
					mcp.Description("Page number, zero-based"),
				),
				mcp.WithNumber("per_page",
					mcp.Description("Number of resource servers per page (default 10)"),
				),
				mcp.WithBoolean("include_totals",
					mcp.Description("Include pagination totals in the response (default true)"),
				),
			),
			Handler: listResourceServers,
		},
		{
			Definition: mcp.NewTool("auth0_get_resource_server",
				mcp.WithDescription("Get the details of a single resource server (API) by ID"),
				mcp.WithString("id",
					mcp.Required(),
					mcp.Description("ID of the resource server"),
				),
			),
			Handler: getResourceServer,
		},
		{
			Definition: mcp.NewTool("auth0_create_resource_server",
				mcp.WithDescription("Create a new resource server (API) in the Auth0 tenant"),
				mcp.WithString("name",
					mcp.Required(),
					mcp.Description("Name of the resource server"),
				),
				mcp.WithString("identifier",
					mcp.Required(),
					mcp.Description("Unique identifier (audience) of the API, typically a URL"),
				),
				mcp.WithObject("scopes",
					mcp.Description("Scopes defined by the API (array of {value, description})"),
				),
				mcp.WithString("signing_alg",
					mcp.Description("Token signing algorithm, e.g. RS256"),
				),
			),
			Handler: createResourceServer,
		},
		{
			Definition: mcp.NewTool("auth0_update_resource_server",
				mcp.WithDescription("Update an existing resource server (API)"),
				mcp.WithString("id",
					mcp.Required(),
					mcp.Description("ID of the resource server to update"),
				),
				mcp.WithString("name",
					mcp.Description("New name"),
				),
				mcp.WithObject("scopes",
					mcp.Description("Replacement list of scopes (array of {value, description})"),
				),
				mcp.WithString("signing_alg",
					mcp.Description("New token signing algorithm"),
				),
			),
			Handler: updateResourceServer,
		},
	}
}

var resourceServerDetailFields = [][2]string{
	{"Name", "name"},
	{"ID", "id"},
	{"Identifier", "identifier"},
	{"Signing Algorithm", "signing_alg"},
	{"Token Lifetime", "token_lifetime"},
}

func listResourceServers(ctx context.Context, req Request, cfg Config) *mcp.CallToolResult {
	if res := requireDomain(cfg); res != nil {
		return res
	}

	query := paginationQuery(req.Parameters)
	resp, err := callManagement(ctx, req, cfg, http.MethodGet, "/resource-servers", query, nil)
	if err != nil {
		return networkErrorResult(err, cfg.Domain)
	}
	if resp.Status != http.StatusOK {
		return apiErrorResult(resp, "Resource servers", "read:resource_servers", "")
	}

	page, parseErr := parseListPage(resp.Body, "resource_servers")
	if parseErr != nil {
		return mcp.NewToolResultError("Unexpected response format from the Auth0 API when listing resource servers.")
	}
	if len(page.Items) == 0 {
		return mcp.NewToolResultText("No resource servers found for this tenant.")
	}

	text := listResultText("Resource Servers", "auth0_list_resource_servers", page,
		[]string{"Name", "Identifier", "Signing Alg"},
		func(item map[string]interface{}) []string {
			return []string{
				stringField(item, "name"),
				stringField(item, "identifier"),
				stringField(item, "signing_alg"),
			}
		},
		"name", "id")
	return mcp.NewToolResultText(text)
}

func getResourceServer(ctx context.Context, req Request, cfg Config) *mcp.CallToolResult {
	if res := requireDomain(cfg); res != nil {
		return res
	}
	id, res := requireString(req.Parameters, "id")
	if res != nil {
		return res
	}

	resp, err := callManagement(ctx, req, cfg, http.MethodGet, "/resource-servers/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return networkErrorResult(err, cfg.Domain)
	}
	if resp.Status != http.StatusOK {
		return apiErrorResult(resp, "Resource server", "read:resource_servers", id)
	}

	server, parseErr := parseObject(resp.Body)
	if parseErr != nil {
		return mcp.NewToolResultError("Unexpected response format from the Auth0 API for this resource server.")
	}

	title := fmt.Sprintf("Auth0 Resource Server: %s", stringField(server, "name"))
	return mcp.NewToolResultText(detailText(title, server, resourceServerDetailFields))
}

func createResourceServer(ctx context.Context, req Request, cfg Config) *mcp.CallToolResult {
	if res := requireDomain(cfg); res != nil {
		return res
	}
	if _, res := requireString(req.Parameters, "name"); res != nil {
		return res
	}
	if _, res := requireString(req.Parameters, "identifier"); res != nil {
		return res
	}

	body := pickParams(req.Parameters, "name", "identifier", "scopes", "signing_alg")
	resp, err := callManagement(ctx, req, cfg, http.MethodPost, "/resource-servers", nil, body)
	if err != nil {
		return networkErrorResult(err, cfg.Domain)
	}
	if resp.Status != http.StatusCreated && resp.Status != http.StatusOK {
		return apiErrorResult(resp, "Resource server", "create:resource_servers", "")
	}

	server, parseErr := parseObject(resp.Body)
	if parseErr != nil {
		return mcp.NewToolResultError("Resource server was created but the Auth0 API response could not be parsed.")
	}

	title := fmt.Sprintf("Created Auth0 Resource Server: %s", stringField(server, "name"))
	return mcp.NewToolResultText(detailText(title, server, resourceServerDetailFields))
}

func updateResourceServer(ctx context.Context, req Request, cfg Config) *mcp.CallToolResult {
	if res := requireDomain(cfg); res != nil {
		return res
	}
	id, res := requireString(req.Parameters, "id")
	if res != nil {
		return res
	}

	body := pickParams(req.Parameters, "name", "scopes", "signing_alg")
	if len(body) == 0 {
		return mcp.NewToolResultError("no updatable fields provided; supply at least one of name, scopes or signing_alg")
	}

	resp, err := callManagement(ctx, req, cfg, http.MethodPatch, "/resource-servers/"+url.PathEscape(id), nil, body)
	if err != nil {
		return networkErrorResult(err, cfg.Domain)
	}
	if resp.Status != http.StatusOK {
		return apiErrorResult(resp, "Resource server", "update:resource_servers", id)
	}

	server, parseErr := parseObject(resp.Body)
	if parseErr != nil {
		return mcp.NewToolResultError("Resource server was updated but the Auth0 API response could not be parsed.")
	}

	title := fmt.Sprintf("Updated Auth0 Resource Server: %s", stringField(server, "name"))
	return mcp.NewToolResultText(detailText(title, server, resourceServerDetailFields))
}
