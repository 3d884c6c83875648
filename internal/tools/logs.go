package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mark3labs/mcp-go/mcp"
)

// logTools returns the tool definitions for the tenant log family.
func logTools() []Tool {
	return []Tool{
		{
			Definition: mcp.NewTool("auth0_list_logs",
				mcp.WithDescription("Search tenant log events"),
				mcp.WithString("q",
					mcp.Description("Lucene query string, e.g. type:f OR type:s"),
				),
				mcp.WithString("from",
					mcp.Description("Log ID to start retrieving from (checkpoint pagination)"),
				),
				mcp.WithNumber("take",
					mcp.Description("Number of entries to retrieve with checkpoint pagination"),
				),
				mcp.WithNumber("page",
					mcp.Description("Page number, zero-based"),
				),
				mcp.WithNumber("per_page",
					mcp.Description("Number of log entries per page (default 10)"),
				),
			),
			Handler: listLogs,
		},
		{
			Definition: mcp.NewTool("auth0_get_log",
				mcp.WithDescription("Get a single tenant log event by ID"),
				mcp.WithString("id",
					mcp.Required(),
					mcp.Description("ID of the log event"),
				),
			),
			Handler: getLog,
		},
	}
}

var logDetailFields = [][2]string{
	{"Type", "type"},
	{"Date", "date"},
	{"Description", "description"},
	{"Client", "client_name"},
	{"Connection", "connection"},
	{"IP", "ip"},
	{"User Agent", "user_agent"},
}

func listLogs(ctx context.Context, req Request, cfg Config) *mcp.CallToolResult {
	if res := requireDomain(cfg); res != nil {
		return res
	}

	query := paginationQuery(req.Parameters)
	if q, ok := stringParam(req.Parameters, "q"); ok {
		query.Set("q", q)
	}
	if from, ok := stringParam(req.Parameters, "from"); ok {
		query.Set("from", from)
		// Checkpoint pagination replaces page-based pagination.
		query.Del("page")
		query.Del("include_totals")
		if take, ok := intParam(req.Parameters, "take"); ok {
			query.Del("per_page")
			query.Set("take", fmt.Sprintf("%d", take))
		}
	}

	resp, err := callManagement(ctx, req, cfg, http.MethodGet, "/logs", query, nil)
	if err != nil {
		return networkErrorResult(err, cfg.Domain)
	}
	if resp.Status != http.StatusOK {
		return apiErrorResult(resp, "Logs", "read:logs", "")
	}

	page, parseErr := parseListPage(resp.Body, "logs")
	if parseErr != nil {
		return mcp.NewToolResultError("Unexpected response format from the Auth0 API when listing logs.")
	}
	if len(page.Items) == 0 {
		return mcp.NewToolResultText("No log events matched the query.")
	}

	text := listResultText("Logs", "auth0_list_logs", page,
		[]string{"Type", "Date", "Description"},
		func(item map[string]interface{}) []string {
			return []string{
				stringField(item, "type"),
				stringField(item, "date"),
				stringField(item, "description"),
			}
		},
		"type", "log_id")
	return mcp.NewToolResultText(text)
}

func getLog(ctx context.Context, req Request, cfg Config) *mcp.CallToolResult {
	if res := requireDomain(cfg); res != nil {
		return res
	}
	id, res := requireString(req.Parameters, "id")
	if res != nil {
		return res
	}

	resp, err := callManagement(ctx, req, cfg, http.MethodGet, "/logs/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return networkErrorResult(err, cfg.Domain)
	}
	if resp.Status != http.StatusOK {
		return apiErrorResult(resp, "Log event", "read:logs", id)
	}

	event, parseErr := parseObject(resp.Body)
	if parseErr != nil {
		return mcp.NewToolResultError("Unexpected response format from the Auth0 API for this log event.")
	}

	title := fmt.Sprintf("Auth0 Log Event: %s", stringField(event, "log_id"))
	return mcp.NewToolResultText(detailText(title, event, logDetailFields))
}
