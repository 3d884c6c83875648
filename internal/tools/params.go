package tools

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
)

func stringParam(params map[string]interface{}, key string) (string, bool) {
	v, ok := params[key].(string)
	return v, ok && v != ""
}

func intParam(params map[string]interface{}, key string) (int, bool) {
	switch v := params[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

func boolParam(params map[string]interface{}, key string) (bool, bool) {
	v, ok := params[key].(bool)
	return v, ok
}

// requireString validates a required tool parameter. The second return is a
// ready-made error result when the parameter is missing; no HTTP call may be
// issued in that case.
func requireString(params map[string]interface{}, key string) (string, *mcp.CallToolResult) {
	value, ok := stringParam(params, key)
	if !ok {
		return "", mcp.NewToolResultError(fmt.Sprintf("%s is required", key))
	}
	return value, nil
}

// defaultPerPage is the page size applied when the caller omits per_page.
// All families use page/per_page naming.
const defaultPerPage = 10

// paginationQuery builds the shared list query parameters, applying defaults
// for per_page and include_totals when omitted.
func paginationQuery(params map[string]interface{}) url.Values {
	query := url.Values{}

	if page, ok := intParam(params, "page"); ok {
		query.Set("page", strconv.Itoa(page))
	}

	perPage := defaultPerPage
	if pp, ok := intParam(params, "per_page"); ok {
		perPage = pp
	}
	query.Set("per_page", strconv.Itoa(perPage))

	includeTotals := true
	if it, ok := boolParam(params, "include_totals"); ok {
		includeTotals = it
	}
	query.Set("include_totals", strconv.FormatBool(includeTotals))

	return query
}

// pickParams copies the named keys from the caller's parameters into a
// request body, keeping only the ones that were supplied.
func pickParams(params map[string]interface{}, keys ...string) map[string]interface{} {
	body := make(map[string]interface{})
	for _, key := range keys {
		if v, ok := params[key]; ok {
			body[key] = v
		}
	}
	return body
}
