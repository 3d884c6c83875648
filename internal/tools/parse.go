package tools

import (
	"encoding/json"
	"errors"
)

// errUnexpectedShape marks an upstream response that matched none of the
// known list shapes.
var errUnexpectedShape = errors.New("unexpected response format")

// listPage is the normalized result of a list endpoint. The Management API
// returns either a bare array or, with include_totals, an object wrapping the
// array in a named field alongside total/page/per_page.
type listPage struct {
	Items     []map[string]interface{}
	Total     int
	Page      int
	PerPage   int
	HasTotals bool
}

// parseListPage attempts each known list shape in order: bare array first,
// then wrapped object with the family's array field. Anything else is a
// shape error, never a crash.
func parseListPage(body []byte, field string) (*listPage, error) {
	var bare []map[string]interface{}
	if err := json.Unmarshal(body, &bare); err == nil {
		return &listPage{Items: bare, Total: len(bare)}, nil
	}

	var wrapped map[string]interface{}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, errUnexpectedShape
	}

	rawItems, ok := wrapped[field].([]interface{})
	if !ok {
		return nil, errUnexpectedShape
	}

	page := &listPage{Items: make([]map[string]interface{}, 0, len(rawItems))}
	for _, raw := range rawItems {
		item, ok := raw.(map[string]interface{})
		if !ok {
			return nil, errUnexpectedShape
		}
		page.Items = append(page.Items, item)
	}

	if total, ok := numberField(wrapped, "total"); ok {
		page.Total = total
		page.HasTotals = true
	} else {
		page.Total = len(page.Items)
	}
	if p, ok := numberField(wrapped, "page"); ok {
		page.Page = p
	}
	if pp, ok := numberField(wrapped, "per_page"); ok {
		page.PerPage = pp
	}
	return page, nil
}

// parseObject parses a single-entity response body.
func parseObject(body []byte) (map[string]interface{}, error) {
	var obj map[string]interface{}
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, errUnexpectedShape
	}
	return obj, nil
}

func numberField(obj map[string]interface{}, key string) (int, bool) {
	switch v := obj[key].(type) {
	case float64:
		return int(v), true
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n), true
		}
	}
	return 0, false
}
