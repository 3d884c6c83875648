package tools

import (
	"strings"
	"testing"
)

func TestMarkdownTable(t *testing.T) {
	table := markdownTable([]string{"Name", "ID"}, [][]string{
		{"App1", "abc"},
		{"App2", "def"},
	})

	lines := strings.Split(strings.TrimSpace(table), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + separator + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "| Name | ID |" {
		t.Errorf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "| --- | --- |" {
		t.Errorf("unexpected separator line: %q", lines[1])
	}
	if lines[2] != "| App1 | abc |" {
		t.Errorf("unexpected row: %q", lines[2])
	}
}

func TestStringField(t *testing.T) {
	item := map[string]interface{}{
		"s": "text",
		"n": float64(42),
		"b": true,
		"z": nil,
	}
	if got := stringField(item, "s"); got != "text" {
		t.Errorf("string: got %q", got)
	}
	if got := stringField(item, "n"); got != "42" {
		t.Errorf("number: got %q", got)
	}
	if got := stringField(item, "b"); got != "true" {
		t.Errorf("bool: got %q", got)
	}
	if got := stringField(item, "z"); got != "" {
		t.Errorf("nil: got %q", got)
	}
	if got := stringField(item, "missing"); got != "" {
		t.Errorf("missing: got %q", got)
	}
}

func TestListResultTextRowCount(t *testing.T) {
	page := &listPage{
		Items: []map[string]interface{}{
			{"name": "a", "id": "1"},
			{"name": "b", "id": "2"},
			{"name": "c", "id": "3"},
		},
		Total: 3,
	}

	text := listResultText("Things", "auth0_list_things", page,
		[]string{"Name"},
		func(item map[string]interface{}) []string { return []string{stringField(item, "name")} },
		"name", "id")

	if !strings.Contains(text, "### Auth0 Things (3/3)") {
		t.Errorf("expected header, got:\n%s", text)
	}
	// one table row per item
	rows := strings.Count(text, "\n| ") - 2 // minus header and separator lines
	if rows != 3 {
		t.Errorf("expected 3 data rows, got %d:\n%s", rows, text)
	}
	if strings.Contains(text, "next page") {
		t.Errorf("unexpected pagination hint for complete page:\n%s", text)
	}
}

func TestIDReferenceListFallsBackToID(t *testing.T) {
	items := []map[string]interface{}{
		{"id": "anon_1"},
		{"name": "Named", "id": "n_2"},
	}
	text := idReferenceList(items, "name", "id")
	if !strings.Contains(text, "- anon_1: `anon_1`") {
		t.Errorf("expected id fallback for unnamed item, got:\n%s", text)
	}
	if !strings.Contains(text, "- Named: `n_2`") {
		t.Errorf("expected named entry, got:\n%s", text)
	}
}

func TestDetailTextSkipsAbsentFields(t *testing.T) {
	obj := map[string]interface{}{"name": "Thing"}
	text := detailText("Title", obj, [][2]string{
		{"Name", "name"},
		{"Missing", "does_not_exist"},
	})
	if !strings.Contains(text, "| Name | Thing |") {
		t.Errorf("expected present field row, got:\n%s", text)
	}
	if strings.Contains(text, "Missing") {
		t.Errorf("expected absent field skipped, got:\n%s", text)
	}
}
