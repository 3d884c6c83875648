package tools

import (
	"fmt"
	"strconv"
	"strings"
)

// stringField renders one field of an API object for table display,
// tolerating the loose typing of decoded JSON.
func stringField(item map[string]interface{}, key string) string {
	switch v := item[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

func markdownTable(headers []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	separators := make([]string, len(headers))
	for i := range separators {
		separators[i] = "---"
	}
	b.WriteString("| " + strings.Join(separators, " | ") + " |\n")
	for _, row := range rows {
		b.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}
	return b.String()
}

// listResultText renders a list page as markdown: a summary header, a table
// of the most relevant fields, a next-page hint when the slice is smaller
// than the known total, and a trailing name-to-id reference list. The AI
// client works better from named references than from opaque ids embedded in
// a table.
func listResultText(family, toolName string, page *listPage, headers []string, rowFn func(map[string]interface{}) []string, nameKey, idKey string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "### Auth0 %s (%d/%d)\n\n", family, len(page.Items), page.Total)

	rows := make([][]string, 0, len(page.Items))
	for _, item := range page.Items {
		rows = append(rows, rowFn(item))
	}
	b.WriteString(markdownTable(headers, rows))

	if len(page.Items) < page.Total {
		perPage := page.PerPage
		if perPage == 0 {
			perPage = len(page.Items)
		}
		fmt.Fprintf(&b, "\nShowing %d of %d. For the next page, call `%s` with `{\"page\": %d, \"per_page\": %d}`.\n",
			len(page.Items), page.Total, toolName, page.Page+1, perPage)
	}

	b.WriteString(idReferenceList(page.Items, nameKey, idKey))
	return b.String()
}

// idReferenceList maps human-readable names to opaque identifiers.
func idReferenceList(items []map[string]interface{}, nameKey, idKey string) string {
	var b strings.Builder
	b.WriteString("\n**IDs for reference:**\n")
	for _, item := range items {
		name := stringField(item, nameKey)
		id := stringField(item, idKey)
		if name == "" {
			name = id
		}
		fmt.Fprintf(&b, "- %s: `%s`\n", name, id)
	}
	return b.String()
}

// detailText renders a single entity as a two-column markdown table of the
// given fields, skipping ones absent from the response.
func detailText(title string, obj map[string]interface{}, fields [][2]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "### %s\n\n", title)

	rows := make([][]string, 0, len(fields))
	for _, field := range fields {
		label, key := field[0], field[1]
		if _, present := obj[key]; !present {
			continue
		}
		rows = append(rows, []string{label, stringField(obj, key)})
	}
	b.WriteString(markdownTable([]string{"Field", "Value"}, rows))
	return b.String()
}
