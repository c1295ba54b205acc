package poiscout

import (
	"sort"
	"strings"
)

// FormatPOIs renders a POI registry as a markdown table.
// Rows are sorted by name so output is deterministic.
func FormatPOIs(pois map[string]POI) string {
	if len(pois) == 0 {
		return ""
	}

	names := make([]string, 0, len(pois))
	for name := range pois {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("| Name | Category | Location | Description |\n")
	b.WriteString("|------|----------|----------|-------------|\n")
	for _, name := range names {
		poi := pois[name]
		b.WriteString("| " + tableCell(poi.Name) +
			" | " + tableCell(poi.Category) +
			" | " + tableCell(poi.Location) +
			" | " + tableCell(poi.Description) + " |\n")
	}

	return b.String()
}

// tableCell escapes characters that would break markdown table structure.
func tableCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
