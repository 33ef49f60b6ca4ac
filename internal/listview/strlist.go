package listview

import "strings"

// Composite fields (equipment lists, certifications, plan features) are
// edited as comma-separated text. These helpers are the editor boundary
// between that text form and the API's list form.

// SplitCSV parses comma-separated editor input into a list, trimming
// whitespace and dropping empty entries.
func SplitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// JoinCSV renders a list for editing or display, e.g. "mat, band".
func JoinCSV(items []string) string {
	return strings.Join(items, ", ")
}
