package util

import "strings"

// TruncateForLog folds s onto one line, collapsing every run of whitespace to
// a single space, and keeps at most limit runes. A cut value ends with "...".
func TruncateForLog(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	flat := []rune(strings.Join(strings.Fields(s), " "))
	if len(flat) <= limit {
		return string(flat)
	}
	return string(flat[:limit]) + "..."
}
