package textmatch

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ContainsKeyword reports whether needle occurs in haystack, ignoring case.
// A blank needle never matches.
func ContainsKeyword(haystack, needle string) bool {
	needle = strings.TrimSpace(needle)
	if needle == "" || haystack == "" {
		return false
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// AnyMatch reports whether any needle occurs in haystack, ignoring case.
func AnyMatch(haystack string, needles []string) bool {
	if haystack == "" {
		return false
	}
	lower := strings.ToLower(haystack)
	for _, n := range needles {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(n)) {
			return true
		}
	}
	return false
}

// MatchedKeywords returns the needles found in haystack, in needle order, without duplicates.
func MatchedKeywords(haystack string, needles []string) []string {
	lower := strings.ToLower(haystack)
	seen := make(map[string]bool, len(needles))
	out := make([]string, 0)
	for _, n := range needles {
		key := strings.ToLower(strings.TrimSpace(n))
		if key == "" || seen[key] {
			continue
		}
		if strings.Contains(lower, key) {
			seen[key] = true
			out = append(out, n)
		}
	}
	return out
}

// AnyEqual reports whether value equals any candidate, ignoring case.
func AnyEqual(value string, candidates []string) bool {
	for _, c := range candidates {
		if strings.EqualFold(value, c) {
			return true
		}
	}
	return false
}

// TitleWords upper-cases the first letter of every space separated word and
// leaves the remaining letters as they are.
func TitleWords(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if r == utf8.RuneError {
			continue
		}
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
