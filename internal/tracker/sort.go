package tracker

import (
	"fmt"
	"slices"
	"strings"
)

// SortOrder selects how listings are ordered for display.
type SortOrder string

const (
	SortMatch  SortOrder = "match"
	SortLatest SortOrder = "latest"
	SortSalary SortOrder = "salary"
)

// ParseSortOrder accepts the sort names, ignoring case. "match score" is an alias of match.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "match", "match score":
		return SortMatch, nil
	case "latest":
		return SortLatest, nil
	case "salary":
		return SortSalary, nil
	default:
		return "", fmt.Errorf("unknown sort order %q", s)
	}
}

// Sort orders l in place. Match sorts by score descending, latest by
// postedDaysAgo ascending and salary by the salary text descending. Ties keep
// their current order.
func Sort(l *Listings, order SortOrder) {
	if l == nil {
		return
	}

	var cmp func(a, b *Listing) int
	switch order {
	case SortSalary:
		cmp = func(a, b *Listing) int { return strings.Compare(b.Salary, a.Salary) }
	case SortLatest:
		cmp = func(a, b *Listing) int { return a.PostedDaysAgo - b.PostedDaysAgo }
	default:
		cmp = func(a, b *Listing) int { return b.MatchScore - a.MatchScore }
	}
	slices.SortStableFunc(l.Items, cmp)
}
