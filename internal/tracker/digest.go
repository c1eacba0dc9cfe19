package tracker

import (
	"cmp"
	"slices"
	"time"
)

// DefaultDigestSize is the number of listings a digest keeps.
const DefaultDigestSize = 10

// Digest picks the best listings of the day: positive scores only, highest
// score first, fresher postings first on ties, at most size entries.
func Digest(l *Listings, size int) []*Listing {
	if size <= 0 {
		size = DefaultDigestSize
	}

	candidates := make([]*Listing, 0, l.Len())
	for _, item := range l.Items {
		if item.MatchScore > 0 {
			candidates = append(candidates, item)
		}
	}

	slices.SortStableFunc(candidates, func(a, b *Listing) int {
		if c := cmp.Compare(b.MatchScore, a.MatchScore); c != 0 {
			return c
		}
		return cmp.Compare(a.PostedDaysAgo, b.PostedDaysAgo)
	})

	if len(candidates) > size {
		candidates = candidates[:size]
	}
	return candidates
}

// DigestKey is the store key of the digest for the UTC day of t.
func DigestKey(t time.Time) string {
	return KeyDigestPrefix + t.UTC().Format(time.DateOnly)
}
