package tracker

import "math"

// Stats summarises application progress over a working set.
type Stats struct {
	TotalApplied int `json:"totalApplied"`
	Interviews   int `json:"interviews"`
	Offers       int `json:"offers"`
	ResponseRate int `json:"responseRate"`
}

// Summarize computes Stats. The response rate is the share of listings that
// moved past Applied relative to those still in Applied, as a rounded percent.
func Summarize(l *Listings) Stats {
	var s Stats
	applied, responded := 0, 0

	for _, item := range l.Items {
		switch item.Status {
		case StatusApplied:
			s.TotalApplied++
			applied++
		case StatusInterview:
			s.TotalApplied++
			s.Interviews++
		case StatusSelected:
			s.TotalApplied++
			s.Interviews++
			s.Offers++
		}
		if item.Status != StatusApplied && item.Status != StatusNotApplied && item.Status != "" {
			responded++
		}
	}

	if applied > 0 {
		s.ResponseRate = int(math.Round(float64(responded) / float64(applied) * 100))
	}
	return s
}
