package readiness

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/spigell/hirekit/internal/extraction"
)

// Points is the base readiness point table.
type Points struct {
	Base             int
	PerCategory      int
	CategoryCap      int
	Company          int
	Role             int
	DetailedJD       int
	DetailedJDLength int
	Max              int
}

// DefaultPoints are the weights used by BaseScore.
var DefaultPoints = Points{
	Base:             35,
	PerCategory:      5,
	CategoryCap:      30,
	Company:          10,
	Role:             10,
	DetailedJD:       10,
	DetailedJDLength: 800,
	Max:              100,
}

// Adjustment per confidence level applied on top of the base score.
const (
	KnowBonus       = 2
	PracticePenalty = 2
)

// Input is everything the base score is computed from.
type Input struct {
	Skills  extraction.Skills
	Company string
	Role    string
	JDText  string
}

// BaseScore returns the static readiness score for in, in [0, 100].
// The same input always yields the same score.
func BaseScore(in Input) int {
	return DefaultPoints.Score(in)
}

// Score sums the table for in and caps the result at p.Max. The JD length is
// counted in characters.
func (p Points) Score(in Input) int {
	score := p.Base
	score += min(p.PerCategory*in.Skills.NonEmptyCount(), p.CategoryCap)

	if strings.TrimSpace(in.Company) != "" {
		score += p.Company
	}
	if strings.TrimSpace(in.Role) != "" {
		score += p.Role
	}
	if utf8.RuneCountInString(in.JDText) > p.DetailedJDLength {
		score += p.DetailedJD
	}

	return min(score, p.Max)
}

// FinalScore applies the confidence adjustments to base and clamps to [0, 100].
func FinalScore(base int, confidence ConfidenceMap) int {
	adjusted := base
	for _, c := range confidence {
		switch c {
		case Know:
			adjusted += KnowBonus
		case Practice:
			adjusted -= PracticePenalty
		}
	}
	return clamp(adjusted, 0, DefaultPoints.Max)
}

// WeakSkills returns up to three skills marked for practice, sorted by name.
func WeakSkills(confidence ConfidenceMap) []string {
	weak := make([]string, 0)
	for skill, c := range confidence {
		if c == Practice {
			weak = append(weak, skill)
		}
	}
	sort.Strings(weak)
	if len(weak) > 3 {
		weak = weak[:3]
	}
	return weak
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
