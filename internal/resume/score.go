package resume

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spigell/hirekit/internal/catalog"
	"github.com/spigell/hirekit/internal/textmatch"
)

// Suggestion is one unmet scoring rule.
type Suggestion struct {
	Text   string `json:"text"`
	Points int    `json:"points"`
}

func (s Suggestion) String() string {
	return fmt.Sprintf("%s (+%d)", s.Text, s.Points)
}

// Result is the ATS score of a document and what would raise it.
type Result struct {
	Score       int          `json:"score"`
	Suggestions []Suggestion `json:"suggestions"`
}

// Top returns the first n suggestions.
func (r Result) Top(n int) []Suggestion {
	if n < 0 {
		n = 0
	}
	if len(r.Suggestions) > n {
		return r.Suggestions[:n]
	}
	return r.Suggestions
}

// Label names the score band.
func (r Result) Label() string {
	switch {
	case r.Score <= 40:
		return "Needs Work"
	case r.Score <= 70:
		return "Getting There"
	default:
		return "Strong Resume"
	}
}

const (
	minSummaryLength = 50
	minSkillCount    = 5
	maxScore         = 100
)

type rule struct {
	suggestion string
	points     int
	met        func(*Scorer, Document) bool
}

func present(s string) bool { return strings.TrimSpace(s) != "" }

// rules are checked, and reported, in this order.
var rules = []rule{
	{"Add your full name", 10, func(_ *Scorer, d Document) bool { return present(d.Personal.Name) }},
	{"Add your email address", 10, func(_ *Scorer, d Document) bool { return present(d.Personal.Email) }},
	{"Add phone number", 5, func(_ *Scorer, d Document) bool { return present(d.Personal.Phone) }},
	{"Add LinkedIn profile", 5, func(_ *Scorer, d Document) bool { return present(d.Links.Linkedin) }},
	{"Add GitHub profile", 5, func(_ *Scorer, d Document) bool { return present(d.Links.Github) }},
	{"Expand summary (> 50 chars)", 10, func(_ *Scorer, d Document) bool { return utf8.RuneCountInString(d.Summary) > minSummaryLength }},
	{"Use action verbs in summary (e.g. Built, Led)", 10, func(s *Scorer, d Document) bool {
		return textmatch.AnyMatch(d.Summary, s.cat.ActionVerbs)
	}},
	{"Add at least 1 work experience", 15, func(_ *Scorer, d Document) bool { return len(d.Experience) >= 1 }},
	{"Add education details", 10, func(_ *Scorer, d Document) bool { return len(d.Education) >= 1 }},
	{"Add at least 5 skills", 10, func(_ *Scorer, d Document) bool { return d.Skills.Total() >= minSkillCount }},
	{"Add at least 1 project", 10, func(_ *Scorer, d Document) bool { return len(d.Projects) >= 1 }},
}

// Scorer scores documents against a catalog's action verbs.
type Scorer struct {
	cat *catalog.Catalog
}

// NewScorer creates a Scorer. A nil catalog selects the built-in tables.
func NewScorer(cat *catalog.Catalog) *Scorer {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Scorer{cat: cat}
}

// Score evaluates every rule. Each unmet rule adds one suggestion, in rule order.
func (s *Scorer) Score(d Document) Result {
	res := Result{Suggestions: []Suggestion{}}
	for _, r := range rules {
		if r.met(s, d) {
			res.Score += r.points
			continue
		}
		res.Suggestions = append(res.Suggestions, Suggestion{Text: r.suggestion, Points: r.points})
	}
	res.Score = min(res.Score, maxScore)
	return res
}

// Guidance messages of BulletGuidance.
const (
	GuidanceActionVerb = "Start bullets with strong action verbs (e.g. Built, Led)."
	GuidanceNumbers    = "Add measurable impact (numbers)."
)

// BulletGuidance checks every non-blank line of a description and returns the
// first issue found: a first word that does not start with an action verb, or
// a line without any digit.
func (s *Scorer) BulletGuidance(text string) (string, bool) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		first := strings.Split(line, " ")[0]
		if !s.startsWithVerb(first) {
			return GuidanceActionVerb, true
		}
		if !strings.ContainsFunc(line, unicode.IsDigit) {
			return GuidanceNumbers, true
		}
	}
	return "", false
}

func (s *Scorer) startsWithVerb(word string) bool {
	lower := strings.ToLower(word)
	for _, v := range s.cat.ActionVerbs {
		if strings.HasPrefix(lower, strings.ToLower(v)) {
			return true
		}
	}
	return false
}
