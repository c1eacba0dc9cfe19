// Package tracker scores, filters and summarises job listings against the
// user's preferences.
package tracker

import (
	"strings"

	"github.com/spigell/hirekit/internal/textmatch"
)

// MatchPoints is the point table of Score. Every row is evaluated on its own.
var MatchPoints = struct {
	TitleKeyword       int
	DescriptionKeyword int
	Location           int
	WorkMode           int
	Experience         int
	SkillOverlap       int
	Fresh              int
	LinkedIn           int
}{
	TitleKeyword:       25,
	DescriptionKeyword: 15,
	Location:           15,
	WorkMode:           10,
	Experience:         10,
	SkillOverlap:       15,
	Fresh:              5,
	LinkedIn:           5,
}

const (
	// FreshDays is the highest postedDaysAgo that still counts as fresh.
	FreshDays = 2
	MaxScore  = 100
)

// Score returns the match score of job for pref, in [0, 100].
func Score(job *Listing, pref Preference) int {
	if job == nil {
		return 0
	}

	score := 0

	if textmatch.AnyMatch(job.Title, pref.RoleKeywords) {
		score += MatchPoints.TitleKeyword
	}
	if textmatch.AnyMatch(job.Description, pref.RoleKeywords) {
		score += MatchPoints.DescriptionKeyword
	}
	if textmatch.AnyMatch(job.Location, pref.Locations) {
		score += MatchPoints.Location
	}
	if textmatch.AnyEqual(string(job.WorkMode), pref.WorkModes) {
		score += MatchPoints.WorkMode
	}
	if strings.EqualFold(string(job.Experience), string(pref.ExperienceLevel)) {
		score += MatchPoints.Experience
	}
	if skillsOverlap(job.Skills, pref.Skills) {
		score += MatchPoints.SkillOverlap
	}
	if job.PostedDaysAgo <= FreshDays {
		score += MatchPoints.Fresh
	}
	if job.Source == SourceLinkedIn {
		score += MatchPoints.LinkedIn
	}

	return min(score, MaxScore)
}

func skillsOverlap(jobSkills, userSkills []string) bool {
	for _, s := range jobSkills {
		if strings.TrimSpace(s) == "" {
			continue
		}
		if textmatch.AnyEqual(s, userSkills) {
			return true
		}
	}
	return false
}

// Rescore recomputes the match score of every listing.
func Rescore(l *Listings, pref Preference) {
	if l == nil {
		return
	}
	for _, item := range l.Items {
		item.MatchScore = Score(item, pref)
	}
}
