// Package rounds maps a company size and the extracted skills to the likely
// interview rounds.
package rounds

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/spigell/hirekit/internal/catalog"
	"github.com/spigell/hirekit/internal/extraction"
	"github.com/spigell/hirekit/internal/intel"
)

// Round is one expected interview round.
type Round struct {
	Number      int      `json:"number" mapstructure:"number"`
	Title       string   `json:"title" mapstructure:"title"`
	Duration    string   `json:"duration" mapstructure:"duration"`
	Description string   `json:"description" mapstructure:"description"`
	Topics      []string `json:"topics" mapstructure:"topics"`
	WhyMatters  string   `json:"whyMatters" mapstructure:"whyMatters"`
}

// Summary is a quick reference over a round list.
type Summary struct {
	TotalRounds      int      `json:"totalRounds"`
	EstimatedMinutes int      `json:"estimatedTime"`
	KeyTopics        []string `json:"keyTopics"`
}

const (
	defaultRoundMinutes = 60
	keyTopicCount       = 5
)

var firstNumber = regexp.MustCompile(`\d+`)

// Map returns the rounds for size. Unknown sizes get the startup rounds.
func Map(size intel.Size, skills extraction.Skills) []Round {
	switch size {
	case intel.Enterprise:
		return enterprise(skills)
	case intel.MidSize:
		return midSize(skills)
	default:
		return startup(skills)
	}
}

func containsAny(values []string, fragments ...string) bool {
	for _, v := range values {
		lower := strings.ToLower(v)
		for _, f := range fragments {
			if strings.Contains(lower, f) {
				return true
			}
		}
	}
	return false
}

func hasDSAFocus(skills extraction.Skills) bool {
	return containsAny(skills.Get(catalog.CategoryCoreCS), "dsa", "algorithm", "data structure")
}

func hasWebStackFocus(skills extraction.Skills) bool {
	return len(skills.Get(catalog.CategoryWeb)) > 0 ||
		containsAny(skills.Get(catalog.CategoryLanguages), "javascript", "typescript", "python")
}

func firstN(s []string, n int) []string {
	if len(s) > n {
		s = s[:n]
	}
	return append([]string(nil), s...)
}

func enterprise(skills extraction.Skills) []Round {
	oaTopics := []string{"Coding", "Aptitude", "Logical Reasoning"}
	if hasDSAFocus(skills) {
		oaTopics = []string{"DSA (Medium-Hard)", "Aptitude", "Core CS MCQs"}
	}

	return []Round{
		{
			Number:      1,
			Title:       "Online Assessment",
			Duration:    "60-90 minutes",
			Description: "Coding test with DSA problems and aptitude questions",
			Topics:      oaTopics,
			WhyMatters:  "Efficiently filter large applicant pool based on core technical skills",
		},
		{
			Number:      2,
			Title:       "Technical Interview I",
			Duration:    "45-60 minutes",
			Description: "Deep dive into data structures and algorithms",
			Topics:      []string{"Arrays & Strings", "Trees & Graphs", "Dynamic Programming", "Complexity Analysis"},
			WhyMatters:  "Validate problem-solving ability required for working at scale",
		},
		{
			Number:      3,
			Title:       "Technical Interview II",
			Duration:    "45-60 minutes",
			Description: "System design or project discussion",
			Topics:      []string{"System Architecture", "Scalability", "Database Design", "API Design"},
			WhyMatters:  "Assess real-world engineering skills and architectural thinking",
		},
		{
			Number:      4,
			Title:       "HR/Managerial Round",
			Duration:    "30-45 minutes",
			Description: "Behavioral questions and culture fit assessment",
			Topics:      []string{"Past Experiences", "Conflict Resolution", "Culture Fit", "Compensation"},
			WhyMatters:  "Ensure mutual alignment on values, expectations, and long-term fit",
		},
	}
}

func midSize(skills extraction.Skills) []Round {
	codingTopics := []string{"Practical Coding", "Logic Building", "Syntax"}
	if hasDSAFocus(skills) {
		codingTopics = []string{"DSA (Easy-Medium)", "Problem Solving", "Code Quality"}
	}

	techDescription := "DSA and core CS concepts"
	techTopics := []string{"Data Structures", "Algorithms", "OOP", "DBMS"}
	if hasWebStackFocus(skills) {
		techDescription = "Framework knowledge and coding best practices"
		techTopics = append(firstN(skills.Get(catalog.CategoryWeb), 2), "Code Design", "APIs")
	}

	return []Round{
		{
			Number:      1,
			Title:       "Online Coding Test",
			Duration:    "60 minutes",
			Description: "Coding problems with medium difficulty",
			Topics:      codingTopics,
			WhyMatters:  "Baseline technical assessment to shortlist candidates",
		},
		{
			Number:      2,
			Title:       "Technical Interview",
			Duration:    "45-60 minutes",
			Description: techDescription,
			Topics:      techTopics,
			WhyMatters:  "Evaluate balanced mix of theoretical knowledge and practical skills",
		},
		{
			Number:      3,
			Title:       "Project Discussion",
			Duration:    "30-45 minutes",
			Description: "Deep dive into past projects and tech choices",
			Topics:      []string{"Project Experience", "Tech Stack", "Challenges Faced", "Solutions"},
			WhyMatters:  "Validate real-world experience beyond textbook knowledge",
		},
		{
			Number:      4,
			Title:       "Final Round",
			Duration:    "30-45 minutes",
			Description: "Team lead and HR discussion",
			Topics:      []string{"Team Fit", "Growth Potential", "Expectations", "Offer Discussion"},
			WhyMatters:  "Close the loop on mutual expectations and finalize decision",
		},
	}
}

func startup(skills extraction.Skills) []Round {
	web := skills.Get(catalog.CategoryWeb)

	description := "Solve real-world coding problems"
	topics := []string{"Problem Solving", "Clean Code", "Best Practices"}
	if len(web) > 0 {
		description = "Build a small feature using " + strings.Join(firstN(web, 2), ", ")
		topics = firstN(web, 3)
	}

	return []Round{
		{
			Number:      1,
			Title:       "Practical Coding Challenge",
			Duration:    "2-3 hours",
			Description: description,
			Topics:      topics,
			WhyMatters:  "See how you actually code and approach real problems, not just theory",
		},
		{
			Number:      2,
			Title:       "Technical Discussion",
			Duration:    "45-60 minutes",
			Description: "Code review and architecture discussion",
			Topics:      []string{"Code Quality", "Design Decisions", "Trade-offs", "Scalability"},
			WhyMatters:  "Understand your thought process and how you make engineering decisions",
		},
		{
			Number:      3,
			Title:       "Team & Culture Fit",
			Duration:    "30-45 minutes",
			Description: "Meet the team and discuss role expectations",
			Topics:      []string{"Team Dynamics", "Growth Goals", "Startup Culture", "Role Clarity"},
			WhyMatters:  "Ensure long-term fit since startups need committed team members",
		},
	}
}

// Summarize counts rounds, adds up the first number of every duration (60 when
// a duration has none) and collects the first distinct topics.
func Summarize(rounds []Round) Summary {
	s := Summary{TotalRounds: len(rounds), KeyTopics: []string{}}
	seen := make(map[string]struct{})

	for _, r := range rounds {
		mins := defaultRoundMinutes
		if m := firstNumber.FindString(r.Duration); m != "" {
			if n, err := strconv.Atoi(m); err == nil {
				mins = n
			}
		}
		s.EstimatedMinutes += mins

		for _, t := range r.Topics {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			if len(s.KeyTopics) < keyTopicCount {
				s.KeyTopics = append(s.KeyTopics, t)
			}
		}
	}

	return s
}
