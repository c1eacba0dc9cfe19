package readiness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spigell/hirekit/internal/catalog"
	"github.com/spigell/hirekit/internal/extraction"
)

// Section is a titled list of preparation items.
type Section struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// QuestionCount is the number of questions Questions always returns.
const QuestionCount = 10

func anyContains(skills []string, fragments ...string) bool {
	for _, s := range skills {
		lower := strings.ToLower(s)
		for _, f := range fragments {
			if strings.Contains(lower, f) {
				return true
			}
		}
	}
	return false
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}

func firstN(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// Checklist builds the round-by-round preparation checklist.
func Checklist(skills extraction.Skills) []Section {
	core := skills.Get(catalog.CategoryCoreCS)
	web := skills.Get(catalog.CategoryWeb)
	data := skills.Get(catalog.CategoryData)
	cloud := skills.Get(catalog.CategoryCloud)
	hasDSA := anyContains(core, "dsa", "algorithm")

	webItem := pick(len(web) > 0, "Deep dive: "+strings.Join(firstN(web, 2), ", "), "Review your tech stack")
	cloudItem := pick(len(cloud) > 0, "Cloud/DevOps: "+strings.Join(firstN(cloud, 2), ", "), "Deployment basics")
	dataItem := "SQL query practice"
	if len(data) > 0 {
		dataItem = fmt.Sprintf("Database queries and %s specifics", data[0])
	}

	return []Section{
		{
			Title: "Round 1: Aptitude & Basics",
			Items: []string{
				"Practice quantitative aptitude (20-30 questions)",
				"Brush up on logical reasoning",
				"Review verbal ability basics",
				"Solve previous year aptitude papers",
				"Time management practice (1 min per question)",
				"Company-specific aptitude patterns research",
			},
		},
		{
			Title: "Round 2: DSA & Core CS",
			Items: []string{
				pick(hasDSA, "Master arrays, strings, and linked lists", "Learn basic data structures"),
				"Practice sorting and searching algorithms",
				pick(slices.Contains(core, "Oop"), "Review OOP principles (4 pillars)", "Understand OOP basics"),
				pick(slices.Contains(core, "Dbms"), "ACID, normalization, indexing concepts", "Database fundamentals"),
				pick(slices.Contains(core, "Os"), "Process scheduling, deadlocks, memory management", "OS basics"),
				"Solve 10-15 medium DSA problems",
				"Prepare complexity analysis explanations",
			},
		},
		{
			Title: "Round 3: Technical Interview",
			Items: []string{
				webItem,
				"Prepare 2-3 projects with detailed explanations",
				dataItem,
				cloudItem,
				"System design basics (if asked)",
				"Code optimization and best practices",
				"Prepare questions about company tech stack",
			},
		},
		{
			Title: "Round 4: Managerial & HR",
			Items: []string{
				`Prepare "Tell me about yourself" (2-min version)`,
				"STAR method for behavioral questions",
				"Why this company? Research their products/culture",
				"Strengths and weaknesses with examples",
				"Career goals alignment with role",
				"Prepare 5-6 questions to ask interviewer",
				"Salary expectations research",
			},
		},
	}
}

// Plan builds the seven day preparation plan.
func Plan(skills extraction.Skills) []Section {
	web := skills.Get(catalog.CategoryWeb)
	hasReact := anyContains(web, "react")
	hasDSA := anyContains(skills.Get(catalog.CategoryCoreCS), "dsa")

	stackItem := "Tech stack deep dive"
	if len(web) > 0 {
		stackItem = web[0] + " specific interview questions"
	}

	return []Section{
		{
			Title: "Day 1-2: Foundations",
			Items: []string{
				"Review core CS concepts (OOP, DBMS, OS)",
				"Brush up on your primary language",
				"Solve 5 easy DSA problems",
				"Read about company background and culture",
				"Prepare resume talking points",
			},
		},
		{
			Title: "Day 3-4: DSA & Coding",
			Items: []string{
				pick(hasDSA, "Solve 10 medium DSA problems", "Practice basic coding problems"),
				"Focus on arrays, strings, hashmaps",
				"Time yourself (45 min per problem)",
				"Write clean, documented code",
				"Practice explaining your approach verbally",
			},
		},
		{
			Title: "Day 5: Projects & Stack",
			Items: []string{
				"Deep dive into your best 2 projects",
				pick(hasReact, "React concepts: hooks, state, lifecycle", "Review your web framework"),
				stackItem,
				"Prepare architecture diagrams",
				"Practice project demos (5-min version)",
			},
		},
		{
			Title: "Day 6: Mock Interviews",
			Items: []string{
				"Solve 3-4 common interview problems",
				"Practice system design (if applicable)",
				"Mock behavioral interview questions",
				"Record yourself answering technical questions",
				"Review weak areas from practice",
			},
		},
		{
			Title: "Day 7: Final Revision",
			Items: []string{
				"Quick revision of all core topics",
				"Review your notes and key points",
				"Practice intro and project explanations",
				"Relax and get good sleep",
				"Prepare questions for interviewer",
			},
		},
	}
}

var genericQuestions = []string{
	"Explain a time you optimized code for better performance.",
	"How do you stay updated with new technologies?",
	"Describe your development workflow.",
	"What testing strategies do you follow?",
}

// Questions returns exactly QuestionCount likely interview questions for skills.
func Questions(skills extraction.Skills) []string {
	core := skills.Get(catalog.CategoryCoreCS)
	web := skills.Get(catalog.CategoryWeb)
	data := skills.Get(catalog.CategoryData)
	cloud := skills.Get(catalog.CategoryCloud)

	q := make([]string, 0, QuestionCount+4)

	if anyContains(core, "dsa", "algorithm") {
		q = append(q,
			"How would you optimize search in a sorted array?",
			"Explain time and space complexity with examples.",
		)
	}
	if anyContains(core, "oop") {
		q = append(q, "Explain polymorphism with a real-world example.")
	}
	if anyContains(core, "dbms") {
		q = append(q, "Explain database indexing and when it helps performance.")
	}
	if anyContains(core, "os") {
		q = append(q, "What is a deadlock? How can you prevent it?")
	}

	if anyContains(web, "react") {
		q = append(q,
			"Explain state management options in React.",
			"What are React hooks and why were they introduced?",
		)
	}
	if anyContains(web, "node") {
		q = append(q, "How does Node.js handle async operations?")
	}
	if anyContains(web, "rest") {
		q = append(q, "Explain RESTful API design principles.")
	}

	if len(data) > 0 {
		q = append(q, "Difference between SQL and NoSQL databases?")
		if anyContains(data, "mongodb") {
			q = append(q, "When would you use MongoDB over a relational database?")
		}
	}

	if anyContains(cloud, "docker") {
		q = append(q, "Explain containerization and its benefits.")
	}
	if anyContains(cloud, "aws", "cloud") {
		q = append(q, "What cloud services have you worked with?")
	}

	q = append(q,
		"Walk me through your best project and the challenges you faced.",
		"How do you approach debugging a complex issue?",
	)

	for len(q) < QuestionCount {
		q = append(q, genericQuestions[len(q)%len(genericQuestions)])
	}

	return q[:QuestionCount]
}
