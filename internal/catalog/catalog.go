package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Skill category names. The order of SkillCategoryNames is the order every
// extraction result is reported in.
const (
	CategoryCoreCS    = "Core CS"
	CategoryLanguages = "Languages"
	CategoryWeb       = "Web"
	CategoryData      = "Data"
	CategoryCloud     = "Cloud"
	CategoryTesting   = "Testing"
	CategoryOther     = "Other"

	DefaultIndustry = "Technology Services"
)

// SkillCategoryNames lists the keyword-backed categories followed by the fallback category.
var SkillCategoryNames = []string{
	CategoryCoreCS,
	CategoryLanguages,
	CategoryWeb,
	CategoryData,
	CategoryCloud,
	CategoryTesting,
	CategoryOther,
}

// Category is a named keyword list.
type Category struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Catalog holds every static keyword table used by the scorers.
type Catalog struct {
	SkillCategories     []Category `yaml:"skill_categories"`
	FallbackSkills      []string   `yaml:"fallback_skills"`
	EnterpriseCompanies []string   `yaml:"enterprise_companies"`
	MidSizeCompanies    []string   `yaml:"midsize_companies"`
	Industries          []Category `yaml:"industries"`
	ActionVerbs         []string   `yaml:"action_verbs"`
}

// Default returns a fresh copy of the built-in tables. Callers may mutate it freely.
func Default() *Catalog {
	return &Catalog{
		SkillCategories: []Category{
			{Name: CategoryCoreCS, Keywords: []string{"dsa", "data structures", "algorithms", "oop", "object oriented", "dbms", "database", "os", "operating system", "networks", "networking", "computer science"}},
			{Name: CategoryLanguages, Keywords: []string{"java", "python", "javascript", "typescript", "c++", "c#", "golang", "go lang", "ruby", "php", "swift", "kotlin"}},
			{Name: CategoryWeb, Keywords: []string{"react", "reactjs", "next.js", "nextjs", "node.js", "nodejs", "express", "rest api", "restful", "graphql", "angular", "vue", "django", "flask"}},
			{Name: CategoryData, Keywords: []string{"sql", "mongodb", "postgresql", "mysql", "redis", "nosql", "cassandra", "dynamodb"}},
			{Name: CategoryCloud, Keywords: []string{"aws", "azure", "gcp", "google cloud", "docker", "kubernetes", "k8s", "ci/cd", "jenkins", "linux", "terraform", "ansible"}},
			{Name: CategoryTesting, Keywords: []string{"selenium", "cypress", "playwright", "junit", "pytest", "testing", "test automation", "jest", "mocha"}},
		},
		FallbackSkills: []string{"Communication", "Problem Solving", "Basic Coding", "Team Collaboration"},
		EnterpriseCompanies: []string{
			"amazon", "google", "microsoft", "meta", "facebook",
			"infosys", "tcs", "wipro", "cognizant", "accenture",
			"ibm", "oracle", "sap", "adobe", "salesforce",
			"apple", "netflix", "uber", "linkedin", "twitter",
			"intel", "nvidia", "qualcomm", "cisco", "dell",
			"hp", "capgemini", "deloitte", "pwc", "ey",
		},
		MidSizeCompanies: []string{
			"flipkart", "paytm", "swiggy", "zomato", "phonpe",
			"razorpay", "cred", "zerodha", "freshworks", "ola",
			"byju", "sharechat", "meesho", "dunzo", "cure.fit",
			"bigbasket", "myntra", "nykaa", "udaan", "delhivery",
		},
		Industries: []Category{
			{Name: "Financial Services", Keywords: []string{"fintech", "banking", "payment", "wallet", "finance", "trading", "insurance"}},
			{Name: "E-commerce", Keywords: []string{"ecommerce", "e-commerce", "retail", "marketplace", "shopping", "delivery"}},
			{Name: "Healthcare", Keywords: []string{"healthcare", "health", "medical", "pharma", "telemedicine", "hospital"}},
			{Name: "Food & Delivery", Keywords: []string{"food", "restaurant", "delivery", "grocery"}},
			{Name: "Cloud & Infrastructure", Keywords: []string{"cloud", "aws", "azure", "infrastructure", "devops", "saas"}},
			{Name: "Social & Media", Keywords: []string{"social", "media", "content", "streaming", "entertainment"}},
			{Name: "EdTech", Keywords: []string{"education", "learning", "edtech", "training", "courses"}},
			{Name: "Transportation", Keywords: []string{"ride", "transport", "logistics", "mobility", "cab"}},
		},
		ActionVerbs: []string{
			"Built", "Developed", "Designed", "Implemented", "Led", "Improved", "Created", "Optimized", "Automated",
			"Managed", "Launched", "Initiated", "Reduced", "Increased", "Saved", "Generated",
		},
	}
}

// Validate reports every blank keyword or empty table in the catalog.
func (c *Catalog) Validate() error {
	var errs []string

	checkList := func(name string, list []string) {
		if len(list) == 0 {
			errs = append(errs, fmt.Sprintf("%s must have at least 1 entry", name))
		}
		for i, v := range list {
			if strings.TrimSpace(v) == "" {
				errs = append(errs, fmt.Sprintf("%s[%d] cannot be empty", name, i))
			}
		}
	}

	checkCategories := func(name string, cats []Category) {
		if len(cats) == 0 {
			errs = append(errs, fmt.Sprintf("%s must have at least 1 category", name))
		}
		for i, cat := range cats {
			if strings.TrimSpace(cat.Name) == "" {
				errs = append(errs, fmt.Sprintf("%s[%d].name is required", name, i))
			}
			checkList(fmt.Sprintf("%s[%d].keywords", name, i), cat.Keywords)
		}
	}

	checkCategories("skill_categories", c.SkillCategories)
	for i, cat := range c.SkillCategories {
		if cat.Name == CategoryOther {
			errs = append(errs, fmt.Sprintf("skill_categories[%d]: %q is reserved for fallback skills", i, CategoryOther))
		}
	}
	checkList("fallback_skills", c.FallbackSkills)
	checkList("enterprise_companies", c.EnterpriseCompanies)
	checkList("midsize_companies", c.MidSizeCompanies)
	checkCategories("industries", c.Industries)
	checkList("action_verbs", c.ActionVerbs)

	if len(errs) > 0 {
		return errors.New("catalog validation failed:\n- " + strings.Join(errs, "\n- "))
	}
	return nil
}
