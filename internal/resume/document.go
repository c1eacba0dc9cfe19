// Package resume holds the resume document and scores how complete it is
// for applicant tracking systems.
package resume

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Template is the visual layout of the rendered resume.
type Template string

const (
	TemplateClassic Template = "classic"
	TemplateModern  Template = "modern"
	TemplateMinimal Template = "minimal"
)

// Templates lists every template.
var Templates = []Template{TemplateClassic, TemplateModern, TemplateMinimal}

// DefaultThemeColor is the accent colour of a new resume.
const DefaultThemeColor = "#0f766e"

type Personal struct {
	Name     string `json:"name" mapstructure:"name"`
	Email    string `json:"email" mapstructure:"email"`
	Phone    string `json:"phone" mapstructure:"phone"`
	Location string `json:"location" mapstructure:"location"`
}

type Education struct {
	Degree      string `json:"degree" mapstructure:"degree"`
	Institution string `json:"institution" mapstructure:"institution"`
	Year        string `json:"year" mapstructure:"year"`
}

type Experience struct {
	Role        string `json:"role" mapstructure:"role"`
	Company     string `json:"company" mapstructure:"company"`
	Duration    string `json:"duration" mapstructure:"duration"`
	Description string `json:"description" mapstructure:"description"`
}

type Project struct {
	ID          string   `json:"id" mapstructure:"id"`
	Title       string   `json:"title" mapstructure:"title"`
	Description string   `json:"description" mapstructure:"description"`
	TechStack   []string `json:"techStack" mapstructure:"techStack"`
	LiveURL     string   `json:"liveUrl" mapstructure:"liveUrl"`
	GithubURL   string   `json:"githubUrl" mapstructure:"githubUrl"`
}

// SkillCategory is one of the three skill groups.
type SkillCategory string

const (
	SkillsTechnical SkillCategory = "technical"
	SkillsSoft      SkillCategory = "soft"
	SkillsTools     SkillCategory = "tools"
)

// SkillCategories lists the groups in display order.
var SkillCategories = []SkillCategory{SkillsTechnical, SkillsSoft, SkillsTools}

// ParseSkillCategory matches s against the skill groups, ignoring case.
func ParseSkillCategory(s string) (SkillCategory, error) {
	for _, c := range SkillCategories {
		if strings.EqualFold(strings.TrimSpace(s), string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown skill category %q", s)
}

type Skills struct {
	Technical []string `json:"technical" mapstructure:"technical"`
	Soft      []string `json:"soft" mapstructure:"soft"`
	Tools     []string `json:"tools" mapstructure:"tools"`
}

func (s *Skills) list(c SkillCategory) *[]string {
	switch c {
	case SkillsSoft:
		return &s.Soft
	case SkillsTools:
		return &s.Tools
	default:
		return &s.Technical
	}
}

// Total is the number of skills across all groups.
func (s Skills) Total() int {
	return len(s.Technical) + len(s.Soft) + len(s.Tools)
}

type Links struct {
	Github   string `json:"github" mapstructure:"github"`
	Linkedin string `json:"linkedin" mapstructure:"linkedin"`
}

// Document is the whole resume.
type Document struct {
	Personal   Personal     `json:"personal" mapstructure:"personal"`
	Summary    string       `json:"summary" mapstructure:"summary"`
	Education  []Education  `json:"education" mapstructure:"education"`
	Experience []Experience `json:"experience" mapstructure:"experience"`
	Projects   []Project    `json:"projects" mapstructure:"projects"`
	Skills     Skills       `json:"skills" mapstructure:"skills"`
	Links      Links        `json:"links" mapstructure:"links"`
	Template   Template     `json:"template" mapstructure:"template"`
	ThemeColor string       `json:"themeColor" mapstructure:"themeColor"`
}

// New returns an empty resume with the default template and colour.
func New() Document {
	return Document{
		Education:  []Education{},
		Experience: []Experience{},
		Projects:   []Project{},
		Skills:     Skills{Technical: []string{}, Soft: []string{}, Tools: []string{}},
		Template:   TemplateClassic,
		ThemeColor: DefaultThemeColor,
	}
}

// NewProjectID returns a fresh project identifier.
func NewProjectID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
}

// AddSkill appends the trimmed skill to category unless it is blank or
// already present. It reports whether the document changed.
func (d *Document) AddSkill(category SkillCategory, skill string) bool {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return false
	}
	list := d.Skills.list(category)
	if slices.Contains(*list, skill) {
		return false
	}
	*list = append(*list, skill)
	return true
}

// RemoveSkill drops every occurrence of skill from category.
func (d *Document) RemoveSkill(category SkillCategory, skill string) bool {
	list := d.Skills.list(category)
	before := len(*list)
	*list = slices.DeleteFunc(*list, func(s string) bool { return s == skill })
	return len(*list) != before
}

var suggestedSkills = map[SkillCategory][]string{
	SkillsTechnical: {"TypeScript", "React", "Node.js", "PostgreSQL", "GraphQL"},
	SkillsSoft:      {"Team Leadership", "Problem Solving"},
	SkillsTools:     {"Git", "Docker", "AWS"},
}

// SuggestSkills merges a fixed set of common skills into every group and
// returns how many were added.
func (d *Document) SuggestSkills() int {
	added := 0
	for _, c := range SkillCategories {
		for _, s := range suggestedSkills[c] {
			if d.AddSkill(c, s) {
				added++
			}
		}
	}
	return added
}

// AddProject appends an empty project with a fresh id and returns it.
func (d *Document) AddProject(title string) *Project {
	d.Projects = append(d.Projects, Project{ID: NewProjectID(), Title: strings.TrimSpace(title), TechStack: []string{}})
	return &d.Projects[len(d.Projects)-1]
}

// Project returns the project with id or nil.
func (d *Document) Project(id string) *Project {
	for i := range d.Projects {
		if d.Projects[i].ID == id {
			return &d.Projects[i]
		}
	}
	return nil
}

// DeleteProject removes the project with id.
func (d *Document) DeleteProject(id string) bool {
	before := len(d.Projects)
	d.Projects = slices.DeleteFunc(d.Projects, func(p Project) bool { return p.ID == id })
	return len(d.Projects) != before
}

// AddTech appends tech to the project's stack unless blank or present.
func (p *Project) AddTech(tech string) bool {
	tech = strings.TrimSpace(tech)
	if tech == "" || slices.Contains(p.TechStack, tech) {
		return false
	}
	p.TechStack = append(p.TechStack, tech)
	return true
}

// RemoveTech drops tech from the project's stack.
func (p *Project) RemoveTech(tech string) bool {
	before := len(p.TechStack)
	p.TechStack = slices.DeleteFunc(p.TechStack, func(t string) bool { return t == tech })
	return len(p.TechStack) != before
}
