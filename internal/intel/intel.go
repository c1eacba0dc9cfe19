// Package intel classifies a company by size and industry from its name and the
// job description text. Results are heuristics derived from static keyword
// tables, not facts looked up anywhere.
package intel

import (
	"strings"

	"github.com/spigell/hirekit/internal/catalog"
	"github.com/spigell/hirekit/internal/textmatch"
)

// Size is the heuristic company size tier.
type Size string

const (
	Enterprise Size = "Enterprise"
	MidSize    Size = "Mid-size"
	Startup    Size = "Startup"
)

// NotSpecified is the placeholder used when no company name was given.
const NotSpecified = "Not specified"

// DemoNote tells readers the intel is generated, not looked up.
const DemoNote = "Demo Mode: generated heuristically"

// SizeInfo describes a size tier.
type SizeInfo struct {
	Size        Size   `json:"size"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

var sizeInfo = map[Size]SizeInfo{
	Enterprise: {Size: Enterprise, Category: "2000+ employees", Description: "Large established corporation"},
	MidSize:    {Size: MidSize, Category: "200-2000 employees", Description: "Growing company with established processes"},
	Startup:    {Size: Startup, Category: "<200 employees", Description: "Early-stage or unknown company"},
}

// Focus summarises what a size tier looks for when hiring.
type Focus struct {
	Summary    string   `json:"summary"`
	Priorities []string `json:"priorities"`
	Approach   string   `json:"approach"`
}

var focuses = map[Size]Focus{
	Enterprise: {
		Summary:    "Structured interviews with strong DSA and core CS fundamentals",
		Priorities: []string{"Algorithm optimization", "System design at scale", "CS theory mastery"},
		Approach:   "Multiple rounds with emphasis on standardized problem-solving",
	},
	MidSize: {
		Summary:    "Balanced approach with practical skills and problem solving",
		Priorities: []string{"Full-stack abilities", "Team collaboration", "Growth mindset"},
		Approach:   "Mix of technical depth and practical application",
	},
	Startup: {
		Summary:    "Hands-on coding with emphasis on shipping products fast",
		Priorities: []string{"Quick learning", "Ownership mindset", "Stack expertise"},
		Approach:   "Focus on practical coding and culture fit",
	},
}

// Intel is the full company profile attached to an analysis.
type Intel struct {
	Name            string   `json:"name" mapstructure:"name"`
	Size            Size     `json:"size" mapstructure:"size"`
	SizeCategory    string   `json:"sizeCategory" mapstructure:"sizeCategory"`
	SizeDescription string   `json:"sizeDescription" mapstructure:"sizeDescription"`
	Industry        string   `json:"industry" mapstructure:"industry"`
	HiringFocus     string   `json:"hiringFocus" mapstructure:"hiringFocus"`
	Priorities      []string `json:"priorities" mapstructure:"priorities"`
	Approach        string   `json:"approach" mapstructure:"approach"`
	DetectedFrom    string   `json:"detectedFrom" mapstructure:"detectedFrom"`
	Note            string   `json:"note" mapstructure:"note"`
}

// Engine classifies companies against a keyword catalog.
type Engine struct {
	cat *catalog.Catalog
}

// New creates an Engine. A nil catalog selects the built-in tables.
func New(cat *catalog.Catalog) *Engine {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Engine{cat: cat}
}

// DetectSize classifies name. The enterprise list is checked before the
// mid-size list; blank or unknown names are startups.
func (e *Engine) DetectSize(name string) SizeInfo {
	normalized := strings.TrimSpace(name)
	if normalized == "" || normalized == NotSpecified {
		return sizeInfo[Startup]
	}
	if textmatch.AnyMatch(normalized, e.cat.EnterpriseCompanies) {
		return sizeInfo[Enterprise]
	}
	if textmatch.AnyMatch(normalized, e.cat.MidSizeCompanies) {
		return sizeInfo[MidSize]
	}
	return sizeInfo[Startup]
}

// InferIndustry returns the first industry, in catalog order, with a keyword in
// the job description or company name.
func (e *Engine) InferIndustry(jdText, company string) string {
	text := jdText + " " + company
	for _, ind := range e.cat.Industries {
		if textmatch.AnyMatch(text, ind.Keywords) {
			return ind.Name
		}
	}
	return catalog.DefaultIndustry
}

// HiringFocus returns the hiring focus of size; unknown sizes get the startup focus.
func HiringFocus(size Size) Focus {
	f, ok := focuses[size]
	if !ok {
		f = focuses[Startup]
	}
	f.Priorities = append([]string(nil), f.Priorities...)
	return f
}

// Generate builds the company profile for an analysis.
func (e *Engine) Generate(company, jdText string) Intel {
	size := e.DetectSize(company)
	focus := HiringFocus(size.Size)

	name := strings.TrimSpace(company)
	if name == "" {
		name = NotSpecified
	}

	return Intel{
		Name:            name,
		Size:            size.Size,
		SizeCategory:    size.Category,
		SizeDescription: size.Description,
		Industry:        e.InferIndustry(jdText, company),
		HiringFocus:     focus.Summary,
		Priorities:      focus.Priorities,
		Approach:        focus.Approach,
		DetectedFrom:    "heuristic",
		Note:            DemoNote,
	}
}
