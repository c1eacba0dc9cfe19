// Package submission tracks the final proof of a finished build: the build
// steps, the pre-ship test checklist and the three artifact links.
package submission

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Store keys.
const (
	KeySubmission    = "prp_final_submission"
	KeyTestChecklist = "prp_test_checklist"
)

// Step is one build step that must be completed before shipping.
type Step struct {
	ID          int
	Name        string
	Description string
}

// Steps lists the build steps in order.
var Steps = []Step{
	{ID: 1, Name: "Foundation & Auth", Description: "React setup, routing, design system"},
	{ID: 2, Name: "Backend Integration", Description: "API structure, mock data"},
	{ID: 3, Name: "JD Analysis Engine", Description: "Skill extraction, scoring"},
	{ID: 4, Name: "Results & Interactivity", Description: "Skill toggles, score updates"},
	{ID: 5, Name: "Company Intelligence", Description: "Round mapping, company data"},
	{ID: 6, Name: "Data Hardening", Description: "Validation, error handling, schema"},
	{ID: 7, Name: "Quality Gates", Description: "Test checklist, ship lock"},
	{ID: 8, Name: "Proof & Deployment", Description: "Final submission, deployment"},
}

// TestItem is one manual pre-ship check.
type TestItem struct {
	ID    string
	Label string
}

// Tests lists the pre-ship checks in order.
var Tests = []TestItem{
	{ID: "jd-required", Label: "JD required validation works"},
	{ID: "short-jd-warning", Label: "Short JD warning shows for <200 chars"},
	{ID: "skills-extraction", Label: "Skills extraction groups correctly"},
	{ID: "round-mapping", Label: "Round mapping changes based on company + skills"},
	{ID: "score-deterministic", Label: "Score calculation is deterministic"},
	{ID: "skill-toggles", Label: "Skill toggles update score live"},
	{ID: "persistence", Label: "Changes persist after refresh"},
	{ID: "history", Label: "History saves and loads correctly"},
	{ID: "export", Label: "Export buttons copy the correct content"},
	{ID: "no-console-errors", Label: "No console errors on core pages"},
}

// Artifact field names, as stored.
const (
	FieldLovable  = "lovableLink"
	FieldGithub   = "githubLink"
	FieldDeployed = "deployedLink"
)

// Fields lists the artifact fields in display order.
var Fields = []string{FieldLovable, FieldGithub, FieldDeployed}

var (
	ErrInvalidURL   = errors.New("invalid URL format")
	ErrUnknownStep  = errors.New("unknown step")
	ErrUnknownTest  = errors.New("unknown test")
	ErrUnknownField = errors.New("unknown artifact field")
)

// FieldError reports an artifact field holding an unusable URL.
type FieldError struct {
	Field string
	Value string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v: %q", e.Field, ErrInvalidURL, e.Value)
}

func (e *FieldError) Unwrap() error { return ErrInvalidURL }

// ValidateURL reports whether s is an absolute http or https URL.
func ValidateURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Artifacts are the links proving the build.
type Artifacts struct {
	Lovable  string `json:"lovableLink" mapstructure:"lovableLink"`
	Github   string `json:"githubLink" mapstructure:"githubLink"`
	Deployed string `json:"deployedLink" mapstructure:"deployedLink"`
}

func (a *Artifacts) field(name string) (*string, error) {
	switch name {
	case FieldLovable:
		return &a.Lovable, nil
	case FieldGithub:
		return &a.Github, nil
	case FieldDeployed:
		return &a.Deployed, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
}

// Get returns the value of the named field.
func (a Artifacts) Get(name string) (string, error) {
	p, err := a.field(name)
	if err != nil {
		return "", err
	}
	return *p, nil
}

// Set changes the named field.
func (a *Artifacts) Set(name, value string) error {
	p, err := a.field(name)
	if err != nil {
		return err
	}
	*p = strings.TrimSpace(value)
	return nil
}

// Validate returns one FieldError per filled-in field that is not a valid
// URL. Blank fields are incomplete, not invalid.
func (a Artifacts) Validate() error {
	var errs []error
	for _, name := range Fields {
		v, _ := a.Get(name)
		if v != "" && !ValidateURL(v) {
			errs = append(errs, &FieldError{Field: name, Value: v})
		}
	}
	return errors.Join(errs...)
}

// Complete reports whether every link is present and valid.
func (a Artifacts) Complete() bool {
	return ValidateURL(a.Lovable) && ValidateURL(a.Github) && ValidateURL(a.Deployed)
}

// Submission is the stored proof state.
type Submission struct {
	Steps       map[int]bool `json:"steps" mapstructure:"steps"`
	Artifacts   Artifacts    `json:"artifacts" mapstructure:"artifacts"`
	SubmittedAt *time.Time   `json:"submittedAt" mapstructure:"submittedAt"`
	ShippedAt   *time.Time   `json:"shippedAt" mapstructure:"shippedAt"`
}

// New returns a submission with no step completed.
func New() Submission {
	steps := make(map[int]bool, len(Steps))
	for _, s := range Steps {
		steps[s.ID] = false
	}
	return Submission{Steps: steps}
}

// CompletedSteps counts the completed build steps.
func (s Submission) CompletedSteps() int {
	n := 0
	for _, step := range Steps {
		if s.Steps[step.ID] {
			n++
		}
	}
	return n
}

// AllStepsComplete reports whether every build step is done.
func (s Submission) AllStepsComplete() bool {
	return s.CompletedSteps() == len(Steps)
}

// SetArtifacts replaces the links. SubmittedAt is stamped the first time all
// three links are valid and cleared whenever they are not.
func (s *Submission) SetArtifacts(a Artifacts, now time.Time) {
	s.Artifacts = a
	if !a.Complete() {
		s.SubmittedAt = nil
		return
	}
	if s.SubmittedAt == nil {
		t := now.UTC()
		s.SubmittedAt = &t
	}
}

// Checklist holds the pass state of every pre-ship test.
type Checklist map[string]bool

// NewChecklist returns a checklist with nothing passed.
func NewChecklist() Checklist {
	c := make(Checklist, len(Tests))
	for _, t := range Tests {
		c[t.ID] = false
	}
	return c
}

// Passed counts the passed tests.
func (c Checklist) Passed() int {
	n := 0
	for _, t := range Tests {
		if c[t.ID] {
			n++
		}
	}
	return n
}

// AllPassed reports whether every test passed.
func (c Checklist) AllPassed() bool {
	return c.Passed() == len(Tests)
}

// Status is the overall shipping state.
type Status struct {
	CompletedSteps int
	TotalSteps     int
	PassedTests    int
	TotalTests     int
	LinksValid     bool
	Shipped        bool
}

// Evaluate combines the submission and the checklist. A build is shipped once
// every step is complete, every test passed and every link is valid.
func Evaluate(s Submission, c Checklist) Status {
	st := Status{
		CompletedSteps: s.CompletedSteps(),
		TotalSteps:     len(Steps),
		PassedTests:    c.Passed(),
		TotalTests:     len(Tests),
		LinksValid:     s.Artifacts.Complete(),
	}
	st.Shipped = s.AllStepsComplete() && c.AllPassed() && st.LinksValid
	return st
}

const rule = "------------------------------------------"

// FinalText is the copyable final submission.
func FinalText(a Artifacts) string {
	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString("Placement Readiness Platform - Final Submission\n\n")
	fmt.Fprintf(&b, "Lovable Project: %s\n", a.Lovable)
	fmt.Fprintf(&b, "GitHub Repository: %s\n", a.Github)
	fmt.Fprintf(&b, "Live Deployment: %s\n\n", a.Deployed)
	b.WriteString("Core Capabilities:\n")
	for _, c := range []string{
		"JD skill extraction (deterministic)",
		"Round mapping engine",
		"7-day prep plan",
		"Interactive readiness scoring",
		"History persistence",
	} {
		b.WriteString("- " + c + "\n")
	}
	b.WriteString(rule)
	return b.String()
}
