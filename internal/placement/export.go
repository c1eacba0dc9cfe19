package placement

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spigell/hirekit/internal/intel"
	"github.com/spigell/hirekit/internal/readiness"
	"github.com/spigell/hirekit/internal/records"
)

// FormatPlan renders the 7-day plan as copyable text.
func FormatPlan(rec records.AnalysisRecord) string {
	return formatSections("7-DAY PREPARATION PLAN", rec.Plan, "→")
}

// FormatChecklist renders the round-wise checklist as copyable text.
func FormatChecklist(rec records.AnalysisRecord) string {
	return formatSections("ROUND-WISE PREPARATION CHECKLIST", rec.Checklist, "•")
}

// FormatQuestions renders the numbered interview questions.
func FormatQuestions(rec records.AnalysisRecord) string {
	var b strings.Builder
	writeHeading(&b, fmt.Sprintf("%d LIKELY INTERVIEW QUESTIONS", readiness.QuestionCount))
	for i, q := range rec.Questions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return b.String()
}

func formatSections(title string, sections []readiness.Section, bullet string) string {
	var b strings.Builder
	writeHeading(&b, title)
	for _, s := range sections {
		b.WriteString(s.Title + "\n")
		for _, item := range s.Items {
			fmt.Fprintf(&b, "%s %s\n", bullet, item)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func writeHeading(b *strings.Builder, title string) {
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len([]rune(title))) + "\n\n")
}

// WriteReport writes the full plain-text report of rec.
func WriteReport(w io.Writer, rec records.AnalysisRecord) error {
	var b strings.Builder
	writeHeading(&b, "JOB DESCRIPTION ANALYSIS")
	fmt.Fprintf(&b, "Company: %s\n", rec.Company)
	fmt.Fprintf(&b, "Role: %s\n", rec.Role)
	fmt.Fprintf(&b, "Date: %s\n", rec.CreatedAt.Format(time.DateOnly))
	fmt.Fprintf(&b, "Readiness Score: %d/100\n\n", rec.FinalScore)

	b.WriteString("EXTRACTED SKILLS\n================\n")
	for _, category := range rec.ExtractedSkills.Categories() {
		skills := rec.ExtractedSkills.Get(category)
		if len(skills) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s:\n", category)
		for _, skill := range skills {
			fmt.Fprintf(&b, "  %s: %s\n", rec.SkillConfidenceMap.Of(skill).Label(), skill)
		}
	}
	b.WriteString("\n\n")

	b.WriteString(FormatChecklist(rec))
	b.WriteString("\n")
	b.WriteString(FormatPlan(rec))
	b.WriteString("\n")
	b.WriteString(FormatQuestions(rec))

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// ReportFileName is the suggested file name of the report of rec written on day.
func ReportFileName(rec records.AnalysisRecord, day time.Time) string {
	company := strings.TrimSpace(rec.Company)
	if company == "" || company == intel.NotSpecified {
		company = "Company"
	}
	return fmt.Sprintf("JD_Analysis_%s_%s.txt", company, day.Format(time.DateOnly))
}
